package apperrors

import "errors"

// appError is the concrete implementation behind the Error interface.
type appError struct {
	msg        string  // message returned by Error()
	base       error   // parent error for errors.Is chains
	causes     []error // additional wrapped causes
	statuscode int     // HTTP status code carried with the error
}

// New creates a root-level error with the given message. Packages declare
// their sentinel hierarchies with New and derive from them.
func New(msg string) Error {
	return &appError{msg: msg}
}

func (e *appError) Error() string {
	return e.msg
}

// Unwrap returns the base error so errors.Is can walk the chain.
func (e *appError) Unwrap() error {
	return e.base
}

// UnwrapAll returns all attached causes in the order they were added.
func (e *appError) UnwrapAll() []error {
	return e.causes
}

// New derives a fresh error with its own message. The derived error inherits
// the status code and matches the receiver under errors.Is.
func (e *appError) New(msg string) Error {
	return &appError{
		msg:        msg,
		base:       e,
		statuscode: e.statuscode,
	}
}

// Msg derives an error carrying msg that wraps the receiver as a cause.
func (e *appError) Msg(msg string) Error {
	return &appError{
		msg:        msg,
		base:       e,
		causes:     append([]error{e}, e.causes...),
		statuscode: e.statuscode,
	}
}

// Err derives an error with the same message and the given additional causes.
func (e *appError) Err(errs ...error) Error {
	return &appError{
		msg:        e.msg,
		base:       e,
		causes:     append([]error{e}, errs...),
		statuscode: e.statuscode,
	}
}

// SetStatusCode returns a copy with the status code updated.
func (e *appError) SetStatusCode(code int) Error {
	cp := *e
	cp.statuscode = code
	return &cp
}

// StatusCode returns the HTTP status code carried by the error.
func (e *appError) StatusCode() int {
	return e.statuscode
}

// Is reports whether target matches the base error or any attached cause.
func (e *appError) Is(target error) bool {
	if target == nil {
		return false
	}
	if errors.Is(e.base, target) {
		return true
	}
	for _, cause := range e.causes {
		if errors.Is(cause, target) {
			return true
		}
	}
	return false
}
