// Package apperrors provides the error type used across the client. It extends
// the standard error interface with error chaining and HTTP status codes so
// that error kinds can be declared once as package-level sentinels and
// specialized at the call site while remaining matchable with errors.Is.
package apperrors

// Error is the interface implemented by all application errors. Methods that
// derive a new error never mutate the receiver; they return a copy, which
// keeps package-level sentinels safe to specialize concurrently.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error     // derives a fresh error using the current one as its base
	Msg(msg string) Error     // derives an error carrying msg that wraps the current one
	Err(errs ...error) Error  // attaches additional causes to the current error
	SetStatusCode(int) Error  // sets the HTTP status code associated with the error
	StatusCode() int          // returns the associated HTTP status code
	UnwrapAll() []error       // returns every attached cause
}
