package session

// state is the mutable session value guarded by the manager.
type state struct {
	status  Status
	user    *Identity
	lastErr string
}

// event is a resolved fact the transition function applies to the state.
// Events correspond to mutator lifecycle points: an attempt being issued and
// the three ways it can settle, plus clearing a surfaced error.
type event interface {
	isEvent()
}

// evStart is applied when a mutator issues its network call.
type evStart struct{}

// evAuthenticated is applied when a call resolves with a valid identity.
type evAuthenticated struct {
	user Identity
}

// evAnonymous is applied when the session settles without a user: logout,
// absent or invalidated stored credential.
type evAnonymous struct{}

// evFailed is applied when a login or registration attempt is rejected.
type evFailed struct {
	msg string
}

// evClearError is applied by ClearError; it drops the message without
// changing status.
type evClearError struct{}

func (evStart) isEvent()         {}
func (evAuthenticated) isEvent() {}
func (evAnonymous) isEvent()     {}
func (evFailed) isEvent()        {}
func (evClearError) isEvent()    {}

// apply is the pure transition function. It upholds the session invariants:
// user is set exactly in the authenticated state, lastErr only in the error
// state. Events are applied in the order the underlying calls resolve, so the
// most recently resolved attempt always wins.
func apply(s state, ev event) state {
	switch ev := ev.(type) {
	case evStart:
		return state{status: StatusAuthenticating}
	case evAuthenticated:
		user := ev.user
		return state{status: StatusAuthenticated, user: &user}
	case evAnonymous:
		return state{status: StatusAnonymous}
	case evFailed:
		return state{status: StatusError, lastErr: ev.msg}
	case evClearError:
		s.lastErr = ""
		return s
	}
	return s
}
