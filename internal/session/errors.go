package session

import (
	"net/http"

	"github.com/yamadatarousan/ticket-manager/internal/common/apperrors"
)

// Base session error
var (
	ErrSession apperrors.Error = apperrors.New("session error").SetStatusCode(http.StatusInternalServerError)
)

// Error kinds produced by the collaborator client and consumed by the session
// manager. The manager converts every one of these into a LastError value and
// a status transition; none of them propagate past it.
var (
	// ErrNetworkUnavailable means the collaborator could not be reached at
	// all. Recoverable by retrying; its message must stay distinguishable
	// from a credential rejection.
	ErrNetworkUnavailable apperrors.Error = ErrSession.New("cannot reach server").SetStatusCode(http.StatusServiceUnavailable)
	// ErrAuthenticationRejected means the collaborator rejected the
	// submitted credentials.
	ErrAuthenticationRejected apperrors.Error = ErrSession.New("authentication rejected").SetStatusCode(http.StatusUnauthorized)
	// ErrValidationRejected means the collaborator rejected registration
	// fields (duplicate identifier, weak secret, mismatched confirmation).
	ErrValidationRejected apperrors.Error = ErrSession.New("validation rejected").SetStatusCode(http.StatusUnprocessableEntity)
	// ErrSessionExpired means a previously working credential got a 401.
	// Handled silently: the credential is discarded and the session settles
	// anonymous.
	ErrSessionExpired apperrors.Error = ErrSession.New("session expired").SetStatusCode(http.StatusUnauthorized)
	// ErrUnhandled covers any other non-2xx response or parse failure.
	ErrUnhandled apperrors.Error = ErrSession.New("unexpected server response").SetStatusCode(http.StatusInternalServerError)
)
