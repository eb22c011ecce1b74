// Package session owns the authenticated-session lifecycle for the running
// client. A single Manager holds the one mutable Session, exposes read-only
// snapshots of it, and provides the only mutators: Login, Register, Logout,
// and CheckSession. Everything else in the client reads the session through
// Snapshot and reacts to changes through Subscribe.
package session

import "context"

// Status is the authentication state of the running client.
type Status string

const (
	// StatusAnonymous means no authenticated user.
	StatusAnonymous Status = "anonymous"
	// StatusAuthenticating means a credential validation or login attempt is
	// in flight.
	StatusAuthenticating Status = "authenticating"
	// StatusAuthenticated means a user is logged in.
	StatusAuthenticated Status = "authenticated"
	// StatusError means the most recent attempt failed; LastError carries the
	// reason.
	StatusError Status = "error"
)

// Role is the authorization tag attached to an identity. The session manager
// passes it through without interpreting it; the authorization gate decides
// what it permits.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known tags.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Identity is the read-only snapshot of the authenticated principal.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Snapshot is an immutable copy of the session state. User is non-nil exactly
// when Status is StatusAuthenticated; LastError is non-empty only when Status
// is StatusError. Attempt increases with every issued mutator call so
// consumers can tell whether a snapshot reflects the latest attempt.
type Snapshot struct {
	Status    Status
	User      *Identity
	LastError string
	Attempt   uint64
}

// Credentials are the inputs to a login attempt.
type Credentials struct {
	Identifier string
	Secret     string
}

// Registration carries the fields submitted when creating a new account.
// Registering implicitly logs the new account in.
type Registration struct {
	Name          string
	Identifier    string
	Secret        string
	SecretConfirm string
	Role          Role
}

// AuthResult is what the collaborator returns on a successful login or
// registration: the bearer credential and the identity it proves.
type AuthResult struct {
	Token string
	User  Identity
}

// Authenticator is the collaborator surface the manager depends on. The API
// client implements it; tests substitute a fake.
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (AuthResult, error)
	Register(ctx context.Context, reg Registration) (AuthResult, error)
	// Logout notifies the collaborator that the session is ending. Best
	// effort; the manager clears local state whether or not it succeeds.
	Logout(ctx context.Context) error
	// Me validates the stored credential and returns the identity it proves.
	Me(ctx context.Context) (Identity, error)
}
