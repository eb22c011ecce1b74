// Package credstore persists the bearer credential across client runs. The
// credential is the only durable state the client keeps besides its config
// file, so the package exposes a minimal single-key capability interface and
// keeps the session logic testable without touching the filesystem.
package credstore

// Store is the capability the session manager uses to persist the bearer
// credential. Implementations hold at most one credential.
type Store interface {
	// Load returns the stored credential, or the empty string when none is
	// stored. A missing credential is not an error.
	Load() (string, error)
	// Save stores the credential, replacing any previous one.
	Save(token string) error
	// Clear removes the stored credential. Clearing an empty store is a no-op.
	Clear() error
}
