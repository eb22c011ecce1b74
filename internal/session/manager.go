package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/yamadatarousan/ticket-manager/internal/credstore"
)

// Manager holds the single Session for the lifetime of the running client.
// All mutation happens through its methods; consumers read the session via
// Snapshot and react to changes via Subscribe.
//
// Mutators may be called while another call is in flight. Transitions are
// applied strictly in the order the underlying network calls resolve, so the
// most recently resolved attempt determines the final status and user
// (last-write-wins); no cancellation of in-flight calls is attempted.
type Manager struct {
	auth  Authenticator
	creds credstore.Store

	mu        sync.Mutex
	state     state
	attempt   uint64
	listeners []func(Snapshot)
}

// NewManager creates the session manager. The session starts in the
// authenticating state; CheckSession settles it by validating any stored
// credential.
func NewManager(auth Authenticator, creds credstore.Store) *Manager {
	return &Manager{
		auth:  auth,
		creds: creds,
		state: state{status: StatusAuthenticating},
	}
}

// Snapshot returns an immutable copy of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers a listener invoked after every state change with a
// snapshot of the new state. Listeners are invoked synchronously and must not
// call back into the manager's mutators.
func (m *Manager) Subscribe(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Login authenticates with the collaborator. On success the returned bearer
// credential is persisted and the session becomes authenticated. On failure
// the session enters the error state with the rejection message as LastError;
// a previously persisted credential is left untouched.
func (m *Manager) Login(ctx context.Context, creds Credentials) error {
	m.begin()
	res, err := m.auth.Login(ctx, creds)
	if err != nil {
		m.resolve(evFailed{msg: err.Error()})
		return err
	}
	if err := m.creds.Save(res.Token); err != nil {
		log.Warn().Err(err).Msg("failed to persist credential")
	}
	m.resolve(evAuthenticated{user: res.User})
	return nil
}

// Register creates a new account and logs it in. The contract matches Login;
// field rejections from the collaborator surface the same way, with message
// content from its validation payload.
func (m *Manager) Register(ctx context.Context, reg Registration) error {
	m.begin()
	res, err := m.auth.Register(ctx, reg)
	if err != nil {
		m.resolve(evFailed{msg: err.Error()})
		return err
	}
	if err := m.creds.Save(res.Token); err != nil {
		log.Warn().Err(err).Msg("failed to persist credential")
	}
	m.resolve(evAuthenticated{user: res.User})
	return nil
}

// Logout ends the session. The remote notification is best effort: the
// persisted credential is discarded and the session settles anonymous even
// when the collaborator call fails, so the client can never be stuck looking
// authenticated because a server call failed.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.auth.Logout(ctx); err != nil {
		log.Warn().Err(err).Msg("remote logout failed; clearing local session anyway")
	}
	if err := m.creds.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to remove persisted credential")
	}
	m.resolve(evAnonymous{})
	return nil
}

// CheckSession validates the persisted credential, if any. With no stored
// credential the session settles anonymous without any network call. A stored
// credential the collaborator rejects is discarded and the session settles
// anonymous; a stale credential at startup is not a user-facing error. When
// the collaborator is unreachable the credential is kept so a later check can
// retry it.
func (m *Manager) CheckSession(ctx context.Context) error {
	token, err := m.creds.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to read persisted credential")
		token = ""
	}
	if token == "" {
		m.resolve(evAnonymous{})
		return nil
	}
	m.begin()
	user, err := m.auth.Me(ctx)
	if err != nil {
		if !errors.Is(err, ErrNetworkUnavailable) {
			if cerr := m.creds.Clear(); cerr != nil {
				log.Warn().Err(cerr).Msg("failed to remove persisted credential")
			}
		}
		m.resolve(evAnonymous{})
		return nil
	}
	m.resolve(evAuthenticated{user: user})
	return nil
}

// ClearError drops LastError without changing the session status.
func (m *Manager) ClearError() {
	m.resolve(evClearError{})
}

// HandleUnauthorized is the credential-rejection path for 401 responses on
// domain calls: the persisted credential is discarded and the session settles
// anonymous. It is wired as the API client's unauthorized hook so no call
// site can opt out.
func (m *Manager) HandleUnauthorized() {
	if err := m.creds.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to remove persisted credential")
	}
	m.resolve(evAnonymous{})
}

// begin marks a new attempt as issued and moves the session to authenticating.
func (m *Manager) begin() {
	m.mu.Lock()
	m.attempt++
	m.state = apply(m.state, evStart{})
	snap, listeners := m.snapshotLocked(), m.listenersLocked()
	m.mu.Unlock()
	m.notify(snap, listeners)
}

// resolve applies a settled event. Events are applied in resolution order.
func (m *Manager) resolve(ev event) {
	m.mu.Lock()
	prev := m.state.status
	m.state = apply(m.state, ev)
	snap, listeners := m.snapshotLocked(), m.listenersLocked()
	m.mu.Unlock()
	log.Debug().
		Str("from", string(prev)).
		Str("to", string(snap.Status)).
		Msg("session transition")
	m.notify(snap, listeners)
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{
		Status:    m.state.status,
		LastError: m.state.lastErr,
		Attempt:   m.attempt,
	}
	if m.state.user != nil {
		user := *m.state.user
		snap.User = &user
	}
	return snap
}

func (m *Manager) listenersLocked() []func(Snapshot) {
	return append([]func(Snapshot){}, m.listeners...)
}

func (m *Manager) notify(snap Snapshot, listeners []func(Snapshot)) {
	for _, fn := range listeners {
		fn(snap)
	}
}
