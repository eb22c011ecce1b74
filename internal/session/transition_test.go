package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyTransitions(t *testing.T) {
	alice := Identity{ID: 1, Name: "Alice", Email: "alice@example.com", Role: RoleAdmin}

	t.Run("start clears user and error", func(t *testing.T) {
		s := apply(state{status: StatusError, lastErr: "invalid credentials"}, evStart{})
		assert.Equal(t, StatusAuthenticating, s.status)
		assert.Nil(t, s.user)
		assert.Empty(t, s.lastErr)
	})

	t.Run("authenticated sets user", func(t *testing.T) {
		s := apply(state{status: StatusAuthenticating}, evAuthenticated{user: alice})
		assert.Equal(t, StatusAuthenticated, s.status)
		assert.Equal(t, &alice, s.user)
		assert.Empty(t, s.lastErr)
	})

	t.Run("anonymous drops user", func(t *testing.T) {
		s := apply(state{status: StatusAuthenticated, user: &alice}, evAnonymous{})
		assert.Equal(t, StatusAnonymous, s.status)
		assert.Nil(t, s.user)
	})

	t.Run("failure carries the message", func(t *testing.T) {
		s := apply(state{status: StatusAuthenticating}, evFailed{msg: "invalid credentials"})
		assert.Equal(t, StatusError, s.status)
		assert.Nil(t, s.user)
		assert.Equal(t, "invalid credentials", s.lastErr)
	})

	t.Run("clear error keeps status", func(t *testing.T) {
		s := apply(state{status: StatusError, lastErr: "invalid credentials"}, evClearError{})
		assert.Equal(t, StatusError, s.status)
		assert.Empty(t, s.lastErr)
	})
}

func TestApplyInvariants(t *testing.T) {
	alice := Identity{ID: 1, Name: "Alice", Role: RoleUser}
	events := []event{
		evStart{},
		evFailed{msg: "nope"},
		evStart{},
		evAuthenticated{user: alice},
		evAnonymous{},
		evClearError{},
	}

	s := state{status: StatusAuthenticating}
	for _, ev := range events {
		s = apply(s, ev)
		// user is set exactly in the authenticated state
		assert.Equal(t, s.status == StatusAuthenticated, s.user != nil)
		// an error message only appears in the error state
		if s.lastErr != "" {
			assert.Equal(t, StatusError, s.status)
		}
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleManager.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}
