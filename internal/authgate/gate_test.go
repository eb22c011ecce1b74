package authgate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamadatarousan/ticket-manager/internal/session"
)

func snapshot(status session.Status, role session.Role) session.Snapshot {
	snap := session.Snapshot{Status: status}
	if status == session.StatusAuthenticated {
		snap.User = &session.Identity{ID: 1, Name: "Alice", Role: role}
	}
	return snap
}

func TestEvaluate(t *testing.T) {
	ticketsRoute, ok := Lookup("tickets")
	require.True(t, ok)
	usersRoute, ok := Lookup("users")
	require.True(t, ok)
	dashboardRoute, ok := Lookup("dashboard")
	require.True(t, ok)
	loginRoute, ok := Lookup("login")
	require.True(t, ok)

	t.Run("pending while authenticating, never a login redirect", func(t *testing.T) {
		for _, route := range []Route{ticketsRoute, usersRoute, loginRoute} {
			outcome := Evaluate(snapshot(session.StatusAuthenticating, ""), route)
			assert.Equal(t, OutcomePending, outcome, route.Name)
		}
	})

	t.Run("protected target without auth redirects to login", func(t *testing.T) {
		assert.Equal(t, OutcomeRedirectLogin, Evaluate(snapshot(session.StatusAnonymous, ""), ticketsRoute))
		assert.Equal(t, OutcomeRedirectLogin, Evaluate(snapshot(session.StatusError, ""), ticketsRoute))
	})

	t.Run("role miss is a soft redirect to default", func(t *testing.T) {
		assert.Equal(t, OutcomeRedirectDefault, Evaluate(snapshot(session.StatusAuthenticated, session.RoleUser), usersRoute))
		assert.Equal(t, OutcomeRedirectDefault, Evaluate(snapshot(session.StatusAuthenticated, session.RoleUser), dashboardRoute))
		assert.Equal(t, OutcomeRedirectDefault, Evaluate(snapshot(session.StatusAuthenticated, session.RoleManager), usersRoute))
	})

	t.Run("role match allows", func(t *testing.T) {
		assert.Equal(t, OutcomeAllow, Evaluate(snapshot(session.StatusAuthenticated, session.RoleAdmin), usersRoute))
		assert.Equal(t, OutcomeAllow, Evaluate(snapshot(session.StatusAuthenticated, session.RoleManager), dashboardRoute))
		assert.Equal(t, OutcomeAllow, Evaluate(snapshot(session.StatusAuthenticated, session.RoleUser), ticketsRoute))
	})

	t.Run("auth screens bounce authenticated users", func(t *testing.T) {
		assert.Equal(t, OutcomeRedirectDefault, Evaluate(snapshot(session.StatusAuthenticated, session.RoleUser), loginRoute))
	})

	t.Run("auth screens allow anonymous users", func(t *testing.T) {
		assert.Equal(t, OutcomeAllow, Evaluate(snapshot(session.StatusAnonymous, ""), loginRoute))
		assert.Equal(t, OutcomeAllow, Evaluate(snapshot(session.StatusError, ""), loginRoute))
	})
}

func TestLookup(t *testing.T) {
	_, ok := Lookup("tickets")
	assert.True(t, ok)
	_, ok = Lookup("nonexistent")
	assert.False(t, ok)

	route, ok := Lookup(DefaultRoute)
	require.True(t, ok)
	// the default landing screen must not itself be role-gated, or a
	// redirect-to-default could loop
	assert.Empty(t, route.Roles)
}
