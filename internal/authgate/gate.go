// Package authgate decides, for a given navigation target, whether the
// current session permits access. It is a pure function of the session
// snapshot and the target route, so it must be re-evaluated on every
// navigation and whenever the session changes; nothing here is memoized.
package authgate

import (
	"github.com/yamadatarousan/ticket-manager/internal/session"
)

// Outcome is the gate's decision for a navigation target.
type Outcome string

const (
	// OutcomePending means credential validation is still in flight; render a
	// transient state and do not redirect yet.
	OutcomePending Outcome = "pending"
	// OutcomeAllow means the target may render.
	OutcomeAllow Outcome = "allow"
	// OutcomeRedirectLogin means the target needs authentication the session
	// does not have.
	OutcomeRedirectLogin Outcome = "redirect-to-login"
	// OutcomeRedirectDefault means the user should land on their ordinary
	// default screen instead: either their role does not permit the target
	// (soft denial) or they are already authenticated and the target is an
	// authentication screen.
	OutcomeRedirectDefault Outcome = "redirect-to-default"
)

// Route describes a navigation target's access requirements.
type Route struct {
	// Name identifies the screen.
	Name string
	// RequiresAuth marks targets only authenticated users may see.
	RequiresAuth bool
	// Roles, when non-empty, restricts the target to identities whose role is
	// in the set. Only meaningful together with RequiresAuth.
	Roles []session.Role
	// AuthScreen marks login/register screens, which authenticated users are
	// bounced away from.
	AuthScreen bool
}

// Evaluate applies the gating rules in order and returns the first decision.
// The gate never redirects to login while validation is in flight; that would
// flash the login screen on every reload with a stored credential.
func Evaluate(snap session.Snapshot, route Route) Outcome {
	if snap.Status == session.StatusAuthenticating {
		return OutcomePending
	}
	if route.RequiresAuth && snap.Status != session.StatusAuthenticated {
		return OutcomeRedirectLogin
	}
	if route.RequiresAuth && len(route.Roles) > 0 {
		if snap.User == nil || !roleAllowed(snap.User.Role, route.Roles) {
			return OutcomeRedirectDefault
		}
	}
	if route.AuthScreen && snap.Status == session.StatusAuthenticated {
		return OutcomeRedirectDefault
	}
	return OutcomeAllow
}

func roleAllowed(role session.Role, allowed []session.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
