package authgate

import "github.com/yamadatarousan/ticket-manager/internal/session"

// DefaultRoute is the ordinary landing screen users are sent to by a
// redirect-to-default outcome.
const DefaultRoute = "tickets"

// routes is the navigation table for every screen the client renders.
var routes = map[string]Route{
	"login":    {Name: "login", AuthScreen: true},
	"register": {Name: "register", AuthScreen: true},
	"whoami":   {Name: "whoami", RequiresAuth: true},
	"tickets":  {Name: "tickets", RequiresAuth: true},
	"projects": {Name: "projects", RequiresAuth: true},
	"comments": {Name: "comments", RequiresAuth: true},
	"users": {
		Name:         "users",
		RequiresAuth: true,
		Roles:        []session.Role{session.RoleAdmin},
	},
	"dashboard": {
		Name:         "dashboard",
		RequiresAuth: true,
		Roles:        []session.Role{session.RoleAdmin, session.RoleManager},
	},
	"settings": {
		Name:         "settings",
		RequiresAuth: true,
		Roles:        []session.Role{session.RoleAdmin},
	},
}

// Lookup returns the route for a screen name.
func Lookup(name string) (Route, bool) {
	route, ok := routes[name]
	return route, ok
}
