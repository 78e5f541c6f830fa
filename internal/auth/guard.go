// Package auth resolves which view a client may enter based on session state.
package auth

import "taskdeck/internal/session"

// State is the authentication state derived from session presence.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Route identifies a navigable view.
type Route string

const (
	RouteRoot      Route = "/"
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
	RouteDashboard Route = "/dashboard"
)

// StateOf derives the authentication state from the session store.
// The snapshot is taken at call time; later store changes require a
// fresh resolution.
func StateOf(store *session.Store) State {
	if store.Active() {
		return Authenticated
	}
	return Unauthenticated
}

// Resolve returns the route actually rendered for a requested route.
// Auth-only routes redirect authenticated users to the dashboard; the
// dashboard redirects unauthenticated users to login; the root always
// goes to login first. Resolution is synchronous and pure.
func Resolve(requested Route, state State) Route {
	if requested == RouteRoot {
		requested = RouteLogin
	}

	switch requested {
	case RouteLogin, RouteRegister:
		if state == Authenticated {
			return RouteDashboard
		}
	case RouteDashboard:
		if state == Unauthenticated {
			return RouteLogin
		}
	}
	return requested
}
