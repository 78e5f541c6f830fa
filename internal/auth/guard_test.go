package auth

import (
	"testing"

	"taskdeck/internal/session"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		requested Route
		state     State
		want      Route
	}{
		{"login while unauthenticated", RouteLogin, Unauthenticated, RouteLogin},
		{"login while authenticated", RouteLogin, Authenticated, RouteDashboard},
		{"register while unauthenticated", RouteRegister, Unauthenticated, RouteRegister},
		{"register while authenticated", RouteRegister, Authenticated, RouteDashboard},
		{"dashboard while unauthenticated", RouteDashboard, Unauthenticated, RouteLogin},
		{"dashboard while authenticated", RouteDashboard, Authenticated, RouteDashboard},
		{"root while unauthenticated", RouteRoot, Unauthenticated, RouteLogin},
		{"root while authenticated", RouteRoot, Authenticated, RouteDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.requested, tt.state); got != tt.want {
				t.Errorf("Resolve(%s, %s) = %s, want %s", tt.requested, tt.state, got, tt.want)
			}
		})
	}
}

func TestStateOf(t *testing.T) {
	store := session.NewStore(t.TempDir())

	if got := StateOf(store); got != Unauthenticated {
		t.Errorf("StateOf empty store = %s, want unauthenticated", got)
	}

	if err := store.Set("tok"); err != nil {
		t.Fatal(err)
	}
	if got := StateOf(store); got != Authenticated {
		t.Errorf("StateOf after Set = %s, want authenticated", got)
	}

	// StateOf is a point-in-time snapshot, so clearing flips the next read.
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	if got := StateOf(store); got != Unauthenticated {
		t.Errorf("StateOf after Clear = %s, want unauthenticated", got)
	}
}
