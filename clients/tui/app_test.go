package tui

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/api/apitest"
	"taskdeck/internal/auth"
	"taskdeck/internal/config"
	"taskdeck/internal/session"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.UI.DueDateSentinel = "No Due Date"
	return cfg
}

func newTestApp(t *testing.T, baseURL string, requested auth.Route) (*App, *session.Store) {
	t.Helper()
	store := session.NewStore(t.TempDir())
	client := api.New(baseURL, 5*time.Second, store)
	return NewApp(testConfig(), client, store, requested), store
}

func typeText(t *testing.T, a *App, s string) {
	t.Helper()
	for _, r := range s {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestGuardDashboardWithoutSession(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	app, _ := newTestApp(t, srv.URL, auth.RouteDashboard)

	if app.Route() != auth.RouteLogin {
		t.Fatalf("Route = %s, want %s", app.Route(), auth.RouteLogin)
	}
	// Landing on login issues no task fetch.
	app.Init()
	if n := requests.Load(); n != 0 {
		t.Errorf("%d requests issued before any authentication", n)
	}
}

func TestGuardLoginWithSession(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedUser("Ada", "a@b.com", "x")

	store := session.NewStore(t.TempDir())
	if err := store.Set(srv.IssueToken("a@b.com")); err != nil {
		t.Fatal(err)
	}
	client := api.New(srv.URL, 5*time.Second, store)

	for _, requested := range []auth.Route{auth.RouteLogin, auth.RouteRegister, auth.RouteRoot} {
		app := NewApp(testConfig(), client, store, requested)
		if app.Route() != auth.RouteDashboard {
			t.Errorf("requested %s with session: Route = %s, want dashboard", requested, app.Route())
		}
	}
}

func TestLoginFlowStoresTokenAndNavigates(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedUser("Ada", "a@b.com", "x")

	app, store := newTestApp(t, srv.URL, auth.RouteLogin)

	typeText(t, app, "a@b.com")
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(t, app, "x")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submit produced no command")
	}

	// Execute the login request and feed the result back into the app.
	msg := cmd()
	if _, ok := msg.(loginToken); !ok {
		t.Fatalf("login result = %T (%v), want loginToken", msg, msg)
	}
	app.Update(msg)

	if !store.Active() {
		t.Error("token not stored after successful login")
	}
	if app.Route() != auth.RouteDashboard {
		t.Errorf("Route = %s, want dashboard after login", app.Route())
	}
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedUser("Ada", "a@b.com", "x")

	app, store := newTestApp(t, srv.URL, auth.RouteLogin)

	typeText(t, app, "a@b.com")
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(t, app, "wrong")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg := cmd()
	errMsg, ok := msg.(AuthErrorMsg)
	if !ok {
		t.Fatalf("login result = %T, want AuthErrorMsg", msg)
	}
	if errMsg.Message != "Invalid email or password" {
		t.Errorf("Message = %q, want server-provided message", errMsg.Message)
	}

	app.Update(msg)
	if app.Route() != auth.RouteLogin {
		t.Errorf("Route = %s, want to stay on login", app.Route())
	}
	if store.Active() {
		t.Error("token stored despite failed login")
	}
}

func TestRegisterPasswordMismatchIssuesNoNetworkCall(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	app, _ := newTestApp(t, srv.URL, auth.RouteRegister)

	typeText(t, app, "Ada")
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(t, app, "a@b.com")
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(t, app, "secret1")
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(t, app, "secret2")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("mismatched passwords produced a command")
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("%d network calls issued, want 0", n)
	}
	if app.register.errMsg != "Passwords do not match" {
		t.Errorf("errMsg = %q, want mismatch message", app.register.errMsg)
	}
}

func TestRegisterFlow(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	app, store := newTestApp(t, srv.URL, auth.RouteRegister)

	typeText(t, app, "Ada")
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(t, app, "a@b.com")
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(t, app, "secret")
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(t, app, "secret")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submit produced no command")
	}

	app.Update(cmd())

	if !store.Active() {
		t.Error("token not stored after successful registration")
	}
	if app.Route() != auth.RouteDashboard {
		t.Errorf("Route = %s, want dashboard after registration", app.Route())
	}
}

func TestLogoutClearsSessionAndReturnsToLogin(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedUser("Ada", "a@b.com", "x")

	store := session.NewStore(t.TempDir())
	if err := store.Set(srv.IssueToken("a@b.com")); err != nil {
		t.Fatal(err)
	}
	client := api.New(srv.URL, 5*time.Second, store)
	app := NewApp(testConfig(), client, store, auth.RouteDashboard)

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if !app.dashboard.confirmLogout {
		t.Fatal("expected logout confirmation dialog")
	}
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd == nil {
		t.Fatal("confirmed logout produced no command")
	}

	app.Update(cmd())

	if store.Active() {
		t.Error("session still active after logout")
	}
	if app.Route() != auth.RouteLogin {
		t.Errorf("Route = %s, want login after logout", app.Route())
	}
}

func TestLateResultForDepartedViewDiscarded(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	app, _ := newTestApp(t, srv.URL, auth.RouteLogin)

	// A tasks result arriving while not on the dashboard must not panic
	// or change the view.
	app.Update(TasksLoadedMsg{})
	if app.Route() != auth.RouteLogin {
		t.Errorf("Route = %s, want login", app.Route())
	}
}
