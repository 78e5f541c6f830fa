package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/auth"
	"taskdeck/internal/config"
	"taskdeck/internal/session"
)

// App is the root TUI model. It owns navigation: the route guard decides
// the entry view, auth flows move to the dashboard, logout moves back.
type App struct {
	cfg      *config.Config
	client   *api.Client
	sessions *session.Store

	route     auth.Route
	login     *loginView
	register  *registerView
	dashboard *dashboardView

	width    int
	height   int
	quitting bool
}

// NewApp creates the root model. The requested route is resolved through
// the guard against the session state at construction time, so opening
// the dashboard without a session lands on login with no fetch issued.
func NewApp(cfg *config.Config, client *api.Client, sessions *session.Store, requested auth.Route) *App {
	a := &App{
		cfg:      cfg,
		client:   client,
		sessions: sessions,
	}
	a.enter(auth.Resolve(requested, auth.StateOf(sessions)))
	return a
}

// Route returns the currently rendered route.
func (a *App) Route() auth.Route {
	return a.route
}

// enter swaps in a fresh view model for the given resolved route.
func (a *App) enter(route auth.Route) {
	a.route = route
	a.login, a.register, a.dashboard = nil, nil, nil
	switch route {
	case auth.RouteLogin:
		a.login = newLoginView(a.client)
	case auth.RouteRegister:
		a.register = newRegisterView(a.client)
	case auth.RouteDashboard:
		a.dashboard = newDashboardView(a.client, a.sessions, a.cfg)
	}
}

// navigate resolves the requested route against the current session
// state, enters it, and returns the new view's init command.
func (a *App) navigate(requested auth.Route) tea.Cmd {
	a.enter(auth.Resolve(requested, auth.StateOf(a.sessions)))
	if a.route == auth.RouteDashboard {
		return a.dashboard.Init()
	}
	return nil
}

func (a *App) Init() tea.Cmd {
	if a.route == auth.RouteDashboard {
		return a.dashboard.Init()
	}
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dashboard != nil {
			a.dashboard.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.quitting = true
			return a, tea.Quit
		case "q":
			if a.route == auth.RouteDashboard && !a.dashboard.capturing() {
				a.quitting = true
				return a, tea.Quit
			}
		case "ctrl+r":
			if a.route == auth.RouteLogin {
				return a, a.navigate(auth.RouteRegister)
			}
		case "ctrl+l":
			if a.route == auth.RouteRegister {
				return a, a.navigate(auth.RouteLogin)
			}
		}

	case loginToken:
		// Auth flows own the only session writes besides logout.
		if err := a.sessions.Set(string(msg)); err != nil {
			return a, a.deliver(AuthErrorMsg{Message: "Failed to persist session. Please try again."})
		}
		return a, a.navigate(auth.RouteDashboard)

	case LoggedOutMsg:
		// Server failure is non-fatal to the client-side logout.
		if err := a.sessions.Clear(); err != nil {
			return a, nil
		}
		return a, a.navigate(auth.RouteLogin)

	case TasksLoadedMsg, CategoriesLoadedMsg, TaskSavedMsg, TaskDeletedMsg:
		// Late results for a departed view are discarded.
		if a.route != auth.RouteDashboard {
			return a, nil
		}
	}

	return a, a.deliver(msg)
}

// deliver routes a message to the active view.
func (a *App) deliver(msg tea.Msg) tea.Cmd {
	switch a.route {
	case auth.RouteLogin:
		return a.login.Update(msg)
	case auth.RouteRegister:
		return a.register.Update(msg)
	case auth.RouteDashboard:
		return a.dashboard.Update(msg)
	}
	return nil
}

func (a *App) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}
	switch a.route {
	case auth.RouteLogin:
		return a.login.View()
	case auth.RouteRegister:
		return a.register.View()
	case auth.RouteDashboard:
		return a.dashboard.View()
	}
	return ""
}

// capturing reports whether the dashboard is consuming raw key input
// (search, editor or a confirmation dialog).
func (v *dashboardView) capturing() bool {
	return v.searchFocused || v.editor != nil || v.confirmDelete != nil || v.confirmLogout
}

// Run starts the TUI at the requested route.
func Run(cfg *config.Config, client *api.Client, sessions *session.Store, requested auth.Route) error {
	app := NewApp(cfg, client, sessions, requested)
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
