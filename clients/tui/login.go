package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
)

// loginView collects email and password and submits them to the API.
type loginView struct {
	client   *api.Client
	inputs   []textinput.Model // email, password
	focus    int
	errMsg   string
	inFlight bool
}

func newLoginView(client *api.Client) *loginView {
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return &loginView{
		client: client,
		inputs: []textinput.Model{email, password},
	}
}

func (v *loginView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Submission is the only backpressure: keys are swallowed while a
		// request is in flight.
		if v.inFlight {
			return nil
		}
		switch msg.String() {
		case "tab", "down":
			v.setFocus((v.focus + 1) % len(v.inputs))
			return nil
		case "shift+tab", "up":
			v.setFocus((v.focus + len(v.inputs) - 1) % len(v.inputs))
			return nil
		case "enter":
			return v.submit()
		}

	case AuthErrorMsg:
		v.inFlight = false
		v.errMsg = msg.Message
		return nil
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return cmd
}

func (v *loginView) setFocus(i int) {
	v.inputs[v.focus].Blur()
	v.focus = i
	v.inputs[v.focus].Focus()
}

func (v *loginView) submit() tea.Cmd {
	email := strings.TrimSpace(v.inputs[0].Value())
	password := v.inputs[1].Value()

	if email == "" || password == "" {
		v.errMsg = "Email and password are required"
		return nil
	}

	v.errMsg = ""
	v.inFlight = true
	client := v.client
	return func() tea.Msg {
		token, err := client.Login(context.Background(), email, password)
		if err != nil {
			return AuthErrorMsg{Message: api.Message(err, "Login failed. Please try again.")}
		}
		return loginToken(token)
	}
}

// loginToken is the raw token of a successful auth call. The root model
// persists it and navigates to the dashboard.
type loginToken string

func (v *loginView) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Task Manager — Login"))
	b.WriteString("\n\n")
	for _, in := range v.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if v.errMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(v.errMsg) + "\n")
	}
	if v.inFlight {
		b.WriteString("\n" + MutedStyle.Render("Signing in...") + "\n")
	}

	b.WriteString("\n" + MutedStyle.Render("enter: sign in • ctrl+r: register • ctrl+c: quit"))
	return b.String()
}
