package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
)

// registerView collects name, email and a doubled password. The
// password/confirmation check runs before any network call.
type registerView struct {
	client   *api.Client
	inputs   []textinput.Model // name, email, password, confirm
	focus    int
	errMsg   string
	inFlight bool
}

func newRegisterView(client *api.Client) *registerView {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 128
	name.Focus()

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "Confirm Password"
	confirm.CharLimit = 128
	confirm.EchoMode = textinput.EchoPassword

	return &registerView{
		client: client,
		inputs: []textinput.Model{name, email, password, confirm},
	}
}

func (v *registerView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
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

func (v *registerView) setFocus(i int) {
	v.inputs[v.focus].Blur()
	v.focus = i
	v.inputs[v.focus].Focus()
}

func (v *registerView) submit() tea.Cmd {
	name := strings.TrimSpace(v.inputs[0].Value())
	email := strings.TrimSpace(v.inputs[1].Value())
	password := v.inputs[2].Value()
	confirm := v.inputs[3].Value()

	if name == "" || email == "" || password == "" || confirm == "" {
		v.errMsg = "All fields are required"
		return nil
	}
	// Fail fast, no network call on mismatch.
	if password != confirm {
		v.errMsg = "Passwords do not match"
		return nil
	}

	v.errMsg = ""
	v.inFlight = true
	client := v.client
	return func() tea.Msg {
		token, err := client.Register(context.Background(), name, email, password)
		if err != nil {
			return AuthErrorMsg{Message: api.Message(err, "Registration failed. Please try again.")}
		}
		return loginToken(token)
	}
}

func (v *registerView) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Task Manager — Register"))
	b.WriteString("\n\n")
	for _, in := range v.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if v.errMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(v.errMsg) + "\n")
	}
	if v.inFlight {
		b.WriteString("\n" + MutedStyle.Render("Creating account...") + "\n")
	}

	b.WriteString("\n" + MutedStyle.Render("enter: register • ctrl+l: back to login • ctrl+c: quit"))
	return b.String()
}
