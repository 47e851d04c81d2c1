package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thermowatch/thermowatch/core/session"
)

// loginModel collects credentials or the explicit guest choice.
type loginModel struct {
	username textinput.Model
	password textinput.Model
	focusPwd bool
	busy     bool
	errText  string
}

func newLoginModel() loginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword

	return loginModel{username: username, password: password}
}

func (m *loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) onKey(msg tea.KeyMsg, app *App) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.toggleFocus()
		return nil

	case "enter":
		if m.busy {
			return nil
		}
		m.busy = true
		m.errText = ""
		return app.loginCmd(m.username.Value(), m.password.Value())

	case "ctrl+g":
		return func() tea.Msg { return guestChosenMsg{} }
	}

	var cmd tea.Cmd
	if m.focusPwd {
		m.password, cmd = m.password.Update(msg)
	} else {
		m.username, cmd = m.username.Update(msg)
	}
	return cmd
}

func (m *loginModel) toggleFocus() {
	m.focusPwd = !m.focusPwd
	if m.focusPwd {
		m.username.Blur()
		m.password.Focus()
	} else {
		m.password.Blur()
		m.username.Focus()
	}
}

func (m *loginModel) view() string {
	lines := []string{
		labelStyle.Render("Log in to manage alerts, or continue as a guest."),
		"",
		m.username.View(),
		m.password.View(),
	}
	if m.busy {
		lines = append(lines, "", labelStyle.Render("Logging in..."))
	}
	if m.errText != "" {
		lines = append(lines, "", errorStyle.Render(m.errText))
	}
	lines = append(lines, "", hintStyle.Render("enter log in · ctrl+g continue as guest · ctrl+c quit"))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// loginErrorMessage names the failure in user terms.
func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		return "Wrong username or password."
	case errors.Is(err, session.ErrMalformedResponse):
		return "The login service returned an unusable response. Please try again later."
	default:
		return "Could not reach the login service. Please try again later."
	}
}
