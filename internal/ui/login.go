package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginState is the credential form: two controlled inputs, a submitting
// flag, and the inline error from the last attempt.
type loginState struct {
	username   textinput.Model
	password   textinput.Model
	focusIdx   int
	submitting bool
	errMsg     string
}

func newLoginState() loginState {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 64
	username.Width = 28
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 64
	password.Width = 28
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginState{username: username, password: password}
}

func (s *loginState) resize(width int) {
	// Inputs keep a fixed width; the form is centered by the renderer.
}

func (s *loginState) focusField(idx int) {
	s.focusIdx = idx
	if idx == 0 {
		s.username.Focus()
		s.password.Blur()
	} else {
		s.username.Blur()
		s.password.Focus()
	}
}

// handleLoginKey processes keyboard input for the login screen. While a
// submission is in flight all editing is ignored; there is exactly one
// login request pending at a time.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField),
		msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
		// Two fields, so forward and backward are the same hop.
		m.login.focusField((m.login.focusIdx + 1) % 2)
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.login.submitting = true
		m.login.errMsg = ""
		return m, loginCmd(m.ctx, m.client, m.login.username.Value(), m.login.password.Value())
	}

	// Everything else edits the focused input.
	var cmd tea.Cmd
	if m.login.focusIdx == 0 {
		m.login.username, cmd = m.login.username.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

// renderLogin renders the centered credential form.
func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Render("Library"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Sign in to manage the lending ledger"))
	b.WriteString("\n\n")
	b.WriteString(m.login.username.View())
	b.WriteString("\n")
	b.WriteString(m.login.password.View())
	b.WriteString("\n\n")

	switch {
	case m.login.submitting:
		b.WriteString(styles.WarningText.Render("Signing in..."))
	case m.login.errMsg != "":
		b.WriteString(styles.DangerText.Render(m.login.errMsg))
	default:
		b.WriteString(styles.FaintText.Render("enter to sign in"))
	}

	form := styles.PanelFocus.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}
