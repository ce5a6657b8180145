package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adilkhann/dayrep/internal/models"
	"github.com/adilkhann/dayrep/internal/session"
)

// LoginModel is the interactive login/register form.
type LoginModel struct {
	store    *session.Store
	auth     session.Authenticator
	register bool

	emailInput    textinput.Model
	passwordInput textinput.Model
	focusPassword bool

	width  int
	height int

	submitting bool
	errText    string

	completed bool
	cancelled bool
	response  *models.AuthResponse
}

// NewLoginModel creates the form. With register set it creates an account
// instead of logging in; the contract is otherwise identical.
func NewLoginModel(store *session.Store, auth session.Authenticator, register bool) LoginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Width = 40
	email.CharLimit = 100
	email.Focus()
	email.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	email.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))

	password := textinput.New()
	password.Placeholder = "password"
	password.Width = 40
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	password.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))

	return LoginModel{
		store:         store,
		auth:          auth,
		register:      register,
		emailInput:    email,
		passwordInput: password,
	}
}

// Init initializes the model.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authDoneMsg:
		m.submitting = false
		if msg.Error != nil {
			m.errText = msg.Error.Error()
			return m, nil
		}
		m.response = msg.Response
		m.completed = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "tab", "shift+tab":
			m.toggleFocus()
			return m, textinput.Blink

		case "enter":
			if !m.focusPassword {
				m.toggleFocus()
				return m, textinput.Blink
			}
			return m.submit()

		default:
			var cmd tea.Cmd
			if m.focusPassword {
				m.passwordInput, cmd = m.passwordInput.Update(msg)
			} else {
				m.emailInput, cmd = m.emailInput.Update(msg)
			}
			return m, cmd
		}
	}

	return m, nil
}

func (m *LoginModel) toggleFocus() {
	m.focusPassword = !m.focusPassword
	if m.focusPassword {
		m.emailInput.Blur()
		m.passwordInput.Focus()
	} else {
		m.passwordInput.Blur()
		m.emailInput.Focus()
	}
}

// submit validates the fields and fires the credential exchange.
func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()

	if email == "" || !strings.Contains(email, "@") {
		m.errText = "Enter a valid email address"
		return m, nil
	}
	if password == "" {
		m.errText = "Enter a password"
		return m, nil
	}

	m.errText = ""
	m.submitting = true
	return m, authCmd(m.store, m.auth, m.register, email, password)
}

// View renders the form.
func (m LoginModel) View() string {
	if m.completed || m.cancelled {
		return ""
	}

	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain))
	title := "dayrep · login"
	if m.register {
		title = "dayrep · register"
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	b.WriteString(labelStyle.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.emailInput.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n\n")

	if m.submitting {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render("Signing in..."))
	} else if m.errText != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("✗ " + m.errText))
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab switch field · enter submit · esc cancel"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2)
	return boxStyle.Render(b.String())
}
