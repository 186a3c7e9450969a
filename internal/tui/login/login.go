// ABOUTME: Login form as a bubbletea model
// ABOUTME: Collects email and password, submission is handled by the app

package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/enochcodes/orchestra/cli/internal/tui/icons"
	"github.com/enochcodes/orchestra/cli/internal/tui/styles"
)

// SubmitMsg is sent when the user submits credentials.
type SubmitMsg struct {
	Email    string
	Password string
}

// Login is the login screen model.
type Login struct {
	form       *huh.Form
	email      string
	password   string
	errMsg     string
	submitting bool
	width      int
}

// New creates an empty login form.
func New() *Login {
	l := &Login{}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				CharLimit(256).
				Value(&l.email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(256).
				Value(&l.password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		).Title("Sign in").
			Description("Use your Orchestra console account"),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		l.width = size.Width
	}
	if l.submitting {
		return l, nil
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		l.errMsg = ""
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		email, password := l.email, l.password
		l.submitting = true
		return l, func() tea.Msg {
			return SubmitMsg{Email: email, Password: password}
		}
	}

	return l, cmd
}

// SetError surfaces a failed login and rearms the form.
func (l *Login) SetError(msg string) tea.Cmd {
	l.errMsg = msg
	l.submitting = false
	l.password = ""
	l.form = l.createForm()
	return l.form.Init()
}

// Submitting reports whether a login request is in flight.
func (l *Login) Submitting() bool {
	return l.submitting
}

// View implements tea.Model
func (l *Login) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(fmt.Sprintf("%s Orchestra", icons.Lock)))
	b.WriteString("\n\n")
	b.WriteString(l.form.View())

	if l.submitting {
		b.WriteString("\n")
		b.WriteString(styles.Subtitle.Render("Signing in..."))
	}
	if l.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render("Error: " + l.errMsg))
	}

	return b.String()
}
