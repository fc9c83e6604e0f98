package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/watchlist/internal/shared"
)

// Credentials are the values collected by [CredentialsModel].
type Credentials struct {
	Username string
	Password string
}

// Field identifies an input of the credentials form.
type Field int

const (
	UsernameField Field = iota
	PasswordField
	ConfirmField
)

var fieldLabels = [...]string{
	UsernameField: "Username",
	PasswordField: "Password",
	ConfirmField:  "Repeat for confirmation",
}

// bcrypt ignores everything past 72 bytes.
const maxPasswordLength = 72

var errFieldRequired = errors.New("value is required")

// CredentialsModel is the bubbletea model of the admin credentials form.
type CredentialsModel struct {
	inputs    []textinput.Model
	focus     Field
	err       error
	done      bool
	cancelled bool
	help      help.Model
	keys      keyMap
}

// NewCredentialsModel creates the form. A non-empty username is prefilled and focus starts on the password.
func NewCredentialsModel(username string) *CredentialsModel {
	m := &CredentialsModel{
		inputs: make([]textinput.Model, len(fieldLabels)),
		help:   help.New(),
		keys:   newKeyMap(),
	}

	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = "> "
		switch Field(i) {
		case UsernameField:
			in.Placeholder = "admin"
			in.SetValue(strings.TrimSpace(username))
		case PasswordField, ConfirmField:
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
			in.CharLimit = maxPasswordLength
		}
		m.inputs[i] = in
	}

	if m.inputs[UsernameField].Value() != "" {
		m.focus = PasswordField
	}
	m.inputs[m.focus].Focus()
	return m
}

// Init starts the cursor blink.
func (m *CredentialsModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and forwards everything else to the focused input.
func (m *CredentialsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.quit):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.next):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.prev):
			return m, m.setFocus(m.focus - 1)
		case key.Matches(msg, m.keys.submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit advances to the next field, or validates the form when the last field is focused.
func (m *CredentialsModel) submit() (tea.Model, tea.Cmd) {
	if m.value(m.focus) == "" {
		m.err = fmt.Errorf("%s: %w", strings.ToLower(fieldLabels[m.focus]), errFieldRequired)
		return m, nil
	}

	if m.focus < ConfirmField {
		return m, m.setFocus(m.focus + 1)
	}

	for f := UsernameField; f <= ConfirmField; f++ {
		if m.value(f) == "" {
			m.err = fmt.Errorf("%s: %w", strings.ToLower(fieldLabels[f]), errFieldRequired)
			return m, m.setFocus(f)
		}
	}

	if m.inputs[PasswordField].Value() != m.inputs[ConfirmField].Value() {
		m.err = shared.ErrPasswordMismatch
		return m, tea.Quit
	}

	m.err = nil
	m.done = true
	return m, tea.Quit
}

// setFocus moves focus to f, wrapping around the form.
func (m *CredentialsModel) setFocus(f Field) tea.Cmd {
	n := Field(len(m.inputs))
	f = (f%n + n) % n

	m.inputs[m.focus].Blur()
	m.focus = f
	return m.inputs[f].Focus()
}

func (m *CredentialsModel) value(f Field) string {
	if f == UsernameField {
		return strings.TrimSpace(m.inputs[f].Value())
	}
	return m.inputs[f].Value()
}

// Focused returns the field receiving key presses.
func (m *CredentialsModel) Focused() Field {
	return m.focus
}

// Result returns the entered credentials once the form was submitted.
func (m *CredentialsModel) Result() (Credentials, error) {
	switch {
	case m.cancelled:
		return Credentials{}, shared.ErrCancelled
	case errors.Is(m.err, shared.ErrPasswordMismatch):
		return Credentials{}, m.err
	case !m.done:
		return Credentials{}, shared.ErrCancelled
	}
	return Credentials{Username: m.value(UsernameField), Password: m.value(PasswordField)}, nil
}

// View renders the form.
func (m *CredentialsModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.title.Render("Admin credentials"))
	b.WriteString("\n")

	for i, in := range m.inputs {
		label := styles.label.Render(fieldLabels[i])
		if Field(i) == m.focus {
			label = styles.focused.Render(fieldLabels[i])
		}
		fmt.Fprintf(&b, "%s\n%s\n\n", label, in.View())
	}

	if m.err != nil {
		b.WriteString(styles.err.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.help.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return b.String()
}
