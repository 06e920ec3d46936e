// Package input wraps the bubbles text input for dashboard forms.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/styles"
)

// TextField is a single-line input with a label.
type TextField struct {
	input  textinput.Model
	label  string
	styles *styles.Styles
}

// NewTextField creates a text field with the given label and placeholder.
func NewTextField(label, placeholder string, s *styles.Styles) *TextField {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = 40

	return &TextField{
		input:  ti,
		label:  label,
		styles: s,
	}
}

// NewPasswordField creates a text field that masks its input.
func NewPasswordField(label string, s *styles.Styles) *TextField {
	f := NewTextField(label, "", s)
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '*'
	return f
}

// Init returns the initial command.
func (f *TextField) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (f *TextField) Update(msg tea.Msg) (*TextField, tea.Cmd) {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// View renders the field.
func (f *TextField) View() string {
	label := f.styles.Subtitle.Render(f.label)
	field := f.styles.InputField.Render(f.input.View())
	return label + "\n" + field
}

// Value returns the current input value.
func (f *TextField) Value() string {
	return f.input.Value()
}

// SetValue sets the input value.
func (f *TextField) SetValue(value string) {
	f.input.SetValue(value)
}

// Reset clears the input.
func (f *TextField) Reset() {
	f.input.Reset()
}

// Focus gives the field keyboard focus.
func (f *TextField) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes keyboard focus.
func (f *TextField) Blur() {
	f.input.Blur()
}

// Focused reports whether the field has focus.
func (f *TextField) Focused() bool {
	return f.input.Focused()
}

// SetWidth sets the input width.
func (f *TextField) SetWidth(width int) {
	f.input.Width = width
}

// SetStyles swaps the styling, used when the theme changes.
func (f *TextField) SetStyles(s *styles.Styles) {
	if s != nil {
		f.styles = s
	}
}
