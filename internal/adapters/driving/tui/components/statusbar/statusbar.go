// Package statusbar renders the dashboard's bottom status line.
package statusbar

import (
	"strings"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/styles"
	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// Bar is the one-line status strip at the bottom of the dashboard.
type Bar struct {
	styles  *styles.Styles
	width   int
	email   string
	view    string
	status  string
	failure string
}

// New creates a status bar.
func New(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{styles: s}
}

// SetStyles swaps the styling, used when the theme changes.
func (b *Bar) SetStyles(s *styles.Styles) {
	if s != nil {
		b.styles = s
	}
}

// SetWidth sets the render width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// SetSession updates the signed-in identity shown on the bar.
func (b *Bar) SetSession(session *domain.Session) {
	if session == nil {
		b.email = ""
		return
	}
	b.email = session.Email
}

// SetView updates the active view label.
func (b *Bar) SetView(name string) {
	b.view = name
}

// SetStatus shows a transient informational message, clearing any error.
func (b *Bar) SetStatus(msg string) {
	b.status = msg
	b.failure = ""
}

// SetError shows a transient error message, clearing any status.
func (b *Bar) SetError(err error) {
	if err == nil {
		b.failure = ""
		return
	}
	b.failure = err.Error()
	b.status = ""
}

// Clear removes any transient message.
func (b *Bar) Clear() {
	b.status = ""
	b.failure = ""
}

// View renders the bar.
func (b *Bar) View() string {
	parts := []string{}
	if b.view != "" {
		parts = append(parts, b.view)
	}
	if b.email != "" {
		parts = append(parts, b.email)
	} else {
		parts = append(parts, "not signed in")
	}
	line := b.styles.StatusBar.Render(strings.Join(parts, " · "))

	switch {
	case b.failure != "":
		line += "  " + b.styles.Error.Render(b.failure)
	case b.status != "":
		line += "  " + b.styles.Success.Render(b.status)
	}
	return line
}
