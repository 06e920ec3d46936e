// Package postcard renders a saved post as a feed card.
package postcard

import (
	"fmt"
	"strings"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/styles"
	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

// TruncateAt is the number of runes shown before a card collapses its
// body. A body of exactly this length is shown whole.
const TruncateAt = 280

// Card renders one post for the feed.
type Card struct {
	styles *styles.Styles
}

// New creates a card renderer.
func New(s *styles.Styles) *Card {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Card{styles: s}
}

// SetStyles swaps the styling, used when the theme changes.
func (c *Card) SetStyles(s *styles.Styles) {
	if s != nil {
		c.styles = s
	}
}

// Truncated reports whether the post body exceeds the display threshold
// and therefore gets an expand affordance.
func Truncated(text string) bool {
	return len([]rune(text)) > TruncateAt
}

// body returns the text to display, collapsed unless expanded.
func body(text string, expanded bool) string {
	runes := []rune(text)
	if expanded || len(runes) <= TruncateAt {
		return text
	}
	return string(runes[:TruncateAt]) + "…"
}

// Render draws the post card. Selected cards get the selection style on
// their header; collapsed cards show an expand hint.
func (c *Card) Render(post *domain.SavedPost, selected, expanded bool, width int) string {
	var b strings.Builder

	header := post.AuthorName
	if header == "" {
		header = "Unknown author"
	}
	if !post.PublishedAt.IsZero() {
		header += " · " + post.PublishedAt.Format("Jan 2, 2006")
	}
	if selected {
		b.WriteString(c.styles.Selected.Render(header))
	} else {
		b.WriteString(c.styles.Subtitle.Render(header))
	}
	b.WriteString("\n")

	b.WriteString(c.styles.Normal.Width(width).Render(body(post.Text, expanded)))
	b.WriteString("\n")

	meta := fmt.Sprintf("%d likes · %d comments · %d shares",
		post.Engagement.Likes, post.Engagement.Comments, post.Engagement.Shares)
	if total := post.TotalReactions(); total > 0 {
		meta += fmt.Sprintf(" · %d reactions", total)
	}
	if post.PrimaryImage() != "" {
		meta += " · 🖼"
	}
	b.WriteString(c.styles.Muted.Render(meta))

	if !expanded && Truncated(post.Text) {
		b.WriteString("\n")
		b.WriteString(c.styles.Help.Render("e to expand"))
	}

	return b.String()
}
