package styles

import (
	"github.com/charmbracelet/glamour/v2"
)

// GetMarkdownRenderer returns a glamour TermRenderer matched to the
// current theme and wrapped to width.
func GetMarkdownRenderer(width int) *glamour.TermRenderer {
	name := "light"
	if CurrentTheme().IsDark {
		name = "dark"
	}
	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle(name),
		glamour.WithWordWrap(width),
	)
	return r
}
