package components

import (
	"fmt"

	"github.com/threeasure/fomodash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: keybinding hints on the
// left, record counts and data-quality notices on the right.
func RenderStatusBar(width, shown, total, cellErrors int) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [q]uit"

	right := fmt.Sprintf("%d/%d responses ", shown, total)
	if cellErrors > 0 {
		right = fmt.Sprintf("%d cells skipped │ %s", cellErrors, right)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
