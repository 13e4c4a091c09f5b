package components

import (
	"strings"

	"github.com/autocare/autocare/internal/ui/theme"
)

// SeverityBadge renders label on the color of level. In plain mode the label
// is bracketed instead.
func SeverityBadge(level, label string, plain bool) string {
	if plain {
		return "[" + label + "]"
	}
	return theme.Badge.Background(theme.SeverityColor(level)).Render(label)
}

// Rule renders a horizontal separator of the given width.
func Rule(width int, plain bool) string {
	if plain {
		return strings.Repeat("-", width)
	}
	return theme.Rule.Render(strings.Repeat("─", width))
}
