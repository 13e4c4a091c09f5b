package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/autocare/autocare/internal/ui/theme"
)

// HealthBar displays a vehicle health score as a horizontal bar.
type HealthBar struct {
	Label string
	Score int // 0-100
	Width int
	// Plain renders with ASCII characters and no color.
	Plain bool
}

// NewHealthBar creates a new health bar.
func NewHealthBar(label string, score, width int, plain bool) HealthBar {
	return HealthBar{
		Label: label,
		Score: score,
		Width: width,
		Plain: plain,
	}
}

// View renders the health bar.
func (h HealthBar) View() string {
	var result string

	if h.Label != "" {
		if h.Plain {
			result += h.Label + "  "
		} else {
			result += lipgloss.NewStyle().Foreground(theme.Text).Render(h.Label) + "  "
		}
	}

	labelWidth := lipgloss.Width(result)
	scoreWidth := 5 // "  100"
	if h.Plain {
		scoreWidth = 6 // "[]" and " 100"
	}

	barWidth := h.Width - labelWidth - scoreWidth
	if barWidth < 4 {
		barWidth = 4
	}

	score := min(max(h.Score, 0), 100)
	filled := barWidth * score / 100
	empty := barWidth - filled

	if h.Plain {
		result += "[" + strings.Repeat("#", filled) + strings.Repeat("-", empty) + "]"
		return result + fmt.Sprintf(" %3d", score)
	}

	result += healthStyle(score).Render(strings.Repeat(" ", filled))
	result += theme.HealthEmpty.Render(strings.Repeat(" ", empty))
	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %3d", score))

	return result
}

func healthStyle(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return theme.HealthGood
	case score >= 40:
		return theme.HealthFair
	default:
		return theme.HealthPoor
	}
}
