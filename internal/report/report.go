// Package report renders diagnoses, history and directory listings for the
// terminal, either styled with lipgloss or as plain text.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/autocare/autocare/internal/ui/components"
	"github.com/autocare/autocare/internal/ui/theme"
)

// DefaultWidth is the report width in cells.
const DefaultWidth = 72

var headerStyle = theme.Body.Bold(true)

// Renderer builds report text. The zero value is not usable; call New.
type Renderer struct {
	plain bool
	width int
}

// New returns a renderer. Plain output carries no ANSI sequences.
func New(plain bool) *Renderer {
	return &Renderer{plain: plain, width: DefaultWidth}
}

// Plain reports whether the renderer emits plain text.
func (r *Renderer) Plain() bool { return r.plain }

func (r *Renderer) style(s lipgloss.Style) lipgloss.Style {
	if r.plain {
		return lipgloss.NewStyle()
	}
	return s
}

func (r *Renderer) title(b *strings.Builder, text string) {
	if r.plain {
		b.WriteString(strings.ToUpper(text) + "\n")
		b.WriteString(components.Rule(r.width, true) + "\n")
		return
	}
	b.WriteString(theme.Title.Render(text) + "\n")
	b.WriteString(components.Rule(r.width, false) + "\n")
}

func (r *Renderer) section(b *strings.Builder, text string) {
	b.WriteString("\n" + r.style(theme.Section).Render(text) + "\n")
}

func (r *Renderer) field(b *strings.Builder, label, value string) {
	if r.plain {
		fmt.Fprintf(b, "%-14s%s\n", label+":", value)
		return
	}
	b.WriteString(theme.Label.Render(label) + theme.Body.Render(value) + "\n")
}

func (r *Renderer) bullets(b *strings.Builder, items []string) {
	for _, it := range items {
		b.WriteString("  • " + it + "\n")
	}
}

func (r *Renderer) numbered(b *strings.Builder, items []string) {
	for i, it := range items {
		fmt.Fprintf(b, "  %d. %s\n", i+1, it)
	}
}

func (r *Renderer) hint(b *strings.Builder, text string) {
	b.WriteString(r.style(theme.Hint).Render(text) + "\n")
}
