package report

import (
	"fmt"
	"strings"

	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/marketplace"
	"github.com/autocare/autocare/internal/store"
)

// History renders one page of saved diagnoses.
func (r *Renderer) History(p *store.Page) string {
	var b strings.Builder
	if p.Total == 0 {
		return "No diagnoses saved yet.\n"
	}

	header := fmt.Sprintf("%-34s  %-16s  %-9s  %-8s  %s", "ID", "Date", "Severity", "Health", "Problem")
	b.WriteString(r.style(headerStyle).Render(header) + "\n")
	for _, rec := range p.Items {
		fb := " "
		if rec.WasAccurate != nil {
			fb = "✓"
		}
		fmt.Fprintf(&b, "%-34s  %-16s  %-9s  %-8d  %s %s\n",
			rec.FeedbackID,
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			rec.Severity,
			rec.HealthScore,
			truncate(rec.Problem, 40),
			fb)
	}
	r.hint(&b, fmt.Sprintf("Page %d of %d (%d total)", p.Page, max(p.TotalPages, 1), p.Total))
	return b.String()
}

// Statistics renders aggregate statistics.
func (r *Renderer) Statistics(s *store.Statistics) string {
	var b strings.Builder
	r.title(&b, "Diagnosis Statistics")
	if s.Total == 0 {
		b.WriteString("No diagnoses saved yet.\n")
		return b.String()
	}

	r.field(&b, "Total", fmt.Sprintf("%d", s.Total))
	r.field(&b, "Confidence", fmt.Sprintf("%.0f%% average", s.AverageConfidence*100))
	r.field(&b, "Health", fmt.Sprintf("%.1f average", s.AverageHealthScore))
	if s.FeedbackCount > 0 {
		r.field(&b, "Feedback", fmt.Sprintf("%d received, %d accurate (%.0f%%)",
			s.FeedbackCount, s.AccurateCount, float64(s.AccurateCount)*100/float64(s.FeedbackCount)))
	}

	r.buckets(&b, "By Category", s.ByCategory)
	r.buckets(&b, "By Severity", s.BySeverity)
	r.buckets(&b, "By Region", s.ByRegion)
	return b.String()
}

func (r *Renderer) buckets(b *strings.Builder, title string, buckets []store.Bucket) {
	if len(buckets) == 0 {
		return
	}
	r.section(b, title)
	for _, bk := range buckets {
		fmt.Fprintf(b, "  %-20s %5d\n", bk.Name, bk.Count)
	}
}

// Catalog renders every category and symptom.
func (r *Renderer) Catalog(cat *catalog.Catalog) string {
	var b strings.Builder
	r.title(&b, "Symptom Catalog "+cat.Version())
	r.field(&b, "Languages", strings.Join(cat.Languages(), ", "))
	r.field(&b, "Regions", strings.Join(cat.Regions(), ", "))

	for _, c := range cat.Categories() {
		r.section(&b, c.Name)
		for _, s := range c.Symptoms {
			fmt.Fprintf(&b, "  %-28s %-9s $%.0f-$%.0f  %s\n",
				s.ID(), s.Severity, s.Cost.Min, s.Cost.Max, s.Problem)
		}
	}
	return b.String()
}

// Parts renders part search results.
func (r *Renderer) Parts(parts []marketplace.Part) string {
	if len(parts) == 0 {
		return "No parts found.\n"
	}
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(r.style(headerStyle).Render(fmt.Sprintf("%s  %s", p.ID, p.Name)) + "\n")
		fmt.Fprintf(&b, "    %s · %s · %s · %.1f★ (%d reviews)\n",
			p.Brand, p.Category, money(p.Price, p.Currency), p.Rating, p.ReviewCount)
		fmt.Fprintf(&b, "    Sold by %s, %s", p.Seller.Name, p.Seller.Location)
		if p.Shipping.Available {
			fmt.Fprintf(&b, " · ships in %s", p.Shipping.EstimatedDays)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Mechanics renders mechanic search results.
func (r *Renderer) Mechanics(mechanics []marketplace.Mechanic) string {
	if len(mechanics) == 0 {
		return "No mechanics found.\n"
	}
	var b strings.Builder
	for _, m := range mechanics {
		b.WriteString(r.style(headerStyle).Render(fmt.Sprintf("%s  %s", m.ID, m.Name)) + "\n")
		fmt.Fprintf(&b, "    %s, %s · %.1f★ (%d reviews)\n",
			m.Location.City, m.Location.Country, m.Rating, m.ReviewCount)
		if len(m.Specialties) > 0 {
			fmt.Fprintf(&b, "    %s\n", strings.Join(m.Specialties, ", "))
		}
		if m.Contact.Phone != "" {
			fmt.Fprintf(&b, "    %s\n", m.Contact.Phone)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
