package report

import (
	"fmt"
	"strings"

	"github.com/autocare/autocare/internal/diagnosis"
	"github.com/autocare/autocare/internal/marketplace"
	"github.com/autocare/autocare/internal/store"
	"github.com/autocare/autocare/internal/ui/components"
)

// Diagnosis renders a full diagnosis report with marketplace suggestions.
func (r *Renderer) Diagnosis(d *diagnosis.Diagnosis, parts []marketplace.Part, mechanics []marketplace.Mechanic) string {
	var b strings.Builder
	r.diagnosis(&b, d)

	if len(parts) > 0 {
		r.section(&b, "Suggested Parts")
		for _, p := range parts {
			fmt.Fprintf(&b, "  %s  %s (%s) %s · %.1f★\n", p.ID, p.Name, p.Brand, money(p.Price, p.Currency), p.Rating)
		}
	}
	if len(mechanics) > 0 {
		r.section(&b, "Nearby Mechanics")
		for _, m := range mechanics {
			fmt.Fprintf(&b, "  %s  %s, %s · %.1f★  %s\n", m.ID, m.Name, m.Location.City, m.Rating, m.Contact.Phone)
		}
	}
	return b.String()
}

// Record renders a saved diagnosis with its feedback and second opinion.
func (r *Renderer) Record(rec *store.DiagnosticRecord, d *diagnosis.Diagnosis, op *diagnosis.Opinion) string {
	var b strings.Builder
	r.field(&b, "Saved", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	r.field(&b, "Description", rec.Description)
	b.WriteString("\n")
	r.diagnosis(&b, d)

	if rec.WasAccurate != nil {
		r.section(&b, "Feedback")
		verdict := "inaccurate"
		if *rec.WasAccurate {
			verdict = "accurate"
		}
		r.field(&b, "Verdict", verdict)
		if rec.UserFeedback != "" {
			r.field(&b, "Comment", rec.UserFeedback)
		}
		if rec.ActualCost != nil {
			r.field(&b, "Actual cost", fmt.Sprintf("$%.2f", *rec.ActualCost))
		}
	}

	if op != nil {
		r.section(&b, "Second Opinion")
		if op.Matched() {
			r.field(&b, "Suggests", fmt.Sprintf("%s (%s)", op.Problem, op.Symptom))
		} else {
			r.field(&b, "Suggests", "no catalog match")
		}
		r.field(&b, "Confidence", percent(op.Confidence))
		r.field(&b, "Model", op.Model)
		r.hint(&b, op.Reasoning)
	}
	return b.String()
}

func (r *Renderer) diagnosis(b *strings.Builder, d *diagnosis.Diagnosis) {
	r.title(b, d.Problem)
	if d.Description != "" {
		r.hint(b, d.Description)
	}
	b.WriteString("\n")

	r.field(b, "ID", d.FeedbackID)
	if !d.Generic {
		r.field(b, "Category", d.Category+"/"+d.SymptomKey)
	}
	r.field(b, "Severity", components.SeverityBadge(string(d.Severity), strings.ToUpper(string(d.Severity)), r.plain))
	r.field(b, "Confidence", percent(d.Confidence))
	b.WriteString(components.NewHealthBar("Health", d.HealthScore, r.width/2+8, r.plain).View() + "\n")

	r.section(b, "Urgency")
	b.WriteString(components.SeverityBadge(string(d.Urgency.Level), d.Urgency.Label, r.plain) + "  " + d.Urgency.Message + "\n")

	c := d.Cost
	r.section(b, "Estimated Cost")
	r.field(b, "Range", fmt.Sprintf("%s to %s", money(float64(c.Min), c.Currency), money(float64(c.Max), c.Currency)))
	r.field(b, "Breakdown", fmt.Sprintf("labor %d, parts %d, shipping %d", c.Breakdown.Labor, c.Breakdown.Parts, c.Breakdown.Shipping))
	r.field(b, "Adjustments", fmt.Sprintf("age %s, mileage %s, region %s", c.Factors.Age, c.Factors.Mileage, c.Factors.Region))
	if d.RepairTime != "" {
		r.field(b, "Repair time", d.RepairTime)
	}

	if len(d.Causes) > 0 {
		r.section(b, "Likely Causes")
		r.bullets(b, d.Causes)
	}
	if len(d.Recommendations) > 0 {
		r.section(b, "Recommendations")
		r.bullets(b, d.Recommendations)
	}
	if len(d.NextSteps) > 0 {
		r.section(b, "Next Steps")
		r.numbered(b, d.NextSteps)
	}
	if len(d.Preventive) > 0 {
		r.section(b, "Prevention")
		r.bullets(b, d.Preventive)
	}

	if p := d.Predictive; p != nil {
		r.section(b, "Upcoming Maintenance")
		for _, it := range p.Upcoming {
			fmt.Fprintf(b, "  • %s (%s, %s priority): %s\n", it.Item, it.DueIn, it.Priority, it.Reason)
		}
		ns := p.NextService
		fmt.Fprintf(b, "  Next service at %d miles (%d to go, about %d months)\n", ns.Mileage, ns.MilesRemaining, ns.EstimatedMonths)
	}

	reg := d.Regional
	r.section(b, "Regional Insights")
	r.field(b, "Region", fmt.Sprintf("%s (%s climate)", reg.Region, reg.Climate))
	r.field(b, "Season", fmt.Sprintf("%s, severity x%.1f", reg.Season, reg.SeasonalSeverity))
	if len(reg.LocalTips) > 0 {
		r.bullets(b, reg.LocalTips)
	}

	vf := d.VehicleFactors
	r.section(b, "Vehicle")
	r.field(b, "Age", fmt.Sprintf("%d years: %s", vf.Age, vf.AgeImpact))
	r.field(b, "Mileage", fmt.Sprintf("%d miles: %s", vf.Mileage, vf.MileageImpact))

	if len(d.Alternatives) > 0 {
		r.section(b, "Also Consider")
		for _, a := range d.Alternatives {
			fmt.Fprintf(b, "  • %s (%s/%s, %s)\n", a.Problem, a.Category, a.SymptomKey, percent(a.Score))
		}
	}
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

func money(v float64, currency string) string {
	if currency == "" || currency == "USD" {
		return fmt.Sprintf("$%.0f", v)
	}
	return fmt.Sprintf("%.0f %s", v, currency)
}
