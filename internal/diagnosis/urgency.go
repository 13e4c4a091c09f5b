package diagnosis

import (
	"slices"

	"github.com/autocare/autocare/internal/catalog"
)

var urgencyLevels = map[catalog.Severity]UrgencyLevel{
	catalog.SeverityCritical: {
		Level:    catalog.SeverityCritical,
		Label:    "CRITICAL",
		Color:    "red",
		Icon:     "alert-octagon",
		Message:  "Stop driving immediately and seek professional help",
		Priority: 1,
	},
	catalog.SeverityHigh: {
		Level:    catalog.SeverityHigh,
		Label:    "HIGH",
		Color:    "orange",
		Icon:     "alert-triangle",
		Message:  "Address within 24-48 hours to prevent further damage",
		Priority: 2,
	},
	catalog.SeverityMedium: {
		Level:    catalog.SeverityMedium,
		Label:    "MEDIUM",
		Color:    "yellow",
		Icon:     "alert-circle",
		Message:  "Schedule repair within 1-2 weeks",
		Priority: 3,
	},
	catalog.SeverityLow: {
		Level:    catalog.SeverityLow,
		Label:    "LOW",
		Color:    "green",
		Icon:     "info",
		Message:  "Monitor and address at next service",
		Priority: 4,
	},
}

var nextSteps = map[catalog.Severity][]string{
	catalog.SeverityCritical: {
		"Stop driving immediately",
		"Contact emergency roadside assistance",
		"Have vehicle towed to mechanic",
		"Do not attempt DIY repairs",
	},
	catalog.SeverityHigh: {
		"Limit driving to essential trips only",
		"Schedule mechanic appointment today",
		"Prepare for potential towing",
		"Gather vehicle service history",
	},
	catalog.SeverityMedium: {
		"Schedule mechanic appointment this week",
		"Monitor symptoms for changes",
		"Research repair costs",
		"Check warranty coverage",
	},
	catalog.SeverityLow: {
		"Add to next service appointment",
		"Monitor for worsening symptoms",
		"Research preventive maintenance",
		"Keep detailed notes",
	},
}

// Classify maps a severity to its urgency level. Unknown severities are
// treated as medium.
func Classify(severity catalog.Severity) UrgencyLevel {
	if u, ok := urgencyLevels[severity]; ok {
		return u
	}
	return urgencyLevels[catalog.SeverityMedium]
}

// NextSteps returns the recommended next steps for a severity, falling back
// to medium.
func NextSteps(severity catalog.Severity) []string {
	steps, ok := nextSteps[severity]
	if !ok {
		steps = nextSteps[catalog.SeverityMedium]
	}
	return slices.Clone(steps)
}
