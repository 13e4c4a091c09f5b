package diagnosis

import (
	"time"

	"github.com/autocare/autocare/internal/catalog"
)

// ServiceInterval is the mileage between scheduled services.
const ServiceInterval = 5000

// Advisor produces predictive maintenance suggestions.
type Advisor struct {
	cat   *catalog.Catalog
	rules []MaintenanceRule
}

// NewAdvisor creates an advisor with the default rules.
func NewAdvisor(cat *catalog.Catalog) *Advisor {
	return &Advisor{cat: cat, rules: DefaultRules()}
}

// Predict runs every maintenance rule against the match and vehicle, and adds
// the next service point and the checklist for season.
func (a *Advisor) Predict(match MatchResult, ageYears, mileage int, season string) Predictive {
	ageYears = max(ageYears, 0)
	mileage = max(mileage, 0)
	return Predictive{
		Upcoming: RunRules(a.rules, &RuleInput{
			Category:   match.Category,
			VehicleAge: ageYears,
			Mileage:    mileage,
		}),
		NextService:       CalculateNextService(mileage),
		SeasonalChecklist: a.cat.Checklist(season),
	}
}

// CalculateNextService rounds mileage up to the next service interval.
// A mileage exactly on an interval is itself the next service point.
func CalculateNextService(mileage int) NextService {
	mileage = max(mileage, 0)
	next := ceilDiv(mileage, ServiceInterval) * ServiceInterval
	remaining := next - mileage
	return NextService{
		Mileage:         next,
		MilesRemaining:  remaining,
		EstimatedMonths: ceilDiv(remaining, 1000),
	}
}

// SeasonFor derives the season from the month: April through October is
// rainy, the rest of the year dry.
func SeasonFor(t time.Time) string {
	if m := t.Month(); m >= time.April && m <= time.October {
		return catalog.SeasonRainy
	}
	return catalog.SeasonDry
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
