package diagnosis

import "github.com/autocare/autocare/internal/catalog"

// Recommendations builds the advice list for a matched symptom and its
// adjusted cost.
func Recommendations(s *catalog.Symptom, cost CostEstimate) []string {
	var recs []string
	if s.Severity == catalog.SeverityCritical {
		recs = append(recs, "Do not drive the vehicle", "Call a tow service")
	}
	switch {
	case s.HealthImpact > 80:
		recs = append(recs, "Seek immediate professional diagnosis")
	case s.HealthImpact > 50:
		recs = append(recs, "Schedule appointment with mechanic soon")
	}
	if cost.Max > 1000 {
		recs = append(recs, "Get multiple quotes from mechanics", "Ask about warranty options")
	}
	return append(recs, "Keep records of all repairs")
}

// AgeImpact describes how vehicle age affects repair needs.
func AgeImpact(ageYears int) string {
	switch {
	case ageYears < 3:
		return "Minimal - vehicle still under warranty period"
	case ageYears < 7:
		return "Low - regular maintenance sufficient"
	case ageYears < 12:
		return "Moderate - increased attention needed"
	}
	return "High - comprehensive inspections recommended"
}

// MileageImpact describes how mileage affects repair needs.
func MileageImpact(mileage int) string {
	switch {
	case mileage < 50000:
		return "Low - vehicle in good condition"
	case mileage < 100000:
		return "Moderate - regular service important"
	case mileage < 150000:
		return "High - major services may be due"
	}
	return "Very High - comprehensive inspection needed"
}
