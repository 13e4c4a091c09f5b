package diagnosis

import (
	"fmt"
	"math"

	"github.com/autocare/autocare/internal/catalog"
)

// Currency of all estimates.
const Currency = "USD"

// CostModel adjusts base repair costs for region, vehicle age and mileage.
type CostModel struct {
	cat *catalog.Catalog
}

// NewCostModel creates a cost model using the catalog's regional pricing.
func NewCostModel(cat *catalog.Catalog) *CostModel {
	return &CostModel{cat: cat}
}

// AgeMultiplier returns 1.30 above 10 years, 1.15 above 5 years, else 1.
func AgeMultiplier(ageYears int) float64 {
	switch {
	case ageYears > 10:
		return 1.30
	case ageYears > 5:
		return 1.15
	}
	return 1
}

// MileageMultiplier returns 1.20 above 150,000 miles, 1.10 above 100,000, else 1.
func MileageMultiplier(mileage int) float64 {
	switch {
	case mileage > 150000:
		return 1.20
	case mileage > 100000:
		return 1.10
	}
	return 1
}

// AdjustCost applies the regional multipliers to base. The age multiplier
// scales the minimum with the labor multiplier while the mileage multiplier
// scales the maximum with the parts multiplier. Unknown regions use the
// default region's pricing; negative age and mileage count as zero.
func (m *CostModel) AdjustCost(base catalog.CostRange, region string, ageYears, mileage int) CostEstimate {
	ageYears = max(ageYears, 0)
	mileage = max(mileage, 0)

	p := m.cat.Pricing(region)
	ageMul := AgeMultiplier(ageYears)
	mileMul := MileageMultiplier(mileage)

	return CostEstimate{
		Min:      round(base.Min * p.Labor * ageMul),
		Max:      round(base.Max * p.Parts * mileMul),
		Currency: Currency,
		Breakdown: CostBreakdown{
			Labor:    round(base.Min * p.Labor),
			Parts:    round((base.Max - base.Min) * p.Parts),
			Shipping: round(base.Min * 0.10 * p.Shipping),
		},
		Factors: CostFactors{
			Age:     percent(ageMul),
			Mileage: percent(mileMul),
			Region:  region,
		},
	}
}

// round is half away from zero.
func round(v float64) int {
	return int(math.Round(v))
}

func percent(mul float64) string {
	return fmt.Sprintf("+%d%%", round((mul-1)*100))
}
