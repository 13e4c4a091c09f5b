package diagnosis

// RuleInput is the context a maintenance rule inspects.
type RuleInput struct {
	Category   string
	VehicleAge int
	Mileage    int
}

// MaintenanceRule suggests one upcoming maintenance item.
// Returns the item and true, or a zero item and false if the rule doesn't apply.
type MaintenanceRule interface {
	Name() string
	Suggest(input *RuleInput) (MaintenanceItem, bool)
}

// DefaultRules returns the maintenance rules in output order.
func DefaultRules() []MaintenanceRule {
	return []MaintenanceRule{
		&TimingBeltRule{},
		&TransmissionServiceRule{},
		&SparkPlugRule{},
		&BrakeFluidRule{},
	}
}

// RunRules executes every rule in order and collects all suggestions.
// Rules are not mutually exclusive.
func RunRules(rules []MaintenanceRule, input *RuleInput) []MaintenanceItem {
	items := []MaintenanceItem{}
	for _, r := range rules {
		if item, ok := r.Suggest(input); ok {
			items = append(items, item)
		}
	}
	return items
}

// TimingBeltAgeThreshold is the vehicle age (exclusive) above which a timing
// belt check is suggested.
const TimingBeltAgeThreshold = 5

// TimingBeltRule suggests a timing belt check for older vehicles.
type TimingBeltRule struct{}

func (r *TimingBeltRule) Name() string { return "timing-belt" }

func (r *TimingBeltRule) Suggest(input *RuleInput) (MaintenanceItem, bool) {
	if input.VehicleAge > TimingBeltAgeThreshold {
		return MaintenanceItem{
			Item:     "Timing Belt",
			DueIn:    "10,000 miles",
			Priority: "high",
			Reason:   "Vehicle age over 5 years",
		}, true
	}
	return MaintenanceItem{}, false
}

// TransmissionServiceMileage is the mileage (exclusive) above which a
// transmission service is suggested.
const TransmissionServiceMileage = 100000

// TransmissionServiceRule suggests a transmission service for high-mileage vehicles.
type TransmissionServiceRule struct{}

func (r *TransmissionServiceRule) Name() string { return "transmission-service" }

func (r *TransmissionServiceRule) Suggest(input *RuleInput) (MaintenanceItem, bool) {
	if input.Mileage > TransmissionServiceMileage {
		return MaintenanceItem{
			Item:     "Transmission Service",
			DueIn:    "5,000 miles",
			Priority: "medium",
			Reason:   "High mileage vehicle",
		}, true
	}
	return MaintenanceItem{}, false
}

// SparkPlugRule suggests a spark plug check for engine problems.
type SparkPlugRule struct{}

func (r *SparkPlugRule) Name() string { return "spark-plugs" }

func (r *SparkPlugRule) Suggest(input *RuleInput) (MaintenanceItem, bool) {
	if input.Category == "engine" {
		return MaintenanceItem{
			Item:     "Spark Plugs",
			DueIn:    "Next service",
			Priority: "medium",
			Reason:   "Engine performance optimization",
		}, true
	}
	return MaintenanceItem{}, false
}

// BrakeFluidRule suggests a brake fluid flush for brake problems.
type BrakeFluidRule struct{}

func (r *BrakeFluidRule) Name() string { return "brake-fluid" }

func (r *BrakeFluidRule) Suggest(input *RuleInput) (MaintenanceItem, bool) {
	if input.Category == "brakes" {
		return MaintenanceItem{
			Item:     "Brake Fluid Flush",
			DueIn:    "6 months",
			Priority: "high",
			Reason:   "Brake system maintenance",
		}, true
	}
	return MaintenanceItem{}, false
}
