package diagnosis

import (
	"time"

	"github.com/autocare/autocare/internal/catalog"
)

// Options holds the caller context for one diagnosis.
type Options struct {
	Language   string
	Region     string
	VehicleAge int    // years
	Mileage    int    // miles
	Season     string // rainy, dry or harmattan; empty derives it from the clock
}

// MatchResult is one scored candidate symptom.
type MatchResult struct {
	Category   string
	SymptomKey string
	Symptom    *catalog.Symptom
	Score      float64 // 0.0–1.0
	Matched    int     // number of keywords found in the description
}

// CostBreakdown splits an estimate into its components.
type CostBreakdown struct {
	Labor    int `json:"labor"`
	Parts    int `json:"parts"`
	Shipping int `json:"shipping"`
}

// CostFactors reports the multiplier deltas applied, for display.
type CostFactors struct {
	Age     string `json:"age"`
	Mileage string `json:"mileage"`
	Region  string `json:"region"`
}

// CostEstimate is a region- and vehicle-adjusted repair cost range.
type CostEstimate struct {
	Min       int           `json:"min"`
	Max       int           `json:"max"`
	Currency  string        `json:"currency"`
	Breakdown CostBreakdown `json:"breakdown"`
	Factors   CostFactors   `json:"factors"`
}

// UrgencyLevel is the user-facing bundle derived from a severity.
type UrgencyLevel struct {
	Level    catalog.Severity `json:"level"`
	Label    string           `json:"label"`
	Color    string           `json:"color"`
	Icon     string           `json:"icon"`
	Message  string           `json:"message"`
	Priority int              `json:"priority"` // 1 is most urgent
}

// MaintenanceItem is one predicted upcoming service.
type MaintenanceItem struct {
	Item     string `json:"item"`
	DueIn    string `json:"due_in"`
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
}

// NextService is the next 5,000-mile service point.
type NextService struct {
	Mileage         int `json:"mileage"`
	MilesRemaining  int `json:"miles_remaining"`
	EstimatedMonths int `json:"estimated_months"`
}

// Predictive groups the predictive maintenance output.
type Predictive struct {
	Upcoming          []MaintenanceItem `json:"upcoming"`
	NextService       NextService       `json:"next_service"`
	SeasonalChecklist []string          `json:"seasonal_checklist"`
}

// RegionalInsights describes regional and seasonal conditions.
type RegionalInsights struct {
	Region           string   `json:"region"`
	Season           string   `json:"season"`
	CommonIssues     []string `json:"common_issues"`
	SeasonalSeverity float64  `json:"seasonal_severity"`
	Climate          string   `json:"climate"`
	ClimateIssues    []string `json:"climate_issues"`
	LocalTips        []string `json:"local_tips"`
}

// VehicleFactors summarises the effect of vehicle age and mileage.
type VehicleFactors struct {
	Age           int    `json:"age"`
	Mileage       int    `json:"mileage"`
	AgeImpact     string `json:"age_impact"`
	MileageImpact string `json:"mileage_impact"`
}

// Alternative is a lower-ranked candidate symptom.
type Alternative struct {
	Category   string  `json:"category"`
	SymptomKey string  `json:"symptom_key"`
	Problem    string  `json:"problem"`
	Score      float64 `json:"score"`
}

// Diagnosis is the combined result of one diagnose call.
type Diagnosis struct {
	FeedbackID      string           `json:"feedback_id"`
	Problem         string           `json:"problem"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	SymptomKey      string           `json:"symptom_key,omitempty"`
	Confidence      float64          `json:"confidence"`
	Severity        catalog.Severity `json:"severity"`
	HealthImpact    int              `json:"health_impact"`
	HealthScore     int              `json:"health_score"`
	Cost            CostEstimate     `json:"cost_estimate"`
	Urgency         UrgencyLevel     `json:"urgency"`
	RepairTime      string           `json:"repair_time,omitempty"`
	Causes          []string         `json:"causes,omitempty"`
	Parts           []string         `json:"parts,omitempty"`
	Preventive      []string         `json:"preventive_measures,omitempty"`
	Recommendations []string         `json:"recommendations"`
	NextSteps       []string         `json:"next_steps"`
	Predictive      *Predictive      `json:"predictive_maintenance,omitempty"`
	Regional        RegionalInsights `json:"regional_insights"`
	VehicleFactors  VehicleFactors   `json:"vehicle_factors"`
	Alternatives    []Alternative    `json:"alternatives,omitempty"`
	Language        string           `json:"language"`
	Region          string           `json:"region"`
	MediaAnalyzed   bool             `json:"media_analyzed"`
	Generic         bool             `json:"generic"`
	CreatedAt       time.Time        `json:"timestamp"`
}
