package catalog

// Severity is the damage-risk tier attached to a symptom.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is one of the four known tiers.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// CostRange is a base repair cost in USD.
type CostRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Symptom is one diagnosable vehicle problem.
type Symptom struct {
	Key          string
	Category     string
	Problem      string
	Description  string
	Keywords     []string
	Severity     Severity
	HealthImpact int
	Languages    map[string][]string
	Cost         CostRange
	RepairTime   string
	Causes       []string
	Parts        []string
	Preventive   []string

	// base keywords plus the additive set for each language, normalized.
	byLang map[string][]string
}

// ID returns the "<category>/<key>" identifier of the symptom.
func (s *Symptom) ID() string {
	return s.Category + "/" + s.Key
}

// KeywordsFor returns the keywords matched for the given language: the base
// set followed by the language's additive set.
func (s *Symptom) KeywordsFor(lang string) []string {
	if kw, ok := s.byLang[lang]; ok {
		return kw
	}
	return s.Keywords
}

// Category groups related symptoms in catalog order.
type Category struct {
	Name     string
	Symptoms []*Symptom
}

// Pricing holds the regional cost multipliers.
type Pricing struct {
	Labor    float64 `json:"labor"`
	Parts    float64 `json:"parts"`
	Shipping float64 `json:"shipping"`
}

// Region is a priced market with an optional climate and local tips.
type Region struct {
	Name    string
	Pricing Pricing
	Climate string
	Tips    map[string][]string // category -> tips
}

// Season describes the conditions of a driving season.
type Season struct {
	Name         string
	Severity     float64
	CommonIssues []string
}

// Translation replaces a local word with its English equivalent.
type Translation struct {
	From string
	To   string
}

// Generic is the fallback diagnosis used when nothing matches.
type Generic struct {
	Problem         string
	Description     string
	Category        string
	Confidence      float64
	Severity        Severity
	HealthImpact    int
	Cost            CostRange
	VehicleAge      int
	Mileage         int
	Recommendations []string
	NextSteps       []string
}
