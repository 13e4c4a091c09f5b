package catalog

// document mirrors the on-disk YAML layout of a catalog.
type document struct {
	Version        string                   `yaml:"version"`
	DefaultRegion  string                   `yaml:"default_region"`
	DefaultClimate string                   `yaml:"default_climate"`
	Languages      []string                 `yaml:"languages"`
	Regions        []regionDoc              `yaml:"regions"`
	Climates       map[string][]string      `yaml:"climates"`
	Seasons        []seasonDoc              `yaml:"seasons"`
	Checklists     map[string][]string      `yaml:"checklists"`
	DefaultTips    []string                 `yaml:"default_tips"`
	Translations   map[string][]translation `yaml:"translations"`
	Generic        genericDoc               `yaml:"generic"`
	Categories     []categoryDoc            `yaml:"categories"`
}

type regionDoc struct {
	Name     string              `yaml:"name"`
	Labor    float64             `yaml:"labor"`
	Parts    float64             `yaml:"parts"`
	Shipping float64             `yaml:"shipping"`
	Climate  string              `yaml:"climate"`
	Tips     map[string][]string `yaml:"tips"`
}

type seasonDoc struct {
	Name         string   `yaml:"name"`
	Severity     float64  `yaml:"severity"`
	CommonIssues []string `yaml:"common_issues"`
}

type translation struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type genericDoc struct {
	Problem         string    `yaml:"problem"`
	Description     string    `yaml:"description"`
	Category        string    `yaml:"category"`
	Confidence      float64   `yaml:"confidence"`
	Severity        Severity  `yaml:"severity"`
	HealthImpact    int       `yaml:"health_impact"`
	Cost            CostRange `yaml:"cost"`
	VehicleAge      int       `yaml:"vehicle_age"`
	Mileage         int       `yaml:"mileage"`
	Recommendations []string  `yaml:"recommendations"`
	NextSteps       []string  `yaml:"next_steps"`
}

type categoryDoc struct {
	Name     string       `yaml:"name"`
	Symptoms []symptomDoc `yaml:"symptoms"`
}

type symptomDoc struct {
	Key          string              `yaml:"key"`
	Problem      string              `yaml:"problem"`
	Description  string              `yaml:"description"`
	Keywords     []string            `yaml:"keywords"`
	Severity     Severity            `yaml:"severity"`
	HealthImpact int                 `yaml:"health_impact"`
	Languages    map[string][]string `yaml:"languages"`
	Cost         CostRange           `yaml:"cost"`
	RepairTime   string              `yaml:"repair_time"`
	Causes       []string            `yaml:"causes"`
	Parts        []string            `yaml:"parts"`
	Preventive   []string            `yaml:"preventive"`
}
