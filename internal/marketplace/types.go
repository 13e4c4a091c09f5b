package marketplace

// Seller is the vendor listing a part.
type Seller struct {
	ID           string  `yaml:"id" json:"id"`
	Name         string  `yaml:"name" json:"name"`
	Verified     bool    `yaml:"verified" json:"verified"`
	Rating       float64 `yaml:"rating" json:"rating"`
	Location     string  `yaml:"location" json:"location"`
	ResponseTime string  `yaml:"response_time" json:"response_time"`
}

// Shipping describes delivery for a part.
type Shipping struct {
	Available     bool    `yaml:"available" json:"available"`
	Cost          float64 `yaml:"cost" json:"cost"`
	EstimatedDays string  `yaml:"estimated_days" json:"estimated_days"`
}

// Part is a replacement part offered by a seller.
type Part struct {
	ID             string            `yaml:"id" json:"id"`
	Name           string            `yaml:"name" json:"name"`
	Category       string            `yaml:"category" json:"category"` // catalog category
	Subcategory    string            `yaml:"subcategory" json:"subcategory"`
	Brand          string            `yaml:"brand" json:"brand"`
	Price          float64           `yaml:"price" json:"price"`
	Currency       string            `yaml:"currency" json:"currency"`
	Stock          int               `yaml:"stock" json:"stock"`
	Condition      string            `yaml:"condition" json:"condition"`
	Rating         float64           `yaml:"rating" json:"rating"`
	ReviewCount    int               `yaml:"review_count" json:"review_count"`
	Seller         Seller            `yaml:"seller" json:"seller"`
	Specifications map[string]string `yaml:"specifications" json:"specifications,omitempty"`
	Description    string            `yaml:"description" json:"description"`
	Compatibility  []string          `yaml:"compatibility" json:"compatibility"`
	Shipping       Shipping          `yaml:"shipping" json:"shipping"`
}

// Location is where a mechanic operates.
type Location struct {
	City    string  `yaml:"city" json:"city"`
	Country string  `yaml:"country" json:"country"`
	Address string  `yaml:"address" json:"address"`
	Lat     float64 `yaml:"lat" json:"lat"`
	Lng     float64 `yaml:"lng" json:"lng"`
}

// Contact holds a mechanic's contact details.
type Contact struct {
	Phone   string `yaml:"phone" json:"phone"`
	Email   string `yaml:"email" json:"email"`
	Website string `yaml:"website" json:"website"`
}

// Pricing holds a mechanic's rates in Currency.
type Pricing struct {
	LaborRate     float64 `yaml:"labor_rate" json:"labor_rate"` // per hour
	DiagnosticFee float64 `yaml:"diagnostic_fee" json:"diagnostic_fee"`
	Currency      string  `yaml:"currency" json:"currency"`
}

// Mechanic is a repair shop in the directory.
type Mechanic struct {
	ID              string            `yaml:"id" json:"id"`
	Name            string            `yaml:"name" json:"name"`
	Owner           string            `yaml:"owner" json:"owner"`
	Verified        bool              `yaml:"verified" json:"verified"`
	Certified       []string          `yaml:"certified" json:"certified"`
	Rating          float64           `yaml:"rating" json:"rating"`
	ReviewCount     int               `yaml:"review_count" json:"review_count"`
	Specialties     []string          `yaml:"specialties" json:"specialties"`
	Services        []string          `yaml:"services" json:"services"`
	Handles         []string          `yaml:"handles" json:"handles"` // catalog categories
	Location        Location          `yaml:"location" json:"location"`
	Contact         Contact           `yaml:"contact" json:"contact"`
	Hours           map[string]string `yaml:"hours" json:"hours,omitempty"`
	Pricing         Pricing           `yaml:"pricing" json:"pricing"`
	Features        []string          `yaml:"features" json:"features"`
	YearsInBusiness int               `yaml:"years_in_business" json:"years_in_business"`
	Languages       []string          `yaml:"languages" json:"languages"`
}
