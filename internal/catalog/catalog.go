package catalog

import "slices"

// Known season names.
const (
	SeasonRainy     = "rainy"
	SeasonDry       = "dry"
	SeasonHarmattan = "harmattan"
)

// Catalog is the immutable symptom, pricing and regional knowledge base.
// It is built once and is safe for concurrent reads.
type Catalog struct {
	version        string
	defaultRegion  string
	defaultClimate string
	languages      []string

	categories []*Category
	symptoms   map[string]*Symptom // "<category>/<key>"

	regions     map[string]*Region
	regionOrder []string

	climates     map[string][]string
	seasons      map[string]Season
	seasonOrder  []string
	checklists   map[string][]string
	defaultTips  []string
	translations map[string][]Translation
	generic      Generic
}

// build converts a validated document into a Catalog, normalizing keywords
// and precomputing the per-language keyword sets.
func build(doc *document) *Catalog {
	c := &Catalog{
		version:        doc.Version,
		defaultRegion:  doc.DefaultRegion,
		defaultClimate: doc.DefaultClimate,
		languages:      slices.Clone(doc.Languages),
		symptoms:       make(map[string]*Symptom),
		regions:        make(map[string]*Region, len(doc.Regions)),
		climates:       doc.Climates,
		seasons:        make(map[string]Season, len(doc.Seasons)),
		checklists:     doc.Checklists,
		defaultTips:    doc.DefaultTips,
		translations:   make(map[string][]Translation, len(doc.Translations)),
	}

	for _, r := range doc.Regions {
		c.regions[r.Name] = &Region{
			Name:    r.Name,
			Pricing: Pricing{Labor: r.Labor, Parts: r.Parts, Shipping: r.Shipping},
			Climate: r.Climate,
			Tips:    r.Tips,
		}
		c.regionOrder = append(c.regionOrder, r.Name)
	}

	for _, s := range doc.Seasons {
		c.seasons[s.Name] = Season{Name: s.Name, Severity: s.Severity, CommonIssues: s.CommonIssues}
		c.seasonOrder = append(c.seasonOrder, s.Name)
	}

	for lang, pairs := range doc.Translations {
		ts := make([]Translation, 0, len(pairs))
		for _, p := range pairs {
			ts = append(ts, Translation{From: Normalize(p.From), To: Normalize(p.To)})
		}
		c.translations[lang] = ts
	}

	g := doc.Generic
	c.generic = Generic{
		Problem:         g.Problem,
		Description:     g.Description,
		Category:        g.Category,
		Confidence:      g.Confidence,
		Severity:        g.Severity,
		HealthImpact:    g.HealthImpact,
		Cost:            g.Cost,
		VehicleAge:      g.VehicleAge,
		Mileage:         g.Mileage,
		Recommendations: g.Recommendations,
		NextSteps:       g.NextSteps,
	}

	for _, cd := range doc.Categories {
		cat := &Category{Name: cd.Name}
		for _, sd := range cd.Symptoms {
			s := &Symptom{
				Key:          sd.Key,
				Category:     cd.Name,
				Problem:      sd.Problem,
				Description:  sd.Description,
				Keywords:     normalizeAll(sd.Keywords),
				Severity:     sd.Severity,
				HealthImpact: sd.HealthImpact,
				Languages:    make(map[string][]string, len(sd.Languages)),
				Cost:         sd.Cost,
				RepairTime:   sd.RepairTime,
				Causes:       sd.Causes,
				Parts:        sd.Parts,
				Preventive:   sd.Preventive,
				byLang:       make(map[string][]string, len(doc.Languages)),
			}
			for lang, kws := range sd.Languages {
				s.Languages[lang] = normalizeAll(kws)
			}
			for _, lang := range doc.Languages {
				if lang == DefaultLanguage {
					continue
				}
				s.byLang[lang] = slices.Concat(s.Keywords, s.Languages[lang])
			}
			cat.Symptoms = append(cat.Symptoms, s)
			c.symptoms[s.ID()] = s
		}
		c.categories = append(c.categories, cat)
	}

	return c
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, Normalize(s))
	}
	return out
}

// Version returns the catalog's semantic version.
func (c *Catalog) Version() string { return c.version }

// DefaultRegion returns the region whose pricing backs unknown regions.
func (c *Catalog) DefaultRegion() string { return c.defaultRegion }

// Languages returns the supported language codes.
func (c *Catalog) Languages() []string { return slices.Clone(c.languages) }

// ResolveLanguage canonicalises code and falls back to DefaultLanguage when
// the result is not supported.
func (c *Catalog) ResolveLanguage(code string) string {
	lang := CanonicalLanguage(code)
	if slices.Contains(c.languages, lang) {
		return lang
	}
	return DefaultLanguage
}

// Categories returns all categories in catalog order.
func (c *Catalog) Categories() []*Category { return c.categories }

// Symptoms returns every symptom, category by category.
func (c *Catalog) Symptoms() []*Symptom {
	out := make([]*Symptom, 0, len(c.symptoms))
	for _, cat := range c.categories {
		out = append(out, cat.Symptoms...)
	}
	return out
}

// Symptom returns a symptom by category and key, or nil if not found.
func (c *Catalog) Symptom(category, key string) *Symptom {
	return c.symptoms[category+"/"+key]
}

// Lookup returns a symptom by its "<category>/<key>" identifier, or nil.
func (c *Catalog) Lookup(id string) *Symptom {
	return c.symptoms[id]
}

// Regions returns the priced region names in catalog order.
func (c *Catalog) Regions() []string { return slices.Clone(c.regionOrder) }

// HasRegion reports whether the region has its own pricing entry.
func (c *Catalog) HasRegion(name string) bool {
	_, ok := c.regions[name]
	return ok
}

// Pricing returns the multipliers for region, falling back to the default region.
func (c *Catalog) Pricing(region string) Pricing {
	if r, ok := c.regions[region]; ok {
		return r.Pricing
	}
	return c.regions[c.defaultRegion].Pricing
}

// Climate returns the climate zone of a region, or the default climate.
func (c *Catalog) Climate(region string) string {
	if r, ok := c.regions[region]; ok && r.Climate != "" {
		return r.Climate
	}
	return c.defaultClimate
}

// ClimateIssues returns a copy of the issues common to a climate zone.
func (c *Catalog) ClimateIssues(climate string) []string {
	return slices.Clone(c.climates[climate])
}

// Season returns a season by name.
func (c *Catalog) Season(name string) (Season, bool) {
	s, ok := c.seasons[name]
	return s, ok
}

// Seasons returns the known season names in catalog order.
func (c *Catalog) Seasons() []string { return slices.Clone(c.seasonOrder) }

// Checklist returns a copy of the seasonal checklist. Only the rainy season
// has its own list; every other season uses the dry list.
func (c *Catalog) Checklist(season string) []string {
	if season == SeasonRainy {
		return slices.Clone(c.checklists[SeasonRainy])
	}
	return slices.Clone(c.checklists[SeasonDry])
}

// Tips returns a copy of the local tips for a region and category, or of
// the default tips.
func (c *Catalog) Tips(region, category string) []string {
	if r, ok := c.regions[region]; ok {
		if tips := r.Tips[category]; len(tips) > 0 {
			return slices.Clone(tips)
		}
	}
	return slices.Clone(c.defaultTips)
}

// Translations returns the ordered word replacements for a language.
func (c *Catalog) Translations(lang string) []Translation {
	return c.translations[lang]
}

// Generic returns the fallback diagnosis template.
func (c *Catalog) Generic() Generic { return c.generic }
