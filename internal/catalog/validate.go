package catalog

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the catalog schema major version this build understands.
const SupportedMajor = "v1"

// validateDocument performs all structural checks on a decoded catalog.
// Returns a combined error describing all problems found, or nil if valid.
func validateDocument(doc *document) error {
	var errs []string

	if !semver.IsValid(doc.Version) {
		errs = append(errs, fmt.Sprintf("invalid catalog version %q", doc.Version))
	} else if semver.Major(doc.Version) != SupportedMajor {
		errs = append(errs, fmt.Sprintf("unsupported catalog version %s (want %s.x)", doc.Version, SupportedMajor))
	}

	if !slices.Contains(doc.Languages, DefaultLanguage) {
		errs = append(errs, fmt.Sprintf("languages must include %q", DefaultLanguage))
	}
	for _, l := range doc.Languages {
		if CanonicalLanguage(l) != l {
			errs = append(errs, fmt.Sprintf("language %q is not a canonical base language code", l))
		}
	}

	// Regions
	regions := make(map[string]bool, len(doc.Regions))
	for _, r := range doc.Regions {
		if r.Name == "" {
			errs = append(errs, "region with empty name")
			continue
		}
		if regions[r.Name] {
			errs = append(errs, fmt.Sprintf("duplicate region: %q", r.Name))
		}
		regions[r.Name] = true
		if r.Labor <= 0 || r.Parts <= 0 || r.Shipping <= 0 {
			errs = append(errs, fmt.Sprintf("region %q: multipliers must be > 0", r.Name))
		}
		if r.Climate != "" {
			if _, ok := doc.Climates[r.Climate]; !ok {
				errs = append(errs, fmt.Sprintf("region %q references unknown climate %q", r.Name, r.Climate))
			}
		}
	}
	if !regions[doc.DefaultRegion] {
		errs = append(errs, fmt.Sprintf("default region %q is not defined", doc.DefaultRegion))
	}
	if _, ok := doc.Climates[doc.DefaultClimate]; !ok {
		errs = append(errs, fmt.Sprintf("default climate %q is not defined", doc.DefaultClimate))
	}

	// Seasons
	seasons := make(map[string]bool, len(doc.Seasons))
	for _, s := range doc.Seasons {
		if seasons[s.Name] {
			errs = append(errs, fmt.Sprintf("duplicate season: %q", s.Name))
		}
		seasons[s.Name] = true
		if s.Severity <= 0 {
			errs = append(errs, fmt.Sprintf("season %q: severity must be > 0", s.Name))
		}
	}
	for _, name := range []string{SeasonRainy, SeasonDry} {
		if len(doc.Checklists[name]) == 0 {
			errs = append(errs, fmt.Sprintf("missing %s checklist", name))
		}
	}

	for lang, pairs := range doc.Translations {
		if !slices.Contains(doc.Languages, lang) {
			errs = append(errs, fmt.Sprintf("translations for unsupported language %q", lang))
		}
		for _, p := range pairs {
			if Normalize(p.From) == "" || Normalize(p.To) == "" {
				errs = append(errs, fmt.Sprintf("translations[%s]: empty pair %q -> %q", lang, p.From, p.To))
			}
		}
	}

	// Generic fallback
	g := doc.Generic
	if g.Problem == "" {
		errs = append(errs, "generic diagnosis has no problem name")
	}
	if !g.Severity.Valid() {
		errs = append(errs, fmt.Sprintf("generic diagnosis: invalid severity %q", g.Severity))
	}
	if g.Confidence < 0 || g.Confidence > 1 {
		errs = append(errs, fmt.Sprintf("generic diagnosis: confidence %v out of range", g.Confidence))
	}
	errs = append(errs, checkImpactAndCost("generic", g.HealthImpact, g.Cost)...)

	// Categories and symptoms
	if len(doc.Categories) == 0 {
		errs = append(errs, "catalog has no categories")
	}
	categories := make(map[string]bool, len(doc.Categories))
	for _, c := range doc.Categories {
		if c.Name == "" {
			errs = append(errs, "category with empty name")
		}
		if categories[c.Name] {
			errs = append(errs, fmt.Sprintf("duplicate category: %q", c.Name))
		}
		categories[c.Name] = true

		keys := make(map[string]bool, len(c.Symptoms))
		for _, s := range c.Symptoms {
			id := c.Name + "/" + s.Key
			if s.Key == "" || strings.Contains(s.Key, "/") {
				errs = append(errs, fmt.Sprintf("%s: invalid symptom key", id))
			}
			if keys[s.Key] {
				errs = append(errs, fmt.Sprintf("duplicate symptom: %q", id))
			}
			keys[s.Key] = true

			if len(s.Keywords) == 0 {
				errs = append(errs, fmt.Sprintf("%s: no keywords", id))
			}
			for _, kw := range s.Keywords {
				if Normalize(kw) == "" {
					errs = append(errs, fmt.Sprintf("%s: keyword %q is empty after normalization", id, kw))
				}
			}
			for lang := range s.Languages {
				if !slices.Contains(doc.Languages, lang) {
					errs = append(errs, fmt.Sprintf("%s: keywords for unsupported language %q", id, lang))
				}
			}
			if !s.Severity.Valid() {
				errs = append(errs, fmt.Sprintf("%s: invalid severity %q", id, s.Severity))
			}
			errs = append(errs, checkImpactAndCost(id, s.HealthImpact, s.Cost)...)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func checkImpactAndCost(id string, impact int, cost CostRange) []string {
	var errs []string
	if impact < 0 || impact > 100 {
		errs = append(errs, fmt.Sprintf("%s: health impact %d out of range 0..100", id, impact))
	}
	if cost.Min < 0 || cost.Min > cost.Max {
		errs = append(errs, fmt.Sprintf("%s: invalid cost range %v..%v", id, cost.Min, cost.Max))
	}
	return errs
}
