package marketplace

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	// MaxResults caps every search and suggestion list.
	MaxResults = 5
	// MinQueryLength is the shortest query, in runes, that is searched.
	MinQueryLength = 2
)

// SearchParts returns up to MaxResults parts whose name, category, brand or
// description contains q, ignoring case, best rated first. Short queries
// return nothing.
func (d *Directory) SearchParts(q string) []Part {
	q = fold(q)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return nil
	}
	var out []Part
	for _, p := range d.parts {
		if containsAny(q, p.Name, p.Category, p.Brand, p.Description) {
			out = append(out, p)
		}
	}
	return bestRated(out, func(p Part) float64 { return p.Rating })
}

// SearchMechanics returns up to MaxResults mechanics whose name, city,
// specialties or services contain q, ignoring case, best rated first.
func (d *Directory) SearchMechanics(q string) []Mechanic {
	q = fold(q)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return nil
	}
	var out []Mechanic
	for _, m := range d.mechanics {
		fields := append([]string{m.Name, m.Location.City}, m.Specialties...)
		fields = append(fields, m.Services...)
		if containsAny(q, fields...) {
			out = append(out, m)
		}
	}
	return bestRated(out, func(m Mechanic) float64 { return m.Rating })
}

// PartsFor suggests parts for a catalog category, best rated first.
func (d *Directory) PartsFor(category string) []Part {
	var out []Part
	for _, p := range d.parts {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return bestRated(out, func(p Part) float64 { return p.Rating })
}

// MechanicsFor suggests mechanics in region that handle category, best rated
// first. An empty category matches every mechanic in the region.
func (d *Directory) MechanicsFor(region, category string) []Mechanic {
	var out []Mechanic
	for _, m := range d.mechanics {
		if !strings.EqualFold(m.Location.Country, region) {
			continue
		}
		if category != "" && !slices.ContainsFunc(m.Handles, func(h string) bool {
			return strings.EqualFold(h, category)
		}) {
			continue
		}
		out = append(out, m)
	}
	return bestRated(out, func(m Mechanic) float64 { return m.Rating })
}

// bestRated sorts items by rating, highest first, keeping directory order
// between equal ratings, and keeps at most MaxResults.
func bestRated[T any](items []T, rating func(T) float64) []T {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(rating(b), rating(a))
	})
	return items[:min(len(items), MaxResults)]
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(fold(f), q) {
			return true
		}
	}
	return false
}
