package diagnosis

import (
	"cmp"
	"slices"
	"strings"

	"github.com/autocare/autocare/internal/catalog"
)

// Matcher scores free-text descriptions against the symptom catalog.
type Matcher struct {
	cat *catalog.Catalog
}

// NewMatcher creates a matcher over cat.
func NewMatcher(cat *catalog.Catalog) *Matcher {
	return &Matcher{cat: cat}
}

// Normalize prepares a description for matching. For languages other than
// English, known local words are replaced by their English equivalents after
// lower-casing and before punctuation is stripped.
func (m *Matcher) Normalize(text, lang string) string {
	folded := catalog.Fold(text)
	if lang != catalog.DefaultLanguage {
		for _, tr := range m.cat.Translations(lang) {
			folded = strings.ReplaceAll(folded, tr.From, tr.To)
		}
	}
	return catalog.Clean(folded)
}

// FindMatches scores every catalog symptom against normalized text and
// returns those with a non-zero score, best first. Ties keep catalog order.
func (m *Matcher) FindMatches(normalized, lang string) []MatchResult {
	if normalized == "" {
		return nil
	}

	var matches []MatchResult
	for _, cat := range m.cat.Categories() {
		for _, s := range cat.Symptoms {
			score, matched := scoreKeywords(normalized, s.KeywordsFor(lang))
			if matched == 0 {
				continue
			}
			matches = append(matches, MatchResult{
				Category:   cat.Name,
				SymptomKey: s.Key,
				Symptom:    s,
				Score:      score,
				Matched:    matched,
			})
		}
	}

	slices.SortStableFunc(matches, func(a, b MatchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return matches
}

// scoreKeywords tests each keyword for substring containment. Each hit adds
// the keyword's word count; the sum is divided by the number of keywords and
// capped at 1.
func scoreKeywords(text string, keywords []string) (float64, int) {
	if len(keywords) == 0 {
		return 0, 0
	}
	var words, matched int
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			matched++
			words += catalog.WordCount(kw)
		}
	}
	if matched == 0 {
		return 0, 0
	}
	return min(float64(words)/float64(len(keywords)), 1), matched
}
