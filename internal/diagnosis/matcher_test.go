package diagnosis

import (
	"math"
	"testing"

	"github.com/autocare/autocare/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMatcher_Normalize(t *testing.T) {
	m := NewMatcher(testCatalog(t))

	tests := []struct {
		name string
		text string
		lang string
		want string
	}{
		{"english punctuation", "Engine is KNOCKING!!  badly...", "en", "engine is knocking badly"},
		{"swahili translation", "Gari lina moto sana", "sw", "gari lina hot sana"},
		{"french translation", "Le frein fait du bruit", "fr", "le brake fait du bruit"},
		{"english ignores translations", "moto", "en", "moto"},
		{"hausa has no table", "moto", "ha", "moto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Normalize(tt.text, tt.lang); got != tt.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tt.text, tt.lang, got, tt.want)
			}
		})
	}
}

func TestMatcher_FindMatches_RankedByScore(t *testing.T) {
	m := NewMatcher(testCatalog(t))

	text := m.Normalize("Engine is knocking when I accelerate and it gets hot", "en")
	matches := m.FindMatches(text, "en")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(matches), matches)
	}

	best := matches[0]
	if best.Category != "engine" || best.SymptomKey != "knocking" {
		t.Errorf("best = %s/%s, want engine/knocking", best.Category, best.SymptomKey)
	}
	// "knocking" and "knock" both hit: 2 words over 6 keywords.
	if !approx(best.Score, 2.0/6.0) || best.Matched != 2 {
		t.Errorf("best score = %f (%d matched), want %f (2)", best.Score, best.Matched, 2.0/6.0)
	}

	second := matches[1]
	if second.SymptomKey != "overheating" || !approx(second.Score, 1.0/6.0) {
		t.Errorf("second = %s %f, want overheating %f", second.SymptomKey, second.Score, 1.0/6.0)
	}
}

func TestMatcher_FindMatches_MultiWordKeywordsWeighMore(t *testing.T) {
	m := NewMatcher(testCatalog(t))

	matches := m.FindMatches(m.Normalize("there is an oil puddle under the car", "en"), "en")
	if len(matches) == 0 {
		t.Fatal("expected a match")
	}
	if matches[0].SymptomKey != "oil-leak" {
		t.Fatalf("best = %s, want oil-leak", matches[0].SymptomKey)
	}
	// "oil puddle" counts two words over five keywords.
	if !approx(matches[0].Score, 2.0/5.0) {
		t.Errorf("score = %f, want 0.4", matches[0].Score)
	}
}

func TestMatcher_FindMatches_ScoreCappedAtOne(t *testing.T) {
	m := NewMatcher(testCatalog(t))

	text := m.Normalize("low pressure flat tire, tire pressure low, deflated", "en")
	matches := m.FindMatches(text, "en")
	if len(matches) == 0 || matches[0].SymptomKey != "pressure" {
		t.Fatalf("expected tires/pressure first, got %+v", matches)
	}
	if matches[0].Score != 1 {
		t.Errorf("score = %f, want capped 1", matches[0].Score)
	}
	for _, mr := range matches {
		if mr.Score <= 0 || mr.Score > 1 {
			t.Errorf("%s/%s score %f out of (0,1]", mr.Category, mr.SymptomKey, mr.Score)
		}
	}
}

func TestMatcher_FindMatches_TiesKeepCatalogOrder(t *testing.T) {
	m := NewMatcher(testCatalog(t))

	// "car pulls" is shared by brakes/pulling and suspension/pulling,
	// both with four keywords.
	matches := m.FindMatches(m.Normalize("car pulls", "en"), "en")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Category != "brakes" || matches[1].Category != "suspension" {
		t.Errorf("order = %s, %s; want brakes, suspension", matches[0].Category, matches[1].Category)
	}
}

func TestMatcher_FindMatches_Multilingual(t *testing.T) {
	m := NewMatcher(testCatalog(t))

	tests := []struct {
		name    string
		text    string
		lang    string
		wantKey string
		score   float64
	}{
		// French keyword adds to the six English ones.
		{"french keyword", "le moteur fait un cognement", "fr", "knocking", 1.0 / 8.0},
		// "moto" becomes "hot" before matching.
		{"swahili translation", "gari lina moto sana", "sw", "overheating", 1.0 / 8.0},
		{"english base keywords still apply", "brake noise", "fr", "squealing", 2.0 / 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := m.FindMatches(m.Normalize(tt.text, tt.lang), tt.lang)
			if len(matches) == 0 {
				t.Fatal("expected a match")
			}
			if matches[0].SymptomKey != tt.wantKey {
				t.Errorf("best = %s, want %s", matches[0].SymptomKey, tt.wantKey)
			}
			if !approx(matches[0].Score, tt.score) {
				t.Errorf("score = %f, want %f", matches[0].Score, tt.score)
			}
		})
	}
}

func TestMatcher_FindMatches_PunctuationSeparatesWords(t *testing.T) {
	m := NewMatcher(testCatalog(t))

	tests := []struct {
		text    string
		wantKey string
	}{
		{"rough-idle since monday", "misfire"},
		{"oil-leak under car", "oil-leak"},
		{"flat-tire", "pressure"},
		{"car won't start", "no-start"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			matches := m.FindMatches(m.Normalize(tt.text, "en"), "en")
			if len(matches) == 0 {
				t.Fatalf("no match for %q", tt.text)
			}
			if matches[0].SymptomKey != tt.wantKey {
				t.Errorf("best = %s, want %s", matches[0].SymptomKey, tt.wantKey)
			}
		})
	}
}

func TestMatcher_FindMatches_NoMatch(t *testing.T) {
	m := NewMatcher(testCatalog(t))

	for _, text := range []string{"", "   ", "the radio makes a weird sound sometimes"} {
		if got := m.FindMatches(m.Normalize(text, "en"), "en"); len(got) != 0 {
			t.Errorf("FindMatches(%q) = %+v, want none", text, got)
		}
	}
}

func TestScoreKeywords(t *testing.T) {
	tests := []struct {
		text     string
		keywords []string
		score    float64
		matched  int
	}{
		{"a b c", nil, 0, 0},
		{"a b c", []string{"x"}, 0, 0},
		{"a b c", []string{"a", "x"}, 0.5, 1},
		{"a b c", []string{"a b", "c", "x", "y"}, 0.75, 2},
		{"a b c", []string{"a b c"}, 1, 1},
	}
	for _, tt := range tests {
		score, matched := scoreKeywords(tt.text, tt.keywords)
		if !approx(score, tt.score) || matched != tt.matched {
			t.Errorf("scoreKeywords(%q, %v) = %f, %d; want %f, %d",
				tt.text, tt.keywords, score, matched, tt.score, tt.matched)
		}
	}
}
