package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_Loads(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("embedded catalog invalid: %v", err)
	}
	if c.Version() == "" {
		t.Error("version is empty")
	}
	if c.DefaultRegion() != "Nigeria" {
		t.Errorf("default region = %q, want Nigeria", c.DefaultRegion())
	}
}

func TestDefault_CategoryOrder(t *testing.T) {
	c := MustDefault()
	var got []string
	for _, cat := range c.Categories() {
		got = append(got, cat.Name)
	}
	want := []string{"engine", "transmission", "brakes", "electrical", "suspension", "climate", "tires"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_SymptomOrderWithinCategory(t *testing.T) {
	c := MustDefault()
	var got []string
	for _, s := range c.Categories()[0].Symptoms {
		got = append(got, s.Key)
	}
	want := []string{"knocking", "overheating", "misfire", "smoking", "oil-leak", "no-start"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("engine symptoms mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_Invariants(t *testing.T) {
	c := MustDefault()
	for _, s := range c.Symptoms() {
		if len(s.Keywords) == 0 {
			t.Errorf("%s: no keywords", s.ID())
		}
		if !s.Severity.Valid() {
			t.Errorf("%s: invalid severity %q", s.ID(), s.Severity)
		}
		if s.HealthImpact < 0 || s.HealthImpact > 100 {
			t.Errorf("%s: health impact %d out of range", s.ID(), s.HealthImpact)
		}
		if s.Cost.Min > s.Cost.Max {
			t.Errorf("%s: cost min > max", s.ID())
		}
		for _, kw := range s.Keywords {
			if kw != Normalize(kw) {
				t.Errorf("%s: keyword %q not normalized", s.ID(), kw)
			}
		}
	}
	for _, r := range c.Regions() {
		p := c.Pricing(r)
		if p.Labor <= 0 || p.Parts <= 0 || p.Shipping <= 0 {
			t.Errorf("region %s: non-positive multiplier %+v", r, p)
		}
	}
}

func TestSymptomLookup(t *testing.T) {
	c := MustDefault()
	s := c.Symptom("engine", "knocking")
	if s == nil {
		t.Fatal("Symptom(engine, knocking) returned nil")
	}
	if s.Severity != SeverityHigh {
		t.Errorf("severity = %q, want high", s.Severity)
	}
	if s.HealthImpact != 85 {
		t.Errorf("health impact = %d, want 85", s.HealthImpact)
	}
	if c.Lookup("engine/knocking") != s {
		t.Error("Lookup(engine/knocking) returned a different symptom")
	}
	if c.Lookup("engine/nonexistent") != nil {
		t.Error("Lookup of unknown id should return nil")
	}
}

func TestKeywordsFor(t *testing.T) {
	c := MustDefault()
	s := c.Symptom("engine", "overheating")

	en := s.KeywordsFor("en")
	if diff := cmp.Diff(s.Keywords, en); diff != "" {
		t.Errorf("en keywords mismatch (-want +got):\n%s", diff)
	}

	sw := s.KeywordsFor("sw")
	want := append(append([]string{}, s.Keywords...), "moto sana", "mvuke")
	if diff := cmp.Diff(want, sw); diff != "" {
		t.Errorf("sw keywords mismatch (-want +got):\n%s", diff)
	}

	// Supported language without additive keywords gets the base set.
	if got := s.KeywordsFor("ha"); len(got) != len(s.Keywords) {
		t.Errorf("ha keywords = %d, want %d", len(got), len(s.Keywords))
	}
}

func TestPricing_Fallback(t *testing.T) {
	c := MustDefault()
	want := c.Pricing("Nigeria")
	if got := c.Pricing("Atlantis"); got != want {
		t.Errorf("Pricing(Atlantis) = %+v, want default %+v", got, want)
	}
	if c.HasRegion("Atlantis") {
		t.Error("HasRegion(Atlantis) = true")
	}
	if got := c.Pricing("Kenya"); got.Labor != 0.8 {
		t.Errorf("Kenya labor = %v, want 0.8", got.Labor)
	}
}

func TestClimateAndTips(t *testing.T) {
	c := MustDefault()
	tests := []struct {
		region string
		want   string
	}{
		{"Nigeria", "tropical"},
		{"Kenya", "highland"},
		{"Egypt", "desert"},
		{"South Africa", "coastal"},
		{"Rwanda", "tropical"},
		{"Atlantis", "tropical"},
	}
	for _, tt := range tests {
		if got := c.Climate(tt.region); got != tt.want {
			t.Errorf("Climate(%q) = %q, want %q", tt.region, got, tt.want)
		}
	}

	if got := c.Tips("Kenya", "brakes"); len(got) != 2 || got[1] != "Brake fluid replacement every 6 months" {
		t.Errorf("Tips(Kenya, brakes) = %v", got)
	}
	if got := c.Tips("Ghana", "engine"); got[0] != "Regular maintenance recommended" {
		t.Errorf("Tips(Ghana, engine) = %v, want default tips", got)
	}
}

func TestChecklist(t *testing.T) {
	c := MustDefault()
	if got := c.Checklist(SeasonRainy); got[0] != "Check windshield wipers" {
		t.Errorf("rainy checklist = %v", got)
	}
	dry := c.Checklist(SeasonDry)
	if diff := cmp.Diff(dry, c.Checklist(SeasonHarmattan)); diff != "" {
		t.Errorf("harmattan should use the dry checklist (-dry +harmattan):\n%s", diff)
	}
}

func TestResolveLanguage(t *testing.T) {
	c := MustDefault()
	tests := []struct {
		in, want string
	}{
		{"", "en"},
		{"en", "en"},
		{"FR", "fr"},
		{"fr-CA", "fr"},
		{"sw", "sw"},
		{"de", "en"},
		{"!!", "en"},
	}
	for _, tt := range tests {
		if got := c.ResolveLanguage(tt.in); got != tt.want {
			t.Errorf("ResolveLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

const minimalCatalog = `
version: v1.0.0
default_region: Home
default_climate: mild
languages: [en]
regions:
  - {name: Home, labor: 1, parts: 1, shipping: 1}
climates:
  mild: [nothing]
seasons:
  - {name: rainy, severity: 1.3}
checklists:
  rainy: [a]
  dry: [b]
generic:
  problem: Unknown
  confidence: 0.3
  severity: medium
  health_impact: 50
  cost: {min: 50, max: 300}
categories:
  - name: engine
    symptoms:
      - key: knocking
        keywords: [Knocking!]
        severity: high
        health_impact: 85
        cost: {min: 1, max: 2}
`

func TestParse_Minimal(t *testing.T) {
	c, err := Parse([]byte(minimalCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s := c.Symptom("engine", "knocking")
	if s == nil {
		t.Fatal("symptom missing")
	}
	if s.Keywords[0] != "knocking" {
		t.Errorf("keyword = %q, want normalized %q", s.Keywords[0], "knocking")
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
		wantErr string
	}{
		{"bad version", [2]string{"v1.0.0", "1.0"}, "invalid catalog version"},
		{"wrong major", [2]string{"v1.0.0", "v2.0.0"}, "unsupported catalog version"},
		{"bad severity", [2]string{"severity: high", "severity: severe"}, "invalid severity"},
		{"impact out of range", [2]string{"health_impact: 85", "health_impact: 150"}, "out of range"},
		{"missing default region", [2]string{"default_region: Home", "default_region: Away"}, "default region"},
		{"zero multiplier", [2]string{"labor: 1,", "labor: 0,"}, "multipliers must be > 0"},
		{"empty keywords", [2]string{"[Knocking!]", "[]"}, "no keywords"},
		{"punctuation keyword", [2]string{"[Knocking!]", "[\"!!\"]"}, "empty after normalization"},
		{"inverted cost", [2]string{"{min: 1, max: 2}", "{min: 3, max: 2}"}, "invalid cost range"},
		{"unknown field", [2]string{"problem: Unknown", "problem: Unknown\n  colour: red"}, "decode catalog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := strings.Replace(minimalCatalog, tt.replace[0], tt.replace[1], 1)
			_, err := Parse([]byte(data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(minimalCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Symptoms()) != 1 {
		t.Errorf("symptoms = %d, want 1", len(c.Symptoms()))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of missing file should fail")
	}

	def, err := Load("")
	if err != nil || def != MustDefault() {
		t.Errorf("Load(\"\") should return the embedded catalog, err=%v", err)
	}
}
