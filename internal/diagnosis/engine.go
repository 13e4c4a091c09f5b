package diagnosis

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autocare/autocare/internal/catalog"
)

// MaxAlternatives is the number of runner-up matches reported.
const MaxAlternatives = 3

// Engine turns a free-text description into a Diagnosis. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	cat     *catalog.Catalog
	matcher *Matcher
	costs   *CostModel
	advisor *Advisor
	now     func() time.Time
	newID   func(time.Time) string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock overrides the clock used for timestamps and season derivation.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides feedback id generation.
func WithIDGenerator(fn func(time.Time) string) EngineOption {
	return func(e *Engine) { e.newID = fn }
}

// NewEngine creates an engine over cat.
func NewEngine(cat *catalog.Catalog, opts ...EngineOption) *Engine {
	e := &Engine{
		cat:     cat,
		matcher: NewMatcher(cat),
		costs:   NewCostModel(cat),
		advisor: NewAdvisor(cat),
		now:     time.Now,
		newID:   NewFeedbackID,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// NewFeedbackID returns "DIAG-<unix millis>-<9 random hex chars>".
func NewFeedbackID(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("DIAG-%d-%s", t.UnixMilli(), suffix)
}

// Catalog returns the catalog the engine matches against.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// Matcher returns the engine's matcher.
func (e *Engine) Matcher() *Matcher { return e.matcher }

// CostModel returns the engine's cost model.
func (e *Engine) CostModel() *CostModel { return e.costs }

// Diagnose matches description against the catalog and composes the best
// match with cost, urgency, predictive and regional output. When nothing
// matches, the generic diagnosis is returned.
func (e *Engine) Diagnose(description string, opts Options) *Diagnosis {
	now := e.now()
	opts = e.resolve(opts, now)

	normalized := e.matcher.Normalize(description, opts.Language)
	matches := e.matcher.FindMatches(normalized, opts.Language)
	if len(matches) == 0 {
		return e.generic(opts, now)
	}

	best := matches[0]
	s := best.Symptom
	cost := e.costs.AdjustCost(s.Cost, opts.Region, opts.VehicleAge, opts.Mileage)
	predictive := e.advisor.Predict(best, opts.VehicleAge, opts.Mileage, opts.Season)

	d := &Diagnosis{
		FeedbackID:      e.newID(now),
		Problem:         s.Problem,
		Description:     s.Description,
		Category:        best.Category,
		SymptomKey:      best.SymptomKey,
		Confidence:      best.Score,
		Severity:        s.Severity,
		HealthImpact:    s.HealthImpact,
		HealthScore:     100 - s.HealthImpact,
		Cost:            cost,
		Urgency:         Classify(s.Severity),
		RepairTime:      s.RepairTime,
		Causes:          slices.Clone(s.Causes),
		Parts:           slices.Clone(s.Parts),
		Preventive:      slices.Clone(s.Preventive),
		Recommendations: Recommendations(s, cost),
		NextSteps:       NextSteps(s.Severity),
		Predictive:      &predictive,
		Regional:        regionalInsights(e.cat, opts.Region, opts.Season, best.Category),
		VehicleFactors:  vehicleFactors(opts),
		Language:        opts.Language,
		Region:          opts.Region,
		CreatedAt:       now,
	}
	for _, m := range matches[1:min(len(matches), MaxAlternatives+1)] {
		d.Alternatives = append(d.Alternatives, Alternative{
			Category:   m.Category,
			SymptomKey: m.SymptomKey,
			Problem:    m.Symptom.Problem,
			Score:      m.Score,
		})
	}
	return d
}

func (e *Engine) generic(opts Options, now time.Time) *Diagnosis {
	g := e.cat.Generic()
	cost := e.costs.AdjustCost(g.Cost, opts.Region, g.VehicleAge, g.Mileage)
	return &Diagnosis{
		FeedbackID:      e.newID(now),
		Problem:         g.Problem,
		Description:     g.Description,
		Category:        g.Category,
		Confidence:      g.Confidence,
		Severity:        g.Severity,
		HealthImpact:    g.HealthImpact,
		HealthScore:     100 - g.HealthImpact,
		Cost:            cost,
		Urgency:         Classify(g.Severity),
		Recommendations: append([]string(nil), g.Recommendations...),
		NextSteps:       append([]string(nil), g.NextSteps...),
		Regional:        regionalInsights(e.cat, opts.Region, opts.Season, ""),
		VehicleFactors:  vehicleFactors(opts),
		Language:        opts.Language,
		Region:          opts.Region,
		Generic:         true,
		CreatedAt:       now,
	}
}

// resolve fills defaults: supported language, default region, clamped
// vehicle figures and a season derived from now.
func (e *Engine) resolve(opts Options, now time.Time) Options {
	opts.Language = e.cat.ResolveLanguage(opts.Language)
	if strings.TrimSpace(opts.Region) == "" {
		opts.Region = e.cat.DefaultRegion()
	}
	opts.VehicleAge = max(opts.VehicleAge, 0)
	opts.Mileage = max(opts.Mileage, 0)
	if opts.Season == "" {
		opts.Season = SeasonFor(now)
	}
	return opts
}

func vehicleFactors(opts Options) VehicleFactors {
	return VehicleFactors{
		Age:           opts.VehicleAge,
		Mileage:       opts.Mileage,
		AgeImpact:     AgeImpact(opts.VehicleAge),
		MileageImpact: MileageImpact(opts.Mileage),
	}
}
