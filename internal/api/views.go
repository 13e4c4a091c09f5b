package api

import (
	"time"

	"github.com/autocare/autocare/internal/app"
	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/diagnosis"
	"github.com/autocare/autocare/internal/marketplace"
	"github.com/autocare/autocare/internal/store"
)

type suggestionsView struct {
	Parts     []marketplace.Part     `json:"parts"`
	Mechanics []marketplace.Mechanic `json:"mechanics"`
}

type diagnoseResponse struct {
	Success              bool                 `json:"success"`
	Data                 *diagnosis.Diagnosis `json:"data"`
	DiagnosticID         string               `json:"diagnostic_id"`
	Saved                bool                 `json:"saved"`
	Suggestions          suggestionsView      `json:"suggestions"`
	PendingSecondOpinion bool                 `json:"pending_second_opinion"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type searchResponse struct {
	Success bool   `json:"success"`
	Query   string `json:"query"`
	Count   int    `json:"count"`
	Data    any    `json:"data"`
}

type paginationView struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type historyResponse struct {
	Success    bool           `json:"success"`
	Data       []summaryView  `json:"data"`
	Pagination paginationView `json:"pagination"`
}

// summaryView is one history row.
type summaryView struct {
	DiagnosticID string    `json:"diagnostic_id"`
	CreatedAt    time.Time `json:"created_at"`
	Description  string    `json:"description"`
	Problem      string    `json:"problem"`
	Category     string    `json:"category"`
	Severity     string    `json:"severity"`
	Confidence   float64   `json:"confidence"`
	HealthScore  int       `json:"health_score"`
	CostMin      int       `json:"cost_min"`
	CostMax      int       `json:"cost_max"`
	Urgency      string    `json:"urgency"`
	Region       string    `json:"region"`
	HasFeedback  bool      `json:"has_feedback"`
}

func newSummaryView(rec *store.DiagnosticRecord) summaryView {
	return summaryView{
		DiagnosticID: rec.FeedbackID,
		CreatedAt:    rec.CreatedAt,
		Description:  rec.Description,
		Problem:      rec.Problem,
		Category:     rec.Category,
		Severity:     rec.Severity,
		Confidence:   rec.Confidence,
		HealthScore:  rec.HealthScore,
		CostMin:      rec.CostMin,
		CostMax:      rec.CostMax,
		Urgency:      rec.Urgency,
		Region:       rec.Region,
		HasFeedback:  rec.WasAccurate != nil,
	}
}

type feedbackView struct {
	WasAccurate  bool       `json:"was_accurate"`
	UserFeedback string     `json:"user_feedback,omitempty"`
	ActualCost   *float64   `json:"actual_cost,omitempty"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
}

// recordView is a saved diagnosis with its feedback and second opinion.
type recordView struct {
	DiagnosticID  string               `json:"diagnostic_id"`
	CreatedAt     time.Time            `json:"created_at"`
	Description   string               `json:"description"`
	MediaCount    int                  `json:"media_count"`
	Diagnosis     *diagnosis.Diagnosis `json:"diagnosis"`
	Feedback      *feedbackView        `json:"feedback,omitempty"`
	SecondOpinion *diagnosis.Opinion   `json:"second_opinion,omitempty"`
}

func newRecordView(rec *store.DiagnosticRecord) (*recordView, error) {
	d, err := app.DecodeDiagnosis(rec)
	if err != nil {
		return nil, err
	}
	op, err := app.DecodeOpinion(rec)
	if err != nil {
		return nil, err
	}
	v := &recordView{
		DiagnosticID:  rec.FeedbackID,
		CreatedAt:     rec.CreatedAt,
		Description:   rec.Description,
		MediaCount:    rec.MediaCount,
		Diagnosis:     d,
		SecondOpinion: op,
	}
	if rec.WasAccurate != nil {
		v.Feedback = &feedbackView{
			WasAccurate:  *rec.WasAccurate,
			UserFeedback: rec.UserFeedback,
			ActualCost:   rec.ActualCost,
			SubmittedAt:  rec.FeedbackAt,
		}
	}
	return v, nil
}

type symptomView struct {
	ID           string            `json:"id"`
	Key          string            `json:"key"`
	Problem      string            `json:"problem"`
	Description  string            `json:"description"`
	Severity     catalog.Severity  `json:"severity"`
	HealthImpact int               `json:"health_impact"`
	Cost         catalog.CostRange `json:"cost"`
	RepairTime   string            `json:"repair_time"`
	Keywords     []string          `json:"keywords"`
}

type categoryView struct {
	Name     string        `json:"name"`
	Symptoms []symptomView `json:"symptoms"`
}

type catalogView struct {
	Version    string         `json:"version"`
	Languages  []string       `json:"languages"`
	Regions    []string       `json:"regions"`
	Seasons    []string       `json:"seasons"`
	Categories []categoryView `json:"categories"`
}

func newCatalogView(cat *catalog.Catalog) catalogView {
	v := catalogView{
		Version:   cat.Version(),
		Languages: cat.Languages(),
		Regions:   cat.Regions(),
		Seasons:   cat.Seasons(),
	}
	for _, c := range cat.Categories() {
		cv := categoryView{Name: c.Name}
		for _, s := range c.Symptoms {
			cv.Symptoms = append(cv.Symptoms, symptomView{
				ID:           s.ID(),
				Key:          s.Key,
				Problem:      s.Problem,
				Description:  s.Description,
				Severity:     s.Severity,
				HealthImpact: s.HealthImpact,
				Cost:         s.Cost,
				RepairTime:   s.RepairTime,
				Keywords:     s.Keywords,
			})
		}
		v.Categories = append(v.Categories, cv)
	}
	return v
}

type healthResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	Uptime         string `json:"uptime"`
	CatalogVersion string `json:"catalog_version"`
	SecondOpinion  bool   `json:"second_opinion"`
}
