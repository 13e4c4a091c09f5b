package cmd

import (
	"time"

	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/diagnosis"
	"github.com/autocare/autocare/internal/store"
)

type feedbackJSON struct {
	WasAccurate bool       `json:"was_accurate"`
	Comment     string     `json:"user_feedback,omitempty"`
	ActualCost  *float64   `json:"actual_cost,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

type recordJSON struct {
	FeedbackID    string               `json:"feedback_id"`
	CreatedAt     time.Time            `json:"created_at"`
	Description   string               `json:"description"`
	Diagnosis     *diagnosis.Diagnosis `json:"diagnosis"`
	Feedback      *feedbackJSON        `json:"feedback,omitempty"`
	SecondOpinion *diagnosis.Opinion   `json:"second_opinion,omitempty"`
}

func newRecordJSON(rec *store.DiagnosticRecord, d *diagnosis.Diagnosis, op *diagnosis.Opinion) recordJSON {
	out := recordJSON{
		FeedbackID:    rec.FeedbackID,
		CreatedAt:     rec.CreatedAt,
		Description:   rec.Description,
		Diagnosis:     d,
		SecondOpinion: op,
	}
	if rec.WasAccurate != nil {
		out.Feedback = &feedbackJSON{
			WasAccurate: *rec.WasAccurate,
			Comment:     rec.UserFeedback,
			ActualCost:  rec.ActualCost,
			SubmittedAt: rec.FeedbackAt,
		}
	}
	return out
}

type historyItemJSON struct {
	FeedbackID  string    `json:"feedback_id"`
	CreatedAt   time.Time `json:"created_at"`
	Problem     string    `json:"problem"`
	Category    string    `json:"category"`
	Severity    string    `json:"severity"`
	HealthScore int       `json:"health_score"`
	CostMin     int       `json:"cost_min"`
	CostMax     int       `json:"cost_max"`
	Accurate    *bool     `json:"was_accurate,omitempty"`
}

type historyPageJSON struct {
	Items      []historyItemJSON `json:"items"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

func historyJSON(p *store.Page) historyPageJSON {
	out := historyPageJSON{
		Items:      make([]historyItemJSON, 0, len(p.Items)),
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
	for _, rec := range p.Items {
		out.Items = append(out.Items, historyItemJSON{
			FeedbackID:  rec.FeedbackID,
			CreatedAt:   rec.CreatedAt,
			Problem:     rec.Problem,
			Category:    rec.Category,
			Severity:    rec.Severity,
			HealthScore: rec.HealthScore,
			CostMin:     rec.CostMin,
			CostMax:     rec.CostMax,
			Accurate:    rec.WasAccurate,
		})
	}
	return out
}

type symptomJSON struct {
	ID           string            `json:"id"`
	Problem      string            `json:"problem"`
	Severity     catalog.Severity  `json:"severity"`
	HealthImpact int               `json:"health_impact"`
	Cost         catalog.CostRange `json:"cost"`
	Keywords     []string          `json:"keywords"`
}

type catalogOutJSON struct {
	Version   string        `json:"version"`
	Languages []string      `json:"languages"`
	Regions   []string      `json:"regions"`
	Symptoms  []symptomJSON `json:"symptoms"`
}

func catalogJSON(cat *catalog.Catalog) catalogOutJSON {
	out := catalogOutJSON{
		Version:   cat.Version(),
		Languages: cat.Languages(),
		Regions:   cat.Regions(),
	}
	for _, s := range cat.Symptoms() {
		out.Symptoms = append(out.Symptoms, symptomJSON{
			ID:           s.ID(),
			Problem:      s.Problem,
			Severity:     s.Severity,
			HealthImpact: s.HealthImpact,
			Cost:         s.Cost,
			Keywords:     s.Keywords,
		})
	}
	return out
}
