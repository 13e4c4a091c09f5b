package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/autocare/autocare/internal/app"
	apperrors "github.com/autocare/autocare/internal/errors"
	"github.com/autocare/autocare/internal/store"
)

// diagnoseRequest is the POST /api/diagnose body.
type diagnoseRequest struct {
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Region      string   `json:"region"`
	VehicleAge  *int     `json:"vehicle_age"`
	Mileage     *int     `json:"mileage"`
	Season      string   `json:"season"`
	Media       []string `json:"media"`
}

// feedbackRequest is the POST /api/diagnostics/{id}/feedback body.
type feedbackRequest struct {
	WasAccurate  bool     `json:"was_accurate"`
	UserFeedback string   `json:"user_feedback"`
	ActualCost   *float64 `json:"actual_cost"`
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, healthResponse{
		Status:         "ok",
		Version:        s.version,
		Uptime:         time.Since(s.started).Round(time.Second).String(),
		CatalogVersion: s.app.Catalog().Version(),
		SecondOpinion:  s.app.SecondOpinionEnabled(),
	}, http.StatusOK)
}

// POST /api/diagnose
func (s *Server) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	var body diagnoseRequest
	if err := s.validator.Decode(r, diagnoseSchema, &body); err != nil {
		WriteError(w, err)
		return
	}

	res, err := s.app.Diagnose(r.Context(), app.Request{
		Description: strings.TrimSpace(body.Description),
		Language:    body.Language,
		Region:      body.Region,
		VehicleAge:  body.VehicleAge,
		Mileage:     body.Mileage,
		Season:      body.Season,
		MediaCount:  len(body.Media),
	})
	if err != nil {
		s.log.Error("diagnose failed", "error", err, "request_id", GetRequestID(r.Context()))
		WriteError(w, err)
		return
	}

	WriteJSON(w, diagnoseResponse{
		Success:      true,
		Data:         res.Diagnosis,
		DiagnosticID: res.Diagnosis.FeedbackID,
		Saved:        res.Saved,
		Suggestions: suggestionsView{
			Parts:     nonNil(res.Parts),
			Mechanics: nonNil(res.Mechanics),
		},
		PendingSecondOpinion: res.PendingOpinion,
	}, http.StatusOK)
}

// GET /api/diagnostics/history?page=N
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, apperrors.Invalid("invalid page",
				apperrors.FieldError{Field: "page", Message: "must be a positive integer"}))
			return
		}
		page = n
	}

	p, err := s.app.History(r.Context(), page)
	if err != nil {
		WriteError(w, err)
		return
	}

	items := make([]summaryView, 0, len(p.Items))
	for _, rec := range p.Items {
		items = append(items, newSummaryView(rec))
	}
	WriteJSON(w, historyResponse{
		Success: true,
		Data:    items,
		Pagination: paginationView{
			Page:       p.Page,
			PerPage:    p.PerPage,
			Total:      p.Total,
			TotalPages: p.TotalPages,
		},
	}, http.StatusOK)
}

// GET /api/diagnostics/statistics
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.app.Statistics(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, dataResponse{Success: true, Data: stats}, http.StatusOK)
}

// GET /api/diagnostics/{id}
func (s *Server) handleGetDiagnostic(w http.ResponseWriter, r *http.Request) {
	rec, err := s.app.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, err)
		return
	}
	s.writeRecord(w, rec)
}

// POST /api/diagnostics/{id}/feedback
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var body feedbackRequest
	if err := s.validator.Decode(r, feedbackSchema, &body); err != nil {
		WriteError(w, err)
		return
	}

	rec, err := s.app.Feedback(r.Context(), r.PathValue("id"), store.Feedback{
		WasAccurate: body.WasAccurate,
		Comment:     strings.TrimSpace(body.UserFeedback),
		ActualCost:  body.ActualCost,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	s.writeRecord(w, rec)
}

func (s *Server) writeRecord(w http.ResponseWriter, rec *store.DiagnosticRecord) {
	view, err := newRecordView(rec)
	if err != nil {
		InternalError(w, "Failed to decode diagnosis", err)
		return
	}
	WriteJSON(w, dataResponse{Success: true, Data: view}, http.StatusOK)
}

// GET /api/catalog
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, dataResponse{Success: true, Data: newCatalogView(s.app.Catalog())}, http.StatusOK)
}

// GET /api/parts/search?q=
func (s *Server) handleSearchParts(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	parts := s.app.Directory().SearchParts(q)
	WriteJSON(w, searchResponse{Success: true, Query: q, Count: len(parts), Data: nonNil(parts)}, http.StatusOK)
}

// GET /api/mechanics/search?q=
func (s *Server) handleSearchMechanics(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	mechanics := s.app.Directory().SearchMechanics(q)
	WriteJSON(w, searchResponse{Success: true, Query: q, Count: len(mechanics), Data: nonNil(mechanics)}, http.StatusOK)
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
