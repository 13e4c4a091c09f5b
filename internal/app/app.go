// Package app wires the diagnosis engine, store, marketplace directory and
// optional LLM second opinion into the operations the CLI and HTTP API share.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/config"
	"github.com/autocare/autocare/internal/diagnosis"
	apperrors "github.com/autocare/autocare/internal/errors"
	"github.com/autocare/autocare/internal/llm"
	"github.com/autocare/autocare/internal/logging"
	"github.com/autocare/autocare/internal/marketplace"
	"github.com/autocare/autocare/internal/store"
)

// attachTimeout bounds the store write that records a second opinion.
const attachTimeout = 10 * time.Second

// Options holds the dependencies of an App. Catalog and Directory default to
// the embedded data; a nil LLMProvider disables second opinions and a nil
// DiagnosisRepo disables persistence.
type Options struct {
	Config        *config.Config
	Catalog       *catalog.Catalog
	Directory     *marketplace.Directory
	DiagnosisRepo store.DiagnosisRepo
	LLMProvider   llm.Provider
	EngineOptions []diagnosis.EngineOption
}

// App is the application container.
type App struct {
	cfg     *config.Config
	cat     *catalog.Catalog
	dir     *marketplace.Directory
	repo    store.DiagnosisRepo
	service *diagnosis.Service
	log     *slog.Logger
}

// New builds an App from opts.
func New(opts Options) (*App, error) {
	a := &App{
		cfg:  opts.Config,
		cat:  opts.Catalog,
		dir:  opts.Directory,
		repo: opts.DiagnosisRepo,
		log:  logging.New("app"),
	}
	if a.cfg == nil {
		a.cfg = config.Default()
	}
	if a.cat == nil {
		cat, err := catalog.Load(a.cfg.Engine.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		a.cat = cat
	}
	if a.dir == nil {
		dir, err := marketplace.Default()
		if err != nil {
			return nil, fmt.Errorf("load directory: %w", err)
		}
		a.dir = dir
	}

	engine := diagnosis.NewEngine(a.cat, opts.EngineOptions...)
	a.service = diagnosis.NewService(engine, opts.LLMProvider)
	return a, nil
}

// Close waits for pending second opinions.
func (a *App) Close() {
	a.service.Close()
}

// Catalog returns the symptom catalog in use.
func (a *App) Catalog() *catalog.Catalog { return a.cat }

// Directory returns the marketplace directory.
func (a *App) Directory() *marketplace.Directory { return a.dir }

// SecondOpinionEnabled reports whether an LLM is configured.
func (a *App) SecondOpinionEnabled() bool { return a.service.SecondOpinionEnabled() }

// Request is one diagnosis request. Nil vehicle figures take the configured
// defaults.
type Request struct {
	Description string
	Language    string
	Region      string
	VehicleAge  *int
	Mileage     *int
	Season      string
	MediaCount  int
	NoSave      bool
}

// Result is a diagnosis with marketplace suggestions.
type Result struct {
	Diagnosis *diagnosis.Diagnosis   `json:"diagnosis"`
	Parts     []marketplace.Part     `json:"suggested_parts"`
	Mechanics []marketplace.Mechanic `json:"suggested_mechanics"`
	Saved     bool                   `json:"saved"`
	// PendingOpinion is set when an LLM second opinion was queued.
	PendingOpinion bool `json:"pending_second_opinion"`
}

// Diagnose runs the engine, saves the result unless asked not to, and
// queues a second opinion for generic results when an LLM is configured.
func (a *App) Diagnose(ctx context.Context, req Request) (*Result, error) {
	opts := a.options(req)
	persist := a.repo != nil && !req.NoSave

	saved := make(chan struct{})
	var saveErr error
	var cb func(*diagnosis.Opinion)
	if persist {
		cb = func(op *diagnosis.Opinion) {
			<-saved
			if saveErr != nil {
				return
			}
			a.attachOpinion(op)
		}
	}

	d := a.service.Diagnose(ctx, req.Description, opts, req.MediaCount, cb)
	res := &Result{
		Diagnosis:      d,
		Parts:          a.dir.PartsFor(d.Category),
		Mechanics:      a.dir.MechanicsFor(d.Region, d.Category),
		PendingOpinion: d.Generic && a.service.SecondOpinionEnabled(),
	}

	if persist {
		saveErr = a.save(ctx, req, d)
		close(saved)
		if saveErr != nil {
			return nil, saveErr
		}
		res.Saved = true
	}
	return res, nil
}

func (a *App) options(req Request) diagnosis.Options {
	opts := diagnosis.Options{
		Language:   req.Language,
		Region:     strings.TrimSpace(req.Region),
		VehicleAge: a.cfg.Engine.DefaultVehicleAge,
		Mileage:    a.cfg.Engine.DefaultMileage,
		Season:     req.Season,
	}
	if opts.Language == "" {
		opts.Language = a.cfg.Engine.DefaultLanguage
	}
	if opts.Region == "" {
		opts.Region = a.cfg.Engine.DefaultRegion
	}
	if req.VehicleAge != nil {
		opts.VehicleAge = *req.VehicleAge
	}
	if req.Mileage != nil {
		opts.Mileage = *req.Mileage
	}
	return opts
}

func (a *App) save(ctx context.Context, req Request, d *diagnosis.Diagnosis) error {
	rec, err := newRecord(req, d)
	if err != nil {
		return err
	}
	if err := a.repo.Save(ctx, rec); err != nil {
		return fmt.Errorf("save diagnosis: %w", err)
	}
	a.log.Info("diagnosis saved",
		"feedback_id", rec.FeedbackID,
		"category", rec.Category,
		"severity", rec.Severity,
		"generic", rec.Generic)
	return nil
}

func (a *App) attachOpinion(op *diagnosis.Opinion) {
	data, err := json.Marshal(op)
	if err != nil {
		a.log.Warn("encode second opinion", "feedback_id", op.FeedbackID, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), attachTimeout)
	defer cancel()
	if err := a.repo.AttachSecondOpinion(ctx, op.FeedbackID, data); err != nil {
		a.log.Warn("attach second opinion", "feedback_id", op.FeedbackID, "error", err)
	}
}

// History returns one page of saved diagnoses, newest first.
func (a *App) History(ctx context.Context, page int) (*store.Page, error) {
	if err := a.requireStore(); err != nil {
		return nil, err
	}
	return a.repo.List(ctx, page, store.DefaultPerPage)
}

// Get returns a saved diagnosis.
func (a *App) Get(ctx context.Context, feedbackID string) (*store.DiagnosticRecord, error) {
	if err := a.requireStore(); err != nil {
		return nil, err
	}
	return a.repo.Get(ctx, feedbackID)
}

// Feedback records the user's verdict on a saved diagnosis.
func (a *App) Feedback(ctx context.Context, feedbackID string, fb store.Feedback) (*store.DiagnosticRecord, error) {
	if err := a.requireStore(); err != nil {
		return nil, err
	}
	if fb.ActualCost != nil && *fb.ActualCost < 0 {
		return nil, apperrors.Invalid("actual cost must not be negative",
			apperrors.FieldError{Field: "actual_cost", Message: "must be >= 0"})
	}
	rec, err := a.repo.UpdateFeedback(ctx, feedbackID, fb)
	if err != nil {
		return nil, err
	}
	a.log.Info("feedback recorded", "feedback_id", feedbackID, "accurate", fb.WasAccurate)
	return rec, nil
}

// Statistics aggregates saved diagnoses.
func (a *App) Statistics(ctx context.Context) (*store.Statistics, error) {
	if err := a.requireStore(); err != nil {
		return nil, err
	}
	return a.repo.Statistics(ctx)
}

func (a *App) requireStore() error {
	if a.repo == nil {
		return apperrors.New(apperrors.Unavailable, "diagnosis history is not available", nil)
	}
	return nil
}
