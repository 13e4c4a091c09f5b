package diagnosis

import (
	"context"
	"log/slog"
	"sync"

	"github.com/autocare/autocare/internal/llm"
	"github.com/autocare/autocare/internal/logging"
)

// QueueSize bounds the number of pending second opinions.
const QueueSize = 32

// Service runs the deterministic engine, applies the media hook and, for
// descriptions the matcher cannot place, dispatches an asynchronous LLM
// second opinion.
type Service struct {
	engine  *Engine
	media   MediaEnhancementHook
	opinion *SecondOpinion
	log     *slog.Logger

	mu      sync.RWMutex
	closed  bool
	pending chan opinionJob
	done    chan struct{}
}

type opinionJob struct {
	ctx context.Context
	req OpinionRequest
	cb  func(*Opinion)
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithMediaHook replaces the default confidence boost.
func WithMediaHook(h MediaEnhancementHook) ServiceOption {
	return func(s *Service) { s.media = h }
}

// WithOpinionConfig overrides second-opinion generation settings.
func WithOpinionConfig(cfg OpinionConfig) ServiceOption {
	return func(s *Service) {
		if s.opinion != nil {
			s.opinion.cfg = cfg
		}
	}
}

// NewService creates a diagnosis service. If provider is nil, only the
// deterministic engine runs.
func NewService(engine *Engine, provider llm.Provider, opts ...ServiceOption) *Service {
	s := &Service{
		engine:  engine,
		media:   DefaultConfidenceBoost(),
		log:     logging.New("diagnosis"),
		pending: make(chan opinionJob, QueueSize),
		done:    make(chan struct{}),
	}
	if provider != nil {
		s.opinion = NewSecondOpinion(provider, engine.Catalog(), DefaultOpinionConfig())
	}
	for _, o := range opts {
		o(s)
	}
	if s.opinion != nil {
		go s.processLoop()
	} else {
		close(s.done)
	}
	return s
}

// Engine returns the underlying deterministic engine.
func (s *Service) Engine() *Engine { return s.engine }

// SecondOpinionEnabled reports whether an LLM is configured.
func (s *Service) SecondOpinionEnabled() bool { return s.opinion != nil }

// Diagnose returns the deterministic diagnosis immediately. When the result
// is generic and an LLM is available, a second opinion is queued and cb
// fires from the worker goroutine once it is ready. A full queue drops the
// request.
func (s *Service) Diagnose(ctx context.Context, description string, opts Options, mediaCount int, cb func(*Opinion)) *Diagnosis {
	d := s.engine.Diagnose(description, opts)
	if s.media != nil {
		d = s.media.Enhance(d, mediaCount)
	}

	if d.Generic && s.opinion != nil {
		s.dispatch(ctx, OpinionRequest{
			FeedbackID:  d.FeedbackID,
			Description: description,
			Language:    d.Language,
			Region:      d.Region,
		}, cb)
	}
	return d
}

func (s *Service) dispatch(ctx context.Context, req OpinionRequest, cb func(*Opinion)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}

	// The caller's request may finish long before the LLM answers.
	job := opinionJob{ctx: context.WithoutCancel(ctx), req: req, cb: cb}
	select {
	case s.pending <- job:
	default:
		s.log.Warn("second opinion queue full, dropping request", "feedback_id", req.FeedbackID)
	}
}

func (s *Service) processLoop() {
	defer close(s.done)
	for job := range s.pending {
		op, err := s.opinion.Consult(job.ctx, job.req)
		if err != nil {
			s.log.Warn("second opinion failed",
				"feedback_id", job.req.FeedbackID,
				"code", llm.Code(err),
				"error", err)
			continue
		}
		s.log.Info("second opinion ready",
			"feedback_id", op.FeedbackID,
			"symptom", op.Symptom,
			"confidence", op.Confidence)
		if job.cb != nil {
			job.cb(op)
		}
	}
}

// Close stops accepting second opinions and waits for queued ones to finish.
func (s *Service) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.pending)
	}
	s.mu.Unlock()
	<-s.done
}
