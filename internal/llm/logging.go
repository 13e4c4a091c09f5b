package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/autocare/autocare/internal/logging"
	"github.com/autocare/autocare/internal/store"
)

// eventLog writes one store event and one log line per call.
type eventLog struct {
	inner    Provider
	provider string
	repo     store.EventRepo
	log      *slog.Logger
}

// WithLogging records every call through p in repo, tagged with the backend
// name, the purpose and diagnosis from ctx, token counts and latency. A
// failed write is logged and never changes the call's result.
func WithLogging(p Provider, provider string, repo store.EventRepo) Provider {
	return &eventLog{inner: p, provider: provider, repo: repo, log: logging.New("llm")}
}

func (l *eventLog) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		FeedbackID:  FeedbackIDFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	l.report(ev, err)
	if werr := l.repo.AppendLLMRequest(ctx, ev); werr != nil {
		l.log.Warn("failed to record llm request event", "error", werr)
	}
	return resp, err
}

func (l *eventLog) ModelID() string {
	return l.inner.ModelID()
}

func (l *eventLog) report(ev store.LLMRequestEventData, err error) {
	attrs := []any{
		"provider", ev.Provider,
		"model", ev.Model,
		"purpose", ev.Purpose,
		"latency_ms", ev.LatencyMs,
		"input_tokens", ev.InputTokens,
		"output_tokens", ev.OutputTokens,
	}
	if ev.FeedbackID != "" {
		attrs = append(attrs, "feedback_id", ev.FeedbackID)
	}
	if usd, ok := EstimateCost(ev.Model, ev.InputTokens, ev.OutputTokens); ok {
		attrs = append(attrs, "cost_usd", usd)
	}
	if err != nil {
		l.log.Warn("llm request failed", append(attrs, "error", err, "code", Code(err))...)
		return
	}
	l.log.Debug("llm request", attrs...)
}

// serializeRequest renders req the way `autocare llm view` shows it: one
// [role] block per turn followed by the schema.
func serializeRequest(req Request) string {
	var b strings.Builder
	block := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}

	if req.System != "" {
		block("system", req.System)
	}
	for _, m := range req.Messages {
		block(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
