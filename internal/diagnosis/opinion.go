package diagnosis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"
	"time"

	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/llm"
)

// PurposeSecondOpinion labels second-opinion calls in the LLM event log.
const PurposeSecondOpinion = "second-opinion"

// OpinionConfig holds generation settings for second opinions.
type OpinionConfig struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultOpinionConfig returns the settings used by the service.
func DefaultOpinionConfig() OpinionConfig {
	return OpinionConfig{
		MaxTokens:   256,
		Temperature: 0.2,
		Timeout:     30 * time.Second,
	}
}

// OpinionRequest is the input for one second opinion.
type OpinionRequest struct {
	FeedbackID  string
	Description string
	Language    string
	Region      string
}

// Opinion is the LLM's verdict on a description the matcher could not place.
// Symptom is empty when the LLM found nothing or named an unknown key.
type Opinion struct {
	FeedbackID string    `json:"feedback_id"`
	Symptom    string    `json:"symptom,omitempty"`
	Category   string    `json:"category,omitempty"`
	Problem    string    `json:"problem,omitempty"`
	Severity   string    `json:"severity,omitempty"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning"`
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"created_at"`
}

// Matched reports whether the opinion names a catalog symptom.
func (o *Opinion) Matched() bool { return o.Symptom != "" }

// opinionOutput is the raw LLM response.
type opinionOutput struct {
	Symptom    *string `json:"symptom"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// SecondOpinion asks an LLM to place a description on the catalog.
type SecondOpinion struct {
	provider llm.Provider
	cat      *catalog.Catalog
	cfg      OpinionConfig
	now      func() time.Time
}

// NewSecondOpinion creates a second-opinion client over cat.
func NewSecondOpinion(provider llm.Provider, cat *catalog.Catalog, cfg OpinionConfig) *SecondOpinion {
	return &SecondOpinion{provider: provider, cat: cat, cfg: cfg, now: time.Now}
}

// Consult sends the description and every catalog symptom id to the LLM.
func (o *SecondOpinion) Consult(ctx context.Context, req OpinionRequest) (*Opinion, error) {
	ctx = llm.WithFeedbackID(llm.WithPurpose(ctx, PurposeSecondOpinion), req.FeedbackID)
	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	userMsg, err := buildOpinionMessage(req, o.cat.Symptoms())
	if err != nil {
		return nil, fmt.Errorf("build opinion prompt: %w", err)
	}

	resp, err := o.provider.Generate(ctx, llm.Request{
		System:      opinionSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:      OpinionSchema,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM second opinion failed: %w", err)
	}

	var raw opinionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse second opinion: %w", err)
	}

	op := &Opinion{
		FeedbackID: req.FeedbackID,
		Confidence: raw.Confidence,
		Reasoning:  raw.Reasoning,
		Model:      resp.Model,
		CreatedAt:  o.now(),
	}
	// An id outside the candidate list counts as no match.
	if raw.Symptom != nil {
		if s := o.cat.Lookup(*raw.Symptom); s != nil {
			op.Symptom = s.ID()
			op.Category = s.Category
			op.Problem = s.Problem
			op.Severity = string(s.Severity)
		}
	}
	return op, nil
}

const opinionSystemPrompt = `You are an experienced vehicle mechanic. A driver described a problem that keyword matching could not place. Decide whether it matches one of the known symptoms listed.

Instructions:
- If the description clearly matches a listed symptom, return its id exactly as written (<category>/<key>).
- If nothing fits, return null for symptom.
- Do NOT invent ids. Only use ids from the list provided.
- Provide a confidence score (0.0-1.0).
- Keep reasoning to one sentence.`

var opinionUserTemplate = template.Must(template.New("opinion").Parse(`Description: {{.Request.Description}}
{{with .Request.Language}}Language: {{.}}
{{end}}{{with .Request.Region}}Region: {{.}}
{{end}}
Known symptoms:
{{range .Candidates}}- {{.ID}}: {{.Problem}}. {{.Description}}
{{end}}`))

func buildOpinionMessage(req OpinionRequest, candidates []*catalog.Symptom) (string, error) {
	var buf bytes.Buffer
	err := opinionUserTemplate.Execute(&buf, struct {
		Request    OpinionRequest
		Candidates []*catalog.Symptom
	}{req, candidates})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
