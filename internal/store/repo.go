package store

import (
	"context"
	"time"
)

// DefaultPerPage is the page size used when List is called with perPage <= 0.
const DefaultPerPage = 10

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set

	// FeedbackID restricts LLM events to one diagnosis.
	FeedbackID string
}

// DiagnosticRecord is one persisted diagnosis: the request, the flattened
// result, the full result JSON and any user feedback.
type DiagnosticRecord struct {
	ID         int64
	Sequence   int64
	FeedbackID string
	CreatedAt  time.Time

	Description string
	Language    string
	Region      string
	VehicleAge  int
	Mileage     int
	Season      string
	MediaCount  int

	Problem      string
	Category     string
	SymptomKey   string
	Confidence   float64
	Severity     string
	HealthImpact int
	HealthScore  int
	CostMin      int
	CostMax      int
	CostLabor    int
	CostParts    int
	CostShipping int
	Urgency      string
	Generic      bool
	Result       []byte // JSON

	WasAccurate   *bool
	UserFeedback  string
	ActualCost    *float64
	FeedbackAt    *time.Time
	SecondOpinion []byte // JSON, nil until attached
}

// Feedback is the user's verdict on a diagnosis.
type Feedback struct {
	WasAccurate bool
	Comment     string
	ActualCost  *float64
}

// Page is one page of diagnoses, newest first.
type Page struct {
	Items      []*DiagnosticRecord
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// Bucket is a grouped count.
type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Statistics aggregates all saved diagnoses.
type Statistics struct {
	Total              int      `json:"total"`
	ByCategory         []Bucket `json:"by_category"`
	BySeverity         []Bucket `json:"by_severity"`
	ByRegion           []Bucket `json:"by_region"`
	AverageConfidence  float64  `json:"average_confidence"`
	AverageHealthScore float64  `json:"average_health_score"`
	FeedbackCount      int      `json:"feedback_count"`
	AccurateCount      int      `json:"accurate_count"`
}

// DiagnosisRepo persists diagnoses and their feedback.
type DiagnosisRepo interface {
	// Save assigns ID, Sequence and (if zero) CreatedAt and inserts rec.
	// A duplicate feedback id is a CONFLICT error.
	Save(ctx context.Context, rec *DiagnosticRecord) error

	// Get returns the diagnosis with feedbackID, or a NOT_FOUND error.
	Get(ctx context.Context, feedbackID string) (*DiagnosticRecord, error)

	// List returns page (1-based) of perPage diagnoses, newest first.
	List(ctx context.Context, page, perPage int) (*Page, error)

	// UpdateFeedback records user feedback on a diagnosis.
	UpdateFeedback(ctx context.Context, feedbackID string, fb Feedback) (*DiagnosticRecord, error)

	// AttachSecondOpinion stores an LLM opinion (JSON) on a diagnosis.
	AttachSecondOpinion(ctx context.Context, feedbackID string, opinion []byte) error

	// Statistics aggregates all saved diagnoses.
	Statistics(ctx context.Context) (*Statistics, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	FeedbackID   string // diagnosis the call was made for, if any
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID           int       `json:"id"`
	Sequence     int64     `json:"sequence"`
	Timestamp    time.Time `json:"timestamp"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	Purpose      string    `json:"purpose"`
	FeedbackID   string    `json:"feedback_id,omitempty"` // diagnosis the call was made for, if any
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	LatencyMs    int64     `json:"latency_ms"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
	RequestBody  string    `json:"request_body"`
	ResponseBody string    `json:"response_body"`
}

// PurposeUsage is token usage aggregated by purpose.
type PurposeUsage struct {
	Purpose      string `json:"purpose"`
	Calls        int    `json:"calls"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	AvgLatencyMs int64  `json:"avg_latency_ms"`
}

// ModelUsage is token usage aggregated by model.
type ModelUsage struct {
	Model        string `sql:"model" json:"model"`
	Calls        int    `sql:"calls" json:"calls"`
	InputTokens  int    `sql:"input_tokens" json:"input_tokens"`
	OutputTokens int    `sql:"output_tokens" json:"output_tokens"`
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
