package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"

	apperrors "github.com/autocare/autocare/internal/errors"
)

var diagnosticColumns = []string{
	"id", "sequence", "feedback_id", "created_at",
	"description", "language", "region", "vehicle_age", "mileage", "season", "media_count",
	"problem", "category", "symptom_key", "confidence", "severity", "health_impact", "health_score",
	"cost_min", "cost_max", "cost_labor", "cost_parts", "cost_shipping", "urgency", "generic", "result",
	"was_accurate", "user_feedback", "actual_cost", "feedback_at", "second_opinion",
}

// diagnosticRow mirrors the diagnostics table for entsql.ScanSlice.
type diagnosticRow struct {
	ID            int64      `sql:"id"`
	Sequence      int64      `sql:"sequence"`
	FeedbackID    string     `sql:"feedback_id"`
	CreatedAt     time.Time  `sql:"created_at"`
	Description   string     `sql:"description"`
	Language      string     `sql:"language"`
	Region        string     `sql:"region"`
	VehicleAge    int        `sql:"vehicle_age"`
	Mileage       int        `sql:"mileage"`
	Season        string     `sql:"season"`
	MediaCount    int        `sql:"media_count"`
	Problem       string     `sql:"problem"`
	Category      string     `sql:"category"`
	SymptomKey    string     `sql:"symptom_key"`
	Confidence    float64    `sql:"confidence"`
	Severity      string     `sql:"severity"`
	HealthImpact  int        `sql:"health_impact"`
	HealthScore   int        `sql:"health_score"`
	CostMin       int        `sql:"cost_min"`
	CostMax       int        `sql:"cost_max"`
	CostLabor     int        `sql:"cost_labor"`
	CostParts     int        `sql:"cost_parts"`
	CostShipping  int        `sql:"cost_shipping"`
	Urgency       string     `sql:"urgency"`
	Generic       bool       `sql:"generic"`
	Result        string     `sql:"result"`
	WasAccurate   *bool      `sql:"was_accurate"`
	UserFeedback  string     `sql:"user_feedback"`
	ActualCost    *float64   `sql:"actual_cost"`
	FeedbackAt    *time.Time `sql:"feedback_at"`
	SecondOpinion *string    `sql:"second_opinion"`
}

func (r diagnosticRow) record() *DiagnosticRecord {
	rec := &DiagnosticRecord{
		ID:           r.ID,
		Sequence:     r.Sequence,
		FeedbackID:   r.FeedbackID,
		CreatedAt:    r.CreatedAt,
		Description:  r.Description,
		Language:     r.Language,
		Region:       r.Region,
		VehicleAge:   r.VehicleAge,
		Mileage:      r.Mileage,
		Season:       r.Season,
		MediaCount:   r.MediaCount,
		Problem:      r.Problem,
		Category:     r.Category,
		SymptomKey:   r.SymptomKey,
		Confidence:   r.Confidence,
		Severity:     r.Severity,
		HealthImpact: r.HealthImpact,
		HealthScore:  r.HealthScore,
		CostMin:      r.CostMin,
		CostMax:      r.CostMax,
		CostLabor:    r.CostLabor,
		CostParts:    r.CostParts,
		CostShipping: r.CostShipping,
		Urgency:      r.Urgency,
		Generic:      r.Generic,
		Result:       []byte(r.Result),
		WasAccurate:  r.WasAccurate,
		UserFeedback: r.UserFeedback,
		ActualCost:   r.ActualCost,
		FeedbackAt:   r.FeedbackAt,
	}
	if r.SecondOpinion != nil {
		rec.SecondOpinion = []byte(*r.SecondOpinion)
	}
	return rec
}

// diagnosisRepo implements DiagnosisRepo with ent's SQL builder.
type diagnosisRepo struct {
	drv *entsql.Driver
	seq *sequence
}

func (r *diagnosisRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.drv.Dialect())
}

func (r *diagnosisRepo) Save(ctx context.Context, rec *DiagnosticRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	query, args := r.builder().Insert(diagnosticsTable).
		Columns(
			"sequence", "feedback_id", "created_at",
			"description", "language", "region", "vehicle_age", "mileage", "season", "media_count",
			"problem", "category", "symptom_key", "confidence", "severity", "health_impact", "health_score",
			"cost_min", "cost_max", "cost_labor", "cost_parts", "cost_shipping", "urgency", "generic", "result",
			"user_feedback",
		).
		Values(
			seqNum, rec.FeedbackID, rec.CreatedAt,
			rec.Description, rec.Language, rec.Region, rec.VehicleAge, rec.Mileage, rec.Season, rec.MediaCount,
			rec.Problem, rec.Category, rec.SymptomKey, rec.Confidence, rec.Severity, rec.HealthImpact, rec.HealthScore,
			rec.CostMin, rec.CostMax, rec.CostLabor, rec.CostParts, rec.CostShipping, rec.Urgency, rec.Generic, string(rec.Result),
			rec.UserFeedback,
		).
		Query()

	var res entsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		if sqlgraph.IsUniqueConstraintError(err) {
			return apperrors.New(apperrors.Conflict,
				fmt.Sprintf("diagnosis %s already exists", rec.FeedbackID), err)
		}
		return fmt.Errorf("save diagnosis: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save diagnosis: last insert id: %w", err)
	}
	rec.ID = id
	rec.Sequence = seqNum
	return nil
}

func (r *diagnosisRepo) Get(ctx context.Context, feedbackID string) (*DiagnosticRecord, error) {
	b := r.builder()
	query, args := b.Select(diagnosticColumns...).
		From(b.Table(diagnosticsTable)).
		Where(entsql.EQ("feedback_id", feedbackID)).
		Limit(1).
		Query()

	rows, err := r.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("get diagnosis: %w", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFoundf("diagnosis %s not found", feedbackID)
	}
	return rows[0].record(), nil
}

func (r *diagnosisRepo) List(ctx context.Context, page, perPage int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	total, err := r.count(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list diagnoses: %w", err)
	}

	b := r.builder()
	query, args := b.Select(diagnosticColumns...).
		From(b.Table(diagnosticsTable)).
		OrderBy(entsql.Desc("sequence")).
		Limit(perPage).
		Offset((page - 1) * perPage).
		Query()

	rows, err := r.query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("list diagnoses: %w", err)
	}

	out := &Page{
		Items:      make([]*DiagnosticRecord, 0, len(rows)),
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	for _, row := range rows {
		out.Items = append(out.Items, row.record())
	}
	return out, nil
}

func (r *diagnosisRepo) UpdateFeedback(ctx context.Context, feedbackID string, fb Feedback) (*DiagnosticRecord, error) {
	upd := r.builder().Update(diagnosticsTable).
		Set("was_accurate", fb.WasAccurate).
		Set("user_feedback", fb.Comment).
		Set("feedback_at", time.Now().UTC())
	if fb.ActualCost != nil {
		upd.Set("actual_cost", *fb.ActualCost)
	} else {
		upd.SetNull("actual_cost")
	}
	if err := r.update(ctx, upd.Where(entsql.EQ("feedback_id", feedbackID)), feedbackID); err != nil {
		return nil, fmt.Errorf("update feedback: %w", err)
	}
	return r.Get(ctx, feedbackID)
}

func (r *diagnosisRepo) AttachSecondOpinion(ctx context.Context, feedbackID string, opinion []byte) error {
	upd := r.builder().Update(diagnosticsTable).
		Set("second_opinion", string(opinion)).
		Where(entsql.EQ("feedback_id", feedbackID))
	if err := r.update(ctx, upd, feedbackID); err != nil {
		return fmt.Errorf("attach second opinion: %w", err)
	}
	return nil
}

func (r *diagnosisRepo) Statistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}
	var err error

	if stats.Total, err = r.count(ctx, nil); err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	if stats.FeedbackCount, err = r.count(ctx, entsql.NotNull("was_accurate")); err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	if stats.AccurateCount, err = r.count(ctx, entsql.EQ("was_accurate", true)); err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	for col, dst := range map[string]*[]Bucket{
		"category": &stats.ByCategory,
		"severity": &stats.BySeverity,
		"region":   &stats.ByRegion,
	} {
		if *dst, err = r.groupCount(ctx, col); err != nil {
			return nil, fmt.Errorf("statistics by %s: %w", col, err)
		}
	}

	b := r.builder()
	query, args := b.Select(
		entsql.As(entsql.Avg("confidence"), "avg_confidence"),
		entsql.As(entsql.Avg("health_score"), "avg_health_score"),
	).From(b.Table(diagnosticsTable)).Query()

	var avgs []struct {
		Confidence  *float64 `sql:"avg_confidence"`
		HealthScore *float64 `sql:"avg_health_score"`
	}
	if err := r.scan(ctx, query, args, &avgs); err != nil {
		return nil, fmt.Errorf("statistics averages: %w", err)
	}
	if len(avgs) > 0 {
		if avgs[0].Confidence != nil {
			stats.AverageConfidence = *avgs[0].Confidence
		}
		if avgs[0].HealthScore != nil {
			stats.AverageHealthScore = *avgs[0].HealthScore
		}
	}
	return stats, nil
}

func (r *diagnosisRepo) count(ctx context.Context, p *entsql.Predicate) (int, error) {
	b := r.builder()
	sel := b.Select().From(b.Table(diagnosticsTable))
	if p != nil {
		sel.Where(p)
	}
	query, args := sel.Count().Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, err
	}
	defer rows.Close()
	return entsql.ScanInt(rows)
}

// groupCount returns row counts grouped by col, largest first.
func (r *diagnosisRepo) groupCount(ctx context.Context, col string) ([]Bucket, error) {
	b := r.builder()
	query, args := b.Select(
		entsql.As(col, "name"),
		entsql.As(entsql.Count("*"), "count"),
	).
		From(b.Table(diagnosticsTable)).
		GroupBy(col).
		OrderBy(entsql.Desc("count"), "name").
		Query()

	buckets := []Bucket{}
	if err := r.scan(ctx, query, args, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

func (r *diagnosisRepo) update(ctx context.Context, upd *entsql.UpdateBuilder, feedbackID string) error {
	query, args := upd.Query()
	var res entsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("diagnosis %s not found", feedbackID)
	}
	return nil
}

func (r *diagnosisRepo) query(ctx context.Context, query string, args []any) ([]diagnosticRow, error) {
	var out []diagnosticRow
	if err := r.scan(ctx, query, args, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *diagnosisRepo) scan(ctx context.Context, query string, args []any, v any) error {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	return entsql.ScanSlice(rows, v)
}
