package app

import (
	"encoding/json"
	"fmt"

	"github.com/autocare/autocare/internal/diagnosis"
	"github.com/autocare/autocare/internal/store"
)

// newRecord flattens a diagnosis and the request that produced it into a
// store record. The full diagnosis is kept as JSON.
func newRecord(req Request, d *diagnosis.Diagnosis) (*store.DiagnosticRecord, error) {
	result, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode diagnosis: %w", err)
	}
	return &store.DiagnosticRecord{
		FeedbackID:   d.FeedbackID,
		CreatedAt:    d.CreatedAt,
		Description:  req.Description,
		Language:     d.Language,
		Region:       d.Region,
		VehicleAge:   d.VehicleFactors.Age,
		Mileage:      d.VehicleFactors.Mileage,
		Season:       d.Regional.Season,
		MediaCount:   max(req.MediaCount, 0),
		Problem:      d.Problem,
		Category:     d.Category,
		SymptomKey:   d.SymptomKey,
		Confidence:   d.Confidence,
		Severity:     string(d.Severity),
		HealthImpact: d.HealthImpact,
		HealthScore:  d.HealthScore,
		CostMin:      d.Cost.Min,
		CostMax:      d.Cost.Max,
		CostLabor:    d.Cost.Breakdown.Labor,
		CostParts:    d.Cost.Breakdown.Parts,
		CostShipping: d.Cost.Breakdown.Shipping,
		Urgency:      d.Urgency.Label,
		Generic:      d.Generic,
		Result:       result,
	}, nil
}

// DecodeDiagnosis restores the full diagnosis saved with rec.
func DecodeDiagnosis(rec *store.DiagnosticRecord) (*diagnosis.Diagnosis, error) {
	var d diagnosis.Diagnosis
	if err := json.Unmarshal(rec.Result, &d); err != nil {
		return nil, fmt.Errorf("decode diagnosis %s: %w", rec.FeedbackID, err)
	}
	return &d, nil
}

// DecodeOpinion restores the second opinion attached to rec, or nil.
func DecodeOpinion(rec *store.DiagnosticRecord) (*diagnosis.Opinion, error) {
	if len(rec.SecondOpinion) == 0 {
		return nil, nil
	}
	var op diagnosis.Opinion
	if err := json.Unmarshal(rec.SecondOpinion, &op); err != nil {
		return nil, fmt.Errorf("decode second opinion %s: %w", rec.FeedbackID, err)
	}
	return &op, nil
}
