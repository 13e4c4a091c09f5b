package diagnosis

// MediaEnhancementHook post-processes a diagnosis when the caller attached
// photos, audio or video of the problem.
type MediaEnhancementHook interface {
	Enhance(d *Diagnosis, mediaCount int) *Diagnosis
}

// ConfidenceBoost scales confidence by Factor, capped at Cap, whenever any
// media is present. It does not inspect the media itself.
type ConfidenceBoost struct {
	Factor float64
	Cap    float64
}

// DefaultConfidenceBoost returns the standard ×1.2 boost capped at 0.95.
func DefaultConfidenceBoost() ConfidenceBoost {
	return ConfidenceBoost{Factor: 1.2, Cap: 0.95}
}

// Enhance returns a copy of d with boosted confidence, or d unchanged when
// mediaCount is zero.
func (b ConfidenceBoost) Enhance(d *Diagnosis, mediaCount int) *Diagnosis {
	if d == nil || mediaCount <= 0 {
		return d
	}
	out := *d
	out.Confidence = min(d.Confidence*b.Factor, b.Cap)
	out.MediaAnalyzed = true
	return &out
}
