package diagnosis

import "testing"

func TestConfidenceBoost_Enhance(t *testing.T) {
	b := DefaultConfidenceBoost()

	tests := []struct {
		name       string
		confidence float64
		media      int
		want       float64
		analyzed   bool
	}{
		{"no media leaves confidence", 0.5, 0, 0.5, false},
		{"negative count counts as none", 0.5, -1, 0.5, false},
		{"boosted by a fifth", 1.0 / 3.0, 2, 0.4, true},
		{"capped", 0.9, 1, 0.95, true},
		{"already at one", 1, 3, 0.95, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &Diagnosis{Confidence: tt.confidence}
			out := b.Enhance(in, tt.media)
			if !approx(out.Confidence, tt.want) {
				t.Errorf("confidence = %f, want %f", out.Confidence, tt.want)
			}
			if out.MediaAnalyzed != tt.analyzed {
				t.Errorf("media analyzed = %v, want %v", out.MediaAnalyzed, tt.analyzed)
			}
			if in.Confidence != tt.confidence || in.MediaAnalyzed {
				t.Error("input diagnosis was modified")
			}
		})
	}
}

func TestConfidenceBoost_Nil(t *testing.T) {
	if DefaultConfidenceBoost().Enhance(nil, 2) != nil {
		t.Error("expected nil passthrough")
	}
}
