package diagnosis

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/autocare/autocare/internal/llm"
)

const vagueDescription = "the radio makes a weird sound sometimes"

func waitForOpinion(t *testing.T, svc *Service, desc string) (*Diagnosis, *Opinion) {
	t.Helper()

	var mu sync.Mutex
	var got *Opinion
	done := make(chan struct{})

	cb := func(op *Opinion) {
		mu.Lock()
		got = op
		mu.Unlock()
		close(done)
	}

	d := svc.Diagnose(context.Background(), desc, Options{Region: "Nigeria"}, 0, cb)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for second opinion")
	}

	mu.Lock()
	defer mu.Unlock()
	return d, got
}

func TestService_MatchedWithoutLLM(t *testing.T) {
	svc := NewService(testEngine(t), nil)
	defer svc.Close()

	if svc.SecondOpinionEnabled() {
		t.Error("second opinion should be disabled without a provider")
	}

	d := svc.Diagnose(context.Background(), "engine knocking", Options{}, 0, nil)
	if d.SymptomKey != "knocking" || d.MediaAnalyzed {
		t.Errorf("got %s (media %v)", d.SymptomKey, d.MediaAnalyzed)
	}
}

func TestService_GenericWithoutLLM(t *testing.T) {
	svc := NewService(testEngine(t), nil)

	d := svc.Diagnose(context.Background(), vagueDescription, Options{}, 0, func(*Opinion) {
		t.Error("callback should not fire without a provider")
	})
	if !d.Generic {
		t.Error("expected generic diagnosis")
	}
	svc.Close()
}

func TestService_MediaBoost(t *testing.T) {
	svc := NewService(testEngine(t), nil)
	defer svc.Close()

	d := svc.Diagnose(context.Background(), "Engine is knocking when I accelerate and it gets hot", Options{}, 2, nil)
	if !d.MediaAnalyzed || !approx(d.Confidence, 0.4) {
		t.Errorf("confidence = %f, media = %v", d.Confidence, d.MediaAnalyzed)
	}
}

type fixedHook struct{}

func (fixedHook) Enhance(d *Diagnosis, _ int) *Diagnosis {
	out := *d
	out.Confidence = 0.5
	return &out
}

func TestService_CustomMediaHook(t *testing.T) {
	svc := NewService(testEngine(t), nil, WithMediaHook(fixedHook{}))
	defer svc.Close()

	if d := svc.Diagnose(context.Background(), "engine knocking", Options{}, 0, nil); d.Confidence != 0.5 {
		t.Errorf("confidence = %f, want hook value", d.Confidence)
	}
}

func TestService_SecondOpinionForGeneric(t *testing.T) {
	resp := json.RawMessage(`{"symptom":"suspension/noise","confidence":0.55,"reasoning":"Sounds over bumps usually come from worn links"}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	svc := NewService(testEngine(t), mock)

	d, op := waitForOpinion(t, svc, vagueDescription)
	if !d.Generic {
		t.Errorf("sync result should be generic")
	}
	if op == nil {
		t.Fatal("opinion is nil")
	}
	if op.FeedbackID != d.FeedbackID {
		t.Errorf("feedback id = %q, want %q", op.FeedbackID, d.FeedbackID)
	}
	if op.Symptom != "suspension/noise" || op.Problem != "Suspension Noise" {
		t.Errorf("opinion = %+v", op)
	}

	svc.Close()
}

func TestService_SecondOpinionNoMatch(t *testing.T) {
	resp := json.RawMessage(`{"symptom":null,"confidence":0.1,"reasoning":"Not a mechanical fault"}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	svc := NewService(testEngine(t), mock)

	_, op := waitForOpinion(t, svc, vagueDescription)
	if op == nil || op.Matched() {
		t.Errorf("expected an unmatched opinion, got %+v", op)
	}

	svc.Close()
}

func TestService_MatchSkipsLLM(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue, must not be called
	svc := NewService(testEngine(t), mock)

	d := svc.Diagnose(context.Background(), "squealing brakes", Options{}, 0, nil)
	if d.Generic {
		t.Error("expected a catalog match")
	}
	svc.Close()

	if mock.CallCount() != 0 {
		t.Errorf("LLM was called %d times, want 0", mock.CallCount())
	}
}

func TestService_CanceledRequestStillGetsOpinion(t *testing.T) {
	resp := json.RawMessage(`{"symptom":null,"confidence":0,"reasoning":"n/a"}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	svc := NewService(testEngine(t), mock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	svc.Diagnose(ctx, vagueDescription, Options{}, 0, func(*Opinion) { close(done) })
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("second opinion was abandoned with the request")
	}
	svc.Close()
}

func TestService_CloseDrainsAndIsIdempotent(t *testing.T) {
	mock := llm.NewMockProvider()
	for range 3 {
		mock.AddResponse(llm.MockResponse{Content: json.RawMessage(`{"symptom":null,"confidence":0,"reasoning":"n/a"}`)})
	}
	svc := NewService(testEngine(t), mock)

	var mu sync.Mutex
	var count int
	for range 3 {
		svc.Diagnose(context.Background(), vagueDescription, Options{}, 0, func(*Opinion) {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}

	svc.Close()
	svc.Close()

	mu.Lock()
	defer mu.Unlock()
	if count != 3 {
		t.Errorf("callbacks = %d, want 3 queued opinions to finish", count)
	}

	// Diagnose still works after Close but no longer dispatches.
	if d := svc.Diagnose(context.Background(), vagueDescription, Options{}, 0, nil); !d.Generic {
		t.Error("expected generic diagnosis after close")
	}
	if mock.CallCount() != 3 {
		t.Errorf("LLM calls = %d, want 3", mock.CallCount())
	}
}
