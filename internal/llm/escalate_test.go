package llm

import (
	"math"
	"testing"
)

func approx(got, want float32) bool {
	return math.Abs(float64(got)-float64(want)) < 1e-6
}

func TestEscalate_FirstAttemptUsesBase(t *testing.T) {
	base := Params{MaxTokens: 700, Temperature: 0.4}
	policy := Escalate(base, 0.1)

	p := policy(1)
	if !approx(p.Temperature, 0.4) {
		t.Errorf("expected temperature 0.4, got %v", p.Temperature)
	}
	if !approx(p.FrequencyPenalty, 0) || !approx(p.PresencePenalty, 0) {
		t.Errorf("expected zero penalties, got %v/%v", p.FrequencyPenalty, p.PresencePenalty)
	}
	if p.MaxTokens != 700 {
		t.Errorf("expected max tokens 700, got %d", p.MaxTokens)
	}
}

func TestEscalate_ThirdAttempt(t *testing.T) {
	policy := Escalate(Params{Temperature: 0.4}, 0.1)

	p := policy(3)
	if !approx(p.Temperature, 0.6) {
		t.Errorf("expected temperature 0.6, got %v", p.Temperature)
	}
	if !approx(p.FrequencyPenalty, 0.2) {
		t.Errorf("expected frequency penalty 0.2, got %v", p.FrequencyPenalty)
	}
	if !approx(p.PresencePenalty, 0.2) {
		t.Errorf("expected presence penalty 0.2, got %v", p.PresencePenalty)
	}
}

func TestEscalate_ClampsNonPositiveAttempt(t *testing.T) {
	policy := Escalate(Params{Temperature: 0.4}, 0.1)
	if p := policy(0); !approx(p.Temperature, 0.4) {
		t.Errorf("attempt 0 should behave like attempt 1, got temperature %v", p.Temperature)
	}
}
