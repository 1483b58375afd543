package domain

import "testing"

func TestLevelForScoreBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  ConfidenceLevel
	}{
		{score: 1.0, want: ConfidenceHigh},
		{score: 0.8, want: ConfidenceHigh},
		{score: 0.79, want: ConfidenceMedium},
		{score: 0.6, want: ConfidenceMedium},
		{score: 0.59, want: ConfidenceLow},
		{score: 0.4, want: ConfidenceLow},
		{score: 0.39, want: ConfidenceUncertain},
		{score: 0.0, want: ConfidenceUncertain},
	}
	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.want {
			t.Errorf("LevelForScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestLevelForScoreMonotonic(t *testing.T) {
	prev := ConfidenceUncertain
	for score := 0.0; score <= 1.0; score += 0.01 {
		level := LevelForScore(score)
		if level.Rank() < prev.Rank() {
			t.Fatalf("bucketing not monotonic at %v: %s after %s", score, level, prev)
		}
		prev = level
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: -0.5, want: 0},
		{in: 0, want: 0},
		{in: 0.42, want: 0.42},
		{in: 1, want: 1},
		{in: 1.7, want: 1},
	}
	for _, tt := range tests {
		if got := ClampScore(tt.in); got != tt.want {
			t.Errorf("ClampScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWrapErrorKinds(t *testing.T) {
	err := WrapError(ErrUnavailable, "call validator", ErrTemporary)
	if !IsKind(err, ErrUnavailable) {
		t.Error("wrapped error lost its kind")
	}
	if !IsKind(err, ErrTemporary) {
		t.Error("wrapped error lost its cause")
	}
	if WrapError(ErrUnavailable, "noop", nil) != nil {
		t.Error("WrapError(nil) should be nil")
	}
}
