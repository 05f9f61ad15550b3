package simutil

import "testing"

func TestClampWithinRange(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestClampBelowMin(t *testing.T) {
	if got := Clamp(-5.0, 0.0, 100.0); got != 0.0 {
		t.Fatalf("expected 0, got %f", got)
	}
}

func TestClampAboveMax(t *testing.T) {
	if got := Clamp(150.0, 0.0, 100.0); got != 100.0 {
		t.Fatalf("expected 100, got %f", got)
	}
}
