package spl

import (
	"math"
	"testing"
)

func TestSmoother_StartsUndefined(t *testing.T) {
	s := NewSmoother(0.3)
	if s.Defined() {
		t.Error("fresh smoother reports Defined")
	}
	if !math.IsNaN(s.Value()) {
		t.Errorf("fresh smoother Value() = %g, want NaN", s.Value())
	}
}

func TestSmoother_FirstUpdateAdoptsExactly(t *testing.T) {
	s := NewSmoother(0.3)
	if got := s.Update(-42.5); got != -42.5 {
		t.Errorf("first Update = %g, want -42.5", got)
	}
	if !s.Defined() {
		t.Error("smoother undefined after first update")
	}
}

func TestSmoother_ConvergesGeometrically(t *testing.T) {
	const alpha = 0.3

	s := NewSmoother(alpha)
	s.Update(0)

	// Step input: the distance to the target shrinks by (1-alpha) each update.
	remaining := 10.0
	for range 20 {
		remaining *= 1 - alpha
		got := s.Update(10)
		if math.Abs((10-got)-remaining) > 1e-12 {
			t.Fatalf("distance to target = %.15f, want %.15f", 10-got, remaining)
		}
	}
}

func TestSmoother_NonFiniteInputIgnored(t *testing.T) {
	s := NewSmoother(0.3)
	s.Update(5)

	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := s.Update(x); got != 5 {
			t.Errorf("Update(%g) = %g, want untouched 5", x, got)
		}
	}

	// Undefined state: non-finite input must not become the first sample.
	s.Reset()
	s.Update(math.NaN())
	if s.Defined() {
		t.Error("NaN input defined the smoother")
	}
}

func TestSmoother_ResetReturnsToUndefined(t *testing.T) {
	s := NewSmoother(0.3)
	s.Update(12)
	s.Update(14)
	s.Reset()

	if s.Defined() {
		t.Error("smoother still defined after Reset")
	}
	if got := s.Update(60); got != 60 {
		t.Errorf("first Update after Reset = %g, want adopted 60", got)
	}
}

func TestNewSmoother_InvalidAlphaFallsBack(t *testing.T) {
	for _, alpha := range []float64{0, -0.1, 1.5, math.NaN()} {
		s := NewSmoother(alpha)
		if s.Alpha() != DefaultSmoothing {
			t.Errorf("NewSmoother(%g).Alpha() = %g, want %g", alpha, s.Alpha(), DefaultSmoothing)
		}
	}
}
