package spl

import "math"

// Smoother applies one-pole exponential smoothing to a stream of
// instantaneous levels. It starts in an undefined state (NaN): the first
// update adopts its input exactly, every later update moves the published
// value by alpha times the difference. Updates must arrive in block order;
// the recursion is order-dependent.
type Smoother struct {
	alpha float64
	level float64
}

// NewSmoother returns a Smoother with the given coefficient. Values outside
// (0, 1] fall back to DefaultSmoothing.
func NewSmoother(alpha float64) *Smoother {
	if !(alpha > 0 && alpha <= 1) {
		alpha = DefaultSmoothing
	}

	return &Smoother{alpha: alpha, level: math.NaN()}
}

// Update feeds one instantaneous level and returns the published value.
// Non-finite inputs leave the state untouched; they must never enter the
// recursion.
func (s *Smoother) Update(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return s.level
	}

	if !s.Defined() {
		s.level = x
		return x
	}

	s.level += s.alpha * (x - s.level)

	return s.level
}

// Value returns the current published level, NaN while undefined.
func (s *Smoother) Value() float64 { return s.level }

// Defined reports whether a level has been published since the last Reset.
func (s *Smoother) Defined() bool { return !math.IsNaN(s.level) }

// Alpha returns the smoothing coefficient.
func (s *Smoother) Alpha() float64 { return s.alpha }

// Reset returns the Smoother to the undefined state.
func (s *Smoother) Reset() { s.level = math.NaN() }
