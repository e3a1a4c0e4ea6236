package biquad

// Coefficients holds the transfer function coefficients of a single
// second-order section. a0 is normalized to 1 and not stored.
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Section is a single biquad with coefficients and two state registers,
// processed in Direct Form II Transposed:
//
//	y  = B0*x + w1
//	w1 = B1*x - A1*y + w2
//	w2 = B2*x - A2*y
//
// A Section must not be shared across channels; each channel needs its own
// instance or the recursion state of both is corrupted.
type Section struct {
	Coefficients

	w1, w2 float64
}

// NewSection returns a Section with the given coefficients and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.w1
	s.w1 = s.B1*x - s.A1*y + s.w2
	s.w2 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	w1, w2 := s.w1, s.w2

	for i, x := range buf {
		y := b0*x + w1
		w1 = b1*x - a1*y + w2
		w2 = b2*x - a2*y
		buf[i] = y
	}

	s.w1, s.w2 = w1, w2
}

// Reset zeroes the state registers. Coefficients are preserved.
func (s *Section) Reset() {
	s.w1 = 0
	s.w2 = 0
}

// State returns the current state registers [w1, w2].
func (s *Section) State() [2]float64 {
	return [2]float64{s.w1, s.w2}
}

// SetState restores previously saved state registers.
func (s *Section) SetState(state [2]float64) {
	s.w1 = state[0]
	s.w2 = state[1]
}
