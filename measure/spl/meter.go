package spl

import (
	"math"

	"github.com/cwbudde/algo-spl/dsp/core"
	"github.com/cwbudde/algo-spl/dsp/filter/biquad"
	"github.com/cwbudde/algo-spl/dsp/filter/weighting"
	"github.com/cwbudde/algo-vecmath"
)

// Meter computes instantaneous block levels in dB. Each channel owns an
// independent weighting cascade; sharing one cascade across channels would
// corrupt its recursion state for all of them.
//
// All scratch storage is allocated at construction. Processing never
// allocates, so a Meter is safe to drive from a real-time audio callback.
// A Meter is not safe for concurrent use.
type Meter struct {
	cfg    MeterConfig
	chains []*biquad.Chain
	plane  []float64
	square []float64
}

// NewMeter creates a meter with the given options.
func NewMeter(opts ...MeterOption) *Meter {
	cfg := ApplyMeterOptions(opts...)

	m := &Meter{
		cfg:    cfg,
		plane:  make([]float64, cfg.BlockFrames),
		square: make([]float64, cfg.BlockFrames),
	}

	if cfg.Weighted {
		m.chains = make([]*biquad.Chain, cfg.Channels)
		for i := range m.chains {
			chain, err := weighting.New(cfg.SampleRate)
			if err != nil {
				// Options reject non-positive sample rates.
				panic(err)
			}
			m.chains[i] = chain
		}
	}

	return m
}

// Process computes the level of one interleaved float64 block.
// The result is a finite dB value clamped to [Floor], never NaN; empty or
// all-zero blocks yield the floor.
func (m *Meter) Process(block []float64) float64 {
	return level(m, block)
}

// ProcessFloat32 computes the level of one interleaved float32 block, the
// native capture format of most audio backends.
func (m *Meter) ProcessFloat32(block []float32) float64 {
	return level(m, block)
}

// level deinterleaves one channel at a time into the scratch plane, filters
// it, and accumulates the sum of squares. Blocks larger than the scratch are
// processed in chunks; cascade state carries across chunks, so the result is
// identical to single-pass processing.
func level[T float32 | float64](m *Meter, block []T) float64 {
	channels := m.cfg.Channels
	frames := len(block) / channels
	if frames == 0 {
		return m.Floor()
	}

	var sum float64

	for c := range channels {
		for done := 0; done < frames; {
			n := min(frames-done, len(m.plane))
			plane := m.plane[:n]
			for i := range plane {
				plane[i] = float64(block[(done+i)*channels+c])
			}

			if m.chains != nil {
				m.chains[c].ProcessBlock(plane)
			}

			sq := m.square[:n]
			vecmath.MulBlock(sq, plane, plane)
			for _, v := range sq {
				sum += v
			}

			done += n
		}
	}

	rms := math.Sqrt(sum / float64(frames*channels))

	return m.toDB(rms)
}

// toDB converts an RMS amplitude to the configured dB scale. Degenerate
// inputs (zero, negative, non-finite) collapse to the floor so the smoothing
// recursion downstream only ever sees finite values.
func (m *Meter) toDB(rms float64) float64 {
	floor := m.Floor()
	if rms <= 0 || math.IsNaN(rms) || math.IsInf(rms, 0) {
		return floor
	}

	db := core.LinearToDB(rms)
	if m.cfg.Calibrated {
		db += m.cfg.CalibrationOffset
	}

	if db < floor || math.IsNaN(db) {
		return floor
	}

	return db
}

// Floor returns the clamping floor: FloorDB in raw mode, FloorDB plus the
// calibration offset in calibrated mode.
func (m *Meter) Floor() float64 {
	if m.cfg.Calibrated {
		return FloorDB + m.cfg.CalibrationOffset
	}

	return FloorDB
}

// Reset zeroes the per-channel cascade state. Coefficients are preserved.
// Call on capture restart or any signal discontinuity, so stale filter
// state cannot ring into the next measurement.
func (m *Meter) Reset() {
	for _, chain := range m.chains {
		chain.Reset()
	}
}

// SampleRate returns the design sample rate of the weighting filters.
func (m *Meter) SampleRate() float64 { return m.cfg.SampleRate }

// Channels returns the number of interleaved input channels.
func (m *Meter) Channels() int { return m.cfg.Channels }

// Weighted reports whether the A-weighting stage is enabled.
func (m *Meter) Weighted() bool { return m.cfg.Weighted }

// Calibrated reports whether the calibration offset is applied.
func (m *Meter) Calibrated() bool { return m.cfg.Calibrated }

// CalibrationOffset returns the configured offset (0 in raw mode).
func (m *Meter) CalibrationOffset() float64 {
	if !m.cfg.Calibrated {
		return 0
	}

	return m.cfg.CalibrationOffset
}
