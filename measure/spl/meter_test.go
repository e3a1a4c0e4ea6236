package spl

import (
	"math"
	"testing"
)

// sine returns n mono samples of a sine at freq Hz with the given amplitude.
func sine(n int, freq, amplitude, sampleRate float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}

	return out
}

// interleave merges per-channel slices of equal length into one block.
func interleave(channels ...[]float64) []float64 {
	frames := len(channels[0])
	out := make([]float64, 0, frames*len(channels))
	for i := range frames {
		for _, ch := range channels {
			out = append(out, ch[i])
		}
	}

	return out
}

func TestMeter_EmptyBlockYieldsFloor(t *testing.T) {
	m := NewMeter()
	if got := m.Process(nil); got != FloorDB {
		t.Errorf("Process(nil) = %g, want %g", got, FloorDB)
	}
	if got := m.Process([]float64{}); got != FloorDB {
		t.Errorf("Process(empty) = %g, want %g", got, FloorDB)
	}
}

func TestMeter_ZeroBlocksYieldFloorNeverNaN(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		frames   int
		weighted bool
	}{
		{"mono short", 1, 1, false},
		{"mono block", 1, 4800, false},
		{"stereo", 2, 1024, false},
		{"weighted mono", 1, 4800, true},
		{"weighted 8ch", 8, 256, true},
		{"oversized block", 1, 20000, false},
	}
	for _, tt := range tests {
		m := NewMeter(WithChannels(tt.channels), WithAWeighting(tt.weighted))
		got := m.Process(make([]float64, tt.frames*tt.channels))
		if math.IsNaN(got) {
			t.Errorf("%s: got NaN, want floor", tt.name)
		}
		if got != FloorDB {
			t.Errorf("%s: got %g, want %g", tt.name, got, FloorDB)
		}
	}
}

func TestMeter_FullScaleSineIsMinus3dBFS(t *testing.T) {
	m := NewMeter(WithSampleRate(48000), WithChannels(1))
	got := m.Process(sine(4800, 1000, 1, 48000))

	// RMS of a full-scale sine is 1/sqrt(2): 20*log10 = -3.0103 dBFS.
	if math.Abs(got - -3.0103) > 0.01 {
		t.Errorf("full-scale 1 kHz sine = %.4f dBFS, want -3.01", got)
	}
}

func TestMeter_WeightedSineAtReferenceFrequency(t *testing.T) {
	m := NewMeter(WithSampleRate(48000), WithChannels(1), WithAWeighting(true))

	// 0 dB at 1 kHz: after the filter transient settles the weighted level
	// matches the unweighted one. Process a lead-in block first.
	m.Process(sine(48000, 1000, 1, 48000))
	got := m.Process(sine(4800, 1000, 1, 48000))

	if math.Abs(got - -3.0103) > 0.1 {
		t.Errorf("weighted 1 kHz sine = %.4f dB, want -3.01 (±0.1)", got)
	}
}

func TestMeter_WeightingAttenuatesLowFrequencies(t *testing.T) {
	raw := NewMeter(WithSampleRate(48000), WithChannels(1))
	weighted := NewMeter(WithSampleRate(48000), WithChannels(1), WithAWeighting(true))

	block := sine(48000, 50, 1, 48000)
	rawDB := raw.Process(block)
	weightedDB := weighted.Process(block)

	// IEC 61672: roughly -30 dB relative response at 50 Hz.
	diff := rawDB - weightedDB
	if diff < 25 || diff > 35 {
		t.Errorf("50 Hz attenuation = %.1f dB, want ~30 dB", diff)
	}
}

func TestMeter_SilentChannelLowersLevel(t *testing.T) {
	const frames = 4800

	left := sine(frames, 1000, 1, 48000)
	right := make([]float64, frames)

	m := NewMeter(WithSampleRate(48000), WithChannels(2))
	got := m.Process(interleave(left, right))

	// Half the power of the mono case: -3.01 - 3.01 dB.
	if math.Abs(got - -6.0206) > 0.01 {
		t.Errorf("sine+silence stereo = %.4f dBFS, want -6.02", got)
	}
}

func TestMeter_ChannelStateIsolation(t *testing.T) {
	const frames = 9600

	// Identical signals on both channels of a weighted stereo meter must
	// measure the same level as the mono case. Shared cascade state would
	// interleave the recursion and corrupt both channels.
	block := sine(frames, 250, 0.5, 48000)

	mono := NewMeter(WithSampleRate(48000), WithChannels(1), WithAWeighting(true))
	stereo := NewMeter(WithSampleRate(48000), WithChannels(2), WithAWeighting(true))

	want := mono.Process(block)
	got := stereo.Process(interleave(block, block))

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("stereo duplicate-signal level = %.9f, mono level = %.9f", got, want)
	}
}

func TestMeter_ChunkedProcessingMatchesSinglePass(t *testing.T) {
	block := sine(12800, 440, 0.8, 48000)

	single := NewMeter(WithSampleRate(48000), WithChannels(1), WithAWeighting(true),
		WithBlockFrames(16384))
	chunked := NewMeter(WithSampleRate(48000), WithChannels(1), WithAWeighting(true),
		WithBlockFrames(100))

	want := single.Process(block)
	got := chunked.Process(block)

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("chunked %.12f, single-pass %.12f", got, want)
	}
}

func TestMeter_CalibratedLevel(t *testing.T) {
	m := NewMeter(WithSampleRate(48000), WithChannels(1), WithCalibrationOffset(100))

	// RMS 0.01 is -40 dBFS; with a 100 dB offset the reading is 60 dB.
	got := m.Process(sine(4800, 1000, 0.01*math.Sqrt2, 48000))
	if math.Abs(got-60) > 0.01 {
		t.Errorf("calibrated -40 dBFS sine = %.4f dB, want 60", got)
	}
}

func TestMeter_CalibratedFloor(t *testing.T) {
	m := NewMeter(WithCalibrationOffset(100))

	want := FloorDB + 100
	if got := m.Floor(); got != want {
		t.Errorf("Floor() = %g, want %g", got, want)
	}
	if got := m.Process(make([]float64, 1024)); got != want {
		t.Errorf("calibrated zero block = %g, want %g", got, want)
	}
}

func TestMeter_OffsetClamping(t *testing.T) {
	tests := []struct {
		offset float64
		want   float64
	}{
		{100, 100},
		{60, 60},
		{130, 130},
		{59, 60},
		{131.7, 130},
		{99.5, 100},
	}
	for _, tt := range tests {
		m := NewMeter(WithCalibrationOffset(tt.offset))
		if got := m.CalibrationOffset(); got != tt.want {
			t.Errorf("WithCalibrationOffset(%g): offset = %g, want %g", tt.offset, got, tt.want)
		}
	}
}

func TestMeter_NoUpperClamp(t *testing.T) {
	// Values above full scale pass through unmodified.
	m := NewMeter(WithChannels(1))
	block := make([]float64, 1024)
	for i := range block {
		block[i] = 4
	}

	got := m.Process(block)
	want := 20 * math.Log10(4)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("over-full-scale block = %.4f dB, want %.4f", got, want)
	}
}

func TestMeter_ResetReplaysLikeFresh(t *testing.T) {
	block := sine(4800, 330, 0.7, 48000)

	used := NewMeter(WithSampleRate(48000), WithChannels(1), WithAWeighting(true))
	used.Process(sine(4800, 77, 1, 48000))
	used.Reset()

	fresh := NewMeter(WithSampleRate(48000), WithChannels(1), WithAWeighting(true))

	if got, want := used.Process(block), fresh.Process(block); got != want {
		t.Errorf("after Reset: %.12f, fresh meter: %.12f", got, want)
	}
}

func TestMeter_ProcessDoesNotAllocate(t *testing.T) {
	m := NewMeter(WithSampleRate(48000), WithChannels(2), WithAWeighting(true))
	block32 := make([]float32, 2048)
	for i := range block32 {
		block32[i] = float32(math.Sin(float64(i) / 17))
	}

	allocs := testing.AllocsPerRun(100, func() {
		m.ProcessFloat32(block32)
	})
	if allocs != 0 {
		t.Errorf("ProcessFloat32 allocates %.0f objects per call, want 0", allocs)
	}
}

func TestMeter_Float32MatchesFloat64(t *testing.T) {
	block64 := sine(4800, 1000, 0.5, 48000)
	block32 := make([]float32, len(block64))
	for i, v := range block64 {
		block32[i] = float32(v)
	}

	a := NewMeter(WithSampleRate(48000), WithChannels(1))
	b := NewMeter(WithSampleRate(48000), WithChannels(1))

	got := a.ProcessFloat32(block32)
	want := b.Process(block64)

	// float32 quantization only.
	if math.Abs(got-want) > 1e-4 {
		t.Errorf("float32 path %.6f, float64 path %.6f", got, want)
	}
}
