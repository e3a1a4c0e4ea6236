package spl

import (
	"math"

	"github.com/cwbudde/algo-spl/dsp/core"
)

const (
	// FloorDB is the noise floor in dBFS before any calibration offset.
	FloorDB = -96.0

	// DefaultSmoothing is the one-pole smoothing coefficient.
	DefaultSmoothing = 0.3

	// DefaultHistoryLen is the capacity of the level history window.
	DefaultHistoryLen = 60

	// Calibration offset bounds and default (dB), applied additively to
	// convert dBFS into an approximate SPL reading.
	DefaultCalibrationOffset = 100.0
	MinCalibrationOffset     = 60.0
	MaxCalibrationOffset     = 130.0
)

// ClampOffset limits a calibration offset to the supported range and rounds
// it to the 1 dB adjustment step.
func ClampOffset(db float64) float64 {
	return math.Round(core.Clamp(db, MinCalibrationOffset, MaxCalibrationOffset))
}

// MeterConfig defines configuration for a level meter.
type MeterConfig struct {
	SampleRate  float64
	Channels    int
	BlockFrames int // scratch capacity; larger blocks are processed in chunks

	Weighted          bool // apply A-weighting before the RMS stage
	Calibrated        bool // add CalibrationOffset to the raw dBFS level
	CalibrationOffset float64
}

// MeterOption mutates a MeterConfig.
type MeterOption func(*MeterConfig)

// DefaultMeterConfig returns a raw dBFS meter configuration.
func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		SampleRate:  48000,
		Channels:    1,
		BlockFrames: 4096,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) MeterOption {
	return func(cfg *MeterConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChannels sets the number of interleaved input channels.
func WithChannels(channels int) MeterOption {
	return func(cfg *MeterConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// WithBlockFrames sets the pre-allocated scratch capacity in frames.
func WithBlockFrames(frames int) MeterOption {
	return func(cfg *MeterConfig) {
		if frames > 0 {
			cfg.BlockFrames = frames
		}
	}
}

// WithAWeighting enables or disables the A-weighting filter stage.
func WithAWeighting(enabled bool) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.Weighted = enabled
	}
}

// WithCalibrationOffset enables calibrated mode with the given offset.
// The offset is clamped to [MinCalibrationOffset, MaxCalibrationOffset]
// and rounded to the 1 dB step.
func WithCalibrationOffset(db float64) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.Calibrated = true
		cfg.CalibrationOffset = ClampOffset(db)
	}
}

// ApplyMeterOptions applies zero or more options to the default config.
func ApplyMeterOptions(opts ...MeterOption) MeterConfig {
	cfg := DefaultMeterConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
