package capture

import (
	"time"

	"github.com/cwbudde/algo-spl/measure/spl"
)

// SessionConfig defines configuration for a capture session.
type SessionConfig struct {
	Weighted          bool
	Calibrated        bool
	CalibrationOffset float64

	Smoothing       float64
	HistoryInterval time.Duration
	HistoryLen      int
	QueueDepth      int // producer→control channel depth
	BlockFrames     int // meter scratch capacity per channel

	Store OffsetStore
}

// SessionOption mutates a SessionConfig.
type SessionOption func(*SessionConfig)

// DefaultSessionConfig returns a raw dBFS, unweighted session configuration.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		CalibrationOffset: spl.DefaultCalibrationOffset,
		Smoothing:         spl.DefaultSmoothing,
		HistoryInterval:   time.Second,
		HistoryLen:        spl.DefaultHistoryLen,
		QueueDepth:        8,
		BlockFrames:       4096,
	}
}

// WithAWeighting enables or disables the A-weighting filter stage.
func WithAWeighting(enabled bool) SessionOption {
	return func(cfg *SessionConfig) {
		cfg.Weighted = enabled
	}
}

// WithCalibrationOffset enables calibrated mode with the given offset in dB.
// The offset is clamped to the supported range and rounded to the 1 dB step.
func WithCalibrationOffset(db float64) SessionOption {
	return func(cfg *SessionConfig) {
		cfg.Calibrated = true
		cfg.CalibrationOffset = spl.ClampOffset(db)
	}
}

// WithOffsetStore enables calibrated mode and wires persistence for the
// calibration offset. The stored value is loaded at session construction;
// SetCalibrationOffset writes back on every change.
func WithOffsetStore(store OffsetStore) SessionOption {
	return func(cfg *SessionConfig) {
		cfg.Calibrated = true
		cfg.Store = store
	}
}

// WithSmoothing sets the one-pole smoothing coefficient.
func WithSmoothing(alpha float64) SessionOption {
	return func(cfg *SessionConfig) {
		cfg.Smoothing = alpha
	}
}

// WithHistoryInterval sets the history sampling cadence.
func WithHistoryInterval(d time.Duration) SessionOption {
	return func(cfg *SessionConfig) {
		if d > 0 {
			cfg.HistoryInterval = d
		}
	}
}

// WithHistoryLen sets the history window capacity.
func WithHistoryLen(n int) SessionOption {
	return func(cfg *SessionConfig) {
		if n > 0 {
			cfg.HistoryLen = n
		}
	}
}

// WithQueueDepth sets the capacity of the producer-to-control level queue.
func WithQueueDepth(n int) SessionOption {
	return func(cfg *SessionConfig) {
		if n > 0 {
			cfg.QueueDepth = n
		}
	}
}

// WithBlockFrames sets the meter scratch capacity in frames.
func WithBlockFrames(frames int) SessionOption {
	return func(cfg *SessionConfig) {
		if frames > 0 {
			cfg.BlockFrames = frames
		}
	}
}

// ApplySessionOptions applies zero or more options to the default config.
func ApplySessionOptions(opts ...SessionOption) SessionConfig {
	cfg := DefaultSessionConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
