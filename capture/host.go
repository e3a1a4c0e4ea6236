package capture

// Device describes one capture-capable audio device.
type Device struct {
	ID   string
	Name string
}

// Format is the negotiated stream format of a bound device.
type Format struct {
	SampleRate float64
	Channels   int
}

// BlockFunc receives one interleaved float32 block from the audio backend.
// It runs on the backend's real-time thread and must not block, allocate,
// or take locks.
type BlockFunc func(samples []float32, frames, channels int)

// Stream is a bound capture stream. Start registers the block callback and
// begins delivery; Stop ends delivery and releases the hardware binding.
// Stop is idempotent and must be safe to call on a stream that never
// started.
type Stream interface {
	Format() Format
	Start(fn BlockFunc) error
	Stop() error
}

// Host abstracts the platform audio backend: device enumeration and
// stream binding. An empty device ID binds the system default device.
type Host interface {
	Devices() ([]Device, error)
	Bind(deviceID string) (Stream, error)
}

// OffsetStore persists the calibration offset across sessions. A Session
// reads it once at construction and writes it on every user mutation.
type OffsetStore interface {
	LoadOffset() (float64, error)
	SaveOffset(db float64) error
}
