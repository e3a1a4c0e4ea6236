package capture

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cwbudde/algo-spl/measure/spl"
)

// Session is the capture lifecycle state machine. It is either Stopped or
// Running; Start and Stop transition between the two and are no-ops when
// already in the target state. All published state (level, history, device
// list, calibration offset) belongs to the session instance and is read
// through its accessors.
//
// Session methods are safe for concurrent use. Start, Stop and SwitchDevice
// must not be called from the audio callback.
type Session struct {
	host Host
	cfg  SessionConfig

	mu       sync.Mutex
	running  bool
	deviceID string
	format   Format
	stream   Stream
	done     chan struct{}
	wg       sync.WaitGroup

	offset   float64
	smoother *spl.Smoother
	history  *spl.History
	devices  []Device
}

// NewSession creates a session on the given host. When an OffsetStore is
// configured, the persisted calibration offset is loaded here; a missing or
// unreadable store falls back to the configured default.
func NewSession(host Host, opts ...SessionOption) *Session {
	cfg := ApplySessionOptions(opts...)

	s := &Session{
		host:     host,
		cfg:      cfg,
		offset:   cfg.CalibrationOffset,
		smoother: spl.NewSmoother(cfg.Smoothing),
		history:  spl.NewHistory(cfg.HistoryLen),
	}

	if cfg.Store != nil {
		if db, err := cfg.Store.LoadOffset(); err == nil {
			s.offset = spl.ClampOffset(db)
		}
	}

	return s
}

// Start binds a device and begins capturing. An empty deviceID binds the
// system default. When binding a named device fails, the system default is
// tried exactly once before giving up. No-op when already Running.
//
// Errors wrap ErrBind, ErrConfiguration or ErrCapture; on any error the
// session remains Stopped with no hardware bound.
func (s *Session) Start(deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	stream, boundID, err := s.bind(deviceID)
	if err != nil {
		return err
	}

	format := stream.Format()
	if format.SampleRate <= 0 || format.Channels <= 0 {
		_ = stream.Stop()

		return fmt.Errorf("%w: device %q negotiated %g Hz, %d channels",
			ErrConfiguration, boundID, format.SampleRate, format.Channels)
	}

	// Fresh filters and queue per start: no state or in-flight values from
	// a previous binding can reach the new device's pipeline.
	meter := spl.NewMeter(
		spl.WithSampleRate(format.SampleRate),
		spl.WithChannels(format.Channels),
		spl.WithAWeighting(s.cfg.Weighted),
		spl.WithBlockFrames(s.cfg.BlockFrames),
	)
	levels := make(chan float64, s.cfg.QueueDepth)
	done := make(chan struct{})

	err = stream.Start(func(samples []float32, frames, channels int) {
		db := meter.ProcessFloat32(samples[:frames*channels])
		select {
		case levels <- db:
		default:
			// Overloaded control path: drop rather than block the
			// audio thread.
		}
	})
	if err != nil {
		_ = stream.Stop()

		return fmt.Errorf("%w: device %q: %v", ErrCapture, boundID, err)
	}

	// Launched only after the stream is up: the control goroutine takes
	// s.mu, which Start holds for its entire body. The buffered channel
	// absorbs any blocks the callback delivers in the meantime.
	s.wg.Add(1)
	go s.control(levels, done)

	s.running = true
	s.deviceID = boundID
	s.format = format
	s.stream = stream
	s.done = done

	return nil
}

// bind acquires a stream for the requested device, falling back to the
// system default once. Callers hold s.mu.
func (s *Session) bind(deviceID string) (Stream, string, error) {
	stream, err := s.host.Bind(deviceID)
	if err == nil {
		return stream, deviceID, nil
	}

	if deviceID == "" {
		return nil, "", fmt.Errorf("%w: default device: %v", ErrBind, err)
	}

	stream, fallbackErr := s.host.Bind("")
	if fallbackErr != nil {
		return nil, "", fmt.Errorf("%w: device %q (%v), default fallback (%v)",
			ErrBind, deviceID, err, fallbackErr)
	}

	return stream, "", nil
}

// control consumes posted levels strictly in arrival order, applies the
// calibration offset and the smoothing recursion, and samples the published
// level into the history window on the configured cadence.
func (s *Session) control(levels <-chan float64, done <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.HistoryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case db := <-levels:
			s.mu.Lock()
			if s.cfg.Calibrated {
				db += s.offset
			}
			s.smoother.Update(db)
			s.mu.Unlock()
		case <-ticker.C:
			s.mu.Lock()
			s.history.Append(s.smoother.Value())
			s.mu.Unlock()
		}
	}
}

// Stop ends capture and releases the hardware binding before returning, so
// a subsequent Start can bind a different device without racing a lingering
// callback. Idempotent; no-op when Stopped.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()

		return
	}

	stream, done := s.stream, s.done
	s.running = false
	s.stream = nil
	s.done = nil
	s.mu.Unlock()

	_ = stream.Stop()
	close(done)
	s.wg.Wait()
}

// SwitchDevice stops the current capture, resets the published level to the
// undefined state, and starts on the new device. The first block from the
// new device is adopted with zero smoothing lag.
func (s *Session) SwitchDevice(deviceID string) error {
	s.Stop()

	s.mu.Lock()
	s.smoother.Reset()
	s.mu.Unlock()

	return s.Start(deviceID)
}

// Level returns the published smoothed level, NaN while no data has been
// processed since construction or the last device switch.
func (s *Session) Level() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.smoother.Value()
}

// History returns the sampled level window oldest-first. Entries may be NaN;
// consumers render those as gaps.
func (s *Session) History() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.history.Values()
}

// RefreshDevices queries the host for the current capture device list and
// caches it.
func (s *Session) RefreshDevices() ([]Device, error) {
	devices, err := s.host.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerate capture devices: %w", err)
	}

	s.mu.Lock()
	s.devices = devices
	s.mu.Unlock()

	return devices, nil
}

// UpdateDevices replaces the cached device list. Called by the backend's
// change notification; the session never polls.
func (s *Session) UpdateDevices(devices []Device) {
	s.mu.Lock()
	s.devices = devices
	s.mu.Unlock()
}

// Devices returns the cached device list.
func (s *Session) Devices() []Device {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Device, len(s.devices))
	copy(out, s.devices)

	return out
}

// SetCalibrationOffset clamps and applies a new calibration offset, writing
// it through the configured store. Takes effect on the next processed block.
func (s *Session) SetCalibrationOffset(db float64) error {
	db = spl.ClampOffset(db)

	s.mu.Lock()
	s.offset = db
	s.mu.Unlock()

	if s.cfg.Store != nil {
		if err := s.cfg.Store.SaveOffset(db); err != nil {
			return fmt.Errorf("persist calibration offset: %w", err)
		}
	}

	return nil
}

// CalibrationOffset returns the active calibration offset (0 in raw mode).
func (s *Session) CalibrationOffset() float64 {
	if !s.cfg.Calibrated {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.offset
}

// Calibrated reports whether the calibration offset is applied.
func (s *Session) Calibrated() bool { return s.cfg.Calibrated }

// Weighted reports whether the A-weighting stage is enabled.
func (s *Session) Weighted() bool { return s.cfg.Weighted }

// Floor returns the level floor of the active mode.
func (s *Session) Floor() float64 {
	if !s.cfg.Calibrated {
		return spl.FloorDB
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return spl.FloorDB + s.offset
}

// Running reports whether the session is capturing.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// DeviceID returns the bound device ID, empty for the system default or
// while Stopped.
func (s *Session) DeviceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deviceID
}

// Format returns the negotiated stream format of the current binding, the
// zero Format while Stopped.
func (s *Session) Format() Format {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return Format{}
	}

	return s.format
}

// Defined reports whether Level currently holds data.
func (s *Session) Defined() bool { return !math.IsNaN(s.Level()) }
