// Package miniaudio implements the capture.Host contract on top of the
// miniaudio backend via gen2brain/malgo.
package miniaudio

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/gen2brain/malgo"

	"github.com/cwbudde/algo-spl/capture"
)

// Host enumerates and binds capture devices through a shared malgo context.
// Close releases the context; all streams must be stopped first.
type Host struct {
	ctx *malgo.AllocatedContext
}

// NewHost initializes the platform audio backend.
func NewHost() (*Host, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}

	return &Host{ctx: ctx}, nil
}

// Devices returns the capture-capable devices known to the backend.
func (h *Host) Devices() ([]capture.Device, error) {
	infos, err := h.ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("enumerate capture devices: %w", err)
	}

	devices := make([]capture.Device, 0, len(infos))
	for i := range infos {
		devices = append(devices, capture.Device{
			ID:   infos[i].ID.String(),
			Name: infos[i].Name(),
		})
	}

	return devices, nil
}

// Bind opens a capture stream on the given device, the system default when
// deviceID is empty. The device keeps its native sample rate and channel
// count; samples are delivered as interleaved float32.
func (h *Host) Bind(deviceID string) (capture.Stream, error) {
	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.Format = malgo.FormatF32
	cfg.Alsa.NoMMap = 1

	if deviceID != "" {
		infos, err := h.ctx.Devices(malgo.Capture)
		if err != nil {
			return nil, fmt.Errorf("enumerate capture devices: %w", err)
		}

		found := false
		for i := range infos {
			if infos[i].ID.String() == deviceID {
				cfg.Capture.DeviceID = infos[i].ID.Pointer()
				found = true

				break
			}
		}
		if !found {
			return nil, fmt.Errorf("capture device %q not found", deviceID)
		}
	}

	st := &stream{}
	device, err := malgo.InitDevice(h.ctx.Context, cfg, malgo.DeviceCallbacks{
		Data: st.onFrames,
	})
	if err != nil {
		return nil, fmt.Errorf("init capture device: %w", err)
	}

	st.device = device
	st.channels = int(device.CaptureChannels())
	st.format = capture.Format{
		SampleRate: float64(device.SampleRate()),
		Channels:   st.channels,
	}

	return st, nil
}

// Close releases the backend context.
func (h *Host) Close() error {
	if h.ctx == nil {
		return nil
	}

	err := h.ctx.Uninit()
	h.ctx.Free()
	h.ctx = nil

	return err
}

// stream is one bound capture device. The block callback is held behind an
// atomic pointer so registration and teardown never take a lock on the
// audio thread.
type stream struct {
	device   *malgo.Device
	format   capture.Format
	channels int
	fn       atomic.Pointer[capture.BlockFunc]
}

func (s *stream) Format() capture.Format { return s.format }

// onFrames reinterprets the raw byte buffer as the interleaved float32
// samples the device was configured for. No copies, no allocation.
func (s *stream) onFrames(_, input []byte, frameCount uint32) {
	fn := s.fn.Load()
	if fn == nil || len(input) == 0 {
		return
	}

	samples := unsafe.Slice((*float32)(unsafe.Pointer(&input[0])), int(frameCount)*s.channels)
	(*fn)(samples, int(frameCount), s.channels)
}

func (s *stream) Start(fn capture.BlockFunc) error {
	s.fn.Store(&fn)
	if err := s.device.Start(); err != nil {
		s.fn.Store(nil)

		return fmt.Errorf("start capture device: %w", err)
	}

	return nil
}

// Stop unregisters the callback and releases the device. Idempotent; safe
// on a stream that never started.
func (s *stream) Stop() error {
	s.fn.Store(nil)
	if s.device != nil {
		s.device.Uninit()
		s.device = nil
	}

	return nil
}
