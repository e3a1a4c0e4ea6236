package capture

import "errors"

var (
	// ErrConfiguration reports a device format the pipeline cannot run on,
	// such as a non-positive sample rate or channel count.
	ErrConfiguration = errors.New("capture: invalid stream configuration")

	// ErrBind reports that no device could be bound, after the one-time
	// fallback to the system default has also failed.
	ErrBind = errors.New("capture: device bind failed")

	// ErrCapture reports that a bound stream failed to start.
	ErrCapture = errors.New("capture: stream start failed")
)
