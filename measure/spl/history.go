package spl

// History is a bounded FIFO window of level readings. Appending beyond the
// capacity evicts the oldest entry. Entries may be NaN; consumers render
// those as gaps.
type History struct {
	buf  []float64
	head int
	n    int
}

// NewHistory returns a History with the given capacity. Non-positive
// capacities fall back to DefaultHistoryLen.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryLen
	}

	return &History{buf: make([]float64, capacity)}
}

// Append adds one reading, evicting the oldest when full.
func (h *History) Append(v float64) {
	if h.n < len(h.buf) {
		h.buf[(h.head+h.n)%len(h.buf)] = v
		h.n++

		return
	}

	h.buf[h.head] = v
	h.head = (h.head + 1) % len(h.buf)
}

// Values returns the readings oldest-first as a fresh slice.
func (h *History) Values() []float64 {
	out := make([]float64, h.n)
	for i := range out {
		out[i] = h.buf[(h.head+i)%len(h.buf)]
	}

	return out
}

// Len returns the number of stored readings.
func (h *History) Len() int { return h.n }

// Cap returns the window capacity.
func (h *History) Cap() int { return len(h.buf) }

// Clear discards all readings, keeping the capacity.
func (h *History) Clear() {
	h.head = 0
	h.n = 0
}
