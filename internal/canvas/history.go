package canvas

import "image"

// HistoryCapacity is how many snapshots a surface keeps for undo.
const HistoryCapacity = 10

// History is a bounded stack of bitmap snapshots. Pushing past capacity
// evicts the oldest snapshot.
type History struct {
	buf   []*image.RGBA
	start int
	n     int
}

// NewHistory returns an empty history holding at most capacity snapshots.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]*image.RGBA, capacity)}
}

// Push stores img, evicting the oldest entry when full. The history takes
// ownership of img.
func (h *History) Push(img *image.RGBA) {
	if h.n == len(h.buf) {
		h.buf[h.start] = nil
		h.start = (h.start + 1) % len(h.buf)
		h.n--
	}
	h.buf[(h.start+h.n)%len(h.buf)] = img
	h.n++
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (*image.RGBA, bool) {
	if h.n == 0 {
		return nil, false
	}
	i := (h.start + h.n - 1) % len(h.buf)
	img := h.buf[i]
	h.buf[i] = nil
	h.n--
	return img, true
}

// Len is the number of stored snapshots.
func (h *History) Len() int { return h.n }

// Cap is the maximum number of stored snapshots.
func (h *History) Cap() int { return len(h.buf) }

// Clear drops every snapshot.
func (h *History) Clear() {
	clear(h.buf)
	h.start, h.n = 0, 0
}
