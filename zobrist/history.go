package zobrist

// History records the fingerprint of every position reached in a game, most
// recent last, for repetition detection.
type History struct {
	keys []uint64
}

// Push appends the fingerprint of a newly reached position.
func (h *History) Push(fingerprint uint64) { h.keys = append(h.keys, fingerprint) }

// Pop removes and returns the most recent fingerprint.
// It panics if the history is empty.
func (h *History) Pop() uint64 {
	n := len(h.keys)
	if n == 0 {
		panic("zobrist: Pop on empty history")
	}
	last := h.keys[n-1]
	h.keys = h.keys[:n-1]
	return last
}

// Len returns the number of recorded positions.
func (h *History) Len() int { return len(h.keys) }

// Reset forgets everything, e.g. after an irreversible move.
func (h *History) Reset() { h.keys = h.keys[:0] }

// Repetitions counts how often fingerprint occurs in the history.
func (h *History) Repetitions(fingerprint uint64) int {
	n := 0
	for _, k := range h.keys {
		if k == fingerprint {
			n++
		}
	}
	return n
}

// IsThreefold reports whether the most recent position occurred three or more times.
//
// The fingerprint already encodes side to move, castling rights and en passant
// file, which the repetition rule requires.
func (h *History) IsThreefold() bool {
	if len(h.keys) == 0 {
		return false
	}
	return h.Repetitions(h.keys[len(h.keys)-1]) >= 3
}
