package tui

// sparkRunes are the eight block heights of a sparkline, lowest first.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// history keeps the most recent samples up to a fixed capacity.
type history struct {
	samples []float64
	limit   int
}

func newHistory(limit int) *history {
	return &history{limit: max(1, limit)}
}

// add appends v, dropping the oldest sample when full.
func (h *history) add(v float64) {
	if len(h.samples) == h.limit {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.limit-1]
	}
	h.samples = append(h.samples, v)
}

// last returns the newest sample, or 0 when empty.
func (h *history) last() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

func (h *history) reset() { h.samples = h.samples[:0] }

// sparkline renders percentages (0 to 100) as block characters, newest
// on the right.
func sparkline(values []float64) string {
	out := make([]rune, len(values))
	top := len(sparkRunes) - 1
	for i, v := range values {
		idx := int(min(max(v, 0), 100) / 100 * float64(top))
		out[i] = sparkRunes[idx]
	}
	return string(out)
}
