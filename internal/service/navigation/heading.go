package navigation

import (
	"math"

	"campusnav/internal/util"
)

const (
	// DefaultHeadingWindow is the number of accepted samples averaged
	DefaultHeadingWindow = 5

	// maxWrapJump is the largest jump across north accepted once the buffer is primed
	maxWrapJump = 45.0
)

// HeadingSmoother filters compass jitter with a weighted moving average.
// Newer samples weigh more (oldest 1, newest len). Samples are averaged as
// deltas from the newest one so the 0/360 seam does not skew the result.
// Not safe for concurrent use.
type HeadingSmoother struct {
	samples  []float64
	capacity int
	smoothed float64
}

// NewHeadingSmoother creates a smoother keeping at most capacity samples
func NewHeadingSmoother(capacity int) *HeadingSmoother {
	if capacity < 1 {
		capacity = DefaultHeadingWindow
	}
	return &HeadingSmoother{
		samples:  make([]float64, 0, capacity),
		capacity: capacity,
	}
}

// Add feeds a raw heading and returns the smoothed heading and whether the
// sample was accepted. A rejected sample leaves the smoothed value unchanged.
//
// Once more than one sample is buffered, a raw jump above 180 degrees from the
// last accepted sample is rejected unless it is under 45 degrees the short way
// round.
func (h *HeadingSmoother) Add(raw float64) (float64, bool) {
	raw = util.NormalizeDegrees(raw)

	if len(h.samples) > 1 {
		last := h.samples[len(h.samples)-1]
		diff := math.Abs(raw - last)
		if diff > 180 && 360-diff >= maxWrapJump {
			return h.smoothed, false
		}
	}

	if len(h.samples) == h.capacity {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:len(h.samples)-1]
	}
	h.samples = append(h.samples, raw)
	h.smoothed = h.weightedMean()

	return h.smoothed, true
}

func (h *HeadingSmoother) weightedMean() float64 {
	newest := h.samples[len(h.samples)-1]

	var sum, total float64
	for i, s := range h.samples {
		w := float64(i + 1)
		sum += w * util.SignedDelta(newest, s)
		total += w
	}
	return util.NormalizeDegrees(newest + sum/total)
}

// Value returns the current smoothed heading in [0, 360)
func (h *HeadingSmoother) Value() float64 {
	return h.smoothed
}

// Len returns the number of buffered samples
func (h *HeadingSmoother) Len() int {
	return len(h.samples)
}

// Reset clears the buffer
func (h *HeadingSmoother) Reset() {
	h.samples = h.samples[:0]
	h.smoothed = 0
}
