package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadingSmoother_Constant(t *testing.T) {
	for _, value := range []float64{0, 42, 180, 359.5} {
		h := NewHeadingSmoother(DefaultHeadingWindow)
		for i := 0; i < 8; i++ {
			h.Add(value)
		}
		assert.Equal(t, value, h.Value())
		assert.Equal(t, DefaultHeadingWindow, h.Len())
	}
}

func TestHeadingSmoother_WrapAround(t *testing.T) {
	h := NewHeadingSmoother(DefaultHeadingWindow)

	h.Add(350)
	v, ok := h.Add(10)
	assert.True(t, ok)

	// weights 1 and 2 on -20 and 0 relative to 10
	assert.InDelta(t, 10-20.0/3, v, 1e-9)
	assert.False(t, v > 300 && v < 350, "snapped to the naive average: %v", v)
}

func TestHeadingSmoother_WrapAroundPrimed(t *testing.T) {
	h := NewHeadingSmoother(DefaultHeadingWindow)
	h.Add(350)
	h.Add(350)

	v, ok := h.Add(10)
	assert.True(t, ok, "20 degree jump across north is accepted")
	assert.True(t, v < 10 || v > 350, "got %v", v)
}

func TestHeadingSmoother_RejectsFlip(t *testing.T) {
	h := NewHeadingSmoother(DefaultHeadingWindow)
	h.Add(10)
	before, _ := h.Add(12)

	v, ok := h.Add(250)
	assert.False(t, ok)
	assert.Equal(t, before, v)
	assert.Equal(t, 2, h.Len())
}

func TestHeadingSmoother_FirstJumpAccepted(t *testing.T) {
	h := NewHeadingSmoother(DefaultHeadingWindow)
	h.Add(10)

	// One buffered sample: large jumps are still accepted
	_, ok := h.Add(250)
	assert.True(t, ok)
	assert.Equal(t, 2, h.Len())
}

func TestHeadingSmoother_Weights(t *testing.T) {
	h := NewHeadingSmoother(3)
	h.Add(0)
	h.Add(30)
	v, _ := h.Add(60)

	// (1*0 + 2*30 + 3*60) / 6
	assert.InDelta(t, 40.0, v, 1e-9)

	// Oldest sample drops out
	v, _ = h.Add(60)
	// (1*30 + 2*60 + 3*60) / 6
	assert.InDelta(t, 55.0, v, 1e-9)
	assert.Equal(t, 3, h.Len())
}

func TestHeadingSmoother_NormalizesInput(t *testing.T) {
	h := NewHeadingSmoother(DefaultHeadingWindow)
	v, ok := h.Add(-90)
	assert.True(t, ok)
	assert.Equal(t, 270.0, v)

	h.Reset()
	assert.Zero(t, h.Len())
	v, _ = h.Add(725)
	assert.Equal(t, 5.0, v)
}

func TestNewHeadingSmoother_DefaultCapacity(t *testing.T) {
	h := NewHeadingSmoother(0)
	for i := 0; i < 10; i++ {
		h.Add(1)
	}
	assert.Equal(t, DefaultHeadingWindow, h.Len())
}
