package floorplan

import "math"

// Scale bounds for the floor-plan viewer
const (
	MinScale = 1.0
	MaxScale = 5.0

	// SliderThreshold is the image/viewport width ratio above which the
	// horizontal pan slider is shown
	SliderThreshold = 1.2
)

// Vec is a 2D offset or position in viewport points
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Size is a width/height pair in viewport points
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ClampScale bounds a scale to [MinScale, MaxScale]
func ClampScale(scale float64) float64 {
	return math.Min(math.Max(scale, MinScale), MaxScale)
}

// ClampOffset bounds a pan offset so the scaled image never exposes space
// beyond its edges. On an axis where the scaled image fits inside the
// viewport the offset is pinned to -base.
func ClampOffset(raw Vec, scale float64, viewport, image Size, base Vec) Vec {
	if scale <= 0 {
		scale = MinScale
	}
	return Vec{
		X: clampAxis(raw.X, image.Width*scale, viewport.Width, base.X),
		Y: clampAxis(raw.Y, image.Height*scale, viewport.Height, base.Y),
	}
}

func clampAxis(raw, scaled, viewport, base float64) float64 {
	if scaled <= viewport {
		return -base
	}
	limit := (scaled - viewport) / 2
	return math.Min(math.Max(raw, -limit), limit)
}

// ZoomAt multiplies the scale by scaleDelta (clamped) and returns the offset
// that keeps the image point under anchor fixed on screen. Anchor and offset
// are relative to the viewport centre. The offset is not clamped.
func ZoomAt(anchor Vec, prevScale float64, prevOffset Vec, scaleDelta float64) (float64, Vec) {
	if prevScale <= 0 {
		prevScale = MinScale
	}
	if scaleDelta <= 0 || math.IsNaN(scaleDelta) || math.IsInf(scaleDelta, 0) {
		return prevScale, prevOffset
	}

	newScale := ClampScale(prevScale * scaleDelta)

	// Anchor in image space under the old transform
	imgX := (anchor.X - prevOffset.X) / prevScale
	imgY := (anchor.Y - prevOffset.Y) / prevScale

	return newScale, Vec{
		X: anchor.X - imgX*newScale,
		Y: anchor.Y - imgY*newScale,
	}
}

// CenterOn returns the scale-1 transform that centres the viewport on a room
// at a normalized image position, clamped to the image bounds.
func CenterOn(room Vec, image, viewport Size, base Vec) (float64, Vec) {
	// Room position relative to the image centre at scale 1
	px := (room.X - 0.5) * image.Width
	py := (room.Y - 0.5) * image.Height

	return MinScale, ClampOffset(Vec{X: -px, Y: -py}, MinScale, viewport, image, base)
}

// Reset returns the double-tap target transform
func Reset() (float64, Vec) {
	return MinScale, Vec{}
}

// NeedsSlider reports whether the image at scale 1 is wide enough to get a
// horizontal pan slider
func NeedsSlider(image, viewport Size) bool {
	return image.Width > viewport.Width*SliderThreshold
}

// MaxPan returns the horizontal pan limit at the given scale
func MaxPan(image Size, scale float64, viewport Size) float64 {
	return math.Max((image.Width*scale-viewport.Width)/2, 0)
}

// SliderToOffset maps a slider value in [0,1] onto the horizontal pan range.
// 0 is the rightmost pan limit, 1 the leftmost.
func SliderToOffset(value, maxPan float64) float64 {
	value = math.Min(math.Max(value, 0), 1)
	return maxPan - value*2*maxPan
}

// OffsetToSlider is the inverse of SliderToOffset, clamped to [0,1]
func OffsetToSlider(x, maxPan float64) float64 {
	if maxPan == 0 {
		return 0.5
	}
	v := (maxPan - x) / (2 * maxPan)
	return math.Min(math.Max(v, 0), 1)
}

// FitImage scales an intrinsic image size to the viewport height, keeping
// the aspect ratio. Wide plans overflow horizontally and are panned.
func FitImage(intrinsic, viewport Size) Size {
	if intrinsic.Height <= 0 {
		return viewport
	}
	ratio := viewport.Height / intrinsic.Height
	return Size{Width: intrinsic.Width * ratio, Height: viewport.Height}
}

// ToNormalized maps a point relative to the viewport centre back to a
// normalized image position under the given transform
func ToNormalized(p Vec, scale float64, offset Vec, image Size) Vec {
	if scale <= 0 {
		scale = MinScale
	}
	return Vec{
		X: (p.X-offset.X)/(scale*image.Width) + 0.5,
		Y: (p.Y-offset.Y)/(scale*image.Height) + 0.5,
	}
}
