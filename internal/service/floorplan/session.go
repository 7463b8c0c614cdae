package floorplan

import (
	"sync"
	"time"

	"campusnav/internal/model"
)

// ViewportState is the transform of an open floor plan
type ViewportState struct {
	Scale         float64 `json:"scale"`
	Offset        Vec     `json:"offset"`
	Viewport      Size    `json:"viewport"`
	Image         Size    `json:"image"`
	BaseOffset    Vec     `json:"base_offset"`
	SliderVisible bool    `json:"slider_visible"`
	Slider        float64 `json:"slider"`
}

// Viewport applies gestures to a ViewportState, keeping the offset clamped
// after every update. Not safe for concurrent use.
type Viewport struct {
	state ViewportState
}

// NewViewport creates a viewport for an image already fitted to the viewport
func NewViewport(viewport, image Size, base Vec) *Viewport {
	v := &Viewport{state: ViewportState{
		Viewport:      viewport,
		Image:         image,
		BaseOffset:    base,
		SliderVisible: NeedsSlider(image, viewport),
	}}
	v.apply(Reset())
	return v
}

// State returns a copy of the current state
func (v *Viewport) State() ViewportState {
	return v.state
}

// Pinch zooms by delta around anchor (relative to the viewport centre)
func (v *Viewport) Pinch(anchor Vec, delta float64) ViewportState {
	v.apply(ZoomAt(anchor, v.state.Scale, v.state.Offset, delta))
	return v.state
}

// Drag pans by a translation
func (v *Viewport) Drag(translation Vec) ViewportState {
	v.apply(v.state.Scale, v.state.Offset.Add(translation))
	return v.state
}

// DoubleTap resets to the minimum scale with no pan. On an axis where the
// image fits the viewport the offset stays pinned to -base.
func (v *Viewport) DoubleTap() ViewportState {
	v.apply(Reset())
	return v.state
}

// SetSlider pans horizontally to a slider position in [0,1]
func (v *Viewport) SetSlider(value float64) ViewportState {
	if !v.state.SliderVisible {
		return v.state
	}
	maxPan := MaxPan(v.state.Image, v.state.Scale, v.state.Viewport)
	offset := v.state.Offset
	offset.X = SliderToOffset(value, maxPan)
	v.apply(v.state.Scale, offset)
	return v.state
}

// FocusRoom centres the viewport on a normalized room position at scale 1
func (v *Viewport) FocusRoom(room model.Room) ViewportState {
	v.apply(CenterOn(Vec{X: room.X, Y: room.Y}, v.state.Image, v.state.Viewport, v.state.BaseOffset))
	return v.state
}

// Resize updates the viewport and fitted image sizes and re-clamps the offset
func (v *Viewport) Resize(viewport, image Size) ViewportState {
	v.state.Viewport = viewport
	v.state.Image = image
	v.state.SliderVisible = NeedsSlider(image, viewport)
	v.apply(v.state.Scale, v.state.Offset)
	return v.state
}

func (v *Viewport) apply(scale float64, offset Vec) {
	v.state.Scale = ClampScale(scale)
	v.state.Offset = ClampOffset(offset, v.state.Scale, v.state.Viewport, v.state.Image, v.state.BaseOffset)
	v.syncSlider()
}

func (v *Viewport) syncSlider() {
	if !v.state.SliderVisible {
		v.state.Slider = 0.5
		return
	}
	v.state.Slider = OffsetToSlider(v.state.Offset.X, MaxPan(v.state.Image, v.state.Scale, v.state.Viewport))
}

// Session is one open floor-plan view
type Session struct {
	ID         string
	BuildingID string
	FloorIndex int
	Room       string // Highlighted room, may be empty

	mu        sync.Mutex
	viewport  *Viewport
	updatedAt time.Time
}

// SessionView is the serializable state of a session
type SessionView struct {
	ID         string        `json:"id"`
	BuildingID string        `json:"building_id"`
	FloorIndex int           `json:"floor"`
	Room       string        `json:"room,omitempty"`
	Viewport   ViewportState `json:"viewport"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// NewSession opens a floor for a viewport size, centring on room when given
func NewSession(id string, floor model.Floor, viewport Size, room *model.Room) *Session {
	image := FitImage(Size{Width: floor.ImageWidth, Height: floor.ImageHeight}, viewport)
	vp := NewViewport(viewport, image, Vec{X: floor.BaseOffsetX, Y: floor.BaseOffsetY})

	s := &Session{
		ID:         id,
		BuildingID: floor.BuildingID,
		FloorIndex: floor.Index,
		viewport:   vp,
		updatedAt:  time.Now(),
	}
	if room != nil {
		s.Room = room.Name
		vp.FocusRoom(*room)
	}
	return s
}

// Update runs fn against the viewport under the session lock
func (s *Session) Update(fn func(v *Viewport)) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.viewport)
	s.updatedAt = time.Now()
	return s.viewLocked()
}

// View returns the current state
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() SessionView {
	return SessionView{
		ID:         s.ID,
		BuildingID: s.BuildingID,
		FloorIndex: s.FloorIndex,
		Room:       s.Room,
		Viewport:   s.viewport.State(),
		UpdatedAt:  s.updatedAt,
	}
}

// Tap maps a tap relative to the viewport centre to a normalized image point
func (s *Session) Tap(p Vec) Vec {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.viewport.State()
	s.updatedAt = time.Now()
	return ToNormalized(p, st.Scale, st.Offset, st.Image)
}
