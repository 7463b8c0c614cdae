package model

import "github.com/paulmach/orb"

// Room is a rectangular hotspot over a floor-plan image.
// X/Y is the room centre and Width/Height its extent, all normalized to [0,1]
// relative to the image.
type Room struct {
	Name       string  `json:"name" yaml:"name"`
	BuildingID string  `json:"building_id" yaml:"-"`
	FloorIndex int     `json:"floor" yaml:"-"`
	X          float64 `json:"x" yaml:"x"`
	Y          float64 `json:"y" yaml:"y"`
	Width      float64 `json:"width" yaml:"width"`
	Height     float64 `json:"height" yaml:"height"`
}

// Bound returns the room rectangle in normalized image space
func (r Room) Bound() orb.Bound {
	halfW, halfH := r.Width/2, r.Height/2
	return orb.Bound{
		Min: orb.Point{r.X - halfW, r.Y - halfH},
		Max: orb.Point{r.X + halfW, r.Y + halfH},
	}
}

// Contains reports whether the normalized point lies inside the room
func (r Room) Contains(x, y float64) bool {
	return r.Bound().Contains(orb.Point{x, y})
}

// Floor is one level of a building with its plan image and rooms
type Floor struct {
	BuildingID  string  `json:"building_id" yaml:"-"`
	Index       int     `json:"index" yaml:"index"` // Negative for basements
	Image       string  `json:"image" yaml:"image"`
	ImageWidth  float64 `json:"image_width" yaml:"width"`
	ImageHeight float64 `json:"image_height" yaml:"height"`
	BaseOffsetX float64 `json:"base_offset_x" yaml:"base_offset_x"`
	BaseOffsetY float64 `json:"base_offset_y" yaml:"base_offset_y"`
	Rooms       []Room  `json:"rooms" yaml:"rooms"`
}
