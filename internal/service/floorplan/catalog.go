package floorplan

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"campusnav/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed data/floors.yaml
var defaultFloors []byte

var (
	ErrFloorNotFound = errors.New("floor not found")
	ErrRoomNotFound  = errors.New("room not found")
	ErrInvalidFloor  = errors.New("invalid floor definition")
)

type catalogFile struct {
	Buildings []struct {
		ID     string        `yaml:"id"`
		Floors []model.Floor `yaml:"floors"`
	} `yaml:"buildings"`
}

// Catalog holds floor plans per building, floors sorted by index
type Catalog struct {
	floors map[string][]model.Floor
	rooms  map[string]model.Room // lower-cased name -> room
}

// LoadCatalog parses a YAML floor catalogue
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse floor catalog: %w", err)
	}

	c := &Catalog{
		floors: make(map[string][]model.Floor),
		rooms:  make(map[string]model.Room),
	}

	for _, b := range file.Buildings {
		if b.ID == "" {
			return nil, fmt.Errorf("%w: building without id", ErrInvalidFloor)
		}

		seen := make(map[int]bool, len(b.Floors))
		for _, f := range b.Floors {
			if seen[f.Index] {
				return nil, fmt.Errorf("%w: %s floor %d defined twice", ErrInvalidFloor, b.ID, f.Index)
			}
			seen[f.Index] = true

			if f.ImageWidth <= 0 || f.ImageHeight <= 0 {
				return nil, fmt.Errorf("%w: %s floor %d has no image size", ErrInvalidFloor, b.ID, f.Index)
			}

			f.BuildingID = b.ID
			for i := range f.Rooms {
				room := &f.Rooms[i]
				room.BuildingID = b.ID
				room.FloorIndex = f.Index
				if err := validateRoom(*room); err != nil {
					return nil, fmt.Errorf("%s floor %d: %w", b.ID, f.Index, err)
				}

				key := strings.ToLower(room.Name)
				if _, dup := c.rooms[key]; dup {
					return nil, fmt.Errorf("%w: room %q defined twice", ErrInvalidFloor, room.Name)
				}
				c.rooms[key] = *room
			}
			c.floors[b.ID] = append(c.floors[b.ID], f)
		}

		sort.Slice(c.floors[b.ID], func(i, j int) bool {
			return c.floors[b.ID][i].Index < c.floors[b.ID][j].Index
		})
	}

	return c, nil
}

func validateRoom(r model.Room) error {
	if r.Name == "" {
		return fmt.Errorf("%w: room without name", ErrInvalidFloor)
	}
	in := func(v float64) bool { return v >= 0 && v <= 1 }
	if !in(r.X) || !in(r.Y) || !in(r.Width) || !in(r.Height) {
		return fmt.Errorf("%w: room %q outside normalized range", ErrInvalidFloor, r.Name)
	}
	return nil
}

// DefaultCatalog loads the embedded floor catalogue
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(defaultFloors))
}

// Floors returns the floors of a building ordered by index
func (c *Catalog) Floors(buildingID string) []model.Floor {
	return append([]model.Floor(nil), c.floors[buildingID]...)
}

// Floor returns one floor of a building
func (c *Catalog) Floor(buildingID string, index int) (model.Floor, error) {
	for _, f := range c.floors[buildingID] {
		if f.Index == index {
			return f, nil
		}
	}
	return model.Floor{}, fmt.Errorf("%w: %s/%d", ErrFloorNotFound, buildingID, index)
}

// FindRoom looks a room up by name, case-insensitively
func (c *Catalog) FindRoom(name string) (model.Room, error) {
	room, ok := c.rooms[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return model.Room{}, fmt.Errorf("%w: %s", ErrRoomNotFound, name)
	}
	return room, nil
}

// RoomAt returns the first room of the floor containing the normalized point
func RoomAt(floor model.Floor, x, y float64) (model.Room, bool) {
	for _, r := range floor.Rooms {
		if r.Contains(x, y) {
			return r, true
		}
	}
	return model.Room{}, false
}
