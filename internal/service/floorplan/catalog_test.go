package floorplan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	floors := c.Floors("E1")
	require.Len(t, floors, 3)
	assert.Equal(t, []int{-1, 0, 1}, []int{floors[0].Index, floors[1].Index, floors[2].Index})
	assert.Equal(t, "E1", floors[0].BuildingID)

	assert.Empty(t, c.Floors("NOPE"))

	f, err := c.Floor("E2", 0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, f.BaseOffsetX)
	assert.Equal(t, "E2", f.Rooms[0].BuildingID)

	_, err = c.Floor("E2", 3)
	assert.ErrorIs(t, err, ErrFloorNotFound)
}

func TestCatalog_FindRoom(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	room, err := c.FindRoom("  aula f3 ")
	require.NoError(t, err)
	assert.Equal(t, "Aula F3", room.Name)
	assert.Equal(t, "F", room.BuildingID)
	assert.Equal(t, 0, room.FloorIndex)

	room, err = c.FindRoom("E1 Laboratorio Reti")
	require.NoError(t, err)
	assert.Equal(t, -1, room.FloorIndex)

	_, err = c.FindRoom("Aula Magna")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRoomAt(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	f, err := c.Floor("F", 0)
	require.NoError(t, err)

	room, ok := RoomAt(f, 0.36, 0.6)
	require.True(t, ok)
	assert.Equal(t, "Aula F2", room.Name)

	_, ok = RoomAt(f, 0.5, 0.5)
	assert.False(t, ok, "corridor between F2 and F3")
}

func TestLoadCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "buildings: [\n"},
		{"missing id", "buildings:\n  - floors: []\n"},
		{"no image size", "buildings:\n  - id: A\n    floors:\n      - index: 0\n"},
		{"duplicate floor", "buildings:\n  - id: A\n    floors:\n      - {index: 0, width: 1, height: 1}\n      - {index: 0, width: 1, height: 1}\n"},
		{"room out of range", "buildings:\n  - id: A\n    floors:\n      - index: 0\n        width: 1\n        height: 1\n        rooms:\n          - {name: R, x: 1.5, y: 0, width: 0.1, height: 0.1}\n"},
		{"duplicate room", "buildings:\n  - id: A\n    floors:\n      - index: 0\n        width: 1\n        height: 1\n        rooms:\n          - {name: R, x: 0.5, y: 0.5, width: 0.1, height: 0.1}\n          - {name: r, x: 0.2, y: 0.5, width: 0.1, height: 0.1}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}
