package model

import (
	"time"

	"gorm.io/gorm"
)

// MissionTarget is a GPS check-in goal
type MissionTarget struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Point        GeoPoint `json:"point" yaml:"point"`
	RadiusMeters float64  `json:"radius_meters" yaml:"radius_meters"`
	Completed    bool     `json:"completed" yaml:"-"`
}

// MissionPG model for PostgreSQL storage
type MissionPG struct {
	ID           string  `gorm:"primaryKey"`
	Title        string  `gorm:"size:255;not null"`
	Lat          float64 `gorm:"not null"`
	Lng          float64 `gorm:"not null"`
	RadiusMeters float64 `gorm:"not null"`
	Position     int     `gorm:"not null;default:0"`

	UpdatedAt time.Time      `gorm:"column:updated_at"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName overrides the table name
func (MissionPG) TableName() string {
	return "missions"
}

// MissionFromPG creates a MissionTarget from MissionPG
func MissionFromPG(pg *MissionPG) MissionTarget {
	return MissionTarget{
		ID:           pg.ID,
		Title:        pg.Title,
		Point:        GeoPoint{Lat: pg.Lat, Lng: pg.Lng},
		RadiusMeters: pg.RadiusMeters,
	}
}

// MissionToPG converts a MissionTarget to its storage model
func MissionToPG(m MissionTarget, position int) *MissionPG {
	return &MissionPG{
		ID:           m.ID,
		Title:        m.Title,
		Lat:          m.Point.Lat,
		Lng:          m.Point.Lng,
		RadiusMeters: m.RadiusMeters,
		Position:     position,
	}
}
