package mission

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"

	"campusnav/internal/model"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed data/missions.yaml
var defaultMissions []byte

// Repository provides the mission catalogue
type Repository interface {
	List(ctx context.Context) ([]model.MissionTarget, error)
}

// StaticRepository serves a fixed mission list
type StaticRepository struct {
	missions []model.MissionTarget
}

// LoadMissions parses a YAML mission list
func LoadMissions(r io.Reader) ([]model.MissionTarget, error) {
	var file struct {
		Missions []model.MissionTarget `yaml:"missions"`
	}
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse missions: %w", err)
	}

	seen := make(map[string]bool, len(file.Missions))
	for _, m := range file.Missions {
		if m.ID == "" {
			return nil, fmt.Errorf("mission %q has no id", m.Title)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("mission %s defined twice", m.ID)
		}
		if m.RadiusMeters <= 0 {
			return nil, fmt.Errorf("mission %s: radius must be positive", m.ID)
		}
		seen[m.ID] = true
	}
	return file.Missions, nil
}

// DefaultMissions returns the embedded seed missions
func DefaultMissions() ([]model.MissionTarget, error) {
	return LoadMissions(bytes.NewReader(defaultMissions))
}

// NewStaticRepository creates a repository over a fixed list
func NewStaticRepository(missions []model.MissionTarget) *StaticRepository {
	return &StaticRepository{missions: missions}
}

// List returns the missions
func (r *StaticRepository) List(context.Context) ([]model.MissionTarget, error) {
	return append([]model.MissionTarget(nil), r.missions...), nil
}

// GormRepository loads missions from PostgreSQL
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a PostgreSQL backed repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// List returns the missions in catalogue order
func (r *GormRepository) List(ctx context.Context) ([]model.MissionTarget, error) {
	var rows []*model.MissionPG
	if err := r.db.WithContext(ctx).Order("position, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load missions: %w", err)
	}

	missions := make([]model.MissionTarget, len(rows))
	for i, row := range rows {
		missions[i] = model.MissionFromPG(row)
	}
	return missions, nil
}

// Seed inserts missions when the table is empty. Returns the number inserted.
func (r *GormRepository) Seed(ctx context.Context, missions []model.MissionTarget) (int, error) {
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.MissionPG{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count missions: %w", err)
	}
	if count > 0 || len(missions) == 0 {
		return 0, nil
	}

	rows := make([]*model.MissionPG, len(missions))
	for i, m := range missions {
		rows[i] = model.MissionToPG(m, i)
	}
	if err := db.Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to seed missions: %w", err)
	}
	return len(rows), nil
}
