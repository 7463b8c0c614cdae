package mission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusnav/internal/model"
	"campusnav/internal/service/navigation"

	"go.uber.org/zap"
)

var ErrMissionNotFound = errors.New("mission not found")

// Status is the live state of one mission for a player
type Status struct {
	navigation.Fix

	MissionID     string `json:"mission_id"`
	Title         string `json:"title"`
	Completed     bool   `json:"completed"`
	JustCompleted bool   `json:"just_completed"`
}

// Tracker checks player positions against the mission catalogue
type Tracker struct {
	missions []model.MissionTarget
	progress ProgressStore
	logger   *zap.Logger
}

// NewTracker loads the mission catalogue from repo
func NewTracker(ctx context.Context, repo Repository, progress ProgressStore, logger *zap.Logger) (*Tracker, error) {
	start := time.Now()
	missions, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mission catalogue: %w", err)
	}
	logger.Info("mission catalogue loaded",
		zap.Int("missions", len(missions)),
		zap.Duration("took", time.Since(start)))

	return &Tracker{
		missions: missions,
		progress: progress,
		logger:   logger,
	}, nil
}

// Missions returns the catalogue with the player's completion flags
func (t *Tracker) Missions(ctx context.Context, playerID string) ([]model.MissionTarget, error) {
	done, err := t.progress.Completed(ctx, playerID)
	if err != nil {
		return nil, err
	}

	result := make([]model.MissionTarget, len(t.missions))
	for i, m := range t.missions {
		m.Completed = done[m.ID]
		result[i] = m
	}
	return result, nil
}

// Mission returns one mission by id
func (t *Tracker) Mission(id string) (model.MissionTarget, error) {
	for _, m := range t.missions {
		if m.ID == id {
			return m, nil
		}
	}
	return model.MissionTarget{}, fmt.Errorf("%w: %s", ErrMissionNotFound, id)
}

// OnLocation evaluates every mission from the given position and marks
// newly reached missions completed.
func (t *Tracker) OnLocation(ctx context.Context, playerID string, p model.GeoPoint) ([]Status, error) {
	done, err := t.progress.Completed(ctx, playerID)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, len(t.missions))
	for i, m := range t.missions {
		st := Status{
			MissionID: m.ID,
			Title:     m.Title,
			Fix:       navigation.FixTo(p, m.Point, m.RadiusMeters),
			Completed: done[m.ID],
		}

		if st.Arrived && !st.Completed {
			if err := t.progress.MarkCompleted(ctx, playerID, m.ID); err != nil {
				return nil, err
			}
			st.Completed = true
			st.JustCompleted = true
			t.logger.Info("mission completed",
				zap.String("player", playerID),
				zap.String("mission", m.ID),
				zap.Float64("distance_m", st.DistanceMeters))
		}
		statuses[i] = st
	}
	return statuses, nil
}
