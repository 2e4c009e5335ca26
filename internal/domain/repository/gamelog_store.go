package repository

import (
	"context"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

// Window represents a heat-ring lookback in games.
type Window int

const (
	W5  Window = 5
	W10 Window = 10
	W20 Window = 20
)

// GameLogStore provides read access to stored per-game observations for
// analytics. Observation slices come back newest-first.
type GameLogStore interface {
	GetLatestObservations(ctx context.Context, playerID, stat string, n int) ([]models.Observation, error)
	GetSeasonAverage(ctx context.Context, playerID, stat string) (float64, error)
	ListSlateProps(ctx context.Context, sport string) ([]models.PropDescriptor, error)
}
