package station

import (
	"context"

	"github.com/glovoll/nortide/internal/models"
)

// Finder defines the interface for looking up tide stations
type Finder interface {
	FindStation(ctx context.Context, code string) (*models.Station, error)
	SearchStations(ctx context.Context, name string) ([]models.Station, error)
	GetStation(ctx context.Context, name string) (*models.Station, error)
	FindNearestStations(ctx context.Context, lat, lon float64, limit int) ([]models.Station, error)
	ListStations(ctx context.Context) ([]models.Station, error)
}
