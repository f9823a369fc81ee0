package waterlevel

import (
	"context"
	"time"

	"github.com/glovoll/nortide/internal/models"
)

type Provider interface {
	FetchSeries(ctx context.Context, q Query) (*models.Series, error)
	WaterLevelAt(ctx context.Context, q PointQuery) (*models.WaterLevel, error)
	StationLevels(ctx context.Context, stationCode, refCode string) ([]models.RefLevel, error)
	StandardLevels(ctx context.Context, lat, lon float64) ([]models.RefLevel, error)
	Languages(ctx context.Context) ([]models.Language, error)
}

// PointQuery asks for a single interpolated water level at a timestamp and
// position. FallbackDistance, when positive, allows retrying at the nearest
// station within that many km if the position itself yields no data.
type PointQuery struct {
	Time             time.Time
	Lat              float64
	Lon              float64
	DataType         models.DataType
	RefCode          string
	FallbackDistance float64
}
