package ports

import (
	"context"
	"time"

	"geoverse/internal/domain/geo"
)

type ExportRunRecord struct {
	TileX      int
	TileY      int
	Status     geo.ExportStatus
	ByteSize   int64
	ElapsedMs  int64
	OutputPath string
	Reason     string
	CreatedAt  time.Time
}

type ExportRunRepository interface {
	SaveRun(ctx context.Context, run ExportRunRecord) error
	ListRecent(ctx context.Context, limit int) ([]ExportRunRecord, error)
}
