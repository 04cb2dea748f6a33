package scan

import (
	"context"

	"geoverse/internal/app/ports"
	"geoverse/internal/domain/geo"
)

type CheckUseCase struct {
	Engine  ports.GeoEngine
	Metrics ports.ScanMetrics
}

type CheckRequest struct {
	TileX int
	TileY int
}

type CheckResponse struct {
	TileX  int
	TileY  int
	Loaded bool
}

// Execute probes the region center. Coordinates are not bounds-checked:
// a point outside the grid simply reports absence, which is the answer a
// client pre-checking a full region scan needs anyway.
func (u CheckUseCase) Execute(_ context.Context, req CheckRequest) (CheckResponse, error) {
	region := geo.Region{TileX: req.TileX, TileY: req.TileY}
	loaded := u.Engine.HasData(geo.RegionCenter(region))
	if u.Metrics != nil {
		u.Metrics.RecordCheck(loaded)
	}
	return CheckResponse{TileX: req.TileX, TileY: req.TileY, Loaded: loaded}, nil
}
