package scan

import (
	"context"
	"errors"

	"geoverse/internal/app/ports"
	"geoverse/internal/domain/geo"
)

var (
	ErrBlockYOutOfRange  = errors.New("blockY must be 0-255")
	ErrRegionOutOfBounds = errors.New("region outside grid bounds")
)

type RowUseCase struct {
	Engine  ports.GeoEngine
	Metrics ports.ScanMetrics
}

type RowRequest struct {
	TileX  int
	TileY  int
	BlockY int
}

type RowResponse struct {
	TileX   int
	TileY   int
	BlockY  int
	Payload string
}

// Execute samples one row of 256 block centers and returns the packed row
// as a base64 payload. A point without loaded terrain yields the sentinel
// sample rather than an error; validation failures make no engine calls.
func (u RowUseCase) Execute(_ context.Context, req RowRequest) (RowResponse, error) {
	if req.BlockY < 0 || req.BlockY >= geo.BlocksPerSide {
		return RowResponse{}, ErrBlockYOutOfRange
	}
	region := geo.Region{TileX: req.TileX, TileY: req.TileY}
	if !region.InBounds() {
		return RowResponse{}, ErrRegionOutOfBounds
	}

	samples := make([]geo.Sample, geo.RowBlocks)
	for bx := range samples {
		p := geo.BlockCenter(region, bx, req.BlockY)
		if !u.Engine.HasData(p) {
			samples[bx] = geo.NoData
			continue
		}
		height := u.Engine.HeightNearest(p, 0)
		// The sampled height is the reference Z for the direction flags,
		// so NSWE reflects the actual surface rather than a probe height.
		samples[bx] = geo.Sample{
			Height: height,
			Nswe:   u.Engine.NsweNearest(p, height),
		}
	}

	row, err := geo.EncodeRow(samples)
	if err != nil {
		return RowResponse{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordRowScan()
	}
	return RowResponse{
		TileX:   req.TileX,
		TileY:   req.TileY,
		BlockY:  req.BlockY,
		Payload: geo.EncodeRowText(row),
	}, nil
}
