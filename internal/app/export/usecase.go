package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"geoverse/internal/app/ports"
	"geoverse/internal/domain/geo"
)

var ErrRegionOutOfBounds = errors.New("region outside grid bounds")

const regionFileExt = ".l2d"

type UseCase struct {
	Engine  ports.GeoEngine
	Runs    ports.ExportRunRepository
	Metrics ports.ScanMetrics
	Now     func() time.Time
}

type RegionRequest struct {
	TileX     int
	TileY     int
	OutputDir string
}

// Region exports a single region. Skips and engine failures are ordinary
// results, not errors; only out-of-bounds coordinates abort before any
// engine call.
func (u UseCase) Region(ctx context.Context, req RegionRequest) (geo.ExportResult, error) {
	region := geo.Region{TileX: req.TileX, TileY: req.TileY}
	if !region.InBounds() {
		return geo.ExportResult{}, ErrRegionOutOfBounds
	}
	return u.exportOne(ctx, region, req.OutputDir), nil
}

func (u UseCase) exportOne(ctx context.Context, region geo.Region, outputDir string) geo.ExportResult {
	result := geo.ExportResult{Region: region}

	if !u.Engine.HasData(geo.RegionCenter(region)) {
		result.Status = geo.ExportSkipped
		result.Reason = "no geodata loaded"
		u.record(ctx, result, "")
		return result
	}

	// Create-if-absent; concurrent exports into the same directory race
	// here and MkdirAll tolerates that.
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		result.Status = geo.ExportFailed
		result.Reason = fmt.Sprintf("create output dir: %v", err)
		u.record(ctx, result, "")
		return result
	}

	destPath := filepath.Join(outputDir, region.Key()+regionFileExt)
	start := u.now()
	ok := u.Engine.ExportRegion(ctx, region, destPath)
	result.Elapsed = u.now().Sub(start)

	if !ok {
		result.Status = geo.ExportFailed
		result.Reason = "export error"
		u.record(ctx, result, destPath)
		return result
	}

	result.Status = geo.ExportOK
	if info, err := os.Stat(destPath); err == nil {
		result.ByteSize = info.Size()
	}
	u.record(ctx, result, destPath)
	return result
}

func (u UseCase) record(ctx context.Context, result geo.ExportResult, destPath string) {
	if u.Metrics != nil {
		u.Metrics.RecordExport(result.Status, result.ByteSize)
	}
	if u.Runs == nil {
		return
	}
	// Audit write failures must not disturb the export itself.
	_ = u.Runs.SaveRun(ctx, ports.ExportRunRecord{
		TileX:      result.Region.TileX,
		TileY:      result.Region.TileY,
		Status:     result.Status,
		ByteSize:   result.ByteSize,
		ElapsedMs:  result.Elapsed.Milliseconds(),
		OutputPath: destPath,
		Reason:     result.Reason,
		CreatedAt:  u.now(),
	})
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
