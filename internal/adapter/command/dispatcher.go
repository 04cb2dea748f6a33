package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"geoverse/internal/app/export"
	"geoverse/internal/app/ports"
	"geoverse/internal/app/scan"
	"geoverse/internal/domain/geo"
)

const (
	usageScanGeo      = "Usage: scan_geo <tileX> <tileY> <blockY>"
	usageScanGeoCheck = "Usage: scan_geo_check <tileX> <tileY>"
	usageGeoExport    = "Usage: geo_export <tileX> <tileY> [outputDir]"
)

// Dispatcher parses space-delimited admin commands and pushes
// pipe-delimited responses onto the message sink. Responses carry no
// correlation identifier and are pushed in request order.
type Dispatcher struct {
	Scan             scan.RowUseCase
	Check            scan.CheckUseCase
	Export           export.UseCase
	DefaultOutputDir string
}

func (d Dispatcher) Dispatch(ctx context.Context, line string, sink ports.MessageSink) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		sink.Push("Unknown command")
		return
	}

	switch parts[0] {
	case "scan_geo":
		d.scanGeo(ctx, parts, sink)
	case "scan_geo_check":
		d.scanGeoCheck(ctx, parts, sink)
	case "geo_export":
		d.geoExport(ctx, parts, sink)
	case "geo_export_all":
		d.geoExportAll(ctx, parts, sink)
	default:
		sink.Push("Unknown command: " + parts[0])
	}
}

func (d Dispatcher) scanGeo(ctx context.Context, parts []string, sink ports.MessageSink) {
	if len(parts) < 4 {
		sink.Push(usageScanGeo)
		return
	}
	tileX, tileY, ok := parseTilePair(parts[1], parts[2], sink)
	if !ok {
		return
	}
	blockY, err := strconv.Atoi(parts[3])
	if err != nil {
		sink.Push("Invalid number: " + parts[3])
		return
	}

	resp, err := d.Scan.Execute(ctx, scan.RowRequest{TileX: tileX, TileY: tileY, BlockY: blockY})
	switch {
	case errors.Is(err, scan.ErrBlockYOutOfRange):
		sink.Push("blockY must be 0-255")
	case errors.Is(err, scan.ErrRegionOutOfBounds):
		sink.Push(boundsMessage(tileX, tileY))
	case err != nil:
		sink.Push("scan_geo failed: " + err.Error())
	default:
		sink.Push(fmt.Sprintf("GEODATA|%d|%d|%d|%s", resp.TileX, resp.TileY, resp.BlockY, resp.Payload))
	}
}

func (d Dispatcher) scanGeoCheck(ctx context.Context, parts []string, sink ports.MessageSink) {
	if len(parts) < 3 {
		sink.Push(usageScanGeoCheck)
		return
	}
	tileX, tileY, ok := parseTilePair(parts[1], parts[2], sink)
	if !ok {
		return
	}

	resp, err := d.Check.Execute(ctx, scan.CheckRequest{TileX: tileX, TileY: tileY})
	if err != nil {
		sink.Push("scan_geo_check failed: " + err.Error())
		return
	}
	loaded := 0
	if resp.Loaded {
		loaded = 1
	}
	sink.Push(fmt.Sprintf("GEODATA_CHECK|%d|%d|%d", resp.TileX, resp.TileY, loaded))
}

func (d Dispatcher) geoExport(ctx context.Context, parts []string, sink ports.MessageSink) {
	if len(parts) < 3 {
		sink.Push(usageGeoExport)
		return
	}
	tileX, tileY, ok := parseTilePair(parts[1], parts[2], sink)
	if !ok {
		return
	}
	outputDir := d.DefaultOutputDir
	if len(parts) > 3 {
		outputDir = parts[3]
	}

	result, err := d.Export.Region(ctx, export.RegionRequest{TileX: tileX, TileY: tileY, OutputDir: outputDir})
	if errors.Is(err, export.ErrRegionOutOfBounds) {
		sink.Push(boundsMessage(tileX, tileY))
		return
	}
	if err != nil {
		sink.Push("geo_export failed: " + err.Error())
		return
	}
	sink.Push(renderExportResult(result))
}

func (d Dispatcher) geoExportAll(ctx context.Context, parts []string, sink ports.MessageSink) {
	outputDir := d.DefaultOutputDir
	if len(parts) > 1 {
		outputDir = parts[1]
	}
	d.Export.All(ctx, outputDir, func(ev export.Event) {
		switch ev.Kind {
		case export.EventStart:
			sink.Push("GEO_EXPORT_ALL|START|" + ev.OutputDir)
		case export.EventProgress:
			sink.Push(fmt.Sprintf("GEO_EXPORT_ALL|PROGRESS|%d|%s", ev.Exported, ev.Region.Key()))
		case export.EventDone:
			sink.Push(fmt.Sprintf("GEO_EXPORT_ALL|DONE|%d|%d|%dKB|%dms", ev.Exported, ev.Skipped, ev.TotalKB, ev.ElapsedMs))
		}
	})
}

func renderExportResult(result geo.ExportResult) string {
	key := result.Region
	switch result.Status {
	case geo.ExportOK:
		return fmt.Sprintf("GEO_EXPORT|%d|%d|OK|%d|%dms", key.TileX, key.TileY, result.ByteSize, result.Elapsed.Milliseconds())
	case geo.ExportSkipped:
		return fmt.Sprintf("GEO_EXPORT|%d|%d|SKIP|%s", key.TileX, key.TileY, result.Reason)
	default:
		return fmt.Sprintf("GEO_EXPORT|%d|%d|FAIL|%s", key.TileX, key.TileY, result.Reason)
	}
}

func boundsMessage(tileX, tileY int) string {
	return fmt.Sprintf("Invalid region: %d_%d (valid: %d-%d x %d-%d)",
		tileX, tileY, geo.TileXMin, geo.TileXMax, geo.TileYMin, geo.TileYMax)
}

func parseTilePair(rawX, rawY string, sink ports.MessageSink) (int, int, bool) {
	tileX, err := strconv.Atoi(rawX)
	if err != nil {
		sink.Push("Invalid number: " + rawX)
		return 0, 0, false
	}
	tileY, err := strconv.Atoi(rawY)
	if err != nil {
		sink.Push("Invalid number: " + rawY)
		return 0, 0, false
	}
	return tileX, tileY, true
}
