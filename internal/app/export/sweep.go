package export

import (
	"context"
	"time"

	"geoverse/internal/domain/geo"
)

const progressEvery = 10

type EventKind string

const (
	EventStart    EventKind = "start"
	EventProgress EventKind = "progress"
	EventDone     EventKind = "done"
)

type Event struct {
	Kind      EventKind
	OutputDir string
	Exported  int
	Skipped   int
	Region    geo.Region
	TotalKB   int64
	ElapsedMs int64
}

type AllSummary struct {
	Exported   int
	Skipped    int
	Failed     int
	TotalBytes int64
	Elapsed    time.Duration
}

// All sweeps the whole grid in a fixed order (tileX ascending, then tileY
// ascending) so progress counts are reproducible. Failures neither retry
// nor abort the sweep; the wire-level DONE tally counts exported and
// skipped regions only, matching the protocol, while the summary keeps a
// failure count for callers that want it.
func (u UseCase) All(ctx context.Context, outputDir string, emit func(Event)) AllSummary {
	start := u.now()
	var summary AllSummary

	emit(Event{Kind: EventStart, OutputDir: outputDir})

	for tx := geo.TileXMin; tx <= geo.TileXMax; tx++ {
		for ty := geo.TileYMin; ty <= geo.TileYMax; ty++ {
			result := u.exportOne(ctx, geo.Region{TileX: tx, TileY: ty}, outputDir)
			switch result.Status {
			case geo.ExportSkipped:
				summary.Skipped++
			case geo.ExportFailed:
				summary.Failed++
			case geo.ExportOK:
				summary.Exported++
				summary.TotalBytes += result.ByteSize
				if summary.Exported%progressEvery == 0 {
					emit(Event{
						Kind:     EventProgress,
						Exported: summary.Exported,
						Region:   result.Region,
					})
				}
			}
		}
	}

	summary.Elapsed = u.now().Sub(start)
	emit(Event{
		Kind:      EventDone,
		Exported:  summary.Exported,
		Skipped:   summary.Skipped,
		TotalKB:   summary.TotalBytes / 1024,
		ElapsedMs: summary.Elapsed.Milliseconds(),
	})
	return summary
}
