package ports

import (
	"context"

	"geoverse/internal/domain/geo"
)

// GeoEngine is the capability surface of the external terrain engine.
// Inputs are world-space coordinates; conversion into the engine's own
// sampling space happens behind this interface. Thread-safety of the
// calls is the engine's responsibility.
type GeoEngine interface {
	HasData(p geo.Point) bool
	HeightNearest(p geo.Point, refZ int16) int16
	NsweNearest(p geo.Point, refZ int16) byte

	// ExportRegion writes the engine's native terrain file for one region.
	// Success or failure only; there is no partial-result signal.
	ExportRegion(ctx context.Context, r geo.Region, destPath string) bool
}
