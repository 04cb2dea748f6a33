package mock

import (
	"context"
	"os"

	"geoverse/internal/domain/geo"
)

// Engine is a deterministic stand-in for the external terrain engine.
// Regions listed in Loaded report data everywhere; everything else is
// absent. Heights and direction flags come from fixed formulas unless
// overridden, so scans are reproducible across runs.
type Engine struct {
	Loaded      map[string]bool
	HeightAt    func(p geo.Point) int16
	NsweAt      func(p geo.Point, refZ int16) byte
	FailExports map[string]bool
	ExportBytes int
}

func NewEngine(regions ...geo.Region) *Engine {
	loaded := make(map[string]bool, len(regions))
	for _, r := range regions {
		loaded[r.Key()] = true
	}
	return &Engine{Loaded: loaded}
}

func (e *Engine) HasData(p geo.Point) bool {
	r, ok := regionAt(p)
	if !ok {
		return false
	}
	return e.Loaded[r.Key()]
}

func (e *Engine) HeightNearest(p geo.Point, refZ int16) int16 {
	if e.HeightAt != nil {
		return e.HeightAt(p)
	}
	// Gentle deterministic slope across the world.
	return int16((p.X/geo.BlockSize + p.Y/geo.BlockSize) % 2048)
}

func (e *Engine) NsweNearest(p geo.Point, refZ int16) byte {
	if e.NsweAt != nil {
		return e.NsweAt(p, refZ)
	}
	return 0x0F
}

func (e *Engine) ExportRegion(_ context.Context, r geo.Region, destPath string) bool {
	if e.FailExports[r.Key()] {
		return false
	}
	size := e.ExportBytes
	if size <= 0 {
		size = 1024
	}
	blob := make([]byte, size)
	for i := range blob {
		blob[i] = byte(i)
	}
	return os.WriteFile(destPath, blob, 0o644) == nil
}

func regionAt(p geo.Point) (geo.Region, bool) {
	r := geo.Region{
		TileX: floorDiv(p.X, geo.RegionSize) + geo.OriginTileX,
		TileY: floorDiv(p.Y, geo.RegionSize) + geo.OriginTileY,
	}
	return r, r.InBounds()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
