package scan

import (
	"context"
	"errors"
	"testing"

	"geoverse/internal/app/ports"
	"geoverse/internal/domain/geo"
)

func TestRowUseCase_RejectsBlockYOutOfRange(t *testing.T) {
	engine := &fakeEngine{}
	uc := RowUseCase{Engine: engine}

	for _, blockY := range []int{-1, 256, 1000} {
		if _, err := uc.Execute(context.Background(), RowRequest{TileX: 20, TileY: 18, BlockY: blockY}); !errors.Is(err, ErrBlockYOutOfRange) {
			t.Fatalf("blockY=%d: expected ErrBlockYOutOfRange, got %v", blockY, err)
		}
	}
	if engine.calls() != 0 {
		t.Fatalf("expected zero engine calls, got %d", engine.calls())
	}
}

func TestRowUseCase_RejectsOutOfBoundsRegion(t *testing.T) {
	engine := &fakeEngine{}
	uc := RowUseCase{Engine: engine}

	if _, err := uc.Execute(context.Background(), RowRequest{TileX: 99, TileY: 18, BlockY: 0}); !errors.Is(err, ErrRegionOutOfBounds) {
		t.Fatalf("expected ErrRegionOutOfBounds, got %v", err)
	}
	if engine.calls() != 0 {
		t.Fatalf("expected zero engine calls, got %d", engine.calls())
	}
}

func TestRowUseCase_EncodesFullRow(t *testing.T) {
	engine := &fakeEngine{
		hasData: func(p geo.Point) bool { return true },
		height:  func(p geo.Point, refZ int16) int16 { return int16(p.X / geo.BlockSize) },
		nswe:    func(p geo.Point, refZ int16) byte { return 0x0F },
	}
	metrics := &fakeMetrics{}
	uc := RowUseCase{Engine: engine, Metrics: metrics}

	resp, err := uc.Execute(context.Background(), RowRequest{TileX: 20, TileY: 18, BlockY: 0})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	samples, err := geo.DecodeRowText(resp.Payload)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(samples) != geo.RowBlocks {
		t.Fatalf("expected %d samples, got %d", geo.RowBlocks, len(samples))
	}
	// bx increments by one block per sample on the origin row.
	if samples[0].Height != 0 || samples[255].Height != 255 {
		t.Fatalf("unexpected heights: first=%d last=%d", samples[0].Height, samples[255].Height)
	}
	if engine.hasDataCalls != geo.RowBlocks {
		t.Fatalf("expected %d hasData calls, got %d", geo.RowBlocks, engine.hasDataCalls)
	}
	if metrics.rowScans != 1 {
		t.Fatalf("expected one row scan recorded, got %d", metrics.rowScans)
	}
}

func TestRowUseCase_AbsentPointsYieldSentinel(t *testing.T) {
	engine := &fakeEngine{
		hasData: func(p geo.Point) bool {
			// Data only in the left half of the row.
			return p.X < 128*128
		},
		height: func(p geo.Point, refZ int16) int16 { return 100 },
		nswe:   func(p geo.Point, refZ int16) byte { return 0x05 },
	}
	uc := RowUseCase{Engine: engine}

	resp, err := uc.Execute(context.Background(), RowRequest{TileX: 20, TileY: 18, BlockY: 7})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	samples, err := geo.DecodeRowText(resp.Payload)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if samples[0] != (geo.Sample{Height: 100, Nswe: 0x05}) {
		t.Fatalf("expected data sample at bx=0, got %+v", samples[0])
	}
	if samples[200] != geo.NoData {
		t.Fatalf("expected sentinel at bx=200, got %+v", samples[200])
	}
	// No height/nswe lookups for absent points.
	if engine.heightCalls != 128 || engine.nsweCalls != 128 {
		t.Fatalf("expected 128 height/nswe calls, got %d/%d", engine.heightCalls, engine.nsweCalls)
	}
}

func TestRowUseCase_UsesSampledHeightAsNsweReference(t *testing.T) {
	engine := &fakeEngine{
		hasData: func(p geo.Point) bool { return true },
		height:  func(p geo.Point, refZ int16) int16 { return -350 },
	}
	engine.nswe = func(p geo.Point, refZ int16) byte {
		if refZ != -350 {
			t.Fatalf("nswe reference Z must be the sampled height, got %d", refZ)
		}
		return 0x0F
	}
	uc := RowUseCase{Engine: engine}

	if _, err := uc.Execute(context.Background(), RowRequest{TileX: 20, TileY: 18, BlockY: 0}); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

type fakeEngine struct {
	hasData func(p geo.Point) bool
	height  func(p geo.Point, refZ int16) int16
	nswe    func(p geo.Point, refZ int16) byte

	hasDataCalls int
	heightCalls  int
	nsweCalls    int
	exportCalls  int
}

func (e *fakeEngine) HasData(p geo.Point) bool {
	e.hasDataCalls++
	if e.hasData == nil {
		return false
	}
	return e.hasData(p)
}

func (e *fakeEngine) HeightNearest(p geo.Point, refZ int16) int16 {
	e.heightCalls++
	if e.height == nil {
		return 0
	}
	return e.height(p, refZ)
}

func (e *fakeEngine) NsweNearest(p geo.Point, refZ int16) byte {
	e.nsweCalls++
	if e.nswe == nil {
		return geo.NsweAll
	}
	return e.nswe(p, refZ)
}

func (e *fakeEngine) ExportRegion(_ context.Context, _ geo.Region, _ string) bool {
	e.exportCalls++
	return false
}

func (e *fakeEngine) calls() int {
	return e.hasDataCalls + e.heightCalls + e.nsweCalls + e.exportCalls
}

type fakeMetrics struct {
	rowScans int
	checks   int
	loaded   int
}

func (m *fakeMetrics) RecordRowScan() { m.rowScans++ }

func (m *fakeMetrics) RecordCheck(ok bool) {
	m.checks++
	if ok {
		m.loaded++
	}
}

func (m *fakeMetrics) RecordExport(_ geo.ExportStatus, _ int64) {}

var _ ports.GeoEngine = (*fakeEngine)(nil)
var _ ports.ScanMetrics = (*fakeMetrics)(nil)
