package inmemory

import (
	"testing"

	"geoverse/internal/domain/geo"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordRowScan()
	r.RecordRowScan()
	r.RecordCheck(true)
	r.RecordCheck(false)
	r.RecordExport(geo.ExportOK, 4096)
	r.RecordExport(geo.ExportOK, 1024)
	r.RecordExport(geo.ExportSkipped, 0)
	r.RecordExport(geo.ExportFailed, 0)

	s := r.Snapshot()
	if s.RowScans != 2 {
		t.Fatalf("expected 2 row scans, got %d", s.RowScans)
	}
	if s.Checks != 2 || s.ChecksLoaded != 1 {
		t.Fatalf("expected checks 2/1, got %d/%d", s.Checks, s.ChecksLoaded)
	}
	if s.ExportOK != 2 || s.ExportSkipped != 1 || s.ExportFailed != 1 {
		t.Fatalf("expected exports 2/1/1, got %d/%d/%d", s.ExportOK, s.ExportSkipped, s.ExportFailed)
	}
	if s.ExportedBytes != 5120 {
		t.Fatalf("expected 5120 exported bytes, got %d", s.ExportedBytes)
	}
}
