package inmemory

import (
	"sync"

	"geoverse/internal/domain/geo"
)

type Snapshot struct {
	RowScans      uint64 `json:"row_scans"`
	Checks        uint64 `json:"checks"`
	ChecksLoaded  uint64 `json:"checks_loaded"`
	ExportOK      uint64 `json:"export_ok"`
	ExportSkipped uint64 `json:"export_skipped"`
	ExportFailed  uint64 `json:"export_failed"`
	ExportedBytes uint64 `json:"exported_bytes"`
}

type Recorder struct {
	mu            sync.Mutex
	rowScans      uint64
	checks        uint64
	checksLoaded  uint64
	exportOK      uint64
	exportSkipped uint64
	exportFailed  uint64
	exportedBytes uint64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordRowScan() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rowScans++
}

func (r *Recorder) RecordCheck(loaded bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks++
	if loaded {
		r.checksLoaded++
	}
}

func (r *Recorder) RecordExport(status geo.ExportStatus, byteSize int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch status {
	case geo.ExportOK:
		r.exportOK++
		if byteSize > 0 {
			r.exportedBytes += uint64(byteSize)
		}
	case geo.ExportSkipped:
		r.exportSkipped++
	case geo.ExportFailed:
		r.exportFailed++
	}
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		RowScans:      r.rowScans,
		Checks:        r.checks,
		ChecksLoaded:  r.checksLoaded,
		ExportOK:      r.exportOK,
		ExportSkipped: r.exportSkipped,
		ExportFailed:  r.exportFailed,
		ExportedBytes: r.exportedBytes,
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
