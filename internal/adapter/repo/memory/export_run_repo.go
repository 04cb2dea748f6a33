package memory

import (
	"context"
	"sync"

	"geoverse/internal/app/ports"
)

type ExportRunRepo struct {
	mu   sync.Mutex
	runs []ports.ExportRunRecord
}

func NewExportRunRepo() *ExportRunRepo {
	return &ExportRunRepo{}
}

func (r *ExportRunRepo) SaveRun(_ context.Context, run ports.ExportRunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, run)
	return nil
}

func (r *ExportRunRepo) ListRecent(_ context.Context, limit int) ([]ports.ExportRunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 {
		limit = 50
	}
	out := make([]ports.ExportRunRecord, 0, limit)
	for i := len(r.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.runs[i])
	}
	return out, nil
}
