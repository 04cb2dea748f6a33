package ports

import "geoverse/internal/domain/geo"

type ScanMetrics interface {
	RecordRowScan()
	RecordCheck(loaded bool)
	RecordExport(status geo.ExportStatus, byteSize int64)
}
