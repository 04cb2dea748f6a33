package geo

import "time"

type ExportStatus string

const (
	ExportOK      ExportStatus = "ok"
	ExportSkipped ExportStatus = "skip"
	ExportFailed  ExportStatus = "fail"
)

type ExportResult struct {
	Region   Region
	Status   ExportStatus
	ByteSize int64
	Elapsed  time.Duration
	Reason   string
}
