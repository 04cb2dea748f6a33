package model

import "time"

type GeoExportRun struct {
	ID         int64 `gorm:"primaryKey"`
	TileX      int32
	TileY      int32
	Status     string
	ByteSize   int64
	ElapsedMs  int64
	OutputPath string
	Reason     string
	CreatedAt  time.Time
}

func (GeoExportRun) TableName() string {
	return "geo_export_runs"
}
