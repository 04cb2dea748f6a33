package gormrepo

import (
	"context"

	"geoverse/internal/adapter/repo/gorm/model"
	"geoverse/internal/app/ports"
	"geoverse/internal/domain/geo"

	"gorm.io/gorm"
)

type ExportRunRepo struct {
	db *gorm.DB
}

func NewExportRunRepo(db *gorm.DB) ExportRunRepo {
	return ExportRunRepo{db: db}
}

func (r ExportRunRepo) SaveRun(ctx context.Context, run ports.ExportRunRecord) error {
	m := model.GeoExportRun{
		TileX:      int32(run.TileX),
		TileY:      int32(run.TileY),
		Status:     string(run.Status),
		ByteSize:   run.ByteSize,
		ElapsedMs:  run.ElapsedMs,
		OutputPath: run.OutputPath,
		Reason:     run.Reason,
		CreatedAt:  run.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r ExportRunRepo) ListRecent(ctx context.Context, limit int) ([]ports.ExportRunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []model.GeoExportRun
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.ExportRunRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, ports.ExportRunRecord{
			TileX:      int(m.TileX),
			TileY:      int(m.TileY),
			Status:     geo.ExportStatus(m.Status),
			ByteSize:   m.ByteSize,
			ElapsedMs:  m.ElapsedMs,
			OutputPath: m.OutputPath,
			Reason:     m.Reason,
			CreatedAt:  m.CreatedAt,
		})
	}
	return out, nil
}
