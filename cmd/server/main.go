package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"geoverse/internal/adapter/command"
	geomock "geoverse/internal/adapter/geoengine/mock"
	httpadapter "geoverse/internal/adapter/http"
	metricsinmem "geoverse/internal/adapter/metrics/inmemory"
	gormrepo "geoverse/internal/adapter/repo/gorm"
	memrepo "geoverse/internal/adapter/repo/memory"
	"geoverse/internal/app/export"
	"geoverse/internal/app/ports"
	"geoverse/internal/app/scan"
	"geoverse/internal/domain/geo"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	engine := buildEngineFromEnv()
	runs := buildRunRepo()
	kpiRecorder := metricsinmem.NewRecorder()

	exportDir := defaultExportDir()
	h := httpadapter.Handler{
		Dispatcher: command.Dispatcher{
			Scan:             scan.RowUseCase{Engine: engine, Metrics: kpiRecorder},
			Check:            scan.CheckUseCase{Engine: engine, Metrics: kpiRecorder},
			Export:           export.UseCase{Engine: engine, Runs: runs, Metrics: kpiRecorder},
			DefaultOutputDir: exportDir,
		},
		Runs:       runs,
		KPI:        kpiRecorder,
		AdminToken: strings.TrimSpace(os.Getenv("GEOVERSE_ADMIN_TOKEN")),
	}

	addr := strEnv("GEOVERSE_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("geoverse server listening on %s (default export dir: %s)", addr, exportDir)
	s.Spin()
}

func buildRunRepo() ports.ExportRunRepository {
	dsn := strings.TrimSpace(os.Getenv("GEOVERSE_DB_DSN"))
	if dsn == "" {
		log.Println("GEOVERSE_DB_DSN not set, export runs kept in memory")
		return memrepo.NewExportRunRepo()
	}
	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	migrationsDir := strEnv("GEOVERSE_MIGRATIONS_DIR", "./migrations")
	if err := gormrepo.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	return gormrepo.NewExportRunRepo(db)
}

// buildEngineFromEnv wires the in-process terrain engine binding. Until a
// native engine is linked in, a deterministic stand-in serves whichever
// regions GEOVERSE_LOADED_REGIONS lists.
func buildEngineFromEnv() ports.GeoEngine {
	regions := regionsEnv("GEOVERSE_LOADED_REGIONS")
	if len(regions) == 0 {
		regions = []geo.Region{{TileX: geo.OriginTileX, TileY: geo.OriginTileY}}
	}
	engine := geomock.NewEngine(regions...)
	engine.ExportBytes = intEnv("GEOVERSE_MOCK_EXPORT_BYTES", 64*1024)
	return engine
}

func defaultExportDir() string {
	geodataDir := strEnv("GEOVERSE_GEODATA_DIR", "./geodata")
	return filepath.Join(geodataDir, "..", "geodata_export")
}

func strEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// regionsEnv parses "20_18,21_18" into region identities, dropping
// malformed or out-of-bounds entries.
func regionsEnv(key string) []geo.Region {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	var out []geo.Region
	for _, part := range strings.Split(raw, ",") {
		xy := strings.SplitN(strings.TrimSpace(part), "_", 2)
		if len(xy) != 2 {
			continue
		}
		tileX, errX := strconv.Atoi(xy[0])
		tileY, errY := strconv.Atoi(xy[1])
		if errX != nil || errY != nil {
			continue
		}
		r := geo.Region{TileX: tileX, TileY: tileY}
		if !r.InBounds() {
			continue
		}
		out = append(out, r)
	}
	return out
}
