package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"geoverse/internal/adapter/command"
	"geoverse/internal/app/ports"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const adminTokenHeader = "X-Admin-Token"

var (
	ErrMissingAdminToken = errors.New("missing x-admin-token header")
	ErrInvalidAdminToken = errors.New("invalid admin token")
)

type Handler struct {
	Dispatcher command.Dispatcher
	Runs       ports.ExportRunRepository
	KPI        kpiSnapshotProvider

	// AdminToken guards the admin surface; empty disables the check
	// (local development only).
	AdminToken string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	admin := s.Group("/api/admin")
	admin.POST("/command", h.command)
	admin.GET("/exports", h.exports)

	s.GET("/ops/kpi", h.kpi)
}

type commandRequest struct {
	Command string `json:"command"`
}

type commandResponse struct {
	Responses []string `json:"responses"`
}

// lineBuffer collects sink pushes for one request. The underlying
// protocol has no correlation identifier, so the lines are returned in
// push order and belong to exactly this command.
type lineBuffer struct {
	lines []string
}

func (b *lineBuffer) Push(line string) {
	b.lines = append(b.lines, line)
}

func (h Handler) command(c context.Context, ctx *app.RequestContext) {
	if err := h.requireAdminToken(ctx); err != nil {
		writeError(ctx, err)
		return
	}

	var body commandRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if strings.TrimSpace(body.Command) == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_command", "command is required")
		return
	}

	sink := &lineBuffer{}
	h.Dispatcher.Dispatch(c, body.Command, sink)
	ctx.JSON(consts.StatusOK, commandResponse{Responses: sink.lines})
}

type exportRunEntry struct {
	TileX      int    `json:"tile_x"`
	TileY      int    `json:"tile_y"`
	Status     string `json:"status"`
	ByteSize   int64  `json:"byte_size"`
	ElapsedMs  int64  `json:"elapsed_ms"`
	OutputPath string `json:"output_path"`
	Reason     string `json:"reason,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func (h Handler) exports(c context.Context, ctx *app.RequestContext) {
	if err := h.requireAdminToken(ctx); err != nil {
		writeError(ctx, err)
		return
	}
	if h.Runs == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "export run repository not configured")
		return
	}

	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	runs, err := h.Runs.ListRecent(c, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	out := make([]exportRunEntry, 0, len(runs))
	for _, run := range runs {
		out = append(out, exportRunEntry{
			TileX:      run.TileX,
			TileY:      run.TileY,
			Status:     string(run.Status),
			ByteSize:   run.ByteSize,
			ElapsedMs:  run.ElapsedMs,
			OutputPath: run.OutputPath,
			Reason:     run.Reason,
			CreatedAt:  run.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	ctx.JSON(consts.StatusOK, map[string]any{"runs": out})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) requireAdminToken(ctx *app.RequestContext) error {
	if h.AdminToken == "" {
		return nil
	}
	token := strings.TrimSpace(string(ctx.GetHeader(adminTokenHeader)))
	if token == "" {
		return ErrMissingAdminToken
	}
	if token != h.AdminToken {
		return ErrInvalidAdminToken
	}
	return nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingAdminToken):
		writeErrorBody(ctx, consts.StatusUnauthorized, "missing_admin_token", err.Error())
	case errors.Is(err, ErrInvalidAdminToken):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_admin_token", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
