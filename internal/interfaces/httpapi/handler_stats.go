package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/rio-stats/internal/usecase"
)

// ReshapeStats flattens an aggregate stats payload posted as the body.
// ?sum_swings=true collapses the swing axis.
func (h *Handler) ReshapeStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReshapeStats")
	defer span.End()

	sumSwings, err := parseBoolQuery(r, "sum_swings")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.gameService.Reshape(ctx, body, sumSwings)
	if err != nil {
		h.logger.WarnContext(ctx, "reshape stats failed", "sum_swings", sumSwings, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, table)
}

func (h *Handler) ListGameModes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameModes")
	defer span.End()

	if h.catalog == nil {
		writeError(ctx, w, fmt.Errorf("%w: stats catalog is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	modes, err := h.catalog.GameModes(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list game modes failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, modes)
}

func (h *Handler) ListExportBatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListExportBatches")
	defer span.End()

	if h.exportService == nil {
		writeError(ctx, w, fmt.Errorf("%w: export is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	limit, err := parseLimitQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	batches, err := h.exportService.RecentBatches(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list export batches failed", "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, batches)
}
