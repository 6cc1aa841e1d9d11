package httpapi

import (
	"net/http"

	"github.com/riskibarqy/rio-stats/internal/domain/landing"
)

type landingReportRequest struct {
	Rows []landing.Row `json:"rows" validate:"required,min=1"`
}

// SummarizeGame takes a decoded stat file as the request body.
func (h *Handler) SummarizeGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SummarizeGame")
	defer span.End()

	body, err := readBody(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.gameService.Summarize(ctx, body)
	if err != nil {
		h.logger.WarnContext(ctx, "summarize game failed", "bytes", len(body), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCharacter")
	defer span.End()

	name := r.PathValue("name")
	info, err := h.gameService.Character(name)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, info)
}

func (h *Handler) LandingReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LandingReport")
	defer span.End()

	var req landingReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.gameService.LandingReport(req.Rows))
}
