package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
	"github.com/riskibarqy/rio-stats/internal/usecase"
)

const (
	maxRequestBodyBytes = 16 << 20
	defaultExportLimit  = 20
	maxExportLimit      = 200
)

type Handler struct {
	gameService   *usecase.GameService
	catalog       *usecase.Catalog
	exportService *usecase.ExportService
	logger        *logging.Logger
	validator     *validator.Validate
}

// NewHandler wires the read API. catalog and exportService may be nil; their
// routes then answer 503.
func NewHandler(
	gameService *usecase.GameService,
	catalog *usecase.Catalog,
	exportService *usecase.ExportService,
	logger *logging.Logger,
) *Handler {
	return &Handler{
		gameService:   gameService,
		catalog:       catalog,
		exportService: exportService,
		logger:        logging.OrDefault(logger).Named("httpapi"),
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	return body, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseBoolQuery(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

func parseLimitQuery(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return defaultExportLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)
	}
	return min(limit, maxExportLimit), nil
}
