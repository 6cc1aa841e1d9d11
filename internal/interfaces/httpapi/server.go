package httpapi

import (
	"net/http"

	"github.com/riskibarqy/rio-stats/internal/observability"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
	"go.uber.org/zap"
)

// NewRouter builds the read API. metrics may be nil, in which case /metrics
// is not served and routes are not observed.
func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	metrics *observability.Metrics,
	corsAllowedOrigins []string,
) http.Handler {
	logger = logging.OrDefault(logger)

	mux := http.NewServeMux()
	routes := &routeRegistrar{mux: mux}
	if metrics != nil {
		routes.observer = metrics
	}
	registerSystemRoutes(routes, handler, metrics)
	registerGameRoutes(routes, handler)
	registerStatsRoutes(routes, handler)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path, zap.Stack("stack"))
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
