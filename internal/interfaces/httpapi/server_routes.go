package httpapi

import (
	"net/http"

	"github.com/riskibarqy/rio-stats/internal/observability"
)

type routeRegistrar struct {
	mux      *http.ServeMux
	observer routeObserver
}

func (rr *routeRegistrar) handle(pattern string, h http.HandlerFunc) {
	rr.mux.Handle(pattern, ObserveRoute(rr.observer, pattern, h))
}

func registerSystemRoutes(rr *routeRegistrar, handler *Handler, metrics *observability.Metrics) {
	rr.mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		rr.mux.Handle("GET /metrics", metrics.Handler())
	}
}

func registerGameRoutes(rr *routeRegistrar, handler *Handler) {
	rr.handle("POST /v1/games/summary", handler.SummarizeGame)
	rr.handle("GET /v1/characters/{name}", handler.GetCharacter)
	rr.handle("POST /v1/landing/report", handler.LandingReport)
}

func registerStatsRoutes(rr *routeRegistrar, handler *Handler) {
	rr.handle("POST /v1/stats/reshape", handler.ReshapeStats)
	rr.handle("GET /v1/game-modes", handler.ListGameModes)
	rr.handle("GET /v1/exports", handler.ListExportBatches)
}
