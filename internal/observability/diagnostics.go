package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/rio-stats/internal/config"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
)

// StartDiagnosticsServer serves pprof and, when metrics are given, /metrics on
// PPROF_ADDR. Batch commands use it to stay scrapeable while they run.
func StartDiagnosticsServer(cfg config.Config, metrics *Metrics, logger *logging.Logger) (*http.Server, error) {
	logger = logging.OrDefault(logger)

	if !cfg.PprofEnabled {
		logger.Info("diagnostics server disabled", "reason", "PPROF_ENABLED=false")
		return nil, nil
	}

	srv := &http.Server{
		Addr:              cfg.PprofAddr,
		Handler:           diagnosticsMux(metrics),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("diagnostics server starting", "addr", cfg.PprofAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("diagnostics server failed", "error", err)
		}
	}()

	return srv, nil
}

func diagnosticsMux(metrics *Metrics) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	if metrics != nil {
		mux.Handle("/metrics", metrics.Handler())
	}
	return mux
}

func StopDiagnosticsServer(srv *http.Server, logger *logging.Logger, timeout time.Duration) error {
	if srv == nil {
		return nil
	}
	logger = logging.OrDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("diagnostics server stopped")

	return nil
}
