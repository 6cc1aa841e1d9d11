package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riskibarqy/rio-stats/internal/config"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
	"github.com/riskibarqy/rio-stats/internal/platform/resilience"
)

func TestMetrics_ObserveRequest(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveRequest("/stats/", "ok", 20*time.Millisecond)
	m.ObserveRequest("/stats/", "ok", 30*time.Millisecond)
	m.ObserveRequest("/games/", "error", time.Millisecond)

	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("/stats/", "ok")); got != 2 {
		t.Fatalf("expected 2 ok stats requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("/games/", "error")); got != 1 {
		t.Fatalf("expected 1 failed games request, got %v", got)
	}
}

func TestMetrics_WatchBreaker(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute})
	m.WatchBreaker(breaker)

	breaker.RecordFailure()

	if got := testutil.ToFloat64(m.circuitState.WithLabelValues("open")); got != 1 {
		t.Fatalf("expected open gauge 1, got %v", got)
	}
	if got := testutil.ToFloat64(m.circuitState.WithLabelValues("closed")); got != 0 {
		t.Fatalf("expected closed gauge 0, got %v", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.ObserveRequest("/stats/", "ok", time.Second)
	m.StatFile("loaded")
	m.ExportedRows("csv", 3)
	m.GameSummarized()
	m.ObserveHTTP("/healthz", http.StatusOK, time.Millisecond)
	m.WatchBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second}))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 from nil metrics handler, got %d", rec.Code)
	}
}

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ExportedRows("csv", 4)
	m.StatFile("skipped")

	srv := httptest.NewServer(diagnosticsMux(m))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`rio_exported_rows_total{sink="csv"} 4`,
		`rio_stat_files_total{outcome="skipped"} 1`,
		`rio_api_circuit_state{state="closed"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
}

func TestStartDiagnosticsServer_Disabled(t *testing.T) {
	t.Parallel()

	srv, err := StartDiagnosticsServer(config.Config{}, NewMetrics(), logging.NewNop())
	if err != nil {
		t.Fatalf("start diagnostics: %v", err)
	}
	if srv != nil {
		t.Fatalf("expected no server when PPROF_ENABLED=false")
	}
	if err := StopDiagnosticsServer(srv, nil, time.Second); err != nil {
		t.Fatalf("stop nil server: %v", err)
	}
}
