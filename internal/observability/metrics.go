package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/rio-stats/internal/platform/resilience"
)

// Metrics holds the process collectors. A nil *Metrics records nothing, so
// components can take one optionally.
type Metrics struct {
	registry        *prometheus.Registry
	apiRequests     *prometheus.CounterVec
	apiDuration     *prometheus.HistogramVec
	circuitState    *prometheus.GaugeVec
	statFiles       *prometheus.CounterVec
	exportedRows    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	gamesSummarized prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rio_api_requests_total",
			Help: "Requests sent to the Project Rio web API by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rio_api_request_duration_seconds",
			Help:    "Latency of Project Rio web API requests, retries included.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		circuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rio_api_circuit_state",
			Help: "1 for the current circuit breaker state of the web API client.",
		}, []string{"state"}),
		statFiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rio_stat_files_total",
			Help: "Stat files read from disk by outcome.",
		}, []string{"outcome"}),
		exportedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rio_exported_rows_total",
			Help: "Rows written by export sink.",
		}, []string{"sink"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rio_http_requests_total",
			Help: "Read API requests by route and status code.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rio_http_request_duration_seconds",
			Help:    "Read API latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		gamesSummarized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rio_games_summarized_total",
			Help: "Game records summarized.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.apiDuration,
		m.circuitState,
		m.statFiles,
		m.exportedRows,
		m.httpRequests,
		m.httpDuration,
		m.gamesSummarized,
	)
	m.SetCircuitState(resilience.CircuitStateClosed)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(endpoint, outcome).Inc()
	m.apiDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) SetCircuitState(state resilience.CircuitState) {
	if m == nil {
		return
	}
	for _, s := range []resilience.CircuitState{
		resilience.CircuitStateClosed,
		resilience.CircuitStateOpen,
		resilience.CircuitStateHalfOpen,
	} {
		value := 0.0
		if s == state {
			value = 1
		}
		m.circuitState.WithLabelValues(string(s)).Set(value)
	}
}

// WatchBreaker mirrors breaker transitions into the circuit state gauge.
func (m *Metrics) WatchBreaker(b *resilience.CircuitBreaker) {
	if m == nil || b == nil {
		return
	}
	b.OnStateChange(func(_, to resilience.CircuitState) {
		m.SetCircuitState(to)
	})
}

func (m *Metrics) StatFile(outcome string) {
	if m == nil {
		return
	}
	m.statFiles.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ExportedRows(sink string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.exportedRows.WithLabelValues(sink).Add(float64(n))
}

func (m *Metrics) GameSummarized() {
	if m == nil {
		return
	}
	m.gamesSummarized.Inc()
}

func (m *Metrics) ObserveHTTP(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
