package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/rio-stats/external/rioapi"
	"github.com/riskibarqy/rio-stats/internal/config"
	"github.com/riskibarqy/rio-stats/internal/domain/categorystats"
	"github.com/riskibarqy/rio-stats/internal/domain/exportbatch"
	"github.com/riskibarqy/rio-stats/internal/domain/rawdata"
	"github.com/riskibarqy/rio-stats/internal/infrastructure/messaging/kafka"
	repocache "github.com/riskibarqy/rio-stats/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/rio-stats/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/rio-stats/internal/interfaces/httpapi"
	"github.com/riskibarqy/rio-stats/internal/observability"
	"github.com/riskibarqy/rio-stats/internal/platform/cache"
	"github.com/riskibarqy/rio-stats/internal/platform/dburl"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
	"github.com/riskibarqy/rio-stats/internal/platform/resilience"
	"github.com/riskibarqy/rio-stats/internal/usecase"
)

const cacheNamespace = "rio-stats"

// App holds the wired services shared by the CLI commands and the read API.
type App struct {
	Config  config.Config
	Logger  *logging.Logger
	Metrics *observability.Metrics

	Client  *rioapi.Client
	Catalog *usecase.Catalog
	Fetch   *usecase.FetchService
	Files   *usecase.GameFileService
	Games   *usecase.GameService
	Export  *usecase.ExportService

	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	logger = logging.OrDefault(logger)
	a := &App{Config: cfg, Logger: logger}
	if cfg.MetricsEnabled {
		a.Metrics = observability.NewMetrics()
	}

	store, err := a.openCache(ctx)
	if err != nil {
		return nil, err
	}

	client := rioapi.NewClient(rioapi.ClientConfig{
		BaseURL:    cfg.RioAPIBaseURL,
		RioKey:     cfg.RioAPIKey,
		Timeout:    cfg.RioAPITimeout,
		MaxRetries: cfg.RioAPIMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.RioAPICircuitEnabled,
			FailureThreshold: cfg.RioAPICircuitFailures,
			OpenTimeout:      cfg.RioAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RioAPICircuitHalfOpenReq,
		},
		Cache:    store,
		Observer: a.requestObserver(),
	})
	if a.Metrics != nil {
		a.Metrics.WatchBreaker(client.Breaker())
	}
	a.Client = client

	var (
		archive rawdata.Repository
		batches exportbatch.Repository
		tables  categorystats.Repository
		sinks   []usecase.PitchSink
	)
	if cfg.ExportDBEnabled {
		db, err := openDB(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		archive = postgres.NewRawDataRepository(db)
		batches = postgres.NewExportBatchRepository(db)
		if store != nil {
			batches = repocache.NewExportBatchRepository(batches, store)
		}
		tables = postgres.NewStatCellRepository(db)
		sinks = append(sinks, usecase.PitchSink{Name: "postgres", Writer: postgres.NewPitchRowRepository(db)})
		logger.Info("postgres export enabled", "db", dburl.Name(cfg.DBURL))
	}
	if cfg.KafkaExportEnabled() {
		publisher, err := kafka.NewPitchPublisher(cfg.ExportKafkaBrokers, cfg.ExportKafkaTopic, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, publisher.Close)
		sinks = append(sinks, usecase.PitchSink{Name: "kafka", Writer: publisher})
		logger.Info("kafka export enabled", "topic", cfg.ExportKafkaTopic, "brokers", len(cfg.ExportKafkaBrokers))
	}

	a.Catalog = usecase.NewCatalog(client)
	a.Fetch = usecase.NewFetchService(client, usecase.FetchConfig{
		MaxWorkers: cfg.FetchMaxWorkers,
		Logger:     logger,
		Archive:    archive,
	})
	a.Files = usecase.NewGameFileService(usecase.GameFileConfig{
		Glob:       cfg.StatFileGlob,
		MaxWorkers: cfg.FetchMaxWorkers,
		Logger:     logger,
		Metrics:    a.statFileRecorder(),
		Archive:    archive,
	})
	a.Games = usecase.NewGameService(logger, a.gameRecorder())
	a.Export = usecase.NewExportService(usecase.ExportConfig{
		Logger:  logger,
		Metrics: a.exportRecorder(),
		Batches: batches,
		Tables:  tables,
		Sinks:   sinks,
	})

	return a, nil
}

func (a *App) openCache(ctx context.Context) (cache.Store, error) {
	cfg := a.Config
	if !cfg.CacheEnabled {
		return nil, nil
	}
	if cfg.CacheBackend != config.CacheBackendRedis {
		return cache.NewMemory(cfg.CacheTTL), nil
	}
	client, err := cache.OpenRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("open redis cache: %w", err)
	}
	a.closers = append(a.closers, client.Close)
	return cache.NewRedis(client, cacheNamespace, cfg.CacheTTL, a.Logger), nil
}

// The usecases take small recorder interfaces; a nil *Metrics must not be
// passed through them as a non-nil interface.
func (a *App) requestObserver() rioapi.RequestObserver {
	if a.Metrics == nil {
		return nil
	}
	return a.Metrics
}

func (a *App) statFileRecorder() interface{ StatFile(string) } {
	if a.Metrics == nil {
		return nil
	}
	return a.Metrics
}

func (a *App) gameRecorder() interface{ GameSummarized() } {
	if a.Metrics == nil {
		return nil
	}
	return a.Metrics
}

func (a *App) exportRecorder() interface{ ExportedRows(string, int) } {
	if a.Metrics == nil {
		return nil
	}
	return a.Metrics
}

// NewHTTPServer builds the read API server.
func (a *App) NewHTTPServer() (*http.Server, error) {
	handler := httpapi.NewHandler(a.Games, a.Catalog, a.Export, a.Logger)
	router := httpapi.NewRouter(handler, a.Logger, a.Metrics, a.Config.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         a.Config.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// Close releases connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
