package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/rio-stats/internal/platform/logging"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config stores runtime configuration for the CLI and the read API.
type Config struct {
	AppEnv                   string
	ServiceName              string
	ServiceVersion           string
	HTTPAddr                 string
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
	LogLevel                 logging.Level
	CORSAllowedOrigins       []string
	RioAPIBaseURL            string
	RioAPIKey                string
	RioAPITimeout            time.Duration
	RioAPIMaxRetries         int
	RioAPICircuitEnabled     bool
	RioAPICircuitFailures    int
	RioAPICircuitOpenTimeout time.Duration
	RioAPICircuitHalfOpenReq int
	FetchMaxWorkers          int
	StatFileGlob             string
	CacheEnabled             bool
	CacheTTL                 time.Duration
	CacheBackend             string
	RedisURL                 string
	DBURL                    string
	DBDisablePreparedBinary  bool
	ExportDBEnabled          bool
	ExportKafkaBrokers       []string
	ExportKafkaTopic         string
	MetricsEnabled           bool
	PprofEnabled             bool
	PprofAddr                string
	UptraceEnabled           bool
	UptraceDSN               string
	PyroscopeEnabled         bool
	PyroscopeServerAddress   string
	PyroscopeAppName         string
	PyroscopeAuthToken       string
	PyroscopeBasicAuthUser   string
	PyroscopeBasicAuthPass   string
	PyroscopeUploadRate      time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	rioBaseURL := strings.TrimRight(strings.TrimSpace(getEnv("RIO_API_BASE_URL", "https://api.projectrio.app")), "/")
	if rioBaseURL == "" {
		return Config{}, fmt.Errorf("RIO_API_BASE_URL cannot be empty")
	}
	rioTimeout, err := time.ParseDuration(getEnv("RIO_API_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RIO_API_TIMEOUT: %w", err)
	}
	if rioTimeout <= 0 {
		return Config{}, fmt.Errorf("RIO_API_TIMEOUT must be > 0")
	}
	rioMaxRetries, err := getEnvAsInt("RIO_API_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse RIO_API_MAX_RETRIES: %w", err)
	}
	if rioMaxRetries < 0 {
		return Config{}, fmt.Errorf("RIO_API_MAX_RETRIES must be >= 0")
	}
	rioCircuitEnabled, err := strconv.ParseBool(getEnv("RIO_API_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RIO_API_CIRCUIT_ENABLED: %w", err)
	}
	rioCircuitFailures, err := getEnvAsInt("RIO_API_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse RIO_API_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if rioCircuitFailures < 1 {
		return Config{}, fmt.Errorf("RIO_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	rioCircuitOpenTimeout, err := time.ParseDuration(getEnv("RIO_API_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RIO_API_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if rioCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("RIO_API_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	rioCircuitHalfOpenReq, err := getEnvAsInt("RIO_API_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse RIO_API_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if rioCircuitHalfOpenReq < 1 {
		return Config{}, fmt.Errorf("RIO_API_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	fetchMaxWorkers, err := getEnvAsInt("FETCH_MAX_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse FETCH_MAX_WORKERS: %w", err)
	}
	if fetchMaxWorkers <= 0 {
		return Config{}, fmt.Errorf("FETCH_MAX_WORKERS must be > 0")
	}
	statFileGlob := strings.TrimSpace(getEnv("STAT_FILE_GLOB", "*decoded*"))
	if _, err := filepath.Match(statFileGlob, ""); err != nil {
		return Config{}, fmt.Errorf("parse STAT_FILE_GLOB: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cacheBackend, err := parseCacheBackend(getEnv("CACHE_BACKEND", CacheBackendMemory))
	if err != nil {
		return Config{}, err
	}
	redisURL := strings.TrimSpace(getEnv("REDIS_URL", ""))
	if cacheEnabled && cacheBackend == CacheBackendRedis && redisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=redis")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	exportDBEnabled, err := strconv.ParseBool(getEnv("EXPORT_DB_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EXPORT_DB_ENABLED: %w", err)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if exportDBEnabled && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when EXPORT_DB_ENABLED=true")
	}
	kafkaBrokers := splitCSV(getEnv("EXPORT_KAFKA_BROKERS", ""))
	kafkaTopic := strings.TrimSpace(getEnv("EXPORT_KAFKA_TOPIC", "rio.pitches"))
	if len(kafkaBrokers) > 0 && kafkaTopic == "" {
		return Config{}, fmt.Errorf("EXPORT_KAFKA_TOPIC is required when EXPORT_KAFKA_BROKERS is set")
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                   appEnv,
		ServiceName:              getEnv("APP_SERVICE_NAME", "rio-stats"),
		ServiceVersion:           getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                 getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:              readTimeout,
		WriteTimeout:             writeTimeout,
		LogLevel:                 logLevel,
		CORSAllowedOrigins:       splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RioAPIBaseURL:            rioBaseURL,
		RioAPIKey:                strings.TrimSpace(getEnv("RIO_API_KEY", "")),
		RioAPITimeout:            rioTimeout,
		RioAPIMaxRetries:         rioMaxRetries,
		RioAPICircuitEnabled:     rioCircuitEnabled,
		RioAPICircuitFailures:    rioCircuitFailures,
		RioAPICircuitOpenTimeout: rioCircuitOpenTimeout,
		RioAPICircuitHalfOpenReq: rioCircuitHalfOpenReq,
		FetchMaxWorkers:          fetchMaxWorkers,
		StatFileGlob:             statFileGlob,
		CacheEnabled:             cacheEnabled,
		CacheTTL:                 cacheTTL,
		CacheBackend:             cacheBackend,
		RedisURL:                 redisURL,
		DBURL:                    dbURL,
		DBDisablePreparedBinary:  dbDisablePreparedBinary,
		ExportDBEnabled:          exportDBEnabled,
		ExportKafkaBrokers:       kafkaBrokers,
		ExportKafkaTopic:         kafkaTopic,
		MetricsEnabled:           metricsEnabled,
		PprofEnabled:             pprofEnabled,
		PprofAddr:                pprofAddr,
		UptraceEnabled:           uptraceEnabled,
		UptraceDSN:               uptraceDSN,
		PyroscopeEnabled:         pyroscopeEnabled,
		PyroscopeServerAddress:   pyroscopeServerAddress,
		PyroscopeAuthToken:       strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPass:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:      pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// KafkaExportEnabled reports whether pitch rows should also be published.
func (c Config) KafkaExportEnabled() bool {
	return len(c.ExportKafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseCacheBackend(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case CacheBackendMemory, CacheBackendRedis:
		return value, nil
	default:
		return "", fmt.Errorf("invalid CACHE_BACKEND %q: valid values are %s, %s", v, CacheBackendMemory, CacheBackendRedis)
	}
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
