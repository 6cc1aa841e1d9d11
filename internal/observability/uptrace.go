package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/rio-stats/internal/config"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// CommandServe is the long-running read API; every other riostat command is a batch run.
const CommandServe = "serve"

func noopShutdown(context.Context) error { return nil }

// InitUptrace configures the global OpenTelemetry providers. Spans carry the
// riostat command as a resource attribute.
func InitUptrace(cfg config.Config, command string, logger *logging.Logger) (func(context.Context) error, error) {
	logger = logging.OrDefault(logger)

	if !cfg.UptraceEnabled {
		logger.Debug("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return noopShutdown, nil
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Warn("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(attribute.String("riostat.command", command)),
	)

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"command", command,
	)
	return uptrace.Shutdown, nil
}
