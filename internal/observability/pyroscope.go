package observability

import (
	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/rio-stats/internal/config"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
)

var (
	batchProfiles = []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileAllocObjects,
		pyroscope.ProfileAllocSpace,
		pyroscope.ProfileGoroutines,
	}
	serverProfiles = append([]pyroscope.ProfileType{
		pyroscope.ProfileInuseObjects,
		pyroscope.ProfileInuseSpace,
		pyroscope.ProfileMutexCount,
		pyroscope.ProfileMutexDuration,
		pyroscope.ProfileBlockCount,
		pyroscope.ProfileBlockDuration,
	}, batchProfiles...)
)

// profileTypes keeps batch commands to CPU and allocation profiles; they exit
// before in-use or contention profiles say anything.
func profileTypes(command string) []pyroscope.ProfileType {
	if command == CommandServe {
		return serverProfiles
	}
	return batchProfiles
}

// InitPyroscope starts continuous profiling when enabled. Profiles are tagged
// with the riostat command so serve and batch runs can be told apart.
func InitPyroscope(cfg config.Config, command string, logger *logging.Logger) (func() error, error) {
	logger = logging.OrDefault(logger)

	if !cfg.PyroscopeEnabled {
		logger.Debug("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPass,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"command": command,
		},
		ProfileTypes: profileTypes(command),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
		"command", command,
	)
	return profiler.Stop, nil
}
