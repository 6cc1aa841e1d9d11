package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/riskibarqy/rio-stats/internal/app"
	"github.com/riskibarqy/rio-stats/internal/config"
	"github.com/riskibarqy/rio-stats/internal/observability"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

type command struct {
	usage string
	run   func(ctx context.Context, a *app.App, args []string, stdout io.Writer) error
}

var commands = map[string]command{
	"summary": {usage: "summary <stat-file>", run: runSummary},
	"pitches": {usage: "pitches <dir> [out.csv]", run: runPitches},
	"stats":   {usage: "stats [-export] [key=value ...]", run: runStats},
	"landing": {usage: "landing [key=value ...]", run: runLanding},
	"games":   {usage: "games [key=value ...]", run: runGames},
	"serve":   {usage: "serve", run: runServe},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}
	name := strings.ToLower(strings.TrimSpace(args[0]))
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		printUsage(stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}

	var logger *logging.Logger
	if name == observability.CommandServe {
		logger = logging.NewJSON(cfg.LogLevel)
	} else {
		logger = logging.NewConsole(cfg.LogLevel, stderr)
	}
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, name, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	stopProfiling, err := observability.InitPyroscope(cfg, name, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopProfiling(); err != nil {
			logger.Warn("pyroscope stop failed", "error", err)
		}
	}()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()

	diagnostics, err := observability.StartDiagnosticsServer(cfg, a.Metrics, logger)
	if err != nil {
		logger.Error("start diagnostics server", "error", err)
		return 1
	}
	defer func() {
		if err := observability.StopDiagnosticsServer(diagnostics, logger, shutdownTimeout); err != nil {
			logger.Warn("stop diagnostics server", "error", err)
		}
	}()

	if err := cmd.run(ctx, a, args[1:], stdout); err != nil {
		logger.Error(name+" failed", "error", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: riostat <command> [args]")
	for _, name := range []string{"summary", "pitches", "stats", "landing", "games", "serve"} {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}
