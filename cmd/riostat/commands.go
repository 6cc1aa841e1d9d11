package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/rio-stats/internal/app"
	"github.com/riskibarqy/rio-stats/internal/domain/webstats"
	"github.com/riskibarqy/rio-stats/internal/infrastructure/export"
	"github.com/riskibarqy/rio-stats/internal/usecase"
)

func runSummary(ctx context.Context, a *app.App, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: riostat summary <stat-file>")
	}
	loaded, err := a.Files.LoadFile(ctx, args[0])
	if err != nil {
		return err
	}
	summary, err := a.Games.SummarizeRecord(ctx, loaded.Record)
	if err != nil {
		return err
	}
	return writeJSON(stdout, summary)
}

func runPitches(ctx context.Context, a *app.App, args []string, stdout io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: riostat pitches <dir> [out.csv]")
	}
	dir := args[0]

	loaded, err := a.Files.LoadDir(ctx, dir)
	if err != nil {
		return err
	}
	rows, failures := a.Games.PitchRows(ctx, loaded.Games)
	if len(rows) == 0 {
		return fmt.Errorf("no pitch rows in %s (matched=%d, failed=%d)", dir, loaded.Matched, len(loaded.Failures)+len(failures))
	}

	out := stdout
	if len(args) == 2 {
		f, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()
		out = f
	}

	result, err := a.Export.ExportPitches(ctx, dir, rows, usecase.PitchSink{Name: "csv", Writer: export.NewPitchCSV(out)})
	if err != nil {
		return err
	}
	a.Logger.Info("pitches exported",
		"batch_id", result.Batch.ID,
		"rows", result.Batch.Rows,
		"games", len(loaded.Games),
		"sinks", strings.Join(result.Sinks, ","),
	)
	return nil
}

func runStats(ctx context.Context, a *app.App, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	exportTable := fs.Bool("export", false, "store the table in postgres")
	sumSwings := fs.Bool("sum-swings", false, "collapse the swing breakdown")
	if err := fs.Parse(args); err != nil {
		return err
	}
	query, err := webstats.ParseStatsQuery(parseKeyValues(fs.Args()))
	if err != nil {
		return err
	}

	result, err := fetchOne(ctx, a, usecase.FetchRequest{Kind: usecase.FetchStats, Stats: query})
	if err != nil {
		return err
	}
	table := *result.Stats
	if *sumSwings {
		table = table.SumSwings()
	}
	if err := export.WriteTable(stdout, table); err != nil {
		return err
	}

	if *exportTable {
		exported, err := a.Export.ExportTable(ctx, "rioapi", table)
		if err != nil {
			return err
		}
		a.Logger.Info("stats table exported", "batch_id", exported.Batch.ID, "rows", exported.Batch.Rows)
	}
	return nil
}

func runLanding(ctx context.Context, a *app.App, args []string, stdout io.Writer) error {
	query, err := webstats.ParseStatsQuery(parseKeyValues(args))
	if err != nil {
		return err
	}
	result, err := fetchOne(ctx, a, usecase.FetchRequest{Kind: usecase.FetchLanding, Stats: query})
	if err != nil {
		return err
	}
	return writeJSON(stdout, a.Games.LandingReport(result.Landing))
}

func runGames(ctx context.Context, a *app.App, args []string, stdout io.Writer) error {
	query, err := webstats.ParseGamesQuery(parseKeyValues(args))
	if err != nil {
		return err
	}
	result, err := fetchOne(ctx, a, usecase.FetchRequest{Kind: usecase.FetchGames, Games: query})
	if err != nil {
		return err
	}
	named, err := a.Catalog.NameGames(ctx, result.Games)
	if err != nil {
		a.Logger.Warn("game modes unavailable", "error", err)
		return writeJSON(stdout, result.Games)
	}
	return writeJSON(stdout, named)
}

func runServe(ctx context.Context, a *app.App, _ []string, _ io.Writer) error {
	srv, err := a.NewHTTPServer()
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		a.Logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	a.Logger.Info("http server stopped")
	return nil
}

// fetchOne runs a single request and fails when it did not succeed.
func fetchOne(ctx context.Context, a *app.App, req usecase.FetchRequest) (usecase.FetchResult, error) {
	result, err := a.Fetch.FetchAll(ctx, []usecase.FetchRequest{req})
	if err != nil {
		return usecase.FetchResult{}, err
	}
	if result.SuccessCount == 0 {
		msg := "unknown error"
		if len(result.Tasks) > 0 && result.Tasks[0].Message != "" {
			msg = result.Tasks[0].Message
		}
		return usecase.FetchResult{}, fmt.Errorf("%s request failed: %s", req.Kind, msg)
	}
	return result, nil
}

// parseKeyValues turns "key=a,b" and bare "flag" arguments into query values.
func parseKeyValues(args []string) map[string][]string {
	out := make(map[string][]string, len(args))
	for _, arg := range args {
		key, value, hasValue := strings.Cut(strings.TrimSpace(arg), "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !hasValue {
			out[key] = append(out[key], "1")
			continue
		}
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out[key] = append(out[key], part)
			}
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := sonic.ConfigDefault.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
