package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/rio-stats/internal/domain/categorystats"
	"github.com/riskibarqy/rio-stats/internal/domain/landing"
	"github.com/riskibarqy/rio-stats/internal/domain/rawdata"
	"github.com/riskibarqy/rio-stats/internal/domain/webstats"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
)

type FetchKind string

const (
	FetchStats   FetchKind = "stats"
	FetchLanding FetchKind = "landing"
	FetchEvents  FetchKind = "events"
	FetchGames   FetchKind = "games"

	fetchStatusSuccess = "success"
	fetchStatusFailed  = "failed"

	defaultFetchWorkers = 8
)

// FetchRequest is one call against the stats service. Games is read for
// FetchGames, Stats for every other kind.
type FetchRequest struct {
	Kind  FetchKind
	Stats webstats.StatsQuery
	Games webstats.GamesQuery
}

func (r FetchRequest) key() string {
	var params []webstats.Param
	if r.Kind == FetchGames {
		params = r.Games.Params()
	} else {
		params = r.Stats.Params()
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Key+"="+p.Value)
	}
	return string(r.Kind) + "?" + strings.Join(parts, "&")
}

type FetchTaskResult struct {
	Index      int    `json:"index"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// FetchResult merges the successful tasks in request order. Failed tasks only
// show up in Tasks.
type FetchResult struct {
	TaskCount    int               `json:"task_count"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	WorkerCount  int               `json:"worker_count"`
	Tasks        []FetchTaskResult `json:"tasks"`

	Stats    *categorystats.Table   `json:"stats,omitempty"`
	Landing  []landing.Row          `json:"landing,omitempty"`
	Events   []map[string]any       `json:"events,omitempty"`
	Games    []webstats.GameListing `json:"games,omitempty"`
	Payloads []map[string]any       `json:"-"`
}

type FetchConfig struct {
	MaxWorkers int
	Logger     *logging.Logger
	// Archive stores the raw stats and events responses when set.
	Archive rawdata.Repository
}

type FetchService struct {
	source     webstats.Source
	maxWorkers int
	logger     *logging.Logger
	archive    rawdata.Repository
}

func NewFetchService(source webstats.Source, cfg FetchConfig) *FetchService {
	return &FetchService{
		source:     source,
		maxWorkers: cfg.MaxWorkers,
		logger:     logging.OrDefault(cfg.Logger),
		archive:    cfg.Archive,
	}
}

type fetchOutcome struct {
	task    FetchTaskResult
	request FetchRequest
	stats   *categorystats.Table
	raw     map[string]any
	landing []landing.Row
	games   []webstats.GameListing
}

// FetchAll runs the requests on a worker pool. A failing request is logged
// and left out of the merged result; the others still count.
func (s *FetchService) FetchAll(ctx context.Context, requests []FetchRequest) (FetchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchAll")
	defer span.End()

	if s.source == nil {
		return FetchResult{}, fmt.Errorf("%w: stats source is not configured", ErrDependencyUnavailable)
	}
	for idx, req := range requests {
		if !validFetchKind(req.Kind) {
			return FetchResult{}, fmt.Errorf("%w: request %d: unsupported kind %q", ErrInvalidInput, idx, req.Kind)
		}
	}

	workerCount := normalizeFetchWorkerCount(s.maxWorkers, len(requests))
	result := FetchResult{
		TaskCount:   len(requests),
		WorkerCount: workerCount,
		Tasks:       make([]FetchTaskResult, 0, len(requests)),
	}
	if len(requests) == 0 {
		return result, nil
	}

	outcomes := make(chan fetchOutcome, len(requests))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return FetchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for idx, req := range requests {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			out := s.runFetchTask(ctx, req)
			out.request = req
			out.task.Index = idx
			out.task.Kind = string(req.Kind)
			out.task.DurationMs = time.Since(start).Milliseconds()

			if out.task.Status == fetchStatusSuccess {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "fetch request failed",
					"kind", req.Kind,
					"request", req.key(),
					"error", out.task.Message,
				)
			}
			outcomes <- out
		}); err != nil {
			workers.Done()
			return FetchResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(outcomes)

	collected := make([]fetchOutcome, 0, len(requests))
	for out := range outcomes {
		collected = append(collected, out)
	}
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].task.Index < collected[j].task.Index
	})

	var tables []categorystats.Table
	var archived []rawdata.Payload
	for _, out := range collected {
		if out.task.Status == fetchStatusSuccess && out.request.Kind == FetchStats && len(tables) > 0 &&
			!tables[0].Shape.ConcatCompatible(out.stats.Shape) {
			// The first stats table fixes the merged shape; a later one with other
			// key columns or swing breakdown cannot be stacked under it.
			out.task.Status = fetchStatusFailed
			out.task.Message = fmt.Sprintf("stats shape %s (swing breakdown %t) does not match %s (swing breakdown %t)",
				out.stats.Grouping, out.stats.SwingBreakdown, tables[0].Grouping, tables[0].SwingBreakdown)
			successCount.Add(-1)
			failedCount.Add(1)
			s.logger.WarnContext(ctx, "stats table left out of merge",
				"request", out.request.key(),
				"error", out.task.Message,
			)
		}
		result.Tasks = append(result.Tasks, out.task)
		if out.task.Status != fetchStatusSuccess {
			continue
		}
		switch out.request.Kind {
		case FetchStats:
			tables = append(tables, *out.stats)
			result.Payloads = append(result.Payloads, out.raw)
		case FetchEvents:
			result.Events = append(result.Events, out.raw)
		case FetchLanding:
			result.Landing = append(result.Landing, out.landing...)
		case FetchGames:
			result.Games = append(result.Games, out.games...)
		}
		if out.raw != nil && s.archive != nil {
			payload, err := archivePayload(out)
			if err != nil {
				s.logger.WarnContext(ctx, "skip archiving api response", "request", out.request.key(), "error", err)
				continue
			}
			archived = append(archived, payload)
		}
	}

	if len(tables) > 0 {
		merged, err := categorystats.Concat(tables...)
		if err != nil {
			return FetchResult{}, fmt.Errorf("merge stats tables: %w", err)
		}
		result.Stats = &merged
	}
	if len(archived) > 0 {
		if err := s.archive.UpsertMany(ctx, archived); err != nil {
			s.logger.WarnContext(ctx, "archive api responses failed", "count", len(archived), "error", err)
		}
	}

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func (s *FetchService) runFetchTask(ctx context.Context, req FetchRequest) fetchOutcome {
	out := fetchOutcome{}
	fail := func(err error) fetchOutcome {
		out.task.Status = fetchStatusFailed
		out.task.Message = err.Error()
		return out
	}

	switch req.Kind {
	case FetchStats:
		resp, err := s.source.Stats(ctx, req.Stats)
		if err != nil {
			return fail(fmt.Errorf("fetch stats: %w", err))
		}
		table, err := categorystats.Flatten(categorystats.StatsOf(resp))
		if err != nil {
			return fail(fmt.Errorf("flatten stats: %w", err))
		}
		if table.Ambiguous {
			s.logger.WarnContext(ctx, "stats payload shape is ambiguous", "reason", table.Reason)
		}
		out.stats = &table
		out.raw = resp
		out.task.Records = len(table.Rows)
	case FetchEvents:
		resp, err := s.source.Events(ctx, req.Stats)
		if err != nil {
			return fail(fmt.Errorf("fetch events: %w", err))
		}
		out.raw = resp
		out.task.Records = len(resp)
	case FetchLanding:
		rows, err := s.source.LandingData(ctx, req.Stats)
		if err != nil {
			return fail(fmt.Errorf("fetch landing data: %w", err))
		}
		out.landing = rows
		out.task.Records = len(rows)
	case FetchGames:
		games, err := s.source.Games(ctx, req.Games)
		if err != nil {
			return fail(fmt.Errorf("fetch games: %w", err))
		}
		out.games = games
		out.task.Records = len(games)
	}

	out.task.Status = fetchStatusSuccess
	return out
}

func archivePayload(out fetchOutcome) (rawdata.Payload, error) {
	body, err := sonic.Marshal(out.raw)
	if err != nil {
		return rawdata.Payload{}, fmt.Errorf("marshal api response: %w", err)
	}
	return rawdata.New(rawdata.SourceRioAPI, rawdata.EntityAPIResponse, out.request.key(), body, nil), nil
}

func validFetchKind(kind FetchKind) bool {
	switch kind {
	case FetchStats, FetchLanding, FetchEvents, FetchGames:
		return true
	default:
		return false
	}
}

func normalizeFetchWorkerCount(requested, tasks int) int {
	if requested <= 0 {
		requested = defaultFetchWorkers
	}
	if tasks > 0 && requested > tasks {
		requested = tasks
	}
	if requested < 1 {
		requested = 1
	}
	return requested
}
