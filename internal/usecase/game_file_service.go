package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/rio-stats/internal/domain/game"
	"github.com/riskibarqy/rio-stats/internal/domain/rawdata"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultStatFileGlob = "*decoded*"

	statFileLoaded = "loaded"
	statFileFailed = "failed"
)

type statFileRecorder interface {
	StatFile(outcome string)
}

// LoadedGame is a parsed stat file together with the bytes it came from.
type LoadedGame struct {
	Path   string
	Record *game.Record
	Body   []byte
}

type LoadFailure struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// LoadResult lists the parsed games sorted by path. Files that could not be
// read or parsed are reported in Failures and skipped.
type LoadResult struct {
	Matched  int           `json:"matched"`
	Games    []LoadedGame  `json:"-"`
	Failures []LoadFailure `json:"failures,omitempty"`
}

type GameFileConfig struct {
	Glob       string
	MaxWorkers int
	Logger     *logging.Logger
	Metrics    statFileRecorder
	// Archive keeps a copy of every parsed file when set.
	Archive rawdata.Repository
}

type GameFileService struct {
	glob       string
	maxWorkers int
	logger     *logging.Logger
	metrics    statFileRecorder
	archive    rawdata.Repository
}

func NewGameFileService(cfg GameFileConfig) *GameFileService {
	glob := strings.TrimSpace(cfg.Glob)
	if glob == "" {
		glob = defaultStatFileGlob
	}
	return &GameFileService{
		glob:       glob,
		maxWorkers: cfg.MaxWorkers,
		logger:     logging.OrDefault(cfg.Logger),
		metrics:    cfg.Metrics,
		archive:    cfg.Archive,
	}
}

// LoadFile reads and parses one stat file.
func (s *GameFileService) LoadFile(ctx context.Context, path string) (LoadedGame, error) {
	_, span := startUsecaseSpan(ctx, "usecase.GameFileService.LoadFile")
	defer span.End()

	path = strings.TrimSpace(path)
	if path == "" {
		return LoadedGame{}, fmt.Errorf("%w: stat file path is required", ErrInvalidInput)
	}
	loaded, err := loadStatFile(path)
	if err != nil {
		s.recordOutcome(statFileFailed)
		return LoadedGame{}, err
	}
	s.recordOutcome(statFileLoaded)
	return loaded, nil
}

// LoadDir parses every file in dir whose name matches the configured glob.
func (s *GameFileService) LoadDir(ctx context.Context, dir string) (LoadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameFileService.LoadDir")
	defer span.End()

	dir = strings.TrimSpace(dir)
	if dir == "" {
		return LoadResult{}, fmt.Errorf("%w: stat file directory is required", ErrInvalidInput)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return LoadResult{}, fmt.Errorf("%w: directory=%s", ErrNotFound, dir)
		}
		return LoadResult{}, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return LoadResult{}, fmt.Errorf("%w: %s is not a directory", ErrInvalidInput, dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, s.glob))
	if err != nil {
		return LoadResult{}, fmt.Errorf("match stat files: %w", err)
	}
	sort.Strings(paths)

	result := LoadResult{Matched: len(paths)}
	if len(paths) == 0 {
		return result, nil
	}

	type fileOutcome struct {
		game LoadedGame
		err  error
	}
	p := pool.NewWithResults[fileOutcome]().WithMaxGoroutines(normalizeFetchWorkerCount(s.maxWorkers, len(paths)))
	for _, path := range paths {
		p.Go(func() fileOutcome {
			if err := ctx.Err(); err != nil {
				return fileOutcome{game: LoadedGame{Path: path}, err: err}
			}
			loaded, err := loadStatFile(path)
			if err != nil {
				return fileOutcome{game: LoadedGame{Path: path}, err: err}
			}
			return fileOutcome{game: loaded}
		})
	}
	outcomes := p.Wait()
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].game.Path < outcomes[j].game.Path
	})

	for _, out := range outcomes {
		if out.err != nil {
			s.recordOutcome(statFileFailed)
			s.logger.WarnContext(ctx, "skip stat file", "path", out.game.Path, "error", out.err)
			result.Failures = append(result.Failures, LoadFailure{Path: out.game.Path, Message: out.err.Error()})
			continue
		}
		s.recordOutcome(statFileLoaded)
		result.Games = append(result.Games, out.game)
	}

	if s.archive != nil && len(result.Games) > 0 {
		if err := s.archiveGames(ctx, result.Games); err != nil {
			s.logger.WarnContext(ctx, "archive stat files failed", "count", len(result.Games), "error", err)
		}
	}

	s.logger.InfoContext(ctx, "stat files loaded",
		"dir", dir,
		"matched", result.Matched,
		"loaded", len(result.Games),
		"failed", len(result.Failures),
	)
	return result, nil
}

func (s *GameFileService) archiveGames(ctx context.Context, games []LoadedGame) error {
	items := make([]rawdata.Payload, 0, len(games))
	for _, g := range games {
		id, err := g.Record.GameID()
		if err != nil {
			s.logger.WarnContext(ctx, "skip archiving stat file", "path", g.Path, "error", err)
			continue
		}
		var startedAt *time.Time
		if ts, err := g.Record.StartTime(); err == nil {
			startedAt = &ts
		}
		items = append(items, rawdata.New(rawdata.SourceStatFile, rawdata.EntityGame, fmt.Sprintf("%X", id), g.Body, startedAt))
	}
	if len(items) == 0 {
		return nil
	}
	if err := s.archive.UpsertMany(ctx, items); err != nil {
		return fmt.Errorf("upsert raw stat files: %w", err)
	}
	return nil
}

func (s *GameFileService) recordOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.StatFile(outcome)
	}
}

func loadStatFile(path string) (LoadedGame, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return LoadedGame{}, fmt.Errorf("read stat file: %w", err)
	}
	rec, err := game.Parse(body)
	if err != nil {
		return LoadedGame{}, fmt.Errorf("parse stat file %s: %w", filepath.Base(path), err)
	}
	return LoadedGame{Path: path, Record: rec, Body: body}, nil
}
