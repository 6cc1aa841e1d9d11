package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/rio-stats/internal/domain/categorystats"
	"github.com/riskibarqy/rio-stats/internal/domain/character"
	"github.com/riskibarqy/rio-stats/internal/domain/game"
	"github.com/riskibarqy/rio-stats/internal/domain/landing"
	"github.com/riskibarqy/rio-stats/internal/domain/lookup"
	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
	"github.com/riskibarqy/rio-stats/internal/domain/teamname"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
)

type gameRecorder interface {
	GameSummarized()
}

// GameSummary is game.Summary plus the team names derived from each roster.
type GameSummary struct {
	game.Summary
	TeamNames [2]string `json:"team_names"`
}

type CharacterInfo struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Simplified string `json:"simplified_name"`
	Class      string `json:"class"`
	Captain    bool   `json:"captain"`
}

// LandingReport summarizes landing rows: result counts, the batting average
// over at-bats and the contact type mix per swing type.
type LandingReport struct {
	landing.Summary
	BattingAverage *float64                      `json:"batting_average"`
	ContactRatios  map[string]map[string]float64 `json:"contact_ratios"`
}

type GameService struct {
	logger  *logging.Logger
	metrics gameRecorder
}

func NewGameService(logger *logging.Logger, metrics gameRecorder) *GameService {
	return &GameService{
		logger:  logging.OrDefault(logger),
		metrics: metrics,
	}
}

// Summarize parses a stat file body and summarizes it.
func (s *GameService) Summarize(ctx context.Context, body []byte) (GameSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Summarize")
	defer span.End()

	if len(body) == 0 {
		return GameSummary{}, fmt.Errorf("%w: stat file body is required", ErrInvalidInput)
	}
	rec, err := game.Parse(body)
	if err != nil {
		return GameSummary{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.SummarizeRecord(ctx, rec)
}

func (s *GameService) SummarizeRecord(ctx context.Context, rec *game.Record) (GameSummary, error) {
	if rec == nil {
		return GameSummary{}, fmt.Errorf("%w: record is required", ErrInvalidInput)
	}
	summary, err := rec.Summary()
	if err != nil {
		return GameSummary{}, fmt.Errorf("%w: summarize game: %w", ErrInvalidInput, err)
	}

	out := GameSummary{Summary: summary}
	for team, side := range summary.Teams {
		name, err := teamname.Name(side.Characters, side.Captain)
		if err != nil {
			s.logger.DebugContext(ctx, "no team name", "game_id", summary.GameID, "team", team, "error", err)
			continue
		}
		out.TeamNames[team] = name
	}
	if s.metrics != nil {
		s.metrics.GameSummarized()
	}
	return out, nil
}

// PitchRows flattens every loaded game into pitch rows. A game whose header
// cannot be read is skipped whole; an unreadable event costs only its own
// row. Both are reported as failures.
func (s *GameService) PitchRows(ctx context.Context, games []LoadedGame) ([]game.PitchRow, []LoadFailure) {
	_, span := startUsecaseSpan(ctx, "usecase.GameService.PitchRows")
	defer span.End()

	var rows []game.PitchRow
	var failures []LoadFailure
	for _, g := range games {
		if g.Record == nil {
			continue
		}
		gameRows, skipped, err := g.Record.PitchRows()
		if err != nil {
			s.logger.WarnContext(ctx, "skip game pitch rows", "path", g.Path, "error", err)
			failures = append(failures, LoadFailure{Path: g.Path, Message: err.Error()})
			continue
		}
		for _, bad := range skipped {
			s.logger.WarnContext(ctx, "skip event pitch row", "path", g.Path, "event", bad.Event, "error", bad.Err)
			failures = append(failures, LoadFailure{Path: g.Path, Message: bad.Error()})
		}
		rows = append(rows, gameRows...)
	}
	return rows, failures
}

// Reshape decodes an aggregate stats response and flattens it. With
// sumSwings the swing axis is collapsed.
func (s *GameService) Reshape(ctx context.Context, body []byte, sumSwings bool) (categorystats.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Reshape")
	defer span.End()

	var resp map[string]any
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return categorystats.Table{}, fmt.Errorf("%w: decode stats payload: %w", ErrInvalidInput, err)
	}
	if resp == nil {
		return categorystats.Table{}, fmt.Errorf("%w: stats payload must be an object", ErrInvalidInput)
	}
	table, err := categorystats.Flatten(categorystats.StatsOf(resp))
	if err != nil {
		return categorystats.Table{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if table.Ambiguous {
		s.logger.WarnContext(ctx, "stats payload shape is ambiguous", "reason", table.Reason)
	}
	if sumSwings {
		table = table.SumSwings()
	}
	return table, nil
}

// Character resolves a name, alias or numeric id.
func (s *GameService) Character(name string) (CharacterInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CharacterInfo{}, fmt.Errorf("%w: character name is required", ErrInvalidInput)
	}
	id, err := character.Lookup(name)
	if err != nil {
		if errors.Is(err, rioerr.ErrUnknownCharacter) {
			return CharacterInfo{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return CharacterInfo{}, err
	}
	return CharacterInfo{
		ID:         int(id),
		Name:       id.Name(),
		Simplified: id.SimplifiedName(),
		Class:      string(id.Class()),
		Captain:    id.IsCaptain(),
	}, nil
}

func (s *GameService) LandingReport(rows []landing.Row) LandingReport {
	report := LandingReport{
		Summary:       landing.Summarize(rows),
		ContactRatios: map[string]map[string]float64{},
	}
	report.BattingAverage = report.Average.Ptr()

	swings := map[int]struct{}{}
	for _, r := range rows {
		swings[r.TypeOfSwing] = struct{}{}
	}
	for swing := range swings {
		name, ok := lookup.SwingType.Name(swing)
		if !ok {
			name = fmt.Sprintf("%d", swing)
		}
		report.ContactRatios[name] = landing.ContactRatios(rows, swing)
	}
	return report
}
