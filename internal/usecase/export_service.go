package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/rio-stats/internal/domain/categorystats"
	"github.com/riskibarqy/rio-stats/internal/domain/exportbatch"
	"github.com/riskibarqy/rio-stats/internal/domain/game"
	"github.com/riskibarqy/rio-stats/internal/platform/id"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
)

type exportRecorder interface {
	ExportedRows(sink string, n int)
}

// PitchSink is a named destination for pitch rows.
type PitchSink struct {
	Name   string
	Writer game.PitchWriter
}

type ExportConfig struct {
	Logger  *logging.Logger
	Metrics exportRecorder
	IDs     id.Generator
	// Batches records every export run when set.
	Batches exportbatch.Repository
	// Tables receives reshaped stat tables when set.
	Tables categorystats.Repository
	Sinks  []PitchSink
	Now    func() time.Time
}

type ExportResult struct {
	Batch exportbatch.Batch `json:"batch"`
	Sinks []string          `json:"sinks"`
}

type ExportService struct {
	logger  *logging.Logger
	metrics exportRecorder
	ids     id.Generator
	batches exportbatch.Repository
	tables  categorystats.Repository
	sinks   []PitchSink
	now     func() time.Time
}

func NewExportService(cfg ExportConfig) *ExportService {
	ids := cfg.IDs
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &ExportService{
		logger:  logging.OrDefault(cfg.Logger),
		metrics: cfg.Metrics,
		ids:     ids,
		batches: cfg.Batches,
		tables:  cfg.Tables,
		sinks:   cfg.Sinks,
		now:     now,
	}
}

// ExportPitches writes rows to the configured sinks followed by extra. Sinks
// run in order and the first failure stops the export.
func (s *ExportService) ExportPitches(ctx context.Context, source string, rows []game.PitchRow, extra ...PitchSink) (ExportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.ExportPitches")
	defer span.End()

	sinks := make([]PitchSink, 0, len(s.sinks)+len(extra))
	sinks = append(sinks, s.sinks...)
	sinks = append(sinks, extra...)
	if len(sinks) == 0 {
		return ExportResult{}, fmt.Errorf("%w: no pitch sink configured", ErrInvalidInput)
	}

	batch, err := s.newBatch(exportbatch.KindPitches, source, len(rows))
	if err != nil {
		return ExportResult{}, err
	}

	result := ExportResult{Batch: batch, Sinks: make([]string, 0, len(sinks))}
	for _, sink := range sinks {
		if sink.Writer == nil {
			continue
		}
		start := time.Now()
		if err := sink.Writer.WritePitches(ctx, batch, rows); err != nil {
			return ExportResult{}, fmt.Errorf("write pitches sink=%s: %w", sink.Name, err)
		}
		s.recordRows(sink.Name, len(rows))
		result.Sinks = append(result.Sinks, sink.Name)
		s.logger.InfoContext(ctx, "pitch rows exported",
			"batch_id", batch.ID,
			"sink", sink.Name,
			"rows", len(rows),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	if err := s.recordBatch(ctx, batch); err != nil {
		return ExportResult{}, err
	}
	return result, nil
}

// ExportTable stores a reshaped stats table.
func (s *ExportService) ExportTable(ctx context.Context, source string, table categorystats.Table) (ExportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.ExportTable")
	defer span.End()

	if s.tables == nil {
		return ExportResult{}, fmt.Errorf("%w: stats table export is not configured", ErrDependencyUnavailable)
	}
	if err := table.Audit(); err != nil {
		s.logger.WarnContext(ctx, "exporting ambiguous stats table", "reason", table.Reason)
	}

	batch, err := s.newBatch(exportbatch.KindStats, source, len(table.Rows))
	if err != nil {
		return ExportResult{}, err
	}
	if err := s.tables.SaveTable(ctx, batch, table); err != nil {
		return ExportResult{}, fmt.Errorf("save stats table: %w", err)
	}
	s.recordRows("postgres", len(table.Rows))

	if err := s.recordBatch(ctx, batch); err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Batch: batch, Sinks: []string{"postgres"}}, nil
}

// RecentBatches lists the latest export runs, newest first.
func (s *ExportService) RecentBatches(ctx context.Context, limit int) ([]exportbatch.Batch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.RecentBatches")
	defer span.End()

	if s.batches == nil {
		return nil, fmt.Errorf("%w: export batches are not recorded", ErrDependencyUnavailable)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be greater than zero", ErrInvalidInput)
	}
	items, err := s.batches.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list export batches: %w", err)
	}
	return items, nil
}

func (s *ExportService) newBatch(kind, source string, rows int) (exportbatch.Batch, error) {
	batchID, err := s.ids.NewID()
	if err != nil {
		return exportbatch.Batch{}, fmt.Errorf("generate batch id: %w", err)
	}
	source = strings.TrimSpace(source)
	if source == "" {
		source = kind
	}
	return exportbatch.Batch{
		ID:        batchID,
		Kind:      kind,
		Source:    source,
		Rows:      rows,
		CreatedAt: s.now().UTC(),
	}, nil
}

func (s *ExportService) recordBatch(ctx context.Context, batch exportbatch.Batch) error {
	if s.batches == nil {
		return nil
	}
	if err := s.batches.Create(ctx, batch); err != nil {
		return fmt.Errorf("record export batch: %w", err)
	}
	return nil
}

func (s *ExportService) recordRows(sink string, n int) {
	if s.metrics != nil {
		s.metrics.ExportedRows(sink, n)
	}
}
