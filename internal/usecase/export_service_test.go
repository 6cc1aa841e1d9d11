package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/rio-stats/internal/domain/categorystats"
	"github.com/riskibarqy/rio-stats/internal/domain/exportbatch"
	"github.com/riskibarqy/rio-stats/internal/domain/game"
	categorystatsmock "github.com/riskibarqy/rio-stats/internal/mocks/domain/categorystats"
	exportbatchmock "github.com/riskibarqy/rio-stats/internal/mocks/domain/exportbatch"
	gamemock "github.com/riskibarqy/rio-stats/internal/mocks/domain/game"
	"github.com/stretchr/testify/mock"
)

type fixedIDs struct{ id string }

func (f fixedIDs) NewID() (string, error) { return f.id, nil }

type countingExportRecorder struct {
	rows map[string]int
}

func (c *countingExportRecorder) ExportedRows(sink string, n int) {
	if c.rows == nil {
		c.rows = map[string]int{}
	}
	c.rows[sink] += n
}

var exportNow = time.Date(2024, 3, 9, 12, 0, 0, 0, time.FixedZone("WIB", 7*3600))

func expectedBatch(kind, source string, rows int) exportbatch.Batch {
	return exportbatch.Batch{
		ID:        "batch-1",
		Kind:      kind,
		Source:    source,
		Rows:      rows,
		CreatedAt: exportNow.UTC(),
	}
}

func TestExportService_ExportPitches(t *testing.T) {
	t.Parallel()

	rows := []game.PitchRow{{EventNum: 0}, {EventNum: 1}}
	batch := expectedBatch(exportbatch.KindPitches, "games/", 2)

	postgres := gamemock.NewPitchWriter(t)
	postgres.On("WritePitches", anyCtx, batch, rows).Return(nil).Once()
	csv := gamemock.NewPitchWriter(t)
	csv.On("WritePitches", anyCtx, batch, rows).Return(nil).Once()

	batches := exportbatchmock.NewRepository(t)
	batches.On("Create", anyCtx, batch).Return(nil).Once()

	recorder := &countingExportRecorder{}
	svc := NewExportService(ExportConfig{
		Metrics: recorder,
		IDs:     fixedIDs{id: "batch-1"},
		Batches: batches,
		Sinks:   []PitchSink{{Name: "postgres", Writer: postgres}},
		Now:     func() time.Time { return exportNow },
	})

	result, err := svc.ExportPitches(context.Background(), " games/ ", rows, PitchSink{Name: "csv", Writer: csv})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"postgres", "csv"}; !reflect.DeepEqual(result.Sinks, want) {
		t.Fatalf("expected sinks %v, got %v", want, result.Sinks)
	}
	if !reflect.DeepEqual(result.Batch, batch) {
		t.Fatalf("expected batch %v, got %v", batch, result.Batch)
	}
	if want := map[string]int{"postgres": 2, "csv": 2}; !reflect.DeepEqual(recorder.rows, want) {
		t.Fatalf("expected rows per sink %v, got %v", want, recorder.rows)
	}
}

func TestExportService_ExportPitches_SinkFailureSkipsBatch(t *testing.T) {
	t.Parallel()

	failing := gamemock.NewPitchWriter(t)
	failing.On("WritePitches", anyCtx, mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	never := gamemock.NewPitchWriter(t)
	batches := exportbatchmock.NewRepository(t)

	svc := NewExportService(ExportConfig{
		IDs:     fixedIDs{id: "batch-1"},
		Batches: batches,
		Sinks:   []PitchSink{{Name: "kafka", Writer: failing}, {Name: "postgres", Writer: never}},
		Now:     func() time.Time { return exportNow },
	})

	_, err := svc.ExportPitches(context.Background(), "", []game.PitchRow{{EventNum: 3}})
	if err == nil {
		t.Fatalf("expected sink failure")
	}
	if !strings.Contains(err.Error(), "sink=kafka") {
		t.Fatalf("expected failing sink named in %q", err.Error())
	}
	never.AssertNotCalled(t, "WritePitches", mock.Anything, mock.Anything, mock.Anything)
	batches.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExportService_ExportPitches_NoSinks(t *testing.T) {
	t.Parallel()

	_, err := NewExportService(ExportConfig{}).ExportPitches(context.Background(), "dir", nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExportService_ExportTable(t *testing.T) {
	t.Parallel()

	table := categorystats.Table{
		Shape:   categorystats.Shape{Grouping: categorystats.GroupingByCharacter},
		Columns: []categorystats.Column{{Category: "Batting", Stat: "hits"}},
		Rows:    []categorystats.Row{{Key: []string{"Mario"}}, {Key: []string{"Luigi"}}},
	}

	_, err := NewExportService(ExportConfig{}).ExportTable(context.Background(), "rioapi", table)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	batch := expectedBatch(exportbatch.KindStats, "rioapi", 2)
	tables := categorystatsmock.NewRepository(t)
	tables.On("SaveTable", anyCtx, batch, table).Return(nil).Once()

	result, err := NewExportService(ExportConfig{
		IDs:    fixedIDs{id: "batch-1"},
		Tables: tables,
		Now:    func() time.Time { return exportNow },
	}).ExportTable(context.Background(), "rioapi", table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Sinks) != 1 || result.Sinks[0] != "postgres" {
		t.Fatalf("expected only the postgres sink, got %v", result.Sinks)
	}
	if result.Batch.Rows != 2 {
		t.Fatalf("expected 2 batch rows, got %d", result.Batch.Rows)
	}
}

func TestExportService_RecentBatches(t *testing.T) {
	t.Parallel()

	if _, err := NewExportService(ExportConfig{}).RecentBatches(context.Background(), 5); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	batches := exportbatchmock.NewRepository(t)
	batches.On("ListRecent", anyCtx, 5).Return([]exportbatch.Batch{{ID: "b2"}, {ID: "b1"}}, nil).Once()
	svc := NewExportService(ExportConfig{Batches: batches})

	if _, err := svc.RecentBatches(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	items, err := svc.RecentBatches(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(items))
	}
	if items[0].ID != "b2" {
		t.Fatalf("expected id b2, got %q", items[0].ID)
	}
}
