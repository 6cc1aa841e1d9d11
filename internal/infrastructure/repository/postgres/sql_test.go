package postgres

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/rio-stats/internal/domain/categorystats"
	"github.com/riskibarqy/rio-stats/internal/domain/exportbatch"
	"github.com/riskibarqy/rio-stats/internal/domain/game"
	"github.com/riskibarqy/rio-stats/internal/domain/rawdata"
	qb "github.com/riskibarqy/rio-stats/internal/platform/querybuilder"
)

func TestChunks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items int
		size  int
		want  []int
	}{
		{name: "empty", items: 0, size: 3, want: []int{}},
		{name: "exact", items: 6, size: 3, want: []int{3, 3}},
		{name: "remainder", items: 7, size: 3, want: []int{3, 3, 1}},
		{name: "default size", items: 5, size: 0, want: []int{5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			items := make([]int, tc.items)
			got := chunks(items, tc.size)
			sizes := make([]int, 0, len(got))
			for _, c := range got {
				sizes = append(sizes, len(c))
			}
			if !reflect.DeepEqual(sizes, tc.want) {
				t.Fatalf("expected sizes %v, got %v", tc.want, sizes)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(fmt.Errorf("select: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("boom")) {
		t.Fatalf("expected unrelated error not to be not found")
	}
}

func TestStatCellModels(t *testing.T) {
	t.Parallel()

	table, err := categorystats.Flatten(categorystats.Payload{
		"alice": map[string]any{
			"Mario": map[string]any{"Batting": map[string]any{"hits": 2.0, "walks": 1.0}},
			"Luigi": map[string]any{"Batting": map[string]any{"hits": 1.0}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	batch := exportbatch.Batch{ID: "b-1"}
	models := statCellModels(batch, table)

	// Luigi has no walks cell, so three present cells remain.
	if len(models) != 3 {
		t.Fatalf("expected 3 stat cells, got %d", len(models))
	}
	first := models[0]
	if first.UserKey == nil || *first.UserKey != "alice" {
		t.Fatalf("expected user key alice, got %v", first.UserKey)
	}
	if first.CharKey == nil || *first.CharKey != "Luigi" {
		t.Fatalf("expected first character Luigi, got %v", first.CharKey)
	}
	if first.Grouping != "by_user_and_character" || first.Stat != "hits" || first.Value != 1 {
		t.Fatalf("unexpected first cell: %+v", first)
	}
}

func TestPitchRowModels_InsertColumns(t *testing.T) {
	t.Parallel()

	mode := 7
	models := pitchRowModels(exportbatch.Batch{ID: "b-2", CreatedAt: time.Now()}, []game.PitchRow{
		{GameID: "AA", EventNum: 3, GameMode: &mode},
	})
	query, args, err := qb.InsertModels("pitch_rows", models, pitchRowConflictClause)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(args) != len(game.PitchColumns)+1 {
		t.Fatalf("expected %d args, got %d", len(game.PitchColumns)+1, len(args))
	}
	if args[0] != "b-2" {
		t.Fatalf("expected batch id first, got %v", args[0])
	}
	for _, want := range []string{
		"INSERT INTO pitch_rows (batch_id, event_num, pitching_player,",
		"ON CONFLICT (game_id, event_num) DO UPDATE SET batch_id = EXCLUDED.batch_id,",
	} {
		if !strings.Contains(query, want) {
			t.Fatalf("expected %q in query, got %s", want, query)
		}
	}
}

func TestPitchRowConflictClause_UpdatesEveryColumn(t *testing.T) {
	t.Parallel()

	for _, col := range []string{"batch_id", "pitching_score", "batting_score", "balls", "strikes", "rbi", "stadium"} {
		if !strings.Contains(pitchRowConflictClause, col+" = EXCLUDED."+col) {
			t.Fatalf("expected %s to be overwritten on conflict, got %s", col, pitchRowConflictClause)
		}
	}
	if strings.Contains(pitchRowConflictClause, "game_id = EXCLUDED") || strings.Contains(pitchRowConflictClause, "event_num = EXCLUDED") {
		t.Fatalf("expected conflict target columns to stay untouched, got %s", pitchRowConflictClause)
	}
	if !strings.HasSuffix(pitchRowConflictClause, "exported_at = NOW()") {
		t.Fatalf("expected exported_at refresh, got %s", pitchRowConflictClause)
	}
}

func TestPitchRowModels_LastRowPerEventWins(t *testing.T) {
	t.Parallel()

	models := pitchRowModels(exportbatch.Batch{ID: "b-3"}, []game.PitchRow{
		{GameID: "AA", EventNum: 0, BattingScore: 0},
		{GameID: "AA", EventNum: 1, BattingScore: 0},
		{GameID: "BB", EventNum: 0, BattingScore: 4},
		{GameID: "AA", EventNum: 0, BattingScore: 2},
	})

	if len(models) != 3 {
		t.Fatalf("expected 3 distinct (game, event) rows, got %d", len(models))
	}
	if models[0].GameID != "AA" || models[0].EventNum != 0 || models[0].BattingScore != 2 {
		t.Fatalf("expected the later AA/0 row in first position, got %+v", models[0].PitchRow)
	}
	if models[2].GameID != "BB" {
		t.Fatalf("expected BB last, got %s", models[2].GameID)
	}
}

func TestRawPayloadModels_LastPayloadPerKeyWins(t *testing.T) {
	t.Parallel()

	models := rawPayloadModels([]rawdata.Payload{
		rawdata.New(rawdata.SourceRioAPI, rawdata.EntityAPIResponse, "stats?tag=Ranked", []byte(`{"a":1}`), nil),
		rawdata.New(rawdata.SourceStatFile, rawdata.EntityGame, "1A2B", []byte(`{"GameID":"1A2B"}`), nil),
		rawdata.New(rawdata.SourceRioAPI, rawdata.EntityAPIResponse, "stats?tag=Ranked", []byte(`{"a":2}`), nil),
	})

	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	if models[0].EntityKey != "stats?tag=Ranked" || models[0].Payload != `{"a":2}` {
		t.Fatalf("expected the later stats payload in first position, got %+v", models[0])
	}
	if models[1].Source != rawdata.SourceStatFile {
		t.Fatalf("expected stat file second, got %s", models[1].Source)
	}

	query, args, err := qb.InsertModels("raw_payloads", models, rawPayloadConflictClause)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != 12 {
		t.Fatalf("expected 12 args, got %d", len(args))
	}
	if !strings.Contains(query, "WHERE raw_payloads.payload_hash <> EXCLUDED.payload_hash") {
		t.Fatalf("expected hash-guarded update, got %s", query)
	}
}
