package app

import (
	"strings"
	"testing"
)

func TestFormatQueryForTrace(t *testing.T) {
	t.Parallel()

	got := formatQueryForTrace(" INSERT INTO pitch_rows (batch_id, game_id)\n VALUES ($1, $2)\nON CONFLICT (game_id, event_num)\n\tDO UPDATE SET batch_id = EXCLUDED.batch_id ")
	want := "INSERT INTO pitch_rows (batch_id, game_id) VALUES ($1, $2) ON CONFLICT (game_id, event_num) DO UPDATE SET batch_id = EXCLUDED.batch_id"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	long := formatQueryForTrace("SELECT " + strings.Repeat("a, ", 400) + "b FROM stat_cells")
	if len(long) != maxTracedQueryLength+3 || !strings.HasSuffix(long, "...") {
		t.Fatalf("expected truncated query of %d bytes, got %d", maxTracedQueryLength+3, len(long))
	}
	if formatQueryForTrace("  ") != "" {
		t.Fatalf("expected empty query to stay empty")
	}
}
