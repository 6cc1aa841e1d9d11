package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/riskibarqy/rio-stats/internal/domain/game"
	"github.com/riskibarqy/rio-stats/internal/domain/landing"
	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
)

func TestGameService_Summarize_RejectsBadBodies(t *testing.T) {
	t.Parallel()

	svc := NewGameService(nil, nil)
	for _, body := range []string{"", "[1, 2]", `{"GameID": "1A2B"}`} {
		if _, err := svc.Summarize(context.Background(), []byte(body)); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("body %q: expected ErrInvalidInput, got %v", body, err)
		}
	}
	if _, err := svc.SummarizeRecord(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil record, got %v", err)
	}
}

func TestGameService_Reshape(t *testing.T) {
	t.Parallel()

	svc := NewGameService(nil, nil)
	body := []byte(`{"Stats": {"Batting": {"Slap": {"hits": 2}, "Charge": {"hits": 3}, "summary_hits": 5}}}`)

	table, err := svc.Reshape(context.Background(), body, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !table.SwingBreakdown {
		t.Fatalf("expected swing breakdown to be true")
	}

	summed, err := svc.Reshape(context.Background(), body, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summed.SwingBreakdown {
		t.Fatalf("expected swing breakdown to be false")
	}
	if len(summed.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(summed.Rows))
	}

	if _, err := svc.Reshape(context.Background(), []byte("{"), false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Reshape(context.Background(), []byte("null"), false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for null payload, got %v", err)
	}
}

func TestGameService_Character(t *testing.T) {
	t.Parallel()

	svc := NewGameService(nil, nil)

	info, err := svc.Character("  mario ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "Mario" {
		t.Fatalf("expected name Mario, got %q", info.Name)
	}
	if info.ID != 0 {
		t.Fatalf("expected id 0, got %d", info.ID)
	}
	if !info.Captain {
		t.Fatalf("expected captain to be true")
	}

	_, err = svc.Character("Waluigi Jr")
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, rioerr.ErrUnknownCharacter) {
		t.Fatalf("expected ErrNotFound wrapping ErrUnknownCharacter, got %v", err)
	}
	if _, err := svc.Character(""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGameService_LandingReport(t *testing.T) {
	t.Parallel()

	rows := []landing.Row{
		{FinalResult: 7, TypeOfSwing: 1, TypeOfContact: 2},
		{FinalResult: 5, TypeOfSwing: 1, TypeOfContact: 2},
		{FinalResult: 5, TypeOfSwing: 2, TypeOfContact: 0},
		{FinalResult: 9, TypeOfSwing: 2, TypeOfContact: 0},
	}

	report := NewGameService(nil, nil).LandingReport(rows)
	if report.Rows != 4 || report.Hits != 2 || report.Outs != 2 {
		t.Fatalf("expected 4 rows, 2 hits, 2 outs, got %+v", report.Summary)
	}
	if report.BattingAverage == nil {
		t.Fatalf("expected batting average to be set")
	}
	if math.Abs(*report.BattingAverage-0.5) > 1e-9 {
		t.Fatalf("expected batting average 0.5, got %v", *report.BattingAverage)
	}
	if len(report.ContactRatios) != 2 {
		t.Fatalf("expected 2 contact ratios, got %d", len(report.ContactRatios))
	}

	empty := NewGameService(nil, nil).LandingReport(nil)
	if empty.BattingAverage != nil {
		t.Fatalf("expected undefined average without at-bats, got %v", *empty.BattingAverage)
	}
}

func TestGameService_PitchRows_SkipsUnparsedGames(t *testing.T) {
	t.Parallel()

	rows, failures := NewGameService(nil, nil).PitchRows(context.Background(), []LoadedGame{{Path: "a.json"}})
	if len(rows) != 0 || len(failures) != 0 {
		t.Fatalf("expected nothing for a game without record, got rows=%d failures=%d", len(rows), len(failures))
	}
}

func TestGameService_PitchRows_ReportsBadEventsPerGame(t *testing.T) {
	t.Parallel()

	parse := func(body string) *game.Record {
		rec, err := game.Parse([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return rec
	}
	badEvents := parse(`{"GameID": "1A2B", "Version": "1.9.5", "StadiumID": 3, "Character Game Stats": {},
		"Events": ["garbage", {"Event Num": 1, "Pitch": {"Pitch Type": "Curve"}}, {"Event Num": 2}]}`)
	badHeader := parse(`{"GameID": "zz", "Version": "1.9.5", "StadiumID": 3, "Character Game Stats": {}, "Events": []}`)

	rows, failures := NewGameService(nil, nil).PitchRows(context.Background(), []LoadedGame{
		{Path: "events.json", Record: badEvents},
		{Path: "header.json", Record: badHeader},
	})
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
	if len(failures) != 3 {
		t.Fatalf("expected 3 failures, got %+v", failures)
	}
	for i, prefix := range []string{"event 0:", "event 1:"} {
		if failures[i].Path != "events.json" || !strings.HasPrefix(failures[i].Message, prefix) {
			t.Fatalf("expected events.json failure %q, got %+v", prefix, failures[i])
		}
	}
	if failures[2].Path != "header.json" {
		t.Fatalf("expected header.json to fail whole, got %+v", failures[2])
	}
}
