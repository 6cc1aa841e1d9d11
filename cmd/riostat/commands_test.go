package main

import (
	"bytes"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/riskibarqy/rio-stats/internal/domain/webstats"
)

func TestParseKeyValues(t *testing.T) {
	t.Parallel()

	got := parseKeyValues([]string{"username=alice,bob", "by_char", " limit_games = 20 ", "=ignored", "tag=Ranked", "tag=Netplay"})

	want := map[string][]string{
		"username":    {"alice", "bob"},
		"by_char":     {"1"},
		"limit_games": {"20"},
		"tag":         {"Ranked", "Netplay"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseKeyValues_FeedsStatsQuery(t *testing.T) {
	t.Parallel()

	q, err := webstats.ParseStatsQuery(parseKeyValues([]string{"by_char", "char_id=0,1"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Contains(q.Params(), webstats.Param{Key: "by_char", Value: "1"}) {
		t.Fatalf("expected by_char=1 in %v", q.Params())
	}

	_, err = webstats.ParseStatsQuery(parseKeyValues([]string{"colour=red"}))
	if err == nil {
		t.Fatalf("expected unknown parameter to be rejected")
	}
}

func TestRun_UsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: nil},
		{name: "unknown command", args: []string{"plot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != 2 {
				t.Fatalf("expected exit code 2, got %d", code)
			}
			if !strings.Contains(stderr.String(), "usage: riostat") {
				t.Fatalf("expected usage on stderr, got %q", stderr.String())
			}
			if stdout.Len() != 0 {
				t.Fatalf("expected empty stdout, got %q", stdout.String())
			}
		})
	}
}
