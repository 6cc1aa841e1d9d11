package rioapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/rio-stats/internal/domain/webstats"
	"github.com/riskibarqy/rio-stats/internal/platform/cache"
	"github.com/riskibarqy/rio-stats/internal/platform/logging"
	"github.com/riskibarqy/rio-stats/internal/platform/resilience"
	"github.com/riskibarqy/rio-stats/internal/usecase"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveRequest(endpoint, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, endpoint+" "+outcome)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate func(*ClientConfig)) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := ClientConfig{
		BaseURL:      srv.URL,
		RioKey:       "secret-key",
		Timeout:      2 * time.Second,
		RetryBackoff: time.Millisecond,
		Logger:       logging.NewNop(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func TestClient_StatsEncodesQueryWithoutKey(t *testing.T) {
	t.Parallel()

	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointStats {
			t.Errorf("expected %s, got %s", EndpointStats, r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"Stats":{"Batting":{"summary_hits":3}}}`))
	}, nil)

	q, err := webstats.ParseStatsQuery(map[string][]string{"username": {"alice", "bob"}, "by_swing": {"1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := client.Stats(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "by_swing=1&username=alice&username=bob"; gotQuery != want {
		t.Fatalf("expected query %q, got %q", want, gotQuery)
	}
	stats, ok := resp["Stats"].(map[string]any)
	if !ok {
		t.Fatalf("expected Stats object, got %T", resp["Stats"])
	}
	if _, ok := stats["Batting"]; !ok {
		t.Fatalf("expected Batting category, got %v", stats)
	}
}

func TestClient_CachesAndInvalidates(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"Stats":{}}`))
	}, func(cfg *ClientConfig) {
		cfg.Cache = cache.NewMemory(time.Minute)
	})

	ctx := context.Background()
	q := webstats.StatsQuery{Usernames: []string{"alice"}}
	for i := 0; i < 3; i++ {
		if _, err := client.Stats(ctx, q); err != nil {
			t.Fatalf("stats: %v", err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}

	client.Invalidate(ctx, EndpointStats)
	if _, err := client.Stats(ctx, q); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected refetch after invalidation, got %d calls", got)
	}
}

func TestClient_TagsPostsRioKey(t *testing.T) {
	t.Parallel()

	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		raw, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(raw, &body)
		_, _ = w.Write([]byte(`{"Tags":[{"id":131,"name":"Netplay Superstars","type":"Community","comm_id":18,"active":true},{"id":7,"name":"Hazards","type":"Component"}]}`))
	}, nil)

	tags, err := client.Tags(context.Background(), webstats.TagFilter{CommunityIDs: []int{18}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}

	if body["rio_key"] != "secret-key" {
		t.Fatalf("expected rio_key in body, got %v", body["rio_key"])
	}
	if !reflect.DeepEqual(body["community_ids"], []any{float64(18)}) {
		t.Fatalf("expected community_ids [18], got %v", body["community_ids"])
	}
	if tags[0].Type != webstats.TagTypeCommunity {
		t.Fatalf("expected community tag, got %v", tags[0].Type)
	}
	if tags[0].CommunityID == nil || *tags[0].CommunityID != 18 {
		t.Fatalf("expected community id 18, got %v", tags[0].CommunityID)
	}
	if !tags[1].IsFilterable() {
		t.Fatalf("expected component tag to be filterable")
	}
}

func TestClient_TagSetsActiveFlag(t *testing.T) {
	t.Parallel()

	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(raw, &body)
		_, _ = w.Write([]byte(`{"Tag Sets":[{"id":42,"name":"Stars Off Ranked"}]}`))
	}, nil)

	sets, err := client.TagSets(context.Background(), webstats.TagSetFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["Active"] != "t" {
		t.Fatalf("expected Active=t, got %v", body["Active"])
	}
	if want := []webstats.TagSet{{ID: 42, Name: "Stars Off Ranked"}}; !reflect.DeepEqual(sets, want) {
		t.Fatalf("expected %v, got %v", want, sets)
	}
}

func TestClient_GamesAndUsers(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case EndpointGames:
			_, _ = w.Write([]byte(`{"games":[{"game_id":99,"home_user":"alice","away_user":"bob","home_score":2,"away_score":7,"date_time_start":1700000000,"date_time_end":1700001800,"game_mode":42,"stadium":3}]}`))
		case EndpointUsers:
			_, _ = w.Write([]byte(`{"users":{"2":"zed","1":"alice"}}`))
		default:
			http.NotFound(w, r)
		}
	}, nil)

	ctx := context.Background()
	games, err := client.Games(ctx, webstats.GamesQuery{LimitGames: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	game := games[0]
	if game.ID != 99 || game.GameMode != 42 {
		t.Fatalf("expected game 99 in mode 42, got %d in mode %d", game.ID, game.GameMode)
	}
	if want := time.Unix(1700001800, 0).UTC(); !game.EndedAt.Equal(want) {
		t.Fatalf("expected end %v, got %v", want, game.EndedAt)
	}
	if winner := game.Result().WinnerUser; winner != "bob" {
		t.Fatalf("expected bob to win, got %q", winner)
	}

	users, err := client.Users(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []webstats.User{{ID: "1", Username: "alice"}, {ID: "2", Username: "zed"}}; !reflect.DeepEqual(users, want) {
		t.Fatalf("expected users sorted by id %v, got %v", want, users)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	observer := &recordingObserver{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"Data":[{"final_result":7,"fielder_position":4}]}`))
	}, func(cfg *ClientConfig) {
		cfg.MaxRetries = 2
		cfg.Observer = observer
	})

	rows, err := client.LandingData(context.Background(), webstats.StatsQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || !rows[0].IsHit() {
		t.Fatalf("expected one hit row, got %+v", rows)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected one retry, got %d calls", got)
	}
	if want := []string{EndpointLandingData + " ok"}; !reflect.DeepEqual(observer.outcomes, want) {
		t.Fatalf("expected outcomes %v, got %v", want, observer.outcomes)
	}
}

func TestClient_StatusErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{name: "json description", contentType: "application/json", body: `{"description":"Invalid username"}`, want: "Invalid username"},
		{name: "html paragraph", contentType: "text/html", body: "<html><h1>Bad Request</h1><p>Missing tag</p></html>", want: "Missing tag"},
		{name: "plain text", contentType: "text/plain", body: "nope", want: "nope"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var hits atomic.Int32
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.Header().Set("content-type", tc.contentType)
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tc.body))
			}, func(cfg *ClientConfig) { cfg.MaxRetries = 3 })

			_, err := client.Stats(context.Background(), webstats.StatsQuery{})
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected status error, got %v", err)
			}
			if statusErr.StatusCode != http.StatusBadRequest || statusErr.Message != tc.want {
				t.Fatalf("expected 400 %q, got %d %q", tc.want, statusErr.StatusCode, statusErr.Message)
			}
			if got := hits.Load(); got != 1 {
				t.Fatalf("expected client errors not to be retried, got %d calls", got)
			}
		})
	}
}

func TestClient_RedactsRioKey(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"description":"bad rio_key=secret-key"}`))
	}, nil)

	_, err := client.Tags(context.Background(), webstats.TagFilter{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Fatalf("expected key to be redacted, got %v", err)
	}
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		q := webstats.StatsQuery{LimitGames: i + 1}
		if _, err := client.Stats(ctx, q); err == nil {
			t.Fatalf("expected upstream failure")
		}
	}

	_, err := client.Stats(ctx, webstats.StatsQuery{LimitGames: 9})
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected open breaker to short-circuit, got %d calls", got)
	}
	if client.Breaker().State() != resilience.CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", client.Breaker().State())
	}
}

func TestClient_RejectsInvalidQueryBeforeSending(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}, nil)

	_, err := client.Stats(context.Background(), webstats.StatsQuery{CharIDs: []int{99}})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no request to be sent")
	}
}
