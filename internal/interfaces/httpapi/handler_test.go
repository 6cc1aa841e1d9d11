package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/rio-stats/internal/domain/webstats"
	webstatsmock "github.com/riskibarqy/rio-stats/internal/mocks/domain/webstats"
	"github.com/riskibarqy/rio-stats/internal/observability"
	"github.com/riskibarqy/rio-stats/internal/usecase"
	"github.com/stretchr/testify/mock"
)

type testEnvelope struct {
	Data  map[string]any `json:"data"`
	Error *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func newTestRouter(catalog *usecase.Catalog, metrics *observability.Metrics) http.Handler {
	handler := NewHandler(usecase.NewGameService(nil, nil), catalog, nil, nil)
	return NewRouter(handler, nil, metrics, []string{"*"})
}

func serve(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var out testEnvelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return rec, out
}

func TestHandler_Healthz(t *testing.T) {
	t.Parallel()

	rec, body := serve(t, newTestRouter(nil, nil), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body.Data["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", body.Data)
	}
}

func TestHandler_GetCharacter(t *testing.T) {
	t.Parallel()

	router := newTestRouter(nil, nil)
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantName   string
	}{
		{name: "known", path: "/v1/characters/mario", wantStatus: http.StatusOK, wantName: "Mario"},
		{name: "unknown", path: "/v1/characters/Wario%20Bros", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, body := serve(t, router, http.MethodGet, tt.path, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantName != "" && body.Data["name"] != tt.wantName {
				t.Fatalf("expected name %q, got %v", tt.wantName, body.Data["name"])
			}
		})
	}
}

func TestHandler_SummarizeGame_RejectsBadBody(t *testing.T) {
	t.Parallel()

	router := newTestRouter(nil, nil)
	for _, payload := range []string{"", "{not json", `{"GameID": "1"}`} {
		rec, body := serve(t, router, http.MethodPost, "/v1/games/summary", payload)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("payload %q: expected status 400, got %d", payload, rec.Code)
		}
		if body.Error == nil || body.Error.Status != "INVALID_ARGUMENT" {
			t.Fatalf("payload %q: expected INVALID_ARGUMENT error, got %+v", payload, body.Error)
		}
	}
}

func TestHandler_ReshapeStats(t *testing.T) {
	t.Parallel()

	router := newTestRouter(nil, nil)
	payload := `{"Stats": {"Batting": {"hits": 12, "at_bats": 40}, "Pitching": {"outs_pitched": 27}}}`

	rec, body := serve(t, router, http.MethodPost, "/v1/stats/reshape", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	columns, _ := body.Data["columns"].([]any)
	if len(columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(columns))
	}
	rows, _ := body.Data["rows"].([]any)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	rec, _ = serve(t, router, http.MethodPost, "/v1/stats/reshape?sum_swings=maybe", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad sum_swings, got %d", rec.Code)
	}
}

func TestHandler_LandingReport_Validates(t *testing.T) {
	t.Parallel()

	router := newTestRouter(nil, nil)

	rec, _ := serve(t, router, http.MethodPost, "/v1/landing/report", `{"rows": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for empty rows, got %d", rec.Code)
	}

	rec, _ = serve(t, router, http.MethodPost, "/v1/landing/report", `{"rows": [], "extra": 1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown field, got %d", rec.Code)
	}

	rec, body := serve(t, router, http.MethodPost, "/v1/landing/report",
		`{"rows": [{"final_result": 1, "type_of_swing": 1, "type_of_contact": 2, "ball_hang_time": 40}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body.Data["rows"] != float64(1) {
		t.Fatalf("expected rows=1, got %v", body.Data["rows"])
	}
}

func TestHandler_ListGameModes(t *testing.T) {
	t.Parallel()

	rec, body := serve(t, newTestRouter(nil, nil), http.MethodGet, "/v1/game-modes", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 without catalog, got %d", rec.Code)
	}
	if body.Error == nil || body.Error.Status != "UNAVAILABLE" {
		t.Fatalf("expected UNAVAILABLE error, got %+v", body.Error)
	}

	source := webstatsmock.NewSource(t)
	source.
		On("TagSets", mock.MatchedBy(func(context.Context) bool { return true }), webstats.TagSetFilter{}).
		Return([]webstats.TagSet{{ID: 12, Name: "Stars Off Ranked"}}, nil).
		Once()

	rec, body = serve(t, newTestRouter(usecase.NewCatalog(source), nil), http.MethodGet, "/v1/game-modes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body.Data["Stars Off Ranked"] != float64(12) {
		t.Fatalf("expected game mode id 12, got %v", body.Data)
	}
}

func TestHandler_ListExportBatches_Unconfigured(t *testing.T) {
	t.Parallel()

	rec, _ := serve(t, newTestRouter(nil, nil), http.MethodGet, "/v1/exports?limit=5", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestRouter_ObservesRoutesAndServesMetrics(t *testing.T) {
	t.Parallel()

	metrics := observability.NewMetrics()
	router := newTestRouter(nil, metrics)

	serve(t, router, http.MethodGet, "/v1/characters/luigi", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `route="GET /v1/characters/{name}"`) {
		t.Fatalf("expected route label in metrics output")
	}
}
