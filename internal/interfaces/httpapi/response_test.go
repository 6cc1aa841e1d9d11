package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
	"github.com/riskibarqy/rio-stats/internal/usecase"
)

func TestWriteSuccess_Envelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body envelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.APIVersion != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %q", body.APIVersion)
	}
	if body.Data == nil || body.Error != nil {
		t.Fatalf("expected data without error, got %+v", body)
	}
}

func TestWriteError_Classes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantReason string
		wantStatus string
		wantLoc    string
	}{
		{
			name:       "invalid input",
			err:        fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput),
			wantCode:   http.StatusBadRequest,
			wantReason: "invalidInput",
			wantStatus: "INVALID_ARGUMENT",
		},
		{
			name:       "use case wraps parse error",
			err:        fmt.Errorf("%w: %w", usecase.ErrInvalidInput, rioerr.NewParseError("Ball Hang Time", "eighty", nil)),
			wantCode:   http.StatusBadRequest,
			wantReason: "invalidInput",
			wantStatus: "INVALID_ARGUMENT",
			wantLoc:    "Ball Hang Time",
		},
		{
			name:       "bare missing key",
			err:        rioerr.MissingKey("Events"),
			wantCode:   http.StatusBadRequest,
			wantReason: "invalidPayload",
			wantStatus: "INVALID_ARGUMENT",
		},
		{
			name:       "unknown character",
			err:        rioerr.UnknownCharacter("Wario Bros"),
			wantCode:   http.StatusNotFound,
			wantReason: "unknownCharacter",
			wantStatus: "NOT_FOUND",
		},
		{
			name:       "dependency",
			err:        fmt.Errorf("%w: stats source is not configured", usecase.ErrDependencyUnavailable),
			wantCode:   http.StatusServiceUnavailable,
			wantReason: "dependencyUnavailable",
			wantStatus: "UNAVAILABLE",
		},
		{
			name:       "unexpected",
			err:        errors.New("pq: connection refused"),
			wantCode:   http.StatusInternalServerError,
			wantReason: "internalError",
			wantStatus: "INTERNAL",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tc.err)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, rec.Code)
			}
			var body envelope
			if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response body: %v", err)
			}
			if body.Error == nil || len(body.Error.Errors) != 1 {
				t.Fatalf("expected one error item, got %+v", body.Error)
			}
			if body.Error.Status != tc.wantStatus {
				t.Fatalf("expected status %s, got %s", tc.wantStatus, body.Error.Status)
			}
			item := body.Error.Errors[0]
			if item.Reason != tc.wantReason || item.Location != tc.wantLoc {
				t.Fatalf("expected reason %s at %q, got %s at %q", tc.wantReason, tc.wantLoc, item.Reason, item.Location)
			}
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: password authentication failed for user rio"))

	var body envelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error.Message != "internal server error" {
		t.Fatalf("expected generic message, got %q", body.Error.Message)
	}
}
