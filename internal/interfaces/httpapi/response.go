package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
	"github.com/riskibarqy/rio-stats/internal/usecase"
)

const (
	apiVersion  = "2.0"
	errorDomain = "rio-stats"
)

type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain   string `json:"domain"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

type errorClass struct {
	httpStatus int
	reason     string
	status     string
}

var (
	classInvalidInput = errorClass{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}
	classInternal     = errorClass{http.StatusInternalServerError, "internalError", "INTERNAL"}
)

// errorRules is checked in order; the first matching sentinel wins. Use case
// sentinels come first because they wrap domain errors.
var errorRules = []struct {
	targets []error
	class   errorClass
}{
	{[]error{usecase.ErrInvalidInput}, classInvalidInput},
	{[]error{usecase.ErrNotFound}, errorClass{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{[]error{usecase.ErrDependencyUnavailable}, errorClass{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	{[]error{rioerr.ErrUnknownCharacter}, errorClass{http.StatusNotFound, "unknownCharacter", "NOT_FOUND"}},
	{
		[]error{rioerr.ErrParse, rioerr.ErrMissingKey, rioerr.ErrAmbiguousShape, rioerr.ErrConfiguration},
		errorClass{http.StatusBadRequest, "invalidPayload", "INVALID_ARGUMENT"},
	},
}

func classify(ctx context.Context, err error) errorClass {
	_, span := startSpan(ctx, "httpapi.classify")
	defer span.End()

	for _, rule := range errorRules {
		for _, target := range rule.targets {
			if crerr.Is(err, target) {
				return rule.class
			}
		}
	}
	return classInternal
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{APIVersion: apiVersion, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := classify(ctx, err)
	msg := err.Error()
	if class == classInternal {
		msg = "internal server error"
	}

	item := errorItem{Domain: errorDomain, Reason: class.reason, Message: msg}
	var parseErr *rioerr.ParseError
	if errors.As(err, &parseErr) {
		item.Location = parseErr.Field
	}
	writeErrorBody(ctx, w, class, msg, item)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	const msg = "internal server error"
	writeErrorBody(ctx, w, classInternal, msg, errorItem{Domain: errorDomain, Reason: classInternal.reason, Message: msg})
}

func writeErrorBody(ctx context.Context, w http.ResponseWriter, class errorClass, msg string, item errorItem) {
	writeJSON(ctx, w, class.httpStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    class.httpStatus,
			Message: msg,
			Status:  class.status,
			Errors:  []errorItem{item},
		},
	})
}
