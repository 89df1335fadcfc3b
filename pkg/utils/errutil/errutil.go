package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/utils/logging"
)

// Handle logs the error with a message and reports it to Sentry when a
// Sentry client is configured. The error is returned unchanged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"kind", model.KindOf(err),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error(), "kind", model.KindOf(err))
	}

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.CaptureException(err)
	}

	return err
}

// ErrorResponse is the JSON body written for failed HTTP requests.
// Detail carries the audit API's own message verbatim.
type ErrorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// StatusCode maps the error taxonomy onto an HTTP status for the dashboard
func StatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrSchemaMismatch):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrCoercion), errors.Is(err, model.ErrDomain):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrAPI):
		return http.StatusBadGateway
	case errors.Is(err, model.ErrTransport):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// HandleHTTP logs the error and writes a JSON error response. When
// statusCode is 0 the status is derived from the error kind.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}
	if statusCode == 0 {
		statusCode = StatusCode(err)
	}

	logger := logging.From(ctx)

	// Client-side problems are expected during CSV review and stay at warn
	if statusCode < http.StatusInternalServerError {
		logger.Warn("HTTP request rejected",
			"status", statusCode,
			"kind", model.KindOf(err),
			"error", err.Error(),
		)
	} else {
		_ = Handle(ctx, err, "HTTP error")
	}

	body, mErr := json.Marshal(ErrorResponse{
		Error:  err.Error(),
		Kind:   model.KindOf(err),
		Detail: model.DetailOf(err),
	})
	if mErr != nil {
		http.Error(w, err.Error(), statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body) //nolint:errcheck // header already committed
}
