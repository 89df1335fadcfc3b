package safe

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/secmon-lab/auditai/pkg/utils/logging"
)

// Close closes an export destination or response body and logs any
// error. A nil closer is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// Write writes data and logs any error. A nil writer is ignored.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Error("Failed to write", slog.Any("error", err))
	}
}

// WriteJSON encodes v onto w. Encoding or write failures are only
// logged because the response header is already committed.
func WriteJSON(ctx context.Context, w io.Writer, v any) {
	if w == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(ctx).Error("Failed to encode JSON", slog.Any("error", err))
	}
}
