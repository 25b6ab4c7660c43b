package safe

import (
	"context"
	"io"

	"github.com/secmon-lab/linkrelay/pkg/utils/logging"
)

// Close closes closer and logs a failure. nil is a no-op.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("failed to close", "error", err)
	}
}

// Write writes data to w and logs a failure. Used where the response status has
// already been committed and nothing else can be done about the error.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Error("failed to write", "error", err, "size", len(data))
	}
}
