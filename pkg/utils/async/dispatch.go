package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/utils/errutil"
	"github.com/secmon-lab/linkrelay/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine. The handler gets a fresh background
// context that keeps the caller's logger, so it outlives the HTTP request or socket
// ack that triggered it. Errors and panics are logged and never propagated.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				_ = errutil.Handle(bgCtx, goerr.New("panic in async handler", goerr.V("panic", r)), "async handler panicked")
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "async handler failed")
		}
	}()
}
