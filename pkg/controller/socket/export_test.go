package socket

import (
	"context"

	"github.com/slack-go/slack/socketmode"
)

// Handle exposes event handling without a live connection
func (x *Listener) Handle(ctx context.Context, evt socketmode.Event, ack func(req socketmode.Request)) {
	x.handle(ctx, evt, ack)
}

// Wait blocks until dispatched handlers finish
func (x *Listener) Wait() {
	x.wg.Wait()
}
