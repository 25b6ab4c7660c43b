package interfaces

import (
	"context"

	"github.com/secmon-lab/linkrelay/pkg/domain/model"
)

// ChatReplier sends rendered summaries back to the chat platform
type ChatReplier interface {
	// Reply posts all summaries as a single reply threaded under threadTS
	Reply(ctx context.Context, channelID, threadTS string, summaries []*model.Summary) error
}
