package slack

import (
	"context"

	"github.com/secmon-lab/linkrelay/pkg/domain/interfaces"
)

// Service provides the Slack Web API calls the relay needs
type Service interface {
	interfaces.ChatReplier

	// AuthTest verifies the bot token and returns the bot's own identity
	AuthTest(ctx context.Context) (*BotIdentity, error)
}

// BotIdentity is the result of auth.test for the bot token
type BotIdentity struct {
	TeamID string
	Team   string
	UserID string
	BotID  string
	URL    string
}
