package usecase

import (
	"time"

	"github.com/secmon-lab/linkrelay/pkg/utils/cache"
)

// DefaultIssueMaxAge is how long a fetched issue is reused before it is fetched again
const DefaultIssueMaxAge = 300000 * time.Millisecond

type Option func(*RelayUseCase)

// WithCache sets the cache shared by all message handlers. A fresh cache is created
// when this option is omitted.
func WithCache(c *cache.Cache) Option {
	return func(uc *RelayUseCase) {
		uc.cache = c
	}
}

// WithIssueMaxAge overrides DefaultIssueMaxAge
func WithIssueMaxAge(d time.Duration) Option {
	return func(uc *RelayUseCase) {
		uc.issueMaxAge = d
	}
}

// WithRenderOptions overrides DefaultRenderOptions
func WithRenderOptions(opt RenderOptions) Option {
	return func(uc *RelayUseCase) {
		uc.render = opt
	}
}

// WithBotUserID makes the relay ignore messages posted by its own Slack user
func WithBotUserID(userID string) Option {
	return func(uc *RelayUseCase) {
		uc.botUserID = userID
	}
}
