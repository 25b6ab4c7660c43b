package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/domain/interfaces"
	"github.com/secmon-lab/linkrelay/pkg/domain/model"
	"github.com/secmon-lab/linkrelay/pkg/domain/model/slack"
	"github.com/secmon-lab/linkrelay/pkg/utils/cache"
	"github.com/secmon-lab/linkrelay/pkg/utils/logging"
	"github.com/slack-go/slack/slackevents"
)

// RelayUseCase turns issue identifiers in chat messages into summary replies
type RelayUseCase struct {
	tracker     interfaces.IssueTracker
	replier     interfaces.ChatReplier
	patterns    *PatternSet
	cache       *cache.Cache
	issueMaxAge time.Duration
	render      RenderOptions
	botUserID   string
}

// NewRelayUseCase creates a RelayUseCase. replier may be nil for callers that only
// use Summarize.
func NewRelayUseCase(tracker interfaces.IssueTracker, replier interfaces.ChatReplier, patterns *PatternSet, opts ...Option) *RelayUseCase {
	uc := &RelayUseCase{
		tracker:     tracker,
		replier:     replier,
		patterns:    patterns,
		issueMaxAge: DefaultIssueMaxAge,
		render:      DefaultRenderOptions(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	if uc.cache == nil {
		uc.cache = cache.New()
	}
	return uc
}

// Cache returns the lookup cache owned by the use case
func (uc *RelayUseCase) Cache() *cache.Cache {
	return uc.cache
}

// HandleSlackEvent processes Slack Events API callbacks
func (uc *RelayUseCase) HandleSlackEvent(ctx context.Context, event *slackevents.EventsAPIEvent) error {
	if event == nil {
		return nil
	}

	msg := slack.NewMessage(event)
	if msg == nil {
		logging.From(ctx).Debug("ignored slack event", "type", event.Type, "innerType", event.InnerEvent.Type)
		return nil
	}

	return uc.HandleMessage(ctx, msg)
}

// HandleMessage replies to msg with a summary for every issue it mentions. Messages
// without resolvable identifiers get no reply.
func (uc *RelayUseCase) HandleMessage(ctx context.Context, msg *slack.Message) error {
	if msg == nil {
		return goerr.New("message is nil")
	}

	logger := logging.From(ctx).With(
		"handling_id", uuid.NewString(),
		"team_id", msg.TeamID(),
		"channel_id", msg.ChannelID(),
		"ts", msg.ID(),
	)
	ctx = logging.With(ctx, logger)

	switch {
	case msg.IsFromBot(), uc.botUserID != "" && msg.UserID() == uc.botUserID:
		logger.Debug("ignored bot message")
		return nil
	case msg.IsEdit():
		logger.Debug("ignored message change event")
		return nil
	case msg.Text() == "":
		return nil
	}

	summaries, _ := uc.Summarize(ctx, msg.Text())
	if len(summaries) == 0 {
		return nil
	}

	if uc.replier == nil {
		return goerr.Wrap(ErrNoReplier, "cannot reply", goerr.V(ChannelIDKey, msg.ChannelID()))
	}
	if err := uc.replier.Reply(ctx, msg.ChannelID(), msg.ReplyTS(), summaries); err != nil {
		return goerr.Wrap(err, "failed to reply with summaries",
			goerr.V(ChannelIDKey, msg.ChannelID()),
			goerr.V("summaries", len(summaries)),
		)
	}

	logger.Info("replied with issue summaries", "count", len(summaries))
	return nil
}

// Summarize scans text and renders a summary for each identifier that resolves.
// Candidates are resolved one at a time in order of first appearance. Every
// resolution, skipped ones included, is returned alongside the summaries.
func (uc *RelayUseCase) Summarize(ctx context.Context, text string) ([]*model.Summary, []*model.Resolution) {
	logger := logging.From(ctx)

	var summaries []*model.Summary
	var resolutions []*model.Resolution
	for id := range uc.patterns.Scan(text) {
		res := uc.Resolve(ctx, id)
		resolutions = append(resolutions, res)

		if !res.Resolved() {
			attrs := []any{"identifier", id, "reason", res.Reason}
			if res.Err != nil {
				attrs = append(attrs, "error", res.Err.Error())
			}
			logger.Warn("skipped issue candidate", attrs...)
			continue
		}

		summaries = append(summaries, Render(res, uc.render))
	}

	return summaries, resolutions
}
