package slack

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/domain/model"
	"github.com/slack-go/slack"
)

// client implements Service interface
type client struct {
	api *slack.Client
}

// Option is a functional option for client configuration
type Option func(*[]slack.Option)

// WithAPIURL points the client at a different Slack API base URL
func WithAPIURL(url string) Option {
	return func(opts *[]slack.Option) {
		*opts = append(*opts, slack.OptionAPIURL(url))
	}
}

// New creates a new Slack service with the provided bot token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	var slackOpts []slack.Option
	for _, opt := range opts {
		opt(&slackOpts)
	}

	return &client{api: slack.New(token, slackOpts...)}, nil
}

// AuthTest calls auth.test to confirm the token works
func (c *client) AuthTest(ctx context.Context) (*BotIdentity, error) {
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call auth.test")
	}

	return &BotIdentity{
		TeamID: resp.TeamID,
		Team:   resp.Team,
		UserID: resp.UserID,
		BotID:  resp.BotID,
		URL:    resp.URL,
	}, nil
}

// Reply posts every summary as an attachment of one threaded message
func (c *client) Reply(ctx context.Context, channelID, threadTS string, summaries []*model.Summary) error {
	if len(summaries) == 0 {
		return nil
	}

	attachments := make([]slack.Attachment, 0, len(summaries))
	for _, s := range summaries {
		attachments = append(attachments, ToAttachment(s))
	}

	msgOpts := []slack.MsgOption{
		slack.MsgOptionAttachments(attachments...),
		slack.MsgOptionText(fallbackText(summaries), false),
	}
	if threadTS != "" {
		msgOpts = append(msgOpts, slack.MsgOptionTS(threadTS))
	}

	if _, _, err := c.api.PostMessageContext(ctx, channelID, msgOpts...); err != nil {
		return goerr.Wrap(err, "failed to post reply",
			goerr.V("channel_id", channelID),
			goerr.V("thread_ts", threadTS),
			goerr.V("attachments", len(attachments)),
		)
	}

	return nil
}

// ToAttachment maps a summary onto a legacy Slack attachment, which keeps the colored
// side bar that Block Kit lacks
func ToAttachment(s *model.Summary) slack.Attachment {
	att := slack.Attachment{
		Color:      s.Color,
		Fallback:   s.Title,
		AuthorName: s.AuthorName,
		AuthorIcon: s.AuthorIcon,
		Title:      s.Title,
		TitleLink:  s.URL,
		Text:       s.Body,
		Footer:     s.Footer,
		MarkdownIn: []string{"text"},
	}
	if !s.Timestamp.IsZero() {
		att.Ts = json.Number(strconv.FormatInt(s.Timestamp.Unix(), 10))
	}
	return att
}

// fallbackText is shown in notifications, where attachments are not rendered
func fallbackText(summaries []*model.Summary) string {
	if len(summaries) == 1 {
		return summaries[0].Title
	}
	return strconv.Itoa(len(summaries)) + " issues mentioned"
}
