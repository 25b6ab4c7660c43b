package config

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	slacksvc "github.com/secmon-lab/linkrelay/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	botToken      string
	signingSecret string
	appToken      string
	apiURL        string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (xoxb-...)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("LINKRELAY_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack Signing Secret. Enables the Events API webhook",
			Category:    "Slack",
			Destination: &x.signingSecret,
			Sources:     cli.EnvVars("LINKRELAY_SLACK_SIGNING_SECRET"),
		},
		&cli.StringFlag{
			Name:        "slack-app-token",
			Usage:       "Slack App-Level Token (xapp-...). Enables Socket Mode",
			Category:    "Slack",
			Destination: &x.appToken,
			Sources:     cli.EnvVars("LINKRELAY_SLACK_APP_TOKEN"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.Int("signing-secret.len", len(x.signingSecret)),
		slog.Int("app-token.len", len(x.appToken)),
		slog.Bool("socket-mode", x.IsSocketMode()),
	)
}

// Validate checks that a bot token and exactly one event transport are configured
func (x *Slack) Validate() error {
	if x.botToken == "" {
		return goerr.New("--slack-bot-token is required")
	}
	if x.signingSecret == "" && x.appToken == "" {
		return goerr.New("either --slack-signing-secret (webhook) or --slack-app-token (Socket Mode) is required")
	}
	if x.signingSecret != "" && x.appToken != "" {
		return goerr.New("--slack-signing-secret and --slack-app-token are mutually exclusive")
	}
	if x.appToken != "" && !strings.HasPrefix(x.appToken, "xapp-") {
		return goerr.New("--slack-app-token must be an app-level token (xapp-...)")
	}
	return nil
}

// Configure validates the settings, connects with auth.test and returns the service
// together with the bot's identity
func (x *Slack) Configure(ctx context.Context) (slacksvc.Service, *slacksvc.BotIdentity, error) {
	if err := x.Validate(); err != nil {
		return nil, nil, err
	}

	var opts []slacksvc.Option
	if x.apiURL != "" {
		opts = append(opts, slacksvc.WithAPIURL(x.apiURL))
	}

	svc, err := slacksvc.New(x.botToken, opts...)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create slack service")
	}

	identity, err := svc.AuthTest(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to connect to slack")
	}

	return svc, identity, nil
}

// BotToken returns the Slack bot token
func (x *Slack) BotToken() string {
	return x.botToken
}

// AppToken returns the Slack app-level token
func (x *Slack) AppToken() string {
	return x.appToken
}

// SigningSecret returns the Slack signing secret
func (x *Slack) SigningSecret() string {
	return x.signingSecret
}

// IsSocketMode reports whether events arrive over Socket Mode instead of the webhook
func (x *Slack) IsSocketMode() bool {
	return x.appToken != ""
}
