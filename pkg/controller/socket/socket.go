package socket

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/utils/async"
	"github.com/secmon-lab/linkrelay/pkg/utils/logging"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// EventHandler processes an Events API callback delivered over Socket Mode
type EventHandler interface {
	HandleSlackEvent(ctx context.Context, event *slackevents.EventsAPIEvent) error
}

// Listener receives Slack events over a Socket Mode connection
type Listener struct {
	client *socketmode.Client
	events EventHandler
	wg     sync.WaitGroup
}

// New creates a Socket Mode listener. appToken must be an app-level token (xapp-).
func New(botToken, appToken string, events EventHandler) (*Listener, error) {
	if botToken == "" {
		return nil, goerr.New("slack bot token is required")
	}
	if appToken == "" {
		return nil, goerr.New("slack app-level token is required")
	}
	if events == nil {
		return nil, goerr.New("event handler is required")
	}

	api := slack.New(botToken, slack.OptionAppLevelToken(appToken))
	return &Listener{
		client: socketmode.New(api),
		events: events,
	}, nil
}

// Run connects and processes events until ctx is cancelled
func (x *Listener) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- x.client.RunContext(ctx)
	}()

	for {
		select {
		case <-ctx.Done():
			x.wg.Wait()
			return nil

		case err := <-errCh:
			x.wg.Wait()
			if err != nil && ctx.Err() == nil {
				return goerr.Wrap(err, "socket mode connection terminated")
			}
			return nil

		case evt, ok := <-x.client.Events:
			if !ok {
				return nil
			}
			x.handle(ctx, evt, func(req socketmode.Request) {
				x.client.Ack(req)
			})
		}
	}
}

func (x *Listener) handle(ctx context.Context, evt socketmode.Event, ack func(req socketmode.Request)) {
	logger := logging.From(ctx)

	switch evt.Type {
	case socketmode.EventTypeConnecting:
		logger.Info("connecting to slack with socket mode")
	case socketmode.EventTypeConnected:
		logger.Info("connected to slack with socket mode")
	case socketmode.EventTypeConnectionError:
		logger.Warn("socket mode connection error", "data", evt.Data)
	case socketmode.EventTypeDisconnect:
		logger.Warn("socket mode disconnected")

	case socketmode.EventTypeEventsAPI:
		if evt.Request != nil {
			ack(*evt.Request)
		}

		ev, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			logger.Warn("unexpected socket mode payload", "type", evt.Type)
			return
		}
		if ev.Type != slackevents.CallbackEvent {
			logger.Debug("ignoring events api payload", "type", ev.Type)
			return
		}

		x.wg.Add(1)
		async.Dispatch(ctx, func(ctx context.Context) error {
			defer x.wg.Done()
			if err := x.events.HandleSlackEvent(ctx, &ev); err != nil {
				return goerr.Wrap(err, "failed to handle slack event")
			}
			return nil
		})

	default:
		logger.Debug("ignoring socket mode event", "type", evt.Type)
	}
}
