package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/utils/async"
	"github.com/secmon-lab/linkrelay/pkg/utils/errutil"
	"github.com/secmon-lab/linkrelay/pkg/utils/logging"
	"github.com/secmon-lab/linkrelay/pkg/utils/safe"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// SlackEventHandler processes a verified Events API callback
type SlackEventHandler interface {
	HandleSlackEvent(ctx context.Context, event *slackevents.EventsAPIEvent) error
}

// verifySlackSignature checks X-Slack-Signature against body. Requests whose
// X-Slack-Request-Timestamp is more than five minutes away from now are rejected.
func verifySlackSignature(header http.Header, signingSecret string, body []byte) error {
	sv, err := slack.NewSecretsVerifier(header, signingSecret)
	if err != nil {
		return goerr.Wrap(err, "invalid slack signature headers",
			goerr.V("timestamp", header.Get("X-Slack-Request-Timestamp")))
	}
	if _, err := sv.Write(body); err != nil {
		return goerr.Wrap(err, "failed to hash request body")
	}
	if err := sv.Ensure(); err != nil {
		return goerr.Wrap(err, "signature mismatch")
	}
	return nil
}

// SlackSignatureMiddleware rejects requests that are not signed with signingSecret.
// The body is buffered and handed to the next handler unchanged.
func SlackSignatureMiddleware(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			safe.Close(ctx, r.Body)
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
				return
			}

			if err := verifySlackSignature(r.Header, signingSecret, body); err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "slack signature verification failed"), http.StatusUnauthorized)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

// SlackWebhookHandler handles Slack Events API webhook requests
type SlackWebhookHandler struct {
	events SlackEventHandler
}

// NewSlackWebhookHandler creates a new Slack webhook handler
func NewSlackWebhookHandler(events SlackEventHandler) *SlackWebhookHandler {
	return &SlackWebhookHandler{
		events: events,
	}
}

// ServeHTTP answers URL verification and acknowledges callbacks before handing them
// to the event handler in the background
func (h *SlackWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slack event"), http.StatusBadRequest)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		h.answerChallenge(ctx, w, event)
	case slackevents.CallbackEvent:
		// Slack retries unless acknowledged within 3 seconds
		w.WriteHeader(http.StatusOK)
		h.dispatch(ctx, event)
	default:
		logging.From(ctx).Warn("unknown slack event type", "type", event.Type)
		w.WriteHeader(http.StatusOK)
	}
}

func (h *SlackWebhookHandler) answerChallenge(ctx context.Context, w http.ResponseWriter, event slackevents.EventsAPIEvent) {
	verification, ok := event.Data.(*slackevents.EventsAPIURLVerificationEvent)
	if !ok {
		errutil.HandleHTTP(ctx, w, goerr.New("unexpected url_verification payload"), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	safe.Write(ctx, w, []byte(verification.Challenge))
}

func (h *SlackWebhookHandler) dispatch(ctx context.Context, event slackevents.EventsAPIEvent) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		logging.From(ctx).Debug("processing slack callback event",
			"inner_type", event.InnerEvent.Type,
			"team_id", event.TeamID,
		)
		if err := h.events.HandleSlackEvent(ctx, &event); err != nil {
			return goerr.Wrap(err, "failed to handle slack event", goerr.V("team_id", event.TeamID))
		}
		return nil
	})
}
