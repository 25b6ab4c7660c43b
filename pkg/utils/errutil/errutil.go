package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/utils/logging"
)

// Handle logs err with its goerr values and stack, and reports it to Sentry when a
// client is configured. It returns err unchanged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	report(ctx, err, msg)

	return err
}

// HandleHTTP logs the error and writes it as the HTTP response
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	if statusCode >= http.StatusInternalServerError {
		report(ctx, err, "HTTP error")
	}

	http.Error(w, err.Error(), statusCode)
}

func report(ctx context.Context, err error, msg string) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("message", msg)
		var ge *goerr.Error
		if errors.As(err, &ge) {
			values := sentry.Context{}
			for k, v := range ge.Values() {
				values[k] = v
			}
			scope.SetContext("values", values)
		}
		hub.CaptureException(err)
	})
}
