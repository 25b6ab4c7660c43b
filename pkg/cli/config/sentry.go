package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Sentry holds error reporting settings. Reporting is off when no DSN is given.
type Sentry struct {
	dsn string
}

func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting",
			Category:    "Sentry",
			Destination: &x.dsn,
			Sources:     cli.EnvVars("LINKRELAY_SENTRY_DSN"),
		},
	}
}

func (x Sentry) LogValue() slog.Value {
	return slog.GroupValue(slog.Bool("enabled", x.dsn != ""))
}

// Configure initialises the Sentry client and returns a flush function
func (x *Sentry) Configure(mode types.RunMode, version string) (func(), error) {
	if x.dsn == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: mode.String(),
		Release:     version,
		Debug:       mode == types.RunModeDebug,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}

	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}
