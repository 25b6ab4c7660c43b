package cli

import (
	"context"

	"github.com/secmon-lab/linkrelay/pkg/cli/config"
	"github.com/secmon-lab/linkrelay/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var runModeCfg config.RunMode
	var sentryCfg config.Sentry
	var closers []func()

	flags := loggerCfg.Flags()
	flags = append(flags, runModeCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "linkrelay",
		Usage:   "Reply to chat messages that mention tracker issues with issue summaries",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			mode, err := runModeCfg.Configure()
			if err != nil {
				return ctx, err
			}
			if runModeCfg.IsDebug() {
				loggerCfg.SetLevel("debug")
			}

			logCloser, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, logCloser)

			flush, err := sentryCfg.Configure(mode, version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Info("Starting linkrelay",
				"version", version,
				"env", runModeCfg,
				"logger", loggerCfg,
				"sentry", sentryCfg,
			)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdLookup(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
