package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/cli/config"
	httpctrl "github.com/secmon-lab/linkrelay/pkg/controller/http"
	"github.com/secmon-lab/linkrelay/pkg/controller/socket"
	"github.com/secmon-lab/linkrelay/pkg/domain/interfaces"
	"github.com/secmon-lab/linkrelay/pkg/service/worker"
	"github.com/secmon-lab/linkrelay/pkg/usecase"
	"github.com/secmon-lab/linkrelay/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var slackCfg config.Slack
	var linearCfg config.Linear
	var relayCfg config.Relay

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address (webhook mode)",
			Value:       ":8080",
			Sources:     cli.EnvVars("LINKRELAY_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, linearCfg.Flags()...)
	flags = append(flags, relayCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Listen for Slack messages and reply with issue summaries",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := slackCfg.Validate(); err != nil {
				return err
			}
			if err := linearCfg.Validate(); err != nil {
				return err
			}
			if err := relayCfg.Configure(); err != nil {
				return goerr.Wrap(err, "failed to load relay configuration")
			}
			logging.Default().Info("Configuration loaded",
				"slack", slackCfg,
				"linear", linearCfg,
				"relay", relayCfg,
			)

			slackSvc, identity, err := slackCfg.Configure(ctx)
			if err != nil {
				return err
			}
			logging.Default().Info("Connected to Slack",
				"team", identity.Team,
				"team_id", identity.TeamID,
				"bot_user_id", identity.UserID,
			)

			tracker, err := linearCfg.Configure()
			if err != nil {
				return err
			}

			patterns, err := buildPatterns(ctx, tracker)
			if err != nil {
				return err
			}

			uc := usecase.NewRelayUseCase(tracker, slackSvc, patterns,
				usecase.WithIssueMaxAge(relayCfg.IssueMaxAge()),
				usecase.WithRenderOptions(relayCfg.RenderOptions()),
				usecase.WithBotUserID(identity.UserID),
			)

			sweeper := worker.NewCacheSweepWorker(uc.Cache(), relayCfg.SweepInterval())
			if err := sweeper.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start cache sweep worker")
			}
			defer sweeper.Stop()

			if slackCfg.IsSocketMode() {
				return serveSocketMode(ctx, &slackCfg, uc)
			}
			return serveWebhook(ctx, addr, slackCfg.SigningSecret(), uc)
		},
	}
}

// buildPatterns fetches team keys once. Team keys added later are not picked up until restart.
func buildPatterns(ctx context.Context, tracker interfaces.IssueTracker) (*usecase.PatternSet, error) {
	keys, err := tracker.ListTeamKeys(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list team keys")
	}

	patterns, err := usecase.BuildPatterns(keys)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build identifier patterns")
	}

	logging.Default().Info("Identifier patterns ready", "teams", patterns.Keys())
	if patterns.Len() == 0 {
		logging.Default().Warn("No teams are visible to the Linear API key; no message will match")
	}
	return patterns, nil
}

func serveWebhook(ctx context.Context, addr, signingSecret string, uc *usecase.RelayUseCase) error {
	server := &http.Server{
		Addr: addr,
		Handler: httpctrl.New(
			httpctrl.WithSlackWebhook(httpctrl.NewSlackWebhookHandler(uc), signingSecret),
		),
		ReadHeaderTimeout: 30 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		logging.Default().Info("Starting HTTP server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logging.Default().Info("Context cancelled")
	case sig := <-sigCh:
		logging.Default().Info("Received shutdown signal", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return goerr.Wrap(err, "failed to shutdown server gracefully")
	}

	logging.Default().Info("Server shutdown completed")
	return nil
}

func serveSocketMode(ctx context.Context, slackCfg *config.Slack, uc *usecase.RelayUseCase) error {
	listener, err := socket.New(slackCfg.BotToken(), slackCfg.AppToken(), uc)
	if err != nil {
		return goerr.Wrap(err, "failed to create socket mode listener")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Default().Info("Starting Socket Mode listener")
	if err := listener.Run(ctx); err != nil {
		return err
	}

	logging.Default().Info("Socket Mode listener stopped")
	return nil
}
