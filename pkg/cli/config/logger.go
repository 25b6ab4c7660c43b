package config

import (
	"io"
	"log/slog"
	"os"
	"regexp"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/secmon-lab/linkrelay/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Logger holds logging configuration
type Logger struct {
	level  string
	format string
	output string
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// tokenPattern matches Slack and Linear credentials that may leak into log values
var tokenPattern = regexp.MustCompile(`(xox[abp]-|xapp-|lin_api_)[A-Za-z0-9-_]+`)

func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level [debug|info|warn|error]",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("LINKRELAY_LOG_LEVEL"),
			Destination: &x.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format [console|json]",
			Category:    "Logging",
			Value:       "console",
			Sources:     cli.EnvVars("LINKRELAY_LOG_FORMAT"),
			Destination: &x.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output [stdout|stderr|<file path>]",
			Category:    "Logging",
			Value:       "stdout",
			Sources:     cli.EnvVars("LINKRELAY_LOG_OUTPUT"),
			Destination: &x.output,
		},
	}
}

func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
	)
}

// SetLevel overrides the level given by flags
func (x *Logger) SetLevel(level string) {
	x.level = level
}

// Configure builds the logger, installs it as the default and returns a function
// that releases the output.
func (x *Logger) Configure() (func(), error) {
	closer := func() {}

	level, ok := logLevels[x.level]
	if !ok {
		return closer, goerr.New("invalid log level", goerr.V("level", x.level))
	}

	var w io.Writer
	console := true
	switch x.output {
	case "stdout", "-", "":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		// #nosec G304 -- path comes from CLI flag
		f, err := os.OpenFile(x.output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return closer, goerr.Wrap(err, "failed to open log file", goerr.V("path", x.output))
		}
		w = f
		console = false
		closer = func() {
			if err := f.Close(); err != nil {
				logging.Default().Error("failed to close log file", "error", err)
			}
		}
	}

	filter := masq.New(
		masq.WithTag("secret"),
		masq.WithFieldPrefix("secret_"),
		masq.WithRegex(tokenPattern),
	)

	var handler slog.Handler
	switch x.format {
	case "console":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
			clog.WithSource(level == slog.LevelDebug),
			clog.WithColor(console && !color.NoColor),
		)
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: filter,
		})
	default:
		closer()
		return func() {}, goerr.New("invalid log format", goerr.V("format", x.format))
	}

	logging.SetDefault(slog.New(handler))
	return closer, nil
}
