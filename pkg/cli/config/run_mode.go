package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// RunMode holds the environment mode selector
type RunMode struct {
	raw  string
	mode types.RunMode
}

func (x *RunMode) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "env",
			Usage:       "Environment mode [prod|debug]. debug forces debug logging",
			Value:       string(types.RunModeProd),
			Sources:     cli.EnvVars("LINKRELAY_ENV"),
			Destination: &x.raw,
		},
	}
}

// Configure validates the mode. Any value other than prod or debug is rejected.
func (x *RunMode) Configure() (types.RunMode, error) {
	mode, err := types.ParseRunMode(x.raw)
	if err != nil {
		return "", goerr.Wrap(err, "invalid --env")
	}
	x.mode = mode
	return mode, nil
}

// IsDebug reports whether the process runs in debug mode
func (x *RunMode) IsDebug() bool {
	return x.mode == types.RunModeDebug
}

func (x RunMode) LogValue() slog.Value {
	return slog.StringValue(x.raw)
}
