package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/domain/interfaces"
	"github.com/secmon-lab/linkrelay/pkg/service/linear"
	"github.com/urfave/cli/v3"
)

// Linear holds the issue tracker connection settings
type Linear struct {
	apiKey   string
	endpoint string
}

func (x *Linear) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "linear-api-key",
			Usage:       "Linear personal API key with read access to teams and issues",
			Category:    "Linear",
			Destination: &x.apiKey,
			Sources:     cli.EnvVars("LINKRELAY_LINEAR_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "linear-endpoint",
			Usage:       "Linear GraphQL endpoint",
			Category:    "Linear",
			Value:       linear.DefaultEndpoint,
			Destination: &x.endpoint,
			Sources:     cli.EnvVars("LINKRELAY_LINEAR_ENDPOINT"),
		},
	}
}

func (x Linear) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("api-key.len", len(x.apiKey)),
		slog.String("endpoint", x.endpoint),
	)
}

// Validate checks that an API key is set
func (x *Linear) Validate() error {
	if x.apiKey == "" {
		return goerr.New("--linear-api-key is required")
	}
	return nil
}

// Configure creates the Linear client
func (x *Linear) Configure() (interfaces.IssueTracker, error) {
	if err := x.Validate(); err != nil {
		return nil, err
	}

	var opts []linear.Option
	if x.endpoint != "" {
		opts = append(opts, linear.WithEndpoint(x.endpoint))
	}

	client, err := linear.New(x.apiKey, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create linear client")
	}
	return client, nil
}
