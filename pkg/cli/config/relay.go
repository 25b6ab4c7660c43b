package config

import (
	"errors"
	"log/slog"
	"os"
	"regexp"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/linkrelay/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// DefaultSweepInterval is how often expired cache entries are pruned
const DefaultSweepInterval = 10 * time.Minute

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// RelayFile is the optional TOML configuration file
type RelayFile struct {
	Render RenderSection `toml:"render"`
	Cache  CacheSection  `toml:"cache"`
}

// RenderSection controls how summaries look
type RenderSection struct {
	AccentColor      string `toml:"accent_color"`
	DescriptionLimit *int   `toml:"description_limit"`
	Placeholder      string `toml:"placeholder"`
}

// CacheSection controls cache lifetimes. Values are Go duration strings.
type CacheSection struct {
	IssueMaxAge   string `toml:"issue_max_age"`
	SweepInterval string `toml:"sweep_interval"`
}

// Validate checks if the RelayFile is valid
func (f *RelayFile) Validate() error {
	if f.Render.AccentColor != "" && !colorPattern.MatchString(f.Render.AccentColor) {
		return goerr.Wrap(ErrInvalidConfig, "accent_color must be #RRGGBB",
			goerr.V(FieldKey, "render.accent_color"), goerr.V("value", f.Render.AccentColor))
	}
	if f.Render.DescriptionLimit != nil && *f.Render.DescriptionLimit <= 0 {
		return goerr.Wrap(ErrInvalidConfig, "description_limit must be positive",
			goerr.V(FieldKey, "render.description_limit"), goerr.V("value", *f.Render.DescriptionLimit))
	}
	if _, err := parsePositiveDuration("cache.issue_max_age", f.Cache.IssueMaxAge); err != nil {
		return err
	}
	if _, err := parsePositiveDuration("cache.sweep_interval", f.Cache.SweepInterval); err != nil {
		return err
	}
	return nil
}

func parsePositiveDuration(field, raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, goerr.Wrap(ErrInvalidConfig, "invalid duration",
			goerr.V(FieldKey, field), goerr.V("value", raw), goerr.V("cause", err.Error()))
	}
	if d <= 0 {
		return 0, goerr.Wrap(ErrInvalidConfig, "duration must be positive",
			goerr.V(FieldKey, field), goerr.V("value", raw))
	}
	return d, nil
}

// LoadRelayFile loads the relay configuration from a TOML file
func LoadRelayFile(path string) (*RelayFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var file RelayFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &file, nil
}

// Relay holds the --config flag and the settings loaded from it
type Relay struct {
	path string
	file *RelayFile
}

func (x *Relay) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the TOML configuration file",
			Sources:     cli.EnvVars("LINKRELAY_CONFIG"),
			Destination: &x.path,
		},
	}
}

func (x Relay) LogValue() slog.Value {
	render := x.RenderOptions()
	return slog.GroupValue(
		slog.String("path", x.path),
		slog.String("accent_color", render.AccentColor),
		slog.Int("description_limit", render.DescriptionLimit),
		slog.Duration("issue_max_age", x.IssueMaxAge()),
		slog.Duration("sweep_interval", x.SweepInterval()),
	)
}

// Configure loads the file when a path is given. Without a path every setting keeps its default.
func (x *Relay) Configure() error {
	if x.path == "" {
		x.file = nil
		return nil
	}

	file, err := LoadRelayFile(x.path)
	if err != nil {
		return err
	}
	x.file = file
	return nil
}

// RenderOptions returns the summary rendering settings
func (x *Relay) RenderOptions() usecase.RenderOptions {
	opt := usecase.DefaultRenderOptions()
	if x.file == nil {
		return opt
	}

	if x.file.Render.AccentColor != "" {
		opt.AccentColor = x.file.Render.AccentColor
	}
	if x.file.Render.DescriptionLimit != nil {
		opt.DescriptionLimit = *x.file.Render.DescriptionLimit
	}
	if x.file.Render.Placeholder != "" {
		opt.Placeholder = x.file.Render.Placeholder
	}
	return opt
}

// IssueMaxAge returns how long a fetched issue stays fresh
func (x *Relay) IssueMaxAge() time.Duration {
	if x.file == nil {
		return usecase.DefaultIssueMaxAge
	}
	d, _ := parsePositiveDuration("cache.issue_max_age", x.file.Cache.IssueMaxAge)
	if d == 0 {
		return usecase.DefaultIssueMaxAge
	}
	return d
}

// SweepInterval returns the cache prune interval
func (x *Relay) SweepInterval() time.Duration {
	if x.file == nil {
		return DefaultSweepInterval
	}
	d, _ := parsePositiveDuration("cache.sweep_interval", x.file.Cache.SweepInterval)
	if d == 0 {
		return DefaultSweepInterval
	}
	return d
}
