package types

import "github.com/m-mizutani/goerr/v2"

// RunMode selects the process environment. Only two values are accepted.
type RunMode string

const (
	RunModeProd  RunMode = "prod"
	RunModeDebug RunMode = "debug"
)

// AllRunModes returns all valid run modes
func AllRunModes() []RunMode {
	return []RunMode{
		RunModeProd,
		RunModeDebug,
	}
}

// IsValid checks if the run mode is valid
func (m RunMode) IsValid() bool {
	switch m {
	case RunModeProd, RunModeDebug:
		return true
	default:
		return false
	}
}

// String returns the string representation of the run mode
func (m RunMode) String() string {
	return string(m)
}

// ParseRunMode parses a string into a RunMode
func ParseRunMode(s string) (RunMode, error) {
	mode := RunMode(s)
	if !mode.IsValid() {
		return "", goerr.New("run mode must be `prod` or `debug`", goerr.V("mode", s))
	}
	return mode, nil
}
