package app

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// DefaultOutputPath is where the Makefile is written by default.
const DefaultOutputPath = "Makefile"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPath is a .hcl file or a directory of them. Empty selects the
	// built-in default pack.
	ConfigPath string
	// OutputPath is the Makefile to write.
	OutputPath string
	// ManifestPath, when set, receives the name manifest.
	ManifestPath string

	// Jobs overrides the pack's job count when positive. It sets IDH_JOBS
	// and bounds the local runner.
	Jobs int
	// Run executes the graph locally after writing it.
	Run bool
	// Goals are the targets to run; empty means "all".
	Goals []string
	// KeepGoing continues past failed nodes.
	KeepGoing bool
	// WorkDir is the working directory of the local runner.
	WorkDir string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	var err error
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}
	if cfg.Jobs < 0 {
		err = multierr.Append(err, fmt.Errorf("jobs cannot be negative, got %d", cfg.Jobs))
	}
	if !cfg.Run && (len(cfg.Goals) > 0 || cfg.KeepGoing) {
		err = multierr.Append(err, errors.New("goals and keep-going require run"))
	}
	for _, goal := range cfg.Goals {
		if strings.TrimSpace(goal) == "" {
			err = multierr.Append(err, errors.New("goal cannot be empty"))
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
