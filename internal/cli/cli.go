package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vk/fontpackgen/internal/app"
)

// Environment variables that supply flag defaults.
const (
	EnvJobs     = "FONTPACK_JOBS"
	EnvLogLevel = "FONTPACK_LOG_LEVEL"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// Environment returns a lookup over the process environment backed by the
// given dotenv file. Process variables win over the file. A missing file is
// not an error.
func Environment(dotenvPath string) (LookupFunc, error) {
	values, err := godotenv.Read(dotenvPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", dotenvPath, err)
		}
		values = map[string]string{}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Flag defaults are taken from env when set there.
func Parse(args []string, output io.Writer, env LookupFunc) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	if env == nil {
		env = func(string) (string, bool) { return "", false }
	}

	defaultJobs := 0
	if v, ok := env(EnvJobs); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid %s: %q is not a number", EnvJobs, v)}
		}
		defaultJobs = n
	}
	defaultLevel := "info"
	if v, ok := env(EnvLogLevel); ok && v != "" {
		defaultLevel = v
	}

	flagSet := flag.NewFlagSet("fontpackgen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
fontpackgen - Generates the build Makefile of a multi-region font pack.

Usage:
  fontpackgen [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to a single .hcl file or a directory containing .hcl files.
    Without it the built-in default pack is generated.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the pack configuration file or directory.")
	cFlag := flagSet.String("c", "", "Path to the pack configuration file or directory (shorthand).")
	outputFlag := flagSet.String("o", app.DefaultOutputPath, "Path of the Makefile to write.")
	manifestFlag := flagSet.String("manifest", "", "Path of the name manifest to write. Empty disables it.")
	jobsFlag := flagSet.Int("jobs", defaultJobs, "Parallel jobs for hinting and local runs. 0 keeps the pack setting. Env: "+EnvJobs+".")
	runFlag := flagSet.Bool("run", false, "Run the generated graph locally after writing it.")
	goalFlag := flagSet.String("goal", "", "Comma-separated targets to run with -run. Default: all.")
	keepGoingFlag := flagSet.Bool("keep-going", false, "With -run, keep building targets that do not depend on a failure.")
	workDirFlag := flagSet.String("workdir", "", "Working directory of the local run.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaultLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'. Env: "+EnvLogLevel+".")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *configFlag != "" {
		path = *configFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args()[1:], " "))}
	}
	slog.Debug("Config path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var goals []string
	if *goalFlag != "" {
		goals = strings.Split(*goalFlag, ",")
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:   path,
		OutputPath:   *outputFlag,
		ManifestPath: *manifestFlag,
		Jobs:         *jobsFlag,
		Run:          *runFlag,
		Goals:        goals,
		KeepGoing:    *keepGoingFlag,
		WorkDir:      *workDirFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
