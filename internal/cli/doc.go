// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes and the
// environment. It translates CLI flags into the application's internal
// configuration.
package cli
