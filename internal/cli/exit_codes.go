package cli

import (
	"github.com/ariel-frischer/twnotify/internal/cli/shared"
)

// Exit codes for the twnotify CLI (re-exported from shared)
const (
	// ExitSuccess indicates successful execution or a clean interrupt
	ExitSuccess = shared.ExitSuccess

	// ExitFailure indicates any other failure
	ExitFailure = shared.ExitFailure

	// ExitInvalidArguments indicates invalid flags, arguments or configuration
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitMissingDependencies indicates a failed health check
	ExitMissingDependencies = shared.ExitMissingDependency
)

// NewExitError creates a new exit error with the given code (re-exported from shared).
func NewExitError(code int) error {
	return shared.NewExitError(code)
}

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
