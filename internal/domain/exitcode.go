// Package domain provides core types for the batch runner.
package domain

// ExitCode represents the exit status of the runner.
type ExitCode int

const (
	// ExitOK indicates the batch completed. Per-file failures and the
	// empty-input-directory case still exit with ExitOK.
	ExitOK ExitCode = 0
	// ExitError indicates the run failed before or during dispatch due to
	// a fatal error (bad input directory, missing credential, ...).
	ExitError ExitCode = 2
	// ExitInterrupted indicates the run was interrupted by a signal.
	ExitInterrupted ExitCode = 130
)

// Int returns the exit code as an int for use with os.Exit.
func (e ExitCode) Int() int {
	return int(e)
}
