package main

import (
	"fmt"

	"github.com/promptfan/promptfan/internal/domain"
)

// exitCodeError is a wrapper type for returning exit codes via the error interface.
type exitCodeError struct {
	code domain.ExitCode
}

func (e exitCodeError) Error() string {
	switch e.code {
	case domain.ExitError:
		return "run failed with error"
	case domain.ExitInterrupted:
		return "run was interrupted"
	default:
		return fmt.Sprintf("exit code %d", e.code)
	}
}

func exitCode(code domain.ExitCode) error {
	if code == domain.ExitOK {
		return nil
	}
	return exitCodeError{code: code}
}
