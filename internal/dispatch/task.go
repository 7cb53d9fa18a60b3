package dispatch

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/promptfan/promptfan/internal/agent"
	"github.com/promptfan/promptfan/internal/domain"
	"github.com/promptfan/promptfan/internal/terminal"
)

// process transforms one work item into one outcome, in isolation.
// Every failure mode is converted into an outcome here; the dispatcher
// relies on tasks never returning errors.
func (d *Dispatcher) process(ctx context.Context, item domain.WorkItem) domain.Outcome {
	start := time.Now()
	outcome := func(kind domain.OutcomeKind, reason string) domain.Outcome {
		return domain.Outcome{
			Name:     item.Name,
			Kind:     kind,
			Reason:   reason,
			Duration: time.Since(start),
		}
	}

	if d.config.Verbose {
		d.logger.Logf(terminal.StyleDim, "Processing: %s", item.Name)
	}

	data, err := os.ReadFile(item.InputPath)
	switch {
	case os.IsNotExist(err):
		return outcome(domain.OutcomeFailed, "not found")
	case err != nil:
		return outcome(domain.OutcomeFailed, fmt.Sprintf("unexpected: %v", err))
	}
	if !utf8.Valid(data) {
		return outcome(domain.OutcomeFailed, "decode error")
	}

	prompt := string(data)
	if strings.TrimSpace(prompt) == "" {
		return outcome(domain.OutcomeSkipped, "")
	}

	response, err := d.agent.Complete(ctx, prompt)
	if err != nil {
		if agent.IsProviderError(err) {
			return outcome(domain.OutcomeFailed, fmt.Sprintf("api error: %v", err))
		}
		return outcome(domain.OutcomeFailed, fmt.Sprintf("unexpected: %v", err))
	}

	if err := os.WriteFile(item.OutputPath, []byte(response), 0o644); err != nil {
		return outcome(domain.OutcomeFailed, fmt.Sprintf("unexpected: %v", err))
	}

	return outcome(domain.OutcomeSuccess, "")
}

// report logs one task's outcome through the injected logger.
func (d *Dispatcher) report(o domain.Outcome) {
	switch o.Kind {
	case domain.OutcomeSuccess:
		d.logger.Logf(terminal.StyleSuccess, "Success: %s", o.Name)
	case domain.OutcomeSkipped:
		d.logger.Logf(terminal.StyleWarning, "Skipping empty file: %s", o.Name)
	case domain.OutcomeFailed:
		d.logger.Logf(terminal.StyleError, "Failed: %s (%s)", o.Name, o.Reason)
	}
}
