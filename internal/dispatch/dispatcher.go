// Package dispatch implements the concurrent batch dispatcher.
//
// The dispatcher enumerates the input directory, launches one task per
// regular file against a shared agent, waits for every task to finish
// regardless of individual failures, and aggregates the outcomes into a
// summary. Tasks convert every error they can raise into an outcome, so
// one file's failure never aborts the batch or disturbs another file's
// processing.
package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/promptfan/promptfan/internal/agent"
	"github.com/promptfan/promptfan/internal/domain"
	"github.com/promptfan/promptfan/internal/terminal"
)

// Config holds the dispatcher configuration.
type Config struct {
	InputDir  string
	OutputDir string

	// Concurrency limits in-flight tasks. 0 means no limit: one
	// goroutine per file, all in flight at once.
	Concurrency int

	Verbose bool
}

// Dispatcher fans a directory of prompt files out to a shared agent.
type Dispatcher struct {
	config Config
	agent  agent.Agent
	logger *terminal.Logger
}

// New creates a dispatcher. The agent is shared read-only by all
// concurrent tasks.
func New(config Config, ag agent.Agent, logger *terminal.Logger) (*Dispatcher, error) {
	if ag == nil {
		return nil, fmt.Errorf("an agent is required")
	}
	if logger == nil {
		logger = terminal.NewLogger()
	}
	return &Dispatcher{config: config, agent: ag, logger: logger}, nil
}

// Run executes the whole batch and returns its summary.
//
// Only input-directory validation and output-directory creation errors
// are returned; they are fatal for the run. Everything that goes wrong
// inside a single task is folded into that task's outcome, and the
// outcome count always equals the number of eligible input files. An
// empty input directory yields a warning and an empty summary, not an
// error.
func (d *Dispatcher) Run(ctx context.Context) (domain.Summary, error) {
	start := time.Now()
	summary := domain.Summary{
		RunID:     uuid.NewString(),
		OutputDir: d.config.OutputDir,
	}

	items, err := d.scan()
	if err != nil {
		return summary, err
	}

	if err := os.MkdirAll(d.config.OutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("could not create output directory %q: %w", d.config.OutputDir, err)
	}

	if len(items) == 0 {
		d.logger.Logf(terminal.StyleWarning, "No files found in input directory: %s", d.config.InputDir)
		return summary, nil
	}

	d.logger.Logf(terminal.StyleInfo, "Found %d file(s). Starting parallel processing %s(run %s)%s",
		len(items), terminal.Color(terminal.Dim), summary.RunID, terminal.Color(terminal.Reset))

	spinner := terminal.NewSpinner(len(items))
	spinnerCtx, spinnerCancel := context.WithCancel(context.Background())
	spinnerDone := make(chan struct{})
	go func() {
		spinner.Run(spinnerCtx)
		close(spinnerDone)
	}()

	outcomes := make(chan domain.Outcome, len(items))

	var g errgroup.Group
	if d.config.Concurrency > 0 {
		g.SetLimit(d.config.Concurrency)
	}
	for _, item := range items {
		g.Go(func() error {
			outcome := d.process(ctx, item)
			d.report(outcome)
			spinner.Completed().Add(1)
			outcomes <- outcome
			// Tasks never fail the group; failures live in the outcome.
			return nil
		})
	}

	// Wait for every task, with no short-circuit on failure.
	_ = g.Wait()
	close(outcomes)

	spinnerCancel()
	<-spinnerDone

	for outcome := range outcomes {
		summary.Outcomes = append(summary.Outcomes, outcome)
		switch outcome.Kind {
		case domain.OutcomeSuccess:
			summary.Succeeded++
		case domain.OutcomeSkipped:
			summary.Skipped++
		case domain.OutcomeFailed:
			summary.Failed++
		}
	}
	summary.WallClock = time.Since(start)

	return summary, nil
}

// scan validates the input directory and turns its regular files into
// work items. Subdirectories and special entries are skipped without
// becoming outcomes.
func (d *Dispatcher) scan() ([]domain.WorkItem, error) {
	info, err := os.Stat(d.config.InputDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("input path %q is not a valid directory", d.config.InputDir)
	}

	entries, err := os.ReadDir(d.config.InputDir)
	if err != nil {
		return nil, fmt.Errorf("could not read input directory %q: %w", d.config.InputDir, err)
	}

	var items []domain.WorkItem
	ignored := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			ignored++
			continue
		}
		items = append(items, domain.WorkItem{
			Name:       entry.Name(),
			InputPath:  filepath.Join(d.config.InputDir, entry.Name()),
			OutputPath: filepath.Join(d.config.OutputDir, entry.Name()),
		})
	}

	if ignored > 0 && d.config.Verbose {
		d.logger.Logf(terminal.StyleDim, "Ignoring %d non-file entries in %s", ignored, d.config.InputDir)
	}

	return items, nil
}
