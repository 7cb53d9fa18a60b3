package domain

import "time"

// WorkItem pairs one input file with its destination output file.
// Items are created by directory enumeration and consumed exactly once.
type WorkItem struct {
	Name       string // base file name, shared by input and output
	InputPath  string
	OutputPath string
}

// OutcomeKind classifies the result of processing one work item.
type OutcomeKind int

const (
	// OutcomeSuccess means the agent's response was written to the output file.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeSkipped means the input file was empty or whitespace-only.
	// No output file is written for skipped items.
	OutcomeSkipped
	// OutcomeFailed means processing the item failed; Reason carries the cause.
	OutcomeFailed
)

// String returns a human-readable name for the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome holds the result of processing one work item.
// Outcomes are never mutated after creation.
type Outcome struct {
	Name     string
	Kind     OutcomeKind
	Reason   string // set when Kind is OutcomeFailed
	Duration time.Duration
}

// Summary aggregates outcomes for one run.
type Summary struct {
	RunID     string
	OutputDir string
	Succeeded int
	Skipped   int
	Failed    int
	WallClock time.Duration
	Outcomes  []Outcome // completion order
}

// Total returns the number of work items the run produced outcomes for.
func (s Summary) Total() int {
	return s.Succeeded + s.Skipped + s.Failed
}

// Failures returns the failed outcomes in completion order.
func (s Summary) Failures() []Outcome {
	var failures []Outcome
	for _, o := range s.Outcomes {
		if o.Kind == OutcomeFailed {
			failures = append(failures, o)
		}
	}
	return failures
}
