package domain

import "testing"

func TestSummary_Total(t *testing.T) {
	s := Summary{Succeeded: 3, Skipped: 1, Failed: 2}
	if s.Total() != 6 {
		t.Errorf("expected total 6, got %d", s.Total())
	}
}

func TestSummary_Failures_PreservesCompletionOrder(t *testing.T) {
	s := Summary{
		Outcomes: []Outcome{
			{Name: "a.txt", Kind: OutcomeSuccess},
			{Name: "b.txt", Kind: OutcomeFailed, Reason: "not found"},
			{Name: "c.txt", Kind: OutcomeSkipped},
			{Name: "d.txt", Kind: OutcomeFailed, Reason: "decode error"},
		},
	}

	failures := s.Failures()
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failures))
	}
	if failures[0].Name != "b.txt" || failures[1].Name != "d.txt" {
		t.Errorf("unexpected failure order: %v", failures)
	}
}

func TestOutcomeKind_String(t *testing.T) {
	tests := []struct {
		kind OutcomeKind
		want string
	}{
		{OutcomeSuccess, "success"},
		{OutcomeSkipped, "skipped"},
		{OutcomeFailed, "failed"},
		{OutcomeKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("OutcomeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestExitCode_Int(t *testing.T) {
	if ExitOK.Int() != 0 {
		t.Errorf("ExitOK = %d, want 0", ExitOK.Int())
	}
	if ExitError.Int() != 2 {
		t.Errorf("ExitError = %d, want 2", ExitError.Int())
	}
	if ExitInterrupted.Int() != 130 {
		t.Errorf("ExitInterrupted = %d, want 130", ExitInterrupted.Int())
	}
}
