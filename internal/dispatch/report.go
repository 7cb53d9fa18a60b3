package dispatch

import (
	"fmt"
	"strings"

	"github.com/promptfan/promptfan/internal/domain"
	"github.com/promptfan/promptfan/internal/terminal"
)

// RenderSummary renders the end-of-run summary for a batch.
func RenderSummary(s domain.Summary) string {
	width := terminal.ReportWidth()

	var lines []string
	lines = append(lines, "")

	mark := fmt.Sprintf("%s✓%s", terminal.Color(terminal.Green), terminal.Color(terminal.Reset))
	if s.Failed > 0 {
		mark = fmt.Sprintf("%s✗%s", terminal.Color(terminal.Red), terminal.Color(terminal.Reset))
	}

	fileWord := "file"
	if s.Total() != 1 {
		fileWord = "files"
	}
	lines = append(lines, fmt.Sprintf("%s %sProcessing finished.%s %d succeeded, %d skipped, %d failed %s(%d %s in %s)%s",
		mark,
		terminal.Color(terminal.Bold), terminal.Color(terminal.Reset),
		s.Succeeded, s.Skipped, s.Failed,
		terminal.Color(terminal.Dim), s.Total(), fileWord, terminal.FormatDuration(s.WallClock), terminal.Color(terminal.Reset)))

	if failures := s.Failures(); len(failures) > 0 {
		lines = append(lines, terminal.Ruler(width, "─"))
		for _, f := range failures {
			lines = append(lines, fmt.Sprintf("  %s•%s %s %s(%s)%s",
				terminal.Color(terminal.Red), terminal.Color(terminal.Reset),
				f.Name,
				terminal.Color(terminal.Dim), f.Reason, terminal.Color(terminal.Reset)))
		}
	}

	if s.Total() > 0 {
		lines = append(lines, fmt.Sprintf("%sResponses saved to:%s %s",
			terminal.Color(terminal.Green), terminal.Color(terminal.Reset), s.OutputDir))
	}

	return strings.Join(lines, "\n")
}
