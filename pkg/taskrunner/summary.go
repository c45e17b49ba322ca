package taskrunner

import (
	"fmt"
	"strings"
	"time"

	"github.com/tkarev/chore/internal/runner"
)

// RenderSummaryLine returns the summary line printed after multi-task runs.
func RenderSummaryLine(results []runner.ExecutionResult, elapsed time.Duration) string {
	if len(results) <= 1 {
		return ""
	}

	succeededCount := 0
	failedCount := 0
	for _, result := range results {
		switch result.Status {
		case runner.StatusSucceeded:
			succeededCount++
		case runner.StatusFailed:
			failedCount++
		}
	}

	parts := []string{
		fmt.Sprintf("Summary: total.tasks=%d", len(results)),
		fmt.Sprintf("%s=%d", runner.StatusSucceeded, succeededCount),
		fmt.Sprintf("%s=%d", runner.StatusFailed, failedCount),
		fmt.Sprintf("duration_human=%s", elapsed.Round(time.Millisecond)),
		fmt.Sprintf("duration_ms=%d", elapsed.Milliseconds()),
	}

	return strings.Join(parts, " ")
}
