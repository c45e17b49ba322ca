package runner

// Status enumerates per-task outcomes within a single invocation.
type Status string

// Per-task outcomes.
const (
	// StatusSkipped reports a task that already ran earlier in this invocation.
	StatusSkipped Status = "skipped"
	// StatusSucceeded reports a command that exited zero or a grouping task without a command.
	StatusSucceeded Status = "succeeded"
	// StatusFailed reports a command that exited non-zero or was terminated by a signal.
	StatusFailed Status = "failed"
)

// ExecutionResult captures the outcome of running a single task.
type ExecutionResult struct {
	TaskName string
	Status   Status
	ExitCode int
}
