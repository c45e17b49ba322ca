package runner

import "fmt"

const commandFailureErrorTemplateConstant = "task %q failed with exit code %d"

// CommandFailureError reports an external command that exited non-zero or could not run.
type CommandFailureError struct {
	TaskName string
	ExitCode int
	Cause    error
}

// Error implements the error interface.
func (errorDetails CommandFailureError) Error() string {
	message := fmt.Sprintf(commandFailureErrorTemplateConstant, errorDetails.TaskName, errorDetails.ExitCode)
	if errorDetails.Cause != nil {
		message = fmt.Sprintf("%s: %v", message, errorDetails.Cause)
	}
	return message
}

// Unwrap exposes the underlying execution failure when present.
func (errorDetails CommandFailureError) Unwrap() error {
	return errorDetails.Cause
}
