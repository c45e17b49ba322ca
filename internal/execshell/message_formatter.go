package execshell

import (
	"fmt"
	"strings"
)

const (
	startedMessageSuffixConstant               = "starting"
	successMessageSuffixConstant               = "succeeded"
	failureMessageTemplateConstant             = "%s failed with exit code %d"
	executionFailureMessageTemplateConstant    = "%s failed: %v"
	workingDirectoryDecorationTemplateConstant = "%s (in %s)"
)

// CommandMessageFormatter renders human-readable command lifecycle messages.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command that is about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return fmt.Sprintf("%s %s", formatter.describeCommand(command), startedMessageSuffixConstant)
}

// BuildSuccessMessage describes a command that exited with status zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return fmt.Sprintf("%s %s", formatter.describeCommand(command), successMessageSuffixConstant)
}

// BuildFailureMessage describes a command that exited with a non-zero status.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	message := fmt.Sprintf(failureMessageTemplateConstant, formatter.describeCommand(command), result.ExitCode)
	detail := strings.TrimSpace(result.StandardError)
	if len(detail) == 0 {
		detail = strings.TrimSpace(result.StandardOutput)
	}
	if len(detail) > 0 {
		message = fmt.Sprintf("%s: %s", message, detail)
	}
	return message
}

// BuildExecutionFailureMessage describes a command the runner could not execute.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, cause error) string {
	return fmt.Sprintf(executionFailureMessageTemplateConstant, formatter.describeCommand(command), cause)
}

func (formatter CommandMessageFormatter) describeCommand(command ShellCommand) string {
	description := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		description = fmt.Sprintf("%s %s", description, strings.Join(command.Details.Arguments, " "))
	}
	workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(workingDirectory) > 0 {
		description = fmt.Sprintf(workingDirectoryDecorationTemplateConstant, description, workingDirectory)
	}
	return description
}
