package runner

import (
	"context"
	"errors"

	"github.com/tkarev/chore/internal/execshell"
	"github.com/tkarev/chore/internal/tasks"
)

// TaskCommand abstracts the external process associated with a task.
//
// Implementations return the process exit status; a non-nil error reports that
// the process could not be launched at all.
type TaskCommand interface {
	Execute(executionContext context.Context) (int, error)
}

// CommandProvider resolves the TaskCommand for a task definition.
type CommandProvider interface {
	CommandFor(task tasks.Task) TaskCommand
}

// ShellCommandProvider builds task commands backed by the shell executor.
type ShellCommandProvider struct {
	executor *execshell.ShellExecutor
}

// NewShellCommandProvider constructs a provider delegating to the supplied shell executor.
func NewShellCommandProvider(executor *execshell.ShellExecutor) (*ShellCommandProvider, error) {
	if executor == nil {
		return nil, execshell.ErrCommandRunnerNotConfigured
	}
	return &ShellCommandProvider{executor: executor}, nil
}

// CommandFor maps the task's argv onto a shell-backed TaskCommand.
func (provider *ShellCommandProvider) CommandFor(task tasks.Task) TaskCommand {
	return shellTaskCommand{executor: provider.executor, task: task}
}

type shellTaskCommand struct {
	executor *execshell.ShellExecutor
	task     tasks.Task
}

// Execute launches the task's external command in the caller's working directory
// unless the task configures its own, and reports the resulting exit status.
func (command shellTaskCommand) Execute(executionContext context.Context) (int, error) {
	shellCommand := execshell.ShellCommand{
		Name: execshell.CommandName(command.task.Command[0]),
		Details: execshell.CommandDetails{
			Arguments:            command.task.Command[1:],
			WorkingDirectory:     command.task.WorkingDirectory,
			EnvironmentVariables: command.task.Environment,
		},
	}

	executionResult, executionError := command.executor.Execute(executionContext, shellCommand)
	if executionError != nil {
		var commandFailed execshell.CommandFailedError
		if errors.As(executionError, &commandFailed) {
			return commandFailed.Result.ExitCode, nil
		}
		return 0, executionError
	}

	return executionResult.ExitCode, nil
}
