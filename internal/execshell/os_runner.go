package execshell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"
)

const signalExitCodeBaseConstant = 128

// OSCommandRunner executes shell commands using the operating system process API.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs an OSCommandRunner instance.
func NewOSCommandRunner() OSCommandRunner {
	return OSCommandRunner{}
}

// Run launches the command synchronously and captures its observable results.
//
// A child terminated by a signal reports the conventional 128+signal exit code
// so callers can propagate it the way a shell would.
func (runner OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executableCommand := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executableCommand.Dir = command.Details.WorkingDirectory
	executableCommand.Env = mergedEnvironment(command.Details.EnvironmentVariables)

	if len(command.Details.StandardInput) > 0 {
		executableCommand.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executableCommand.Stdout = &standardOutputBuffer
	executableCommand.Stderr = &standardErrorBuffer

	runError := executableCommand.Run()
	executionResult := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}

	if runError == nil {
		return executionResult, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		executionResult.ExitCode = resolveExitCode(exitError)
		return executionResult, nil
	}

	return ExecutionResult{}, runError
}

func resolveExitCode(exitError *exec.ExitError) int {
	if waitStatus, isWaitStatus := exitError.Sys().(syscall.WaitStatus); isWaitStatus && waitStatus.Signaled() {
		return signalExitCodeBaseConstant + int(waitStatus.Signal())
	}
	return exitError.ExitCode()
}

func mergedEnvironment(environmentVariables map[string]string) []string {
	if len(environmentVariables) == 0 {
		return nil
	}

	merged := os.Environ()
	for variableName, variableValue := range environmentVariables {
		merged = append(merged, variableName+"="+variableValue)
	}
	return merged
}
