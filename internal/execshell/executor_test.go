package execshell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tkarev/chore/internal/execshell"
)

const (
	executorSubtestNameTemplateConstant = "%d_%s"
	testCaseSuccessfulCommandConstant   = "successful_command"
	testCaseNonZeroExitConstant         = "non_zero_exit_returns_failure"
	testCaseRunnerErrorConstant         = "runner_error_wrapped"
	testCaseMissingNameConstant         = "missing_command_name"
	testStandardErrorOutputConstant     = "src/module.py:1:1: F401 'os' imported but unused"
)

type recordingCommandRunner struct {
	commands    []execshell.ShellCommand
	result      execshell.ExecutionResult
	runnerError error
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.commands = append(runner.commands, command)
	if runner.runnerError != nil {
		return execshell.ExecutionResult{}, runner.runnerError
	}
	return runner.result, nil
}

func TestNewShellExecutorValidatesDependencies(testInstance *testing.T) {
	_, missingLoggerError := execshell.NewShellExecutor(nil, &recordingCommandRunner{}, false)
	require.ErrorIs(testInstance, missingLoggerError, execshell.ErrLoggerNotConfigured)

	_, missingRunnerError := execshell.NewShellExecutor(zap.NewNop(), nil, false)
	require.ErrorIs(testInstance, missingRunnerError, execshell.ErrCommandRunnerNotConfigured)
}

func TestShellExecutorExecute(testInstance *testing.T) {
	testCases := []struct {
		name               string
		command            execshell.ShellCommand
		runnerResult       execshell.ExecutionResult
		runnerError        error
		expectMissingName  bool
		expectFailedError  bool
		expectWrappedError bool
	}{
		{
			name: testCaseSuccessfulCommandConstant,
			command: execshell.ShellCommand{
				Name:    execshell.CommandStyleLinter,
				Details: execshell.CommandDetails{Arguments: []string{"--max-line-length", "100"}},
			},
			runnerResult: execshell.ExecutionResult{ExitCode: 0, StandardOutput: "ok"},
		},
		{
			name: testCaseNonZeroExitConstant,
			command: execshell.ShellCommand{
				Name:    execshell.CommandImportSorter,
				Details: execshell.CommandDetails{Arguments: []string{"--check-only"}},
			},
			runnerResult:      execshell.ExecutionResult{ExitCode: 1, StandardError: testStandardErrorOutputConstant},
			expectFailedError: true,
		},
		{
			name:               testCaseRunnerErrorConstant,
			command:            execshell.ShellCommand{Name: execshell.CommandCodeFormatter},
			runnerError:        errors.New("yapf: executable file not found"),
			expectWrappedError: true,
		},
		{
			name:              testCaseMissingNameConstant,
			command:           execshell.ShellCommand{},
			expectMissingName: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(executorSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			observedCore, observedLogs := observer.New(zap.DebugLevel)
			commandRunner := &recordingCommandRunner{result: testCase.runnerResult, runnerError: testCase.runnerError}

			shellExecutor, executorError := execshell.NewShellExecutor(zap.New(observedCore), commandRunner, false)
			require.NoError(testInstance, executorError)

			executionResult, executionError := shellExecutor.Execute(context.Background(), testCase.command)

			if testCase.expectMissingName {
				require.ErrorIs(testInstance, executionError, execshell.ErrCommandNameMissing)
				require.Empty(testInstance, commandRunner.commands)
				return
			}

			require.Len(testInstance, commandRunner.commands, 1)
			require.Equal(testInstance, testCase.command, commandRunner.commands[0])

			if testCase.expectFailedError {
				var failedError execshell.CommandFailedError
				require.ErrorAs(testInstance, executionError, &failedError)
				require.Equal(testInstance, testCase.runnerResult.ExitCode, failedError.Result.ExitCode)
				require.Equal(testInstance, testCase.runnerResult.ExitCode, executionResult.ExitCode)
				require.Contains(testInstance, failedError.Error(), string(testCase.command.Name))
				return
			}

			if testCase.expectWrappedError {
				var wrappedError execshell.CommandExecutionError
				require.ErrorAs(testInstance, executionError, &wrappedError)
				require.ErrorIs(testInstance, executionError, testCase.runnerError)
				return
			}

			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.runnerResult, executionResult)
			require.GreaterOrEqual(testInstance, observedLogs.Len(), 2)
		})
	}
}

func TestShellExecutorHumanReadableLogging(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zap.DebugLevel)
	commandRunner := &recordingCommandRunner{result: execshell.ExecutionResult{ExitCode: 0}}

	shellExecutor, executorError := execshell.NewShellExecutor(zap.New(observedCore), commandRunner, true)
	require.NoError(testInstance, executorError)

	command := execshell.ShellCommand{
		Name:    execshell.CommandStyleLinter,
		Details: execshell.CommandDetails{Arguments: []string{"--version"}, WorkingDirectory: "src"},
	}

	_, executionError := shellExecutor.Execute(context.Background(), command)
	require.NoError(testInstance, executionError)

	logEntries := observedLogs.All()
	require.Len(testInstance, logEntries, 2)
	require.Contains(testInstance, logEntries[0].Message, "flake8 --version (in src)")
	require.Contains(testInstance, logEntries[1].Message, "succeeded")
}
