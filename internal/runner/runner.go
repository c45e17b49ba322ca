package runner

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tkarev/chore/internal/tasks"
)

const (
	registryNotConfiguredMessageConstant        = "task runner registry not configured"
	commandProviderNotConfiguredMessageConstant = "task runner command provider not configured"
	launchFailureExitCodeConstant               = 1
	taskStartingMessageConstant                 = "task starting"
	taskSucceededMessageConstant                = "task succeeded"
	taskFailedMessageConstant                   = "task failed"
	taskMemoizedMessageConstant                 = "task already completed this invocation"
	taskNameFieldNameConstant                   = "task"
	exitCodeFieldNameConstant                   = "exit_code"
)

var (
	// ErrRegistryNotConfigured indicates the registry dependency was missing.
	ErrRegistryNotConfigured = errors.New(registryNotConfiguredMessageConstant)
	// ErrCommandProviderNotConfigured indicates the command provider dependency was missing.
	ErrCommandProviderNotConfigured = errors.New(commandProviderNotConfiguredMessageConstant)
)

type taskState int

const (
	taskStateNotStarted taskState = iota
	taskStateResolving
	taskStateSucceeded
	taskStateFailed
)

// Dependencies describes the collaborators required by the task runner.
type Dependencies struct {
	Registry        *tasks.Registry
	CommandProvider CommandProvider
	Logger          *zap.Logger
}

// TaskRunner executes a task after its prerequisite closure, memoizing outcomes.
//
// Runner state is scoped to a single invocation. Construct a fresh runner per
// run; completed-task bookkeeping never leaks across invocations.
type TaskRunner struct {
	registry        *tasks.Registry
	commandProvider CommandProvider
	logger          *zap.Logger
	statesByName    map[string]taskState
	resultsByName   map[string]ExecutionResult
	failuresByName  map[string]error
	completionOrder []string
}

// CompletedResults returns the terminal results recorded this invocation in completion order.
func (taskRunner *TaskRunner) CompletedResults() []ExecutionResult {
	results := make([]ExecutionResult, 0, len(taskRunner.completionOrder))
	for _, taskName := range taskRunner.completionOrder {
		results = append(results, taskRunner.resultsByName[taskName])
	}
	return results
}

// NewTaskRunner constructs a runner for one invocation over the provided registry.
func NewTaskRunner(dependencies Dependencies) (*TaskRunner, error) {
	if dependencies.Registry == nil {
		return nil, ErrRegistryNotConfigured
	}
	if dependencies.CommandProvider == nil {
		return nil, ErrCommandProviderNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TaskRunner{
		registry:        dependencies.Registry,
		commandProvider: dependencies.CommandProvider,
		logger:          logger,
		statesByName:    map[string]taskState{},
		resultsByName:   map[string]ExecutionResult{},
		failuresByName:  map[string]error{},
	}, nil
}

// Run executes the named task after its prerequisites, depth-first and in
// declared order, with each task run at most once per invocation.
//
// Sibling prerequisites that do not depend on a failed task still run; the
// dependent task's own command never runs once any prerequisite has failed,
// and the first failure's exit code propagates to the returned error.
func (taskRunner *TaskRunner) Run(executionContext context.Context, taskName string) (ExecutionResult, error) {
	task, lookupError := taskRunner.registry.Lookup(taskName)
	if lookupError != nil {
		return ExecutionResult{}, lookupError
	}

	switch taskRunner.statesByName[task.Name] {
	case taskStateSucceeded:
		taskRunner.logger.Debug(taskMemoizedMessageConstant, zap.String(taskNameFieldNameConstant, task.Name))
		return ExecutionResult{TaskName: task.Name, Status: StatusSkipped}, nil
	case taskStateFailed:
		taskRunner.logger.Debug(taskMemoizedMessageConstant, zap.String(taskNameFieldNameConstant, task.Name))
		return taskRunner.resultsByName[task.Name], taskRunner.failuresByName[task.Name]
	case taskStateResolving:
		// The registry rejects cyclic configurations, so a revisit of a task on
		// the current resolution path indicates a registry bypass.
		return ExecutionResult{}, tasks.CycleError{Path: []string{task.Name}}
	}

	taskRunner.statesByName[task.Name] = taskStateResolving
	taskRunner.logger.Debug(taskStartingMessageConstant, zap.String(taskNameFieldNameConstant, task.Name))

	var firstFailureResult *ExecutionResult
	var firstFailureError error
	for _, prerequisiteName := range task.Prerequisites {
		prerequisiteResult, prerequisiteError := taskRunner.Run(executionContext, prerequisiteName)
		if prerequisiteError != nil && prerequisiteResult.Status != StatusFailed {
			taskRunner.statesByName[task.Name] = taskStateNotStarted
			return ExecutionResult{}, prerequisiteError
		}
		if prerequisiteResult.Status == StatusFailed && firstFailureResult == nil {
			failureCopy := prerequisiteResult
			firstFailureResult = &failureCopy
			firstFailureError = prerequisiteError
		}
	}

	if firstFailureResult != nil {
		return taskRunner.recordFailure(task.Name, firstFailureResult.ExitCode, firstFailureError)
	}

	if !task.HasCommand() {
		return taskRunner.recordSuccess(task.Name)
	}

	exitCode, executionError := taskRunner.commandProvider.CommandFor(task).Execute(executionContext)
	if executionError != nil {
		failure := CommandFailureError{TaskName: task.Name, ExitCode: launchFailureExitCodeConstant, Cause: executionError}
		return taskRunner.recordFailure(task.Name, failure.ExitCode, failure)
	}
	if exitCode != 0 {
		failure := CommandFailureError{TaskName: task.Name, ExitCode: exitCode}
		return taskRunner.recordFailure(task.Name, exitCode, failure)
	}

	return taskRunner.recordSuccess(task.Name)
}

func (taskRunner *TaskRunner) recordSuccess(taskName string) (ExecutionResult, error) {
	result := ExecutionResult{TaskName: taskName, Status: StatusSucceeded}
	taskRunner.statesByName[taskName] = taskStateSucceeded
	taskRunner.resultsByName[taskName] = result
	taskRunner.completionOrder = append(taskRunner.completionOrder, taskName)
	taskRunner.logger.Info(taskSucceededMessageConstant, zap.String(taskNameFieldNameConstant, taskName))
	return result, nil
}

func (taskRunner *TaskRunner) recordFailure(taskName string, exitCode int, failureError error) (ExecutionResult, error) {
	result := ExecutionResult{TaskName: taskName, Status: StatusFailed, ExitCode: exitCode}
	taskRunner.statesByName[taskName] = taskStateFailed
	taskRunner.resultsByName[taskName] = result
	taskRunner.failuresByName[taskName] = failureError
	taskRunner.completionOrder = append(taskRunner.completionOrder, taskName)
	taskRunner.logger.Warn(taskFailedMessageConstant,
		zap.String(taskNameFieldNameConstant, taskName),
		zap.Int(exitCodeFieldNameConstant, exitCode),
	)
	return result, failureError
}
