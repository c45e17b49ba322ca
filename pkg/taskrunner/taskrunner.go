package taskrunner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tkarev/chore/internal/runner"
)

// Executor runs a named task with its prerequisite closure.
type Executor interface {
	Run(executionContext context.Context, taskName string) (runner.ExecutionResult, error)
}

// Factory constructs an Executor given runner dependencies.
type Factory func(runner.Dependencies) Executor

// Dependencies describes collaborators for resolving an executor.
type Dependencies struct {
	Runner         runner.Dependencies
	Output         io.Writer
	Errors         io.Writer
	DisableSummary bool
}

type resultsReporter interface {
	CompletedResults() []runner.ExecutionResult
}

// Resolve returns either the provided factory result or a default task runner,
// wrapped so a summary line is printed after the run.
func Resolve(factory Factory, dependencies Dependencies) (Executor, error) {
	var base Executor
	if factory != nil {
		base = factory(dependencies.Runner)
	}
	if base == nil {
		defaultRunner, runnerError := runner.NewTaskRunner(dependencies.Runner)
		if runnerError != nil {
			return nil, runnerError
		}
		base = defaultRunner
	}
	return summaryExecutor{delegate: base, dependencies: dependencies}, nil
}

type summaryExecutor struct {
	delegate     Executor
	dependencies Dependencies
}

func (executor summaryExecutor) Run(executionContext context.Context, taskName string) (runner.ExecutionResult, error) {
	startedAt := time.Now()
	result, runError := executor.delegate.Run(executionContext, taskName)
	executor.printSummary(time.Since(startedAt))
	return result, runError
}

func (executor summaryExecutor) printSummary(elapsed time.Duration) {
	if executor.dependencies.DisableSummary {
		return
	}
	writer := executor.summaryWriter()
	if writer == nil {
		return
	}

	reporter, reports := executor.delegate.(resultsReporter)
	if !reports {
		return
	}

	summary := RenderSummaryLine(reporter.CompletedResults(), elapsed)
	if len(strings.TrimSpace(summary)) == 0 {
		return
	}
	fmt.Fprintln(writer, summary)
}

func (executor summaryExecutor) summaryWriter() io.Writer {
	if executor.dependencies.Errors != nil {
		return executor.dependencies.Errors
	}
	if executor.dependencies.Output != nil {
		return executor.dependencies.Output
	}
	return nil
}
