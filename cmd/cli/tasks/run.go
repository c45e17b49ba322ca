package tasks

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tkarev/chore/internal/execshell"
	"github.com/tkarev/chore/internal/runner"
	"github.com/tkarev/chore/internal/tasks"
	"github.com/tkarev/chore/internal/utils"
	"github.com/tkarev/chore/pkg/taskrunner"
)

const (
	runCommandUseConstant                  = "run <task>"
	runCommandShortDescriptionConstant     = "Run a task and its prerequisites"
	runCommandLongDescriptionConstant      = "run resolves the named task's prerequisites in declaration order and executes each task command at most once, stopping dependents on the first failure."
	runCommandExampleConstant              = "chore run lint\n  chore run format --taskfile ./tasks.yaml"
	taskfileFlagNameConstant               = "taskfile"
	taskfileFlagDescriptionConstant        = "Load task definitions from a YAML file instead of the configuration"
	registryProviderMissingMessageConstant = "task registry provider is not configured"
	runCommandStartedLogMessageConstant    = "task run requested"
	logFieldTaskNameConstant               = "task_name"
)

// LoggerProvider supplies the logger used by task commands.
type LoggerProvider func() *zap.Logger

// RegistryProvider supplies the task registry resolved from configuration.
type RegistryProvider func() (*tasks.Registry, error)

// RunCommandBuilder assembles the run command.
type RunCommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	RegistryProvider             RegistryProvider
	CommandRunner                execshell.CommandRunner
	ExecutorFactory              taskrunner.Factory
}

// Build constructs the run command.
func (builder *RunCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           runCommandUseConstant,
		Short:         runCommandShortDescriptionConstant,
		Long:          runCommandLongDescriptionConstant,
		Example:       runCommandExampleConstant,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          builder.run,
	}

	command.Flags().String(taskfileFlagNameConstant, "", taskfileFlagDescriptionConstant)

	return command, nil
}

func (builder *RunCommandBuilder) run(command *cobra.Command, arguments []string) error {
	taskName := strings.TrimSpace(arguments[0])

	logger := builder.resolveLogger()
	logger.Info(runCommandStartedLogMessageConstant, zap.String(logFieldTaskNameConstant, taskName))

	registry, registryError := builder.resolveRegistry(command)
	if registryError != nil {
		return registryError
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, builder.resolveCommandRunner(), builder.humanReadableLoggingEnabled())
	if executorError != nil {
		return executorError
	}

	commandProvider, providerError := runner.NewShellCommandProvider(shellExecutor)
	if providerError != nil {
		return providerError
	}

	executorDependencies := taskrunner.Dependencies{
		Runner: runner.Dependencies{
			Registry:        registry,
			CommandProvider: commandProvider,
			Logger:          logger,
		},
		Output: utils.NewFlushingWriter(command.OutOrStdout()),
		Errors: utils.NewFlushingWriter(command.ErrOrStderr()),
	}

	executor, resolveError := taskrunner.Resolve(builder.ExecutorFactory, executorDependencies)
	if resolveError != nil {
		return resolveError
	}

	_, executionError := executor.Run(command.Context(), taskName)
	return executionError
}

func (builder *RunCommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *RunCommandBuilder) humanReadableLoggingEnabled() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}

	return builder.HumanReadableLoggingProvider()
}

func (builder *RunCommandBuilder) resolveCommandRunner() execshell.CommandRunner {
	if builder.CommandRunner != nil {
		return builder.CommandRunner
	}

	return execshell.NewOSCommandRunner()
}

func (builder *RunCommandBuilder) resolveRegistry(command *cobra.Command) (*tasks.Registry, error) {
	taskfilePath := ""
	if command != nil {
		flagValue, flagError := command.Flags().GetString(taskfileFlagNameConstant)
		if flagError == nil {
			taskfilePath = strings.TrimSpace(flagValue)
		}
	}

	if len(taskfilePath) > 0 {
		definitions, loadError := tasks.LoadDefinitions(taskfilePath)
		if loadError != nil {
			return nil, loadError
		}

		return tasks.NewRegistry(definitions)
	}

	if builder.RegistryProvider == nil {
		return nil, errors.New(registryProviderMissingMessageConstant)
	}

	return builder.RegistryProvider()
}
