package tasks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tkarev/chore/internal/utils"
)

const (
	listCommandUseConstant               = "tasks"
	listCommandShortDescriptionConstant  = "List the configured tasks"
	listCommandLongDescriptionConstant   = "tasks prints every configured task in declaration order along with its prerequisites and command."
	listCommandExampleConstant           = "chore tasks"
	listHeaderMessageConstant            = "Configured tasks:"
	listEntryTemplateConstant            = "  - %s\n"
	listNeedsTemplateConstant            = "      needs: %s\n"
	listCommandTemplateConstant          = "      command: %s\n"
	listGroupingAnnotationConstant       = "      command: (none, grouping task)\n"
	listSeparatorConstant                = ", "
	listCommandArgumentSeparatorConstant = " "
)

// ListCommandBuilder assembles the tasks listing command.
type ListCommandBuilder struct {
	RegistryProvider RegistryProvider
}

// Build constructs the tasks command.
func (builder *ListCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           listCommandUseConstant,
		Short:         listCommandShortDescriptionConstant,
		Long:          listCommandLongDescriptionConstant,
		Example:       listCommandExampleConstant,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          builder.run,
	}

	return command, nil
}

func (builder *ListCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if builder.RegistryProvider == nil {
		return errors.New(registryProviderMissingMessageConstant)
	}

	registry, registryError := builder.RegistryProvider()
	if registryError != nil {
		return registryError
	}

	output := utils.NewFlushingWriter(command.OutOrStdout())
	fmt.Fprintln(output, listHeaderMessageConstant)

	for _, taskName := range registry.Names() {
		registeredTask, lookupError := registry.Lookup(taskName)
		if lookupError != nil {
			return lookupError
		}

		fmt.Fprintf(output, listEntryTemplateConstant, registeredTask.Name)

		if len(registeredTask.Prerequisites) > 0 {
			fmt.Fprintf(output, listNeedsTemplateConstant, strings.Join(registeredTask.Prerequisites, listSeparatorConstant))
		}

		if registeredTask.HasCommand() {
			fmt.Fprintf(output, listCommandTemplateConstant, strings.Join(registeredTask.Command, listCommandArgumentSeparatorConstant))
			continue
		}

		fmt.Fprint(output, listGroupingAnnotationConstant)
	}

	return nil
}
