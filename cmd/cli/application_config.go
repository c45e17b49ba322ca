package cli

import (
	_ "embed"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/tkarev/chore/internal/tasks"
)

//go:embed config.yaml
var embeddedDefaultConfiguration []byte

const (
	embeddedConfigurationTypeConstant           = "yaml"
	taskDefinitionsDecodeErrorTemplateConstant  = "unable to decode task definitions: %w"
	taskDefinitionsDecoderErrorTemplateConstant = "unable to build task definition decoder: %w"
)

// EmbeddedDefaultConfiguration exposes the embedded default configuration content and format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return embeddedDefaultConfiguration, embeddedConfigurationTypeConstant
}

// CommonConfiguration captures settings shared by every command.
type CommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationConfiguration mirrors the layered configuration consumed by the CLI.
type ApplicationConfiguration struct {
	Common CommonConfiguration `mapstructure:"common"`
	Tasks  []map[string]any    `mapstructure:"tasks"`
}

// TaskDefinitions decodes the raw task configuration entries into typed definitions.
func (configuration ApplicationConfiguration) TaskDefinitions() ([]tasks.Definition, error) {
	definitions := make([]tasks.Definition, 0, len(configuration.Tasks))

	for _, rawDefinition := range configuration.Tasks {
		var definition tasks.Definition

		decoderConfiguration := &mapstructure.DecoderConfig{
			Result:           &definition,
			WeaklyTypedInput: true,
		}

		definitionDecoder, decoderCreationError := mapstructure.NewDecoder(decoderConfiguration)
		if decoderCreationError != nil {
			return nil, fmt.Errorf(taskDefinitionsDecoderErrorTemplateConstant, decoderCreationError)
		}

		if decodeError := definitionDecoder.Decode(rawDefinition); decodeError != nil {
			return nil, fmt.Errorf(taskDefinitionsDecodeErrorTemplateConstant, decodeError)
		}

		definitions = append(definitions, definition)
	}

	return definitions, nil
}
