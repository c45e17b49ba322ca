package tasks

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configurationPathRequiredMessageConstant = "task configuration path must be provided"
	configurationLoadErrorTemplateConstant   = "failed to load task configuration: %w"
	configurationParseErrorTemplateConstant  = "failed to parse task configuration: %w"
	configurationEmptyTasksMessageConstant   = "task configuration must define at least one task"
)

type taskFile struct {
	Tasks []Definition `yaml:"tasks"`
}

// LoadDefinitions reads task definitions from a YAML file and performs basic validation.
func LoadDefinitions(filePath string) ([]Definition, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return nil, errors.New(configurationPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return nil, fmt.Errorf(configurationLoadErrorTemplateConstant, readError)
	}

	var parsedFile taskFile
	if unmarshalError := yaml.Unmarshal(contentBytes, &parsedFile); unmarshalError != nil {
		return nil, fmt.Errorf(configurationParseErrorTemplateConstant, unmarshalError)
	}

	if len(parsedFile.Tasks) == 0 {
		return nil, errors.New(configurationEmptyTasksMessageConstant)
	}

	return parsedFile.Tasks, nil
}
