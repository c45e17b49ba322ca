package tasks

import (
	"errors"
	"fmt"
	"strings"
)

const (
	taskNameMissingMessageConstant    = "task definition missing name"
	duplicateTaskNameTemplateConstant = "task %q defined multiple times"
	selfPrerequisiteTemplateConstant  = "task %q cannot list itself as a prerequisite"
	registryEmptyMessageConstant      = "task configuration must define at least one task"
)

// Registry is an immutable mapping from task name to Task built once at startup.
type Registry struct {
	tasksByName  map[string]Task
	orderedNames []string
}

// NewRegistry validates the provided definitions and builds an immutable registry.
//
// Validation covers empty and duplicate names, self references, dangling
// prerequisite references, and prerequisite cycles. A cycle is a configuration
// error surfaced before any command runs.
func NewRegistry(definitions []Definition) (*Registry, error) {
	if len(definitions) == 0 {
		return nil, errors.New(registryEmptyMessageConstant)
	}

	tasksByName := make(map[string]Task, len(definitions))
	orderedNames := make([]string, 0, len(definitions))

	for definitionIndex := range definitions {
		definition := definitions[definitionIndex]

		taskName := strings.TrimSpace(definition.Name)
		if len(taskName) == 0 {
			return nil, errors.New(taskNameMissingMessageConstant)
		}
		if _, alreadyDefined := tasksByName[taskName]; alreadyDefined {
			return nil, fmt.Errorf(duplicateTaskNameTemplateConstant, taskName)
		}

		prerequisites := make([]string, 0, len(definition.Needs))
		seenPrerequisites := make(map[string]struct{}, len(definition.Needs))
		for _, prerequisiteCandidate := range definition.Needs {
			prerequisiteName := strings.TrimSpace(prerequisiteCandidate)
			if len(prerequisiteName) == 0 {
				continue
			}
			if prerequisiteName == taskName {
				return nil, fmt.Errorf(selfPrerequisiteTemplateConstant, taskName)
			}
			if _, alreadyListed := seenPrerequisites[prerequisiteName]; alreadyListed {
				continue
			}
			seenPrerequisites[prerequisiteName] = struct{}{}
			prerequisites = append(prerequisites, prerequisiteName)
		}

		tasksByName[taskName] = Task{
			Name:             taskName,
			Prerequisites:    prerequisites,
			Command:          append([]string{}, definition.Command...),
			WorkingDirectory: strings.TrimSpace(definition.WorkingDirectory),
			Environment:      cloneEnvironment(definition.Environment),
		}
		orderedNames = append(orderedNames, taskName)
	}

	registry := &Registry{tasksByName: tasksByName, orderedNames: orderedNames}

	if referenceError := registry.validateReferences(); referenceError != nil {
		return nil, referenceError
	}
	if cycleError := registry.validateAcyclic(); cycleError != nil {
		return nil, cycleError
	}

	return registry, nil
}

// Lookup resolves the task registered under the provided name.
func (registry *Registry) Lookup(taskName string) (Task, error) {
	trimmedTaskName := strings.TrimSpace(taskName)
	task, exists := registry.tasksByName[trimmedTaskName]
	if !exists {
		return Task{}, UnknownTaskError{TaskName: trimmedTaskName}
	}
	return task, nil
}

// Names returns the task names in declaration order.
func (registry *Registry) Names() []string {
	return append([]string{}, registry.orderedNames...)
}

func (registry *Registry) validateReferences() error {
	for _, taskName := range registry.orderedNames {
		for _, prerequisiteName := range registry.tasksByName[taskName].Prerequisites {
			if _, exists := registry.tasksByName[prerequisiteName]; !exists {
				return UnknownTaskError{TaskName: prerequisiteName}
			}
		}
	}
	return nil
}

type visitState int

const (
	visitStateNotStarted visitState = iota
	visitStateResolving
	visitStateCompleted
)

func (registry *Registry) validateAcyclic() error {
	statesByName := make(map[string]visitState, len(registry.orderedNames))
	for _, taskName := range registry.orderedNames {
		if cycleError := registry.visit(taskName, statesByName, []string{}); cycleError != nil {
			return cycleError
		}
	}
	return nil
}

func (registry *Registry) visit(taskName string, statesByName map[string]visitState, path []string) error {
	switch statesByName[taskName] {
	case visitStateCompleted:
		return nil
	case visitStateResolving:
		return CycleError{Path: append(append([]string{}, path...), taskName)}
	}

	statesByName[taskName] = visitStateResolving
	extendedPath := append(path, taskName)
	for _, prerequisiteName := range registry.tasksByName[taskName].Prerequisites {
		if cycleError := registry.visit(prerequisiteName, statesByName, extendedPath); cycleError != nil {
			return cycleError
		}
	}
	statesByName[taskName] = visitStateCompleted
	return nil
}

func cloneEnvironment(environment map[string]string) map[string]string {
	if len(environment) == 0 {
		return map[string]string{}
	}
	cloned := make(map[string]string, len(environment))
	for variableName, variableValue := range environment {
		cloned[variableName] = variableValue
	}
	return cloned
}
