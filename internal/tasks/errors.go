package tasks

import (
	"fmt"
	"strings"
)

const (
	unknownTaskErrorTemplateConstant = "unknown task %q"
	cycleErrorTemplateConstant       = "task dependency cycle: %s"
	cyclePathSeparatorConstant       = " -> "
)

// UnknownTaskError indicates a requested or referenced task is not defined.
type UnknownTaskError struct {
	TaskName string
}

// Error implements the error interface.
func (errorDetails UnknownTaskError) Error() string {
	return fmt.Sprintf(unknownTaskErrorTemplateConstant, errorDetails.TaskName)
}

// CycleError indicates the prerequisite graph contains a cycle.
type CycleError struct {
	Path []string
}

// Error implements the error interface.
func (errorDetails CycleError) Error() string {
	return fmt.Sprintf(cycleErrorTemplateConstant, strings.Join(errorDetails.Path, cyclePathSeparatorConstant))
}
