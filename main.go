package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tkarev/chore/cmd/cli"
	"github.com/tkarev/chore/internal/runner"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the chore command-line application.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)

	var commandFailure runner.CommandFailureError
	if errors.As(executionError, &commandFailure) && commandFailure.ExitCode > 0 {
		os.Exit(commandFailure.ExitCode)
	}
	os.Exit(1)
}
