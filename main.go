package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/vix/cmd/cli"
	"github.com/temirov/vix/internal/detect"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the vix command-line application. Absent repositories are
// reported through the exit code alone so prompt engines can branch on it.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	if errors.Is(executionError, detect.ErrNoRepositoryDetected) {
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	os.Exit(1)
}
