package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/vix/internal/execshell"
)

const (
	messagesWorkingDirectoryConstant = "/workspace/jj-project"
	messagesFailureCauseConstant     = "jj executable missing"
	messagesStandardErrorConstant    = "template parse error"
)

func buildJJLogCommand(workingDirectory string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandJJ,
		Details: execshell.CommandDetails{
			Arguments:        []string{"log", "-r", "@"},
			WorkingDirectory: workingDirectory,
		},
	}
}

func TestCommandMessageFormatterJJLogMessages(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}
	command := buildJJLogCommand(messagesWorkingDirectoryConstant)

	require.Equal(
		testInstance,
		"Reading jj working copy state in /workspace/jj-project",
		formatter.BuildStartedMessage(command),
	)
	require.Equal(
		testInstance,
		"Collected jj working copy state for /workspace/jj-project",
		formatter.BuildSuccessMessage(command),
	)
	require.Equal(
		testInstance,
		"Failed to read jj working copy state in /workspace/jj-project (exit code 2: template parse error)",
		formatter.BuildFailureMessage(command, execshell.ExecutionResult{ExitCode: 2, StandardError: messagesStandardErrorConstant}),
	)
	require.Equal(
		testInstance,
		"Unable to read jj working copy state in /workspace/jj-project: jj executable missing",
		formatter.BuildExecutionFailureMessage(command, errors.New(messagesFailureCauseConstant)),
	)
}

func TestCommandMessageFormatterFallsBackToCurrentDirectoryLabel(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}
	command := buildJJLogCommand("")

	require.Equal(
		testInstance,
		"Reading jj working copy state in current directory",
		formatter.BuildStartedMessage(command),
	)
}

func TestCommandMessageFormatterGenericMessages(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}
	command := execshell.ShellCommand{
		Name: execshell.CommandJJ,
		Details: execshell.CommandDetails{
			Arguments: []string{"status"},
		},
	}

	require.Equal(testInstance, "Running jj status", formatter.BuildStartedMessage(command))
	require.Equal(testInstance, "Completed jj status", formatter.BuildSuccessMessage(command))
	require.Equal(
		testInstance,
		"jj status failed with exit code 1",
		formatter.BuildFailureMessage(command, execshell.ExecutionResult{ExitCode: 1}),
	)
	require.Equal(
		testInstance,
		"jj status failed: jj executable missing",
		formatter.BuildExecutionFailureMessage(command, errors.New(messagesFailureCauseConstant)),
	)
}
