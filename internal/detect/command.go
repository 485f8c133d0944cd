package detect

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	commandUseNameConstant          = "detect"
	commandShortDescriptionConstant = "Exit 0 when the working directory is inside a repository, 1 otherwise"
	commandLongDescriptionConstant  = "detect walks upward from the working directory looking for Git or JJ metadata and signals the result through the exit code alone. Nothing is printed, which makes the command suitable for prompt engine \"when\" conditions."
	noRepositoryMessageConstant     = "no repository detected"
	detectionResultMessageConstant  = "repository detection completed"
	logFieldKindConstant            = "repository_kind"
	logFieldRootConstant            = "repository_root"
	logFieldDirectoryConstant       = "working_directory"
)

// ErrNoRepositoryDetected signals the absent-repository exit code without printing error text.
var ErrNoRepositoryDetected = errors.New(noRepositoryMessageConstant)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// WorkingDirectoryProvider yields the directory the detection walk starts from.
type WorkingDirectoryProvider func() string

// CommandBuilder assembles the detect command.
type CommandBuilder struct {
	LoggerProvider           LoggerProvider
	WorkingDirectoryProvider WorkingDirectoryProvider
}

// Build constructs the detect command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	workingDirectory := ""
	if builder.WorkingDirectoryProvider != nil {
		workingDirectory = builder.WorkingDirectoryProvider()
	}

	detector := NewFilesystemRepositoryDetector()
	classification := detector.Detect(workingDirectory)

	if logger := builder.resolveLogger(); logger != nil {
		logger.Debug(
			detectionResultMessageConstant,
			zap.String(logFieldDirectoryConstant, workingDirectory),
			zap.String(logFieldKindConstant, classification.Kind.String()),
			zap.String(logFieldRootConstant, classification.RepositoryRoot),
		)
	}

	if classification.Kind == RepositoryKindNone {
		return ErrNoRepositoryDetected
	}

	return nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return nil
	}
	return builder.LoggerProvider()
}
