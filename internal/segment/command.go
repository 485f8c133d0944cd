package segment

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/vix/internal/detect"
	"github.com/temirov/vix/internal/execshell"
	"github.com/temirov/vix/internal/gitrepo"
	"github.com/temirov/vix/internal/jjrepo"
)

const (
	commandUseNameConstant          = "prompt"
	commandShortDescriptionConstant = "Print the repository status segment for the shell prompt"
	commandLongDescriptionConstant  = "prompt detects the Git or JJ repository governing the working directory, reads its status, and prints one formatted segment to standard output. Failures of any kind produce no output and a zero exit code so the surrounding prompt never shows error text."
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider yields the resolved prompt configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandConfiguration carries the resolved settings the prompt command renders with.
type CommandConfiguration struct {
	WorkingDirectory string
	Options          RenderOptions
	GitDisplay       DisplayConfiguration
	JJDisplay        DisplayConfiguration
}

// CommandBuilder assembles the prompt command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the prompt command.
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

// run prints the prompt segment. It deliberately returns nil on every path so
// the prompt action stays exit-code stable.
func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return nil
	}

	jjReader, jjReaderError := jjrepo.NewStatusReader(shellExecutor)
	if jjReaderError != nil {
		return nil
	}

	promptService, serviceError := NewService(ServiceDependencies{
		Logger:    logger,
		Detector:  detect.NewFilesystemRepositoryDetector(),
		GitReader: gitrepo.NewStatusReader(logger),
		JJReader:  jjReader,
	})
	if serviceError != nil {
		return nil
	}

	renderedSegment := promptService.BuildPrompt(command.Context(), PromptRequest{
		WorkingDirectory: configuration.WorkingDirectory,
		Options:          configuration.Options,
		GitDisplay:       configuration.GitDisplay,
		JJDisplay:        configuration.JJDisplay,
	})

	if len(renderedSegment) > 0 {
		fmt.Fprint(command.OutOrStdout(), renderedSegment)
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{
			Options:    DefaultRenderOptions(),
			GitDisplay: AllVisibleDisplayConfiguration(),
			JJDisplay:  AllVisibleDisplayConfiguration(),
		}
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
