package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/vix/internal/detect"
	"github.com/temirov/vix/internal/segment"
	"github.com/temirov/vix/internal/utils"
	pathutils "github.com/temirov/vix/internal/utils/path"
)

const (
	applicationNameConstant                 = "vix"
	applicationShortDescriptionConstant     = "Single-line repository status segment for shell prompts"
	applicationLongDescriptionConstant      = "vix detects whether the working directory belongs to a Git or JJ repository, reads the repository status, and prints one colored prompt segment to standard output. Running vix without a subcommand renders the segment; the detect subcommand reports repository presence through its exit code."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	workingDirectoryFlagNameConstant        = "cwd"
	workingDirectoryFlagUsageConstant       = "Directory to inspect instead of the process working directory."
	truncateNameFlagNameConstant            = "truncate-name"
	truncateNameFlagUsageConstant           = "Maximum branch or bookmark name length before truncation; 0 disables."
	identifierLengthFlagNameConstant        = "id-length"
	identifierLengthFlagUsageConstant       = "Number of characters shown from the commit or change identifier."
	gitSymbolFlagNameConstant               = "git-symbol"
	gitSymbolFlagUsageConstant              = "Symbol rendered ahead of the Git branch name."
	jjSymbolFlagNameConstant                = "jj-symbol"
	jjSymbolFlagUsageConstant               = "Symbol rendered ahead of the JJ bookmark name."
	noColorFlagNameConstant                 = "no-color"
	noColorFlagUsageConstant                = "Disable ANSI colors for both backends."
	noSymbolFlagNameConstant                = "no-symbol"
	noSymbolFlagUsageConstant               = "Render the prefix without a backend symbol."
	noGitPrefixFlagNameConstant             = "no-git-prefix"
	noGitPrefixFlagUsageConstant            = "Hide the \"on\" prefix and symbol of the Git segment."
	noGitNameFlagNameConstant               = "no-git-name"
	noGitNameFlagUsageConstant              = "Hide the branch name of the Git segment."
	noGitIdentifierFlagNameConstant         = "no-git-id"
	noGitIdentifierFlagUsageConstant        = "Hide the commit identifier of the Git segment."
	noGitStatusFlagNameConstant             = "no-git-status"
	noGitStatusFlagUsageConstant            = "Hide the status flags of the Git segment."
	noJJPrefixFlagNameConstant              = "no-jj-prefix"
	noJJPrefixFlagUsageConstant             = "Hide the \"on\" prefix and symbol of the JJ segment."
	noJJNameFlagNameConstant                = "no-jj-name"
	noJJNameFlagUsageConstant               = "Hide the bookmark name of the JJ segment."
	noJJIdentifierFlagNameConstant          = "no-jj-id"
	noJJIdentifierFlagUsageConstant         = "Hide the change identifier of the JJ segment."
	noJJStatusFlagNameConstant              = "no-jj-status"
	noJJStatusFlagUsageConstant             = "Hide the status flags of the JJ segment."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "VIX"
	truncateNameEnvironmentSuffixConstant   = "_TRUNCATE_NAME"
	identifierLengthEnvironmentSuffix       = "_ID_LENGTH"
	gitSymbolEnvironmentSuffixConstant      = "_GIT_SYMBOL"
	jjSymbolEnvironmentSuffixConstant       = "_JJ_SYMBOL"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	defaultConfigurationSearchPathConstant  = "."
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand                *cobra.Command
	promptCommand              *cobra.Command
	configurationLoader        *utils.ConfigurationLoader
	loggerFactory              *utils.LoggerFactory
	homeExpander               *pathutils.HomeExpander
	logger                     *zap.Logger
	configuration              ApplicationConfiguration
	configurationMetadata      utils.LoadedConfiguration
	configurationFilePath      string
	logLevelFlagValue          string
	logFormatFlagValue         string
	workingDirectoryFlagValue  string
	truncateNameFlagValue      int
	identifierLengthFlagValue  int
	gitSymbolFlagValue         string
	jjSymbolFlagValue          string
	noColorFlagValue           bool
	noSymbolFlagValue          bool
	gitSuppressionFlagValues   segment.SuppressionFlags
	jjSuppressionFlagValues    segment.SuppressionFlags
	environmentVariableLookup  segment.EnvironmentLookup
	workingDirectoryResolution func() (string, error)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)

	application := &Application{
		configurationLoader:        configurationLoader,
		loggerFactory:              utils.NewLoggerFactory(),
		homeExpander:               pathutils.NewHomeExpander(),
		logger:                     zap.NewNop(),
		environmentVariableLookup:  os.LookupEnv,
		workingDirectoryResolution: os.Getwd,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.promptCommand.RunE(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	persistentFlags.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	persistentFlags.StringVar(&application.workingDirectoryFlagValue, workingDirectoryFlagNameConstant, "", workingDirectoryFlagUsageConstant)
	persistentFlags.IntVar(&application.truncateNameFlagValue, truncateNameFlagNameConstant, segment.DefaultTruncateNameLength, truncateNameFlagUsageConstant)
	persistentFlags.IntVar(&application.identifierLengthFlagValue, identifierLengthFlagNameConstant, segment.DefaultIdentifierLength, identifierLengthFlagUsageConstant)
	persistentFlags.StringVar(&application.gitSymbolFlagValue, gitSymbolFlagNameConstant, segment.DefaultGitSymbol, gitSymbolFlagUsageConstant)
	persistentFlags.StringVar(&application.jjSymbolFlagValue, jjSymbolFlagNameConstant, segment.DefaultJJSymbol, jjSymbolFlagUsageConstant)
	persistentFlags.BoolVar(&application.noColorFlagValue, noColorFlagNameConstant, false, noColorFlagUsageConstant)
	persistentFlags.BoolVar(&application.noSymbolFlagValue, noSymbolFlagNameConstant, false, noSymbolFlagUsageConstant)
	persistentFlags.BoolVar(&application.gitSuppressionFlagValues.NoPrefix, noGitPrefixFlagNameConstant, false, noGitPrefixFlagUsageConstant)
	persistentFlags.BoolVar(&application.gitSuppressionFlagValues.NoName, noGitNameFlagNameConstant, false, noGitNameFlagUsageConstant)
	persistentFlags.BoolVar(&application.gitSuppressionFlagValues.NoID, noGitIdentifierFlagNameConstant, false, noGitIdentifierFlagUsageConstant)
	persistentFlags.BoolVar(&application.gitSuppressionFlagValues.NoStatus, noGitStatusFlagNameConstant, false, noGitStatusFlagUsageConstant)
	persistentFlags.BoolVar(&application.jjSuppressionFlagValues.NoPrefix, noJJPrefixFlagNameConstant, false, noJJPrefixFlagUsageConstant)
	persistentFlags.BoolVar(&application.jjSuppressionFlagValues.NoName, noJJNameFlagNameConstant, false, noJJNameFlagUsageConstant)
	persistentFlags.BoolVar(&application.jjSuppressionFlagValues.NoID, noJJIdentifierFlagNameConstant, false, noJJIdentifierFlagUsageConstant)
	persistentFlags.BoolVar(&application.jjSuppressionFlagValues.NoStatus, noJJStatusFlagNameConstant, false, noJJStatusFlagUsageConstant)

	promptBuilder := segment.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() segment.CommandConfiguration {
			return application.resolvePromptConfiguration(application.rootCommand)
		},
	}
	promptCommand, promptBuildError := promptBuilder.Build()
	if promptBuildError == nil {
		application.promptCommand = promptCommand
		cobraCommand.AddCommand(promptCommand)
	}

	detectBuilder := detect.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		WorkingDirectoryProvider: func() string {
			return application.resolveWorkingDirectory(application.rootCommand)
		},
	}
	detectCommand, detectBuildError := detectBuilder.Build()
	if detectBuildError == nil {
		cobraCommand.AddCommand(detectCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelError),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) resolvePromptConfiguration(command *cobra.Command) segment.CommandConfiguration {
	gitSuppressionFlags := application.gitSuppressionFlagValues
	jjSuppressionFlags := application.jjSuppressionFlagValues
	if application.noColorFlagValue {
		gitSuppressionFlags.NoColor = true
		jjSuppressionFlags.NoColor = true
	}

	renderOptions := segment.RenderOptions{
		TruncateNameLength: segment.ResolveIntegerOption(
			application.truncateNameFlagValue,
			application.persistentFlagChanged(command, truncateNameFlagNameConstant),
			environmentPrefixConstant+truncateNameEnvironmentSuffixConstant,
			application.environmentVariableLookup,
			segment.DefaultTruncateNameLength,
		),
		IdentifierLength: segment.ResolveIntegerOption(
			application.identifierLengthFlagValue,
			application.persistentFlagChanged(command, identifierLengthFlagNameConstant),
			environmentPrefixConstant+identifierLengthEnvironmentSuffix,
			application.environmentVariableLookup,
			segment.DefaultIdentifierLength,
		),
		GitSymbol: segment.ResolveStringOption(
			application.gitSymbolFlagValue,
			application.persistentFlagChanged(command, gitSymbolFlagNameConstant),
			environmentPrefixConstant+gitSymbolEnvironmentSuffixConstant,
			application.environmentVariableLookup,
			segment.DefaultGitSymbol,
		),
		JJSymbol: segment.ResolveStringOption(
			application.jjSymbolFlagValue,
			application.persistentFlagChanged(command, jjSymbolFlagNameConstant),
			environmentPrefixConstant+jjSymbolEnvironmentSuffixConstant,
			application.environmentVariableLookup,
			segment.DefaultJJSymbol,
		),
	}
	if application.noSymbolFlagValue {
		renderOptions.GitSymbol = ""
		renderOptions.JJSymbol = ""
	}

	return segment.CommandConfiguration{
		WorkingDirectory: application.resolveWorkingDirectory(command),
		Options:          renderOptions,
		GitDisplay: segment.ResolveDisplayConfiguration(
			gitSuppressionFlags,
			environmentPrefixConstant,
			segment.GitSuppressionNamespaceConstant,
			application.environmentVariableLookup,
		),
		JJDisplay: segment.ResolveDisplayConfiguration(
			jjSuppressionFlags,
			environmentPrefixConstant,
			segment.JJSuppressionNamespaceConstant,
			application.environmentVariableLookup,
		),
	}
}

func (application *Application) resolveWorkingDirectory(command *cobra.Command) string {
	if application.persistentFlagChanged(command, workingDirectoryFlagNameConstant) {
		return application.homeExpander.Expand(application.workingDirectoryFlagValue)
	}

	if application.workingDirectoryResolution != nil {
		if workingDirectory, workingDirectoryError := application.workingDirectoryResolution(); workingDirectoryError == nil {
			return workingDirectory
		}
	}

	return ""
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
