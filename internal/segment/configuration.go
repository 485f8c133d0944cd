package segment

import "strconv"

// Default values for the prompt rendering options.
const (
	DefaultTruncateNameLength = 0
	DefaultIdentifierLength   = 8
	DefaultGitSymbol          = " "
	DefaultJJSymbol           = "󱗆 "
)

// Environment variable name fragments for the per-backend display switches.
const (
	GitSuppressionNamespaceConstant = "NO_GIT"
	JJSuppressionNamespaceConstant  = "NO_JJ"
	prefixSectionSuffixConstant     = "_PREFIX"
	nameSectionSuffixConstant       = "_NAME"
	idSectionSuffixConstant         = "_ID"
	statusSectionSuffixConstant     = "_STATUS"
	colorSectionSuffixConstant      = "_COLOR"
	namespaceSeparatorConstant      = "_"
)

// EnvironmentLookup resolves an environment variable, reporting its presence.
// Injected so configuration resolution stays a pure function in tests.
type EnvironmentLookup func(variableName string) (string, bool)

// DisplayConfiguration holds the five visibility switches of one backend.
type DisplayConfiguration struct {
	ShowPrefix bool
	ShowName   bool
	ShowID     bool
	ShowStatus bool
	ShowColor  bool
}

// AllVisibleDisplayConfiguration returns the default configuration with every section shown.
func AllVisibleDisplayConfiguration() DisplayConfiguration {
	return DisplayConfiguration{
		ShowPrefix: true,
		ShowName:   true,
		ShowID:     true,
		ShowStatus: true,
		ShowColor:  true,
	}
}

// SuppressionFlags mirrors the per-backend CLI suppression flags.
type SuppressionFlags struct {
	NoPrefix bool
	NoName   bool
	NoID     bool
	NoStatus bool
	NoColor  bool
}

// RenderOptions carries the value-typed rendering settings shared by both backends.
type RenderOptions struct {
	// TruncateNameLength limits branch and bookmark names; zero means unlimited.
	TruncateNameLength int
	// IdentifierLength governs how many characters of the content identifier are shown.
	IdentifierLength int
	GitSymbol        string
	JJSymbol         string
}

// DefaultRenderOptions returns the built-in rendering settings.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		TruncateNameLength: DefaultTruncateNameLength,
		IdentifierLength:   DefaultIdentifierLength,
		GitSymbol:          DefaultGitSymbol,
		JJSymbol:           DefaultJJSymbol,
	}
}

// ResolveDisplayConfiguration combines CLI suppression flags with namespaced
// environment variables. The mere presence of a variable disables its section
// regardless of value, including the empty string; that semantic suits shell
// exports where assigning any value should take effect.
func ResolveDisplayConfiguration(flags SuppressionFlags, environmentPrefix string, suppressionNamespace string, lookup EnvironmentLookup) DisplayConfiguration {
	variableStem := environmentPrefix + namespaceSeparatorConstant + suppressionNamespace

	return DisplayConfiguration{
		ShowPrefix: !flags.NoPrefix && !variablePresent(lookup, variableStem+prefixSectionSuffixConstant),
		ShowName:   !flags.NoName && !variablePresent(lookup, variableStem+nameSectionSuffixConstant),
		ShowID:     !flags.NoID && !variablePresent(lookup, variableStem+idSectionSuffixConstant),
		ShowStatus: !flags.NoStatus && !variablePresent(lookup, variableStem+statusSectionSuffixConstant),
		ShowColor:  !flags.NoColor && !variablePresent(lookup, variableStem+colorSectionSuffixConstant),
	}
}

// ResolveStringOption applies the flag > environment > default precedence to a string setting.
func ResolveStringOption(flagValue string, flagChanged bool, environmentVariableName string, lookup EnvironmentLookup, defaultValue string) string {
	if flagChanged {
		return flagValue
	}
	if lookup != nil {
		if environmentValue, present := lookup(environmentVariableName); present {
			return environmentValue
		}
	}
	return defaultValue
}

// ResolveIntegerOption applies the flag > environment > default precedence to an
// integer setting. Environment values that fail to parse fall through to the default.
func ResolveIntegerOption(flagValue int, flagChanged bool, environmentVariableName string, lookup EnvironmentLookup, defaultValue int) int {
	if flagChanged {
		return flagValue
	}
	if lookup != nil {
		if environmentValue, present := lookup(environmentVariableName); present {
			if parsedValue, parseError := strconv.Atoi(environmentValue); parseError == nil {
				return parsedValue
			}
		}
	}
	return defaultValue
}

func variablePresent(lookup EnvironmentLookup, variableName string) bool {
	if lookup == nil {
		return false
	}
	_, present := lookup(variableName)
	return present
}
