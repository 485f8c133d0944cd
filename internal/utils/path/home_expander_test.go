package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/vix/internal/utils/path"
)

const (
	homeDirectoryConstant                   = "/home/prompt-user"
	tildeOnlyTestNameConstant               = "tilde_only_resolves_home"
	tildePrefixedTestNameConstant           = "tilde_prefix_joins_relative_path"
	absolutePathTestNameConstant            = "absolute_path_passes_through"
	relativePathTestNameConstant            = "relative_path_passes_through"
	emptyPathTestNameConstant               = "empty_path_passes_through"
	tildeUserShortcutTestNameConstant       = "tilde_user_shortcut_passes_through"
	providerFailureTestNameConstant         = "provider_failure_passes_through"
	providerFailureMessageConstant          = "home directory unavailable"
	tildePrefixedCandidateConstant          = "~/projects/demo"
	tildeUserShortcutCandidateConstant      = "~other/projects"
	absoluteCandidateConstant               = "/var/tmp/workspace"
	relativeCandidateConstant               = "projects/demo"
	expectedTildePrefixedRelativeConstant   = "projects/demo"
	failingProviderCandidatePathConstant    = "~/projects"
	successfulProviderInvocationLimitOnce   = 1
	successfulProviderInvocationDescription = "home directory provider should be invoked exactly once"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
	}{
		{
			name:          tildeOnlyTestNameConstant,
			candidatePath: "~",
			expectedPath:  homeDirectoryConstant,
		},
		{
			name:          tildePrefixedTestNameConstant,
			candidatePath: tildePrefixedCandidateConstant,
			expectedPath:  filepath.Join(homeDirectoryConstant, expectedTildePrefixedRelativeConstant),
		},
		{
			name:          absolutePathTestNameConstant,
			candidatePath: absoluteCandidateConstant,
			expectedPath:  absoluteCandidateConstant,
		},
		{
			name:          relativePathTestNameConstant,
			candidatePath: relativeCandidateConstant,
			expectedPath:  relativeCandidateConstant,
		},
		{
			name:          emptyPathTestNameConstant,
			candidatePath: "",
			expectedPath:  "",
		},
		{
			name:          tildeUserShortcutTestNameConstant,
			candidatePath: tildeUserShortcutCandidateConstant,
			expectedPath:  tildeUserShortcutCandidateConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
				return homeDirectoryConstant, nil
			})

			expandedPath := expander.Expand(testCase.candidatePath)

			require.Equal(subtestInstance, testCase.expectedPath, expandedPath)
		})
	}
}

func TestHomeExpanderProviderFailure(testInstance *testing.T) {
	testInstance.Run(providerFailureTestNameConstant, func(subtestInstance *testing.T) {
		expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
			return "", errors.New(providerFailureMessageConstant)
		})

		expandedPath := expander.Expand(failingProviderCandidatePathConstant)

		require.Equal(subtestInstance, failingProviderCandidatePathConstant, expandedPath)
	})
}

func TestHomeExpanderCachesProviderResult(testInstance *testing.T) {
	providerInvocationCount := 0
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		providerInvocationCount++
		return homeDirectoryConstant, nil
	})

	expander.Expand(tildePrefixedCandidateConstant)
	expander.Expand(tildePrefixedCandidateConstant)

	require.Equal(testInstance, successfulProviderInvocationLimitOnce, providerInvocationCount, successfulProviderInvocationDescription)
}
