package segment_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/vix/internal/segment"
)

const (
	plainGitSegmentTestNameConstant      = "git_segment_without_color"
	coloredGitSegmentTestNameConstant    = "git_segment_with_color"
	cleanGitSegmentTestNameConstant      = "clean_git_segment_omits_status_section"
	detachedGitSegmentTestNameConstant   = "detached_git_segment_uses_head_literal"
	gitFlagOrderingTestNameConstant      = "git_flags_follow_fixed_order"
	suppressedPrefixTestNameConstant     = "suppressed_prefix_drops_leading_section"
	suppressedEverythingTestNameConstant = "all_sections_suppressed_yield_empty_output"
	jjBookmarkSegmentTestNameConstant    = "jj_segment_with_bookmark_shows_identifier"
	jjAnonymousSegmentTestNameConstant   = "jj_segment_without_bookmark_skips_duplicate_identifier"
	jjFlagOrderingTestNameConstant       = "jj_flags_follow_fixed_order"

	featureBranchNameConstant   = "feature"
	mainBranchNameConstant      = "main"
	gitShortHashConstant        = "1234567"
	cleanShortHashConstant      = "abcdef12"
	jjBookmarkNameConstant      = "trunk"
	jjChangeIdentifierConstant  = "yzxv1234"
	headLiteralConstant         = "HEAD"
	blueSequenceConstant        = "\x1b[34m"
	purpleSequenceConstant      = "\x1b[35m"
	greenSequenceConstant       = "\x1b[32m"
	redSequenceConstant         = "\x1b[31m"
	resetSequenceConstant       = "\x1b[0m"
	colorlessRenderedConstant   = "on feature (1234567) [+!?⇡2⇣1]"
	cleanRenderedConstant       = "on main (abcdef12)"
	detachedRenderedConstant    = "on HEAD (1234567)"
	orderedGitFlagsConstant     = "on main (1234567) [=+!?✘⇡3⇣1]"
	prefixlessRenderedConstant  = "feature (1234567)"
	jjBookmarkRenderedConstant  = "on trunk (yzxv1234)"
	jjAnonymousRenderedConstant = "on yzxv1234 [!?]"
	orderedJJFlagsConstant      = "on yzxv1234 [!⇔?⇡]"
)

func allSectionsVisibleWithoutColor() segment.DisplayConfiguration {
	displayConfiguration := segment.AllVisibleDisplayConfiguration()
	displayConfiguration.ShowColor = false
	return displayConfiguration
}

func symbollessRenderOptions() segment.RenderOptions {
	renderOptions := segment.DefaultRenderOptions()
	renderOptions.GitSymbol = ""
	renderOptions.JJSymbol = ""
	return renderOptions
}

func TestPromptRendererScenarios(testInstance *testing.T) {
	dirtyGitSnapshot := segment.StatusSnapshot{
		Kind: segment.SnapshotKindGit,
		Git: segment.GitFacts{
			Identity:  featureBranchNameConstant,
			ShortID:   gitShortHashConstant,
			Staged:    true,
			Modified:  true,
			Untracked: true,
			Ahead:     2,
			Behind:    1,
		},
	}

	cleanGitSnapshot := segment.StatusSnapshot{
		Kind: segment.SnapshotKindGit,
		Git: segment.GitFacts{
			Identity: mainBranchNameConstant,
			ShortID:  cleanShortHashConstant,
		},
	}

	detachedGitSnapshot := segment.StatusSnapshot{
		Kind: segment.SnapshotKindGit,
		Git: segment.GitFacts{
			Identity: headLiteralConstant,
			ShortID:  gitShortHashConstant,
		},
	}

	fullyFlaggedGitSnapshot := segment.StatusSnapshot{
		Kind: segment.SnapshotKindGit,
		Git: segment.GitFacts{
			Identity:   mainBranchNameConstant,
			ShortID:    gitShortHashConstant,
			Conflicted: true,
			Staged:     true,
			Modified:   true,
			Untracked:  true,
			Deleted:    true,
			Ahead:      3,
			Behind:     1,
		},
	}

	bookmarkedJJSnapshot := segment.StatusSnapshot{
		Kind: segment.SnapshotKindJJ,
		JJ: segment.JJFacts{
			Identity: jjBookmarkNameConstant,
			ChangeID: jjChangeIdentifierConstant,
		},
	}

	anonymousJJSnapshot := segment.StatusSnapshot{
		Kind: segment.SnapshotKindJJ,
		JJ: segment.JJFacts{
			Identity:         jjChangeIdentifierConstant,
			ChangeID:         jjChangeIdentifierConstant,
			Conflict:         true,
			EmptyDescription: true,
		},
	}

	fullyFlaggedJJSnapshot := segment.StatusSnapshot{
		Kind: segment.SnapshotKindJJ,
		JJ: segment.JJFacts{
			Identity:         jjChangeIdentifierConstant,
			ChangeID:         jjChangeIdentifierConstant,
			Conflict:         true,
			Divergent:        true,
			EmptyDescription: true,
			UnsyncedRemote:   true,
		},
	}

	suppressedDisplay := segment.DisplayConfiguration{}

	prefixlessDisplay := allSectionsVisibleWithoutColor()
	prefixlessDisplay.ShowPrefix = false

	testCases := []struct {
		name            string
		snapshot        segment.StatusSnapshot
		display         segment.DisplayConfiguration
		expectedSegment string
	}{
		{
			name:            plainGitSegmentTestNameConstant,
			snapshot:        dirtyGitSnapshot,
			display:         allSectionsVisibleWithoutColor(),
			expectedSegment: colorlessRenderedConstant,
		},
		{
			name:     coloredGitSegmentTestNameConstant,
			snapshot: cleanGitSnapshot,
			display:  segment.AllVisibleDisplayConfiguration(),
			expectedSegment: "on " + blueSequenceConstant + resetSequenceConstant +
				purpleSequenceConstant + mainBranchNameConstant + resetSequenceConstant +
				" " + greenSequenceConstant + "(" + cleanShortHashConstant + ")" + resetSequenceConstant,
		},
		{
			name:            cleanGitSegmentTestNameConstant,
			snapshot:        cleanGitSnapshot,
			display:         allSectionsVisibleWithoutColor(),
			expectedSegment: cleanRenderedConstant,
		},
		{
			name:            detachedGitSegmentTestNameConstant,
			snapshot:        detachedGitSnapshot,
			display:         allSectionsVisibleWithoutColor(),
			expectedSegment: detachedRenderedConstant,
		},
		{
			name:            gitFlagOrderingTestNameConstant,
			snapshot:        fullyFlaggedGitSnapshot,
			display:         allSectionsVisibleWithoutColor(),
			expectedSegment: orderedGitFlagsConstant,
		},
		{
			name:            suppressedPrefixTestNameConstant,
			snapshot:        dirtyGitSnapshot,
			display:         prefixlessDisplay,
			expectedSegment: prefixlessRenderedConstant + " [+!?⇡2⇣1]",
		},
		{
			name:            suppressedEverythingTestNameConstant,
			snapshot:        dirtyGitSnapshot,
			display:         suppressedDisplay,
			expectedSegment: "",
		},
		{
			name:            jjBookmarkSegmentTestNameConstant,
			snapshot:        bookmarkedJJSnapshot,
			display:         allSectionsVisibleWithoutColor(),
			expectedSegment: jjBookmarkRenderedConstant,
		},
		{
			name:            jjAnonymousSegmentTestNameConstant,
			snapshot:        anonymousJJSnapshot,
			display:         allSectionsVisibleWithoutColor(),
			expectedSegment: jjAnonymousRenderedConstant,
		},
		{
			name:            jjFlagOrderingTestNameConstant,
			snapshot:        fullyFlaggedJJSnapshot,
			display:         allSectionsVisibleWithoutColor(),
			expectedSegment: orderedJJFlagsConstant,
		},
	}

	renderer := segment.NewPromptRenderer()

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			renderedSegment := renderer.Render(testCase.snapshot, testCase.display, symbollessRenderOptions())

			require.Equal(subtestInstance, testCase.expectedSegment, renderedSegment)
		})
	}
}

func TestPromptRendererIsDeterministic(testInstance *testing.T) {
	renderer := segment.NewPromptRenderer()
	snapshot := segment.StatusSnapshot{
		Kind: segment.SnapshotKindGit,
		Git: segment.GitFacts{
			Identity: featureBranchNameConstant,
			ShortID:  gitShortHashConstant,
			Modified: true,
			Ahead:    1,
		},
	}

	firstRendering := renderer.Render(snapshot, segment.AllVisibleDisplayConfiguration(), segment.DefaultRenderOptions())
	secondRendering := renderer.Render(snapshot, segment.AllVisibleDisplayConfiguration(), segment.DefaultRenderOptions())

	require.Equal(testInstance, firstRendering, secondRendering)
}

func TestPromptRendererColorTogglePreservesVisibleText(testInstance *testing.T) {
	renderer := segment.NewPromptRenderer()
	snapshot := segment.StatusSnapshot{
		Kind: segment.SnapshotKindGit,
		Git: segment.GitFacts{
			Identity:  featureBranchNameConstant,
			ShortID:   gitShortHashConstant,
			Untracked: true,
		},
	}

	coloredSegment := renderer.Render(snapshot, segment.AllVisibleDisplayConfiguration(), symbollessRenderOptions())
	plainSegment := renderer.Render(snapshot, allSectionsVisibleWithoutColor(), symbollessRenderOptions())

	strippedSegment := coloredSegment
	for _, colorSequence := range []string{blueSequenceConstant, purpleSequenceConstant, greenSequenceConstant, redSequenceConstant, resetSequenceConstant} {
		strippedSegment = strings.ReplaceAll(strippedSegment, colorSequence, "")
	}

	require.Equal(testInstance, plainSegment, strippedSegment)
}
