package segment

import (
	"strconv"
	"strings"
)

const (
	prefixLiteralConstant           = "on "
	identifierOpenLiteralConstant   = "("
	identifierCloseLiteralConstant  = ")"
	statusOpenLiteralConstant       = "["
	statusCloseLiteralConstant      = "]"
	sectionSeparatorLiteralConstant = " "

	gitConflictedFlagConstant = "="
	gitStagedFlagConstant     = "+"
	gitModifiedFlagConstant   = "!"
	gitUntrackedFlagConstant  = "?"
	gitDeletedFlagConstant    = "✘"
	aheadFlagConstant         = "⇡"
	behindFlagConstant        = "⇣"

	jjConflictFlagConstant         = "!"
	jjDivergentFlagConstant        = "⇔"
	jjEmptyDescriptionFlagConstant = "?"
	jjUnsyncedRemoteFlagConstant   = "⇡"
)

// PromptRenderer turns a status snapshot into a single prompt segment string.
type PromptRenderer struct{}

// NewPromptRenderer constructs a renderer.
func NewPromptRenderer() *PromptRenderer {
	return &PromptRenderer{}
}

// Render formats the snapshot following the fixed template
// `on <symbol><name> (<id>) [<flags>]`, gating each section on the display
// configuration. Rendering the same snapshot twice yields identical output.
func (renderer *PromptRenderer) Render(snapshot StatusSnapshot, display DisplayConfiguration, options RenderOptions) string {
	switch snapshot.Kind {
	case SnapshotKindGit:
		return renderer.renderGitSegment(snapshot.Git, display, options.GitSymbol)
	case SnapshotKindJJ:
		return renderer.renderJJSegment(snapshot.JJ, display, options.JJSymbol)
	default:
		return ""
	}
}

func (renderer *PromptRenderer) renderGitSegment(facts GitFacts, display DisplayConfiguration, symbol string) string {
	var outputBuilder strings.Builder

	if display.ShowPrefix {
		outputBuilder.WriteString(prefixLiteralConstant)
		writeColoredText(&outputBuilder, symbol, colorBlueConstant, display.ShowColor)
	}

	if display.ShowName {
		writeColoredText(&outputBuilder, facts.Identity, colorPurpleConstant, display.ShowColor)
	}

	if display.ShowID {
		writeSectionSeparator(&outputBuilder)
		writeColoredText(&outputBuilder, identifierOpenLiteralConstant+facts.ShortID+identifierCloseLiteralConstant, colorGreenConstant, display.ShowColor)
	}

	if display.ShowStatus {
		statusFlags := buildGitStatusFlags(facts)
		if len(statusFlags) > 0 {
			writeSectionSeparator(&outputBuilder)
			writeColoredText(&outputBuilder, statusOpenLiteralConstant+statusFlags+statusCloseLiteralConstant, colorRedConstant, display.ShowColor)
		}
	}

	return outputBuilder.String()
}

func (renderer *PromptRenderer) renderJJSegment(facts JJFacts, display DisplayConfiguration, symbol string) string {
	var outputBuilder strings.Builder

	if display.ShowPrefix {
		outputBuilder.WriteString(prefixLiteralConstant)
		writeColoredText(&outputBuilder, symbol, colorBlueConstant, display.ShowColor)
	}

	if display.ShowName {
		writeColoredText(&outputBuilder, facts.Identity, colorPurpleConstant, display.ShowColor)
	}

	// When no bookmark existed the change identifier already served as the
	// identity; rendering it again would print the same token twice.
	if display.ShowID && facts.Identity != facts.ChangeID {
		writeSectionSeparator(&outputBuilder)
		writeColoredText(&outputBuilder, identifierOpenLiteralConstant+facts.ChangeID+identifierCloseLiteralConstant, colorGreenConstant, display.ShowColor)
	}

	if display.ShowStatus {
		statusFlags := buildJJStatusFlags(facts)
		if len(statusFlags) > 0 {
			writeSectionSeparator(&outputBuilder)
			writeColoredText(&outputBuilder, statusOpenLiteralConstant+statusFlags+statusCloseLiteralConstant, colorRedConstant, display.ShowColor)
		}
	}

	return outputBuilder.String()
}

// buildGitStatusFlags renders file-state flags in the fixed priority order
// followed by the ahead and behind counts when nonzero.
func buildGitStatusFlags(facts GitFacts) string {
	var flagsBuilder strings.Builder

	if facts.Conflicted {
		flagsBuilder.WriteString(gitConflictedFlagConstant)
	}
	if facts.Staged {
		flagsBuilder.WriteString(gitStagedFlagConstant)
	}
	if facts.Modified {
		flagsBuilder.WriteString(gitModifiedFlagConstant)
	}
	if facts.Untracked {
		flagsBuilder.WriteString(gitUntrackedFlagConstant)
	}
	if facts.Deleted {
		flagsBuilder.WriteString(gitDeletedFlagConstant)
	}

	if facts.Ahead > 0 {
		flagsBuilder.WriteString(aheadFlagConstant)
		flagsBuilder.WriteString(strconv.Itoa(facts.Ahead))
	}
	if facts.Behind > 0 {
		flagsBuilder.WriteString(behindFlagConstant)
		flagsBuilder.WriteString(strconv.Itoa(facts.Behind))
	}

	return flagsBuilder.String()
}

// buildJJStatusFlags renders JJ indicator flags in the fixed priority order.
func buildJJStatusFlags(facts JJFacts) string {
	var flagsBuilder strings.Builder

	if facts.Conflict {
		flagsBuilder.WriteString(jjConflictFlagConstant)
	}
	if facts.Divergent {
		flagsBuilder.WriteString(jjDivergentFlagConstant)
	}
	if facts.EmptyDescription {
		flagsBuilder.WriteString(jjEmptyDescriptionFlagConstant)
	}
	if facts.UnsyncedRemote {
		flagsBuilder.WriteString(jjUnsyncedRemoteFlagConstant)
	}

	return flagsBuilder.String()
}

func writeSectionSeparator(outputBuilder *strings.Builder) {
	if outputBuilder.Len() > 0 {
		outputBuilder.WriteString(sectionSeparatorLiteralConstant)
	}
}

func writeColoredText(outputBuilder *strings.Builder, text string, colorSequence string, colorEnabled bool) {
	if colorEnabled {
		outputBuilder.WriteString(colorSequence)
		outputBuilder.WriteString(text)
		outputBuilder.WriteString(colorResetConstant)
		return
	}
	outputBuilder.WriteString(text)
}
