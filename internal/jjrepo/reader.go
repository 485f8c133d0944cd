package jjrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/vix/internal/execshell"
)

const (
	logSubcommandNameConstant        = "log"
	revisionFlagConstant             = "-r"
	workingCopyRevsetConstant        = "@"
	noGraphFlagConstant              = "--no-graph"
	ignoreWorkingCopyFlagConstant    = "--ignore-working-copy"
	colorFlagConstant                = "--color"
	colorNeverValueConstant          = "never"
	templateFlagConstant             = "-T"
	statusTemplateConstant           = `change_id.short(%d) ++ "\t" ++ local_bookmarks.join(",") ++ "\t" ++ remote_bookmarks.map(|bookmark| bookmark.name()).join(",") ++ "\t" ++ if(conflict, "true", "false") ++ "\t" ++ if(divergent, "true", "false") ++ "\t" ++ if(description, "false", "true")`
	statusRecordFieldCountConstant   = 6
	statusRecordFieldSeparator       = "\t"
	bookmarkListSeparatorConstant    = ","
	unsyncedBookmarkSuffixConstant   = "*"
	booleanTrueLiteralConstant       = "true"
	executorMissingMessageConstant   = "jj executor not configured"
	malformedRecordMessageConstant   = "malformed jj status record"
	statusReadFailedTemplateConstant = "%w: %w"
	malformedRecordTemplateConstant  = "%w: expected %d fields, got %d"
	emptyChangeIDTemplateConstant    = "%w: empty change id"
)

// Failure categories reported by the status reader.
var (
	ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)
	ErrStatusRead            = errors.New("unable to read jj status")
	ErrMalformedStatusRecord = errors.New(malformedRecordMessageConstant)
)

// CommandExecutor abstracts jj invocation for testability.
type CommandExecutor interface {
	ExecuteJJ(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// WorkingStatus captures the raw JJ facts one prompt invocation needs.
type WorkingStatus struct {
	// ChangeID holds the working copy change identifier, already shortened to the requested length.
	ChangeID string
	// Bookmark holds the first local bookmark on the working copy change, empty when none exists.
	Bookmark          string
	Conflict          bool
	Divergent         bool
	EmptyDescription  bool
	HasRemoteBookmark bool
	RemoteInSync      bool
}

// StatusReader reads working copy status by running the jj executable.
type StatusReader struct {
	executor CommandExecutor
}

// NewStatusReader validates the executor and constructs a reader.
func NewStatusReader(executor CommandExecutor) (*StatusReader, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &StatusReader{executor: executor}, nil
}

// ReadStatus collects the working copy status of the repository at repositoryRoot.
// One jj log invocation over the working copy revision yields a tab-separated
// record that is parsed into WorkingStatus. Any invocation or parse failure
// aborts the read.
func (reader *StatusReader) ReadStatus(executionContext context.Context, repositoryRoot string, identifierLength int) (WorkingStatus, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			logSubcommandNameConstant,
			revisionFlagConstant, workingCopyRevsetConstant,
			noGraphFlagConstant,
			ignoreWorkingCopyFlagConstant,
			colorFlagConstant, colorNeverValueConstant,
			templateFlagConstant, fmt.Sprintf(statusTemplateConstant, identifierLength),
		},
		WorkingDirectory: repositoryRoot,
	}

	executionResult, executionError := reader.executor.ExecuteJJ(executionContext, commandDetails)
	if executionError != nil {
		return WorkingStatus{}, fmt.Errorf(statusReadFailedTemplateConstant, ErrStatusRead, executionError)
	}

	return parseStatusRecord(executionResult.StandardOutput)
}

// parseStatusRecord maps one tab-separated jj template record into WorkingStatus.
func parseStatusRecord(rawRecord string) (WorkingStatus, error) {
	trimmedRecord := strings.TrimRight(rawRecord, "\r\n")
	recordFields := strings.Split(trimmedRecord, statusRecordFieldSeparator)
	if len(recordFields) != statusRecordFieldCountConstant {
		return WorkingStatus{}, fmt.Errorf(malformedRecordTemplateConstant, ErrMalformedStatusRecord, statusRecordFieldCountConstant, len(recordFields))
	}

	changeIdentifier := strings.TrimSpace(recordFields[0])
	if len(changeIdentifier) == 0 {
		return WorkingStatus{}, fmt.Errorf(emptyChangeIDTemplateConstant, ErrMalformedStatusRecord)
	}

	workingStatus := WorkingStatus{
		ChangeID:         changeIdentifier,
		Conflict:         recordFields[3] == booleanTrueLiteralConstant,
		Divergent:        recordFields[4] == booleanTrueLiteralConstant,
		EmptyDescription: recordFields[5] == booleanTrueLiteralConstant,
		RemoteInSync:     true,
	}

	localBookmarkLabel := firstListEntry(recordFields[1])
	if len(localBookmarkLabel) == 0 {
		return workingStatus, nil
	}

	// jj renders local bookmarks whose remote counterpart lags with a trailing "*".
	bookmarkName := strings.TrimSuffix(localBookmarkLabel, unsyncedBookmarkSuffixConstant)
	workingStatus.Bookmark = bookmarkName
	workingStatus.RemoteInSync = bookmarkName == localBookmarkLabel
	workingStatus.HasRemoteBookmark = listContainsEntry(recordFields[2], bookmarkName)

	return workingStatus, nil
}

func firstListEntry(rawList string) string {
	for _, listEntry := range strings.Split(rawList, bookmarkListSeparatorConstant) {
		trimmedEntry := strings.TrimSpace(listEntry)
		if len(trimmedEntry) > 0 {
			return trimmedEntry
		}
	}
	return ""
}

func listContainsEntry(rawList string, soughtEntry string) bool {
	for _, listEntry := range strings.Split(rawList, bookmarkListSeparatorConstant) {
		if strings.TrimSpace(listEntry) == soughtEntry {
			return true
		}
	}
	return false
}
