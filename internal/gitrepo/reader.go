package gitrepo

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"go.uber.org/zap"
)

const (
	// EmptyRepositoryHeadPlaceholder substitutes the head identifier when a repository has no commits yet.
	EmptyRepositoryHeadPlaceholder = "empty"

	wrappedFailureTemplateConstant     = "%w: %w"
	statusCollectedMessageConstant     = "collected git working status"
	aheadBehindSkippedMessageConstant  = "upstream divergence unavailable"
	logFieldRepositoryRootConstant     = "repository_root"
	logFieldBranchConstant             = "branch"
	logFieldReasonConstant             = "reason"
	localRemoteAliasConstant           = "."
	remoteReferencePrefixConstant      = "refs/remotes/"
	remoteReferenceSeparatorConstant   = "/"
	noUpstreamConfiguredReasonConstant = "no upstream configured"
)

// Failure categories reported by the status reader.
var (
	ErrRepositoryOpen = errors.New("unable to open git repository")
	ErrWorktreeAccess = errors.New("unable to access git worktree")
	ErrStatusRead     = errors.New("unable to read git status")
	ErrHeadRead       = errors.New("unable to read git head")
)

// WorkingStatus captures the raw Git facts one prompt invocation needs.
type WorkingStatus struct {
	// BranchName is empty when the head is detached.
	BranchName string
	// HeadHash holds the full head commit hash, or EmptyRepositoryHeadPlaceholder before the first commit.
	HeadHash   string
	Conflicted int
	Staged     int
	Modified   int
	Untracked  int
	Deleted    int
	Ahead      int
	Behind     int
}

// StatusReader reads repository status through go-git.
type StatusReader struct {
	logger *zap.Logger
}

// NewStatusReader constructs a status reader with the supplied logger.
func NewStatusReader(logger *zap.Logger) *StatusReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusReader{logger: logger}
}

// ReadStatus opens the repository at repositoryRoot and assembles its working status.
// Upstream divergence failures are downgraded to zero counts; open, worktree, and
// status failures abort the read.
func (reader *StatusReader) ReadStatus(repositoryRoot string) (WorkingStatus, error) {
	repository, openError := git.PlainOpen(repositoryRoot)
	if openError != nil {
		return WorkingStatus{}, fmt.Errorf(wrappedFailureTemplateConstant, ErrRepositoryOpen, openError)
	}

	workingStatus := WorkingStatus{}
	if countError := reader.countFileStates(repository, &workingStatus); countError != nil {
		return WorkingStatus{}, countError
	}

	headReference, headError := repository.Head()
	if headError != nil {
		if errors.Is(headError, plumbing.ErrReferenceNotFound) {
			workingStatus.BranchName = reader.resolveUnbornBranchName(repository)
			workingStatus.HeadHash = EmptyRepositoryHeadPlaceholder
			return workingStatus, nil
		}
		return WorkingStatus{}, fmt.Errorf(wrappedFailureTemplateConstant, ErrHeadRead, headError)
	}

	if headReference.Name() != plumbing.HEAD {
		workingStatus.BranchName = headReference.Name().Short()
	}
	workingStatus.HeadHash = headReference.Hash().String()

	aheadCount, behindCount, divergenceError := reader.resolveUpstreamDivergence(repository, headReference)
	if divergenceError != nil {
		reader.logger.Debug(
			aheadBehindSkippedMessageConstant,
			zap.String(logFieldRepositoryRootConstant, repositoryRoot),
			zap.String(logFieldBranchConstant, workingStatus.BranchName),
			zap.String(logFieldReasonConstant, divergenceError.Error()),
		)
		aheadCount, behindCount = 0, 0
	}
	workingStatus.Ahead = aheadCount
	workingStatus.Behind = behindCount

	reader.logger.Debug(
		statusCollectedMessageConstant,
		zap.String(logFieldRepositoryRootConstant, repositoryRoot),
		zap.String(logFieldBranchConstant, workingStatus.BranchName),
	)

	return workingStatus, nil
}

func (reader *StatusReader) countFileStates(repository *git.Repository, workingStatus *WorkingStatus) error {
	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return fmt.Errorf(wrappedFailureTemplateConstant, ErrWorktreeAccess, worktreeError)
	}

	fileStatuses, statusError := worktree.Status()
	if statusError != nil {
		return fmt.Errorf(wrappedFailureTemplateConstant, ErrStatusRead, statusError)
	}

	for _, fileStatus := range fileStatuses {
		if fileStatus.Staging == git.UpdatedButUnmerged || fileStatus.Worktree == git.UpdatedButUnmerged {
			workingStatus.Conflicted++
			continue
		}

		if fileStatus.Worktree == git.Untracked {
			workingStatus.Untracked++
			continue
		}

		switch fileStatus.Staging {
		case git.Added, git.Modified, git.Deleted, git.Renamed, git.Copied:
			workingStatus.Staged++
		}

		if fileStatus.Worktree == git.Modified {
			workingStatus.Modified++
		}
		if fileStatus.Worktree == git.Deleted {
			workingStatus.Deleted++
		}
	}

	return nil
}

// resolveUnbornBranchName derives the branch name of a zero-commit repository from
// the symbolic HEAD target when one is resolvable.
func (reader *StatusReader) resolveUnbornBranchName(repository *git.Repository) string {
	headReference, referenceError := repository.Reference(plumbing.HEAD, false)
	if referenceError != nil {
		return ""
	}
	if headReference.Type() != plumbing.SymbolicReference {
		return ""
	}

	targetReference := headReference.Target()
	if !targetReference.IsBranch() {
		return ""
	}
	return targetReference.Short()
}

func (reader *StatusReader) resolveUpstreamDivergence(repository *git.Repository, headReference *plumbing.Reference) (int, int, error) {
	if headReference.Name() == plumbing.HEAD {
		return 0, 0, nil
	}

	repositoryConfiguration, configurationError := repository.Config()
	if configurationError != nil {
		return 0, 0, configurationError
	}

	branchConfiguration, branchConfigured := repositoryConfiguration.Branches[headReference.Name().Short()]
	if !branchConfigured || branchConfiguration.Merge == "" {
		return 0, 0, errors.New(noUpstreamConfiguredReasonConstant)
	}

	upstreamReferenceName := branchConfiguration.Merge
	if branchConfiguration.Remote != localRemoteAliasConstant && branchConfiguration.Remote != "" {
		upstreamReferenceName = plumbing.ReferenceName(
			remoteReferencePrefixConstant + branchConfiguration.Remote + remoteReferenceSeparatorConstant + branchConfiguration.Merge.Short(),
		)
	}

	upstreamReference, upstreamError := repository.Reference(upstreamReferenceName, true)
	if upstreamError != nil {
		return 0, 0, upstreamError
	}

	localAncestors, localWalkError := collectAncestorHashes(repository, headReference.Hash())
	if localWalkError != nil {
		return 0, 0, localWalkError
	}
	upstreamAncestors, upstreamWalkError := collectAncestorHashes(repository, upstreamReference.Hash())
	if upstreamWalkError != nil {
		return 0, 0, upstreamWalkError
	}

	aheadCount := countExclusiveHashes(localAncestors, upstreamAncestors)
	behindCount := countExclusiveHashes(upstreamAncestors, localAncestors)
	return aheadCount, behindCount, nil
}

func collectAncestorHashes(repository *git.Repository, tipHash plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	visitedHashes := map[plumbing.Hash]struct{}{}
	pendingHashes := []plumbing.Hash{tipHash}

	for len(pendingHashes) > 0 {
		currentHash := pendingHashes[len(pendingHashes)-1]
		pendingHashes = pendingHashes[:len(pendingHashes)-1]

		if _, alreadyVisited := visitedHashes[currentHash]; alreadyVisited {
			continue
		}
		visitedHashes[currentHash] = struct{}{}

		commitObject, commitError := repository.CommitObject(currentHash)
		if commitError != nil {
			return nil, commitError
		}
		pendingHashes = append(pendingHashes, commitObject.ParentHashes...)
	}

	return visitedHashes, nil
}

func countExclusiveHashes(candidateHashes map[plumbing.Hash]struct{}, referenceHashes map[plumbing.Hash]struct{}) int {
	exclusiveCount := 0
	for candidateHash := range candidateHashes {
		if _, shared := referenceHashes[candidateHash]; !shared {
			exclusiveCount++
		}
	}
	return exclusiveCount
}
