package segment

import (
	"github.com/temirov/vix/internal/gitrepo"
	"github.com/temirov/vix/internal/jjrepo"
)

const detachedHeadIdentityConstant = "HEAD"

// NormalizeGitStatus maps raw Git working status into the backend-agnostic snapshot.
// The identity falls back to the HEAD literal for detached heads, file flags
// collapse counts to booleans, and the short identifier never slices past the
// actual hash length.
func NormalizeGitStatus(workingStatus gitrepo.WorkingStatus, options RenderOptions) StatusSnapshot {
	identity := detachedHeadIdentityConstant
	if len(workingStatus.BranchName) > 0 {
		identity = TruncateName(workingStatus.BranchName, options.TruncateNameLength)
	}

	return StatusSnapshot{
		Kind: SnapshotKindGit,
		Git: GitFacts{
			Identity:   identity,
			ShortID:    clipIdentifier(workingStatus.HeadHash, options.IdentifierLength),
			Conflicted: workingStatus.Conflicted > 0,
			Staged:     workingStatus.Staged > 0,
			Modified:   workingStatus.Modified > 0,
			Untracked:  workingStatus.Untracked > 0,
			Deleted:    workingStatus.Deleted > 0,
			Ahead:      workingStatus.Ahead,
			Behind:     workingStatus.Behind,
		},
	}
}

// NormalizeJJStatus maps raw JJ working status into the backend-agnostic snapshot.
// A bookmark becomes the truncated identity; without one the raw change
// identifier substitutes untruncated, which the renderer detects to avoid
// printing the identifier twice.
func NormalizeJJStatus(workingStatus jjrepo.WorkingStatus, options RenderOptions) StatusSnapshot {
	identity := workingStatus.ChangeID
	if len(workingStatus.Bookmark) > 0 {
		identity = TruncateName(workingStatus.Bookmark, options.TruncateNameLength)
	}

	return StatusSnapshot{
		Kind: SnapshotKindJJ,
		JJ: JJFacts{
			Identity:         identity,
			ChangeID:         workingStatus.ChangeID,
			Conflict:         workingStatus.Conflict,
			Divergent:        workingStatus.Divergent,
			EmptyDescription: workingStatus.EmptyDescription,
			UnsyncedRemote:   workingStatus.HasRemoteBookmark && !workingStatus.RemoteInSync,
		},
	}
}

func clipIdentifier(identifier string, identifierLength int) string {
	if identifierLength <= 0 || identifierLength >= len(identifier) {
		return identifier
	}
	return identifier[:identifierLength]
}
