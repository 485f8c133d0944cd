package segment

const (
	gitSnapshotKindLabelConstant     = "git"
	jjSnapshotKindLabelConstant      = "jj"
	unknownSnapshotKindLabelConstant = "unknown"
)

// SnapshotKind tags the backend a status snapshot was normalized from.
type SnapshotKind int

// Supported snapshot kinds.
const (
	SnapshotKindGit SnapshotKind = iota
	SnapshotKindJJ
)

// String returns the lowercase label for the snapshot kind.
func (kind SnapshotKind) String() string {
	switch kind {
	case SnapshotKindGit:
		return gitSnapshotKindLabelConstant
	case SnapshotKindJJ:
		return jjSnapshotKindLabelConstant
	default:
		return unknownSnapshotKindLabelConstant
	}
}

// GitFacts holds the normalized indicators of a Git repository snapshot.
type GitFacts struct {
	// Identity is the truncated branch name, or the HEAD literal when detached. Never empty.
	Identity string
	// ShortID is the head hash clipped to the configured identifier length.
	ShortID    string
	Conflicted bool
	Staged     bool
	Modified   bool
	Untracked  bool
	Deleted    bool
	Ahead      int
	Behind     int
}

// JJFacts holds the normalized indicators of a JJ repository snapshot.
type JJFacts struct {
	// Identity is the truncated bookmark name, or the raw change identifier when no bookmark exists. Never empty.
	Identity string
	// ChangeID is the shortened change identifier; rendering omits it when it equals Identity.
	ChangeID         string
	Conflict         bool
	Divergent        bool
	EmptyDescription bool
	UnsyncedRemote   bool
}

// StatusSnapshot is the backend-agnostic view the renderer consumes. It is a
// closed tagged variant: Kind selects which facts field is populated.
type StatusSnapshot struct {
	Kind SnapshotKind
	Git  GitFacts
	JJ   JJFacts
}
