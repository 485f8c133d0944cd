package detect

import (
	"os"
	"path/filepath"
)

const (
	gitMetadataEntryNameConstant = ".git"
	jjMetadataEntryNameConstant  = ".jj"
	noneKindLabelConstant        = "none"
	gitKindLabelConstant         = "git"
	jjKindLabelConstant          = "jj"
	colocatedKindLabelConstant   = "colocated"
	unknownKindLabelConstant     = "unknown"
)

// RepositoryKind identifies which version control system governs a directory.
type RepositoryKind int

// Supported repository classifications.
const (
	RepositoryKindNone RepositoryKind = iota
	RepositoryKindGit
	RepositoryKindJJ
	RepositoryKindColocated
)

// String returns the lowercase label for the repository kind.
func (kind RepositoryKind) String() string {
	switch kind {
	case RepositoryKindNone:
		return noneKindLabelConstant
	case RepositoryKindGit:
		return gitKindLabelConstant
	case RepositoryKindJJ:
		return jjKindLabelConstant
	case RepositoryKindColocated:
		return colocatedKindLabelConstant
	default:
		return unknownKindLabelConstant
	}
}

// Classification reports the detected repository kind and its resolved root.
// RepositoryRoot is empty exactly when Kind is RepositoryKindNone.
type Classification struct {
	Kind           RepositoryKind
	RepositoryRoot string
}

// FilesystemRepositoryDetector locates the nearest version control root above a directory.
type FilesystemRepositoryDetector struct{}

// NewFilesystemRepositoryDetector constructs a detector backed by the local filesystem.
func NewFilesystemRepositoryDetector() *FilesystemRepositoryDetector {
	return &FilesystemRepositoryDetector{}
}

// Detect walks upward from the starting directory, inclusive, and classifies the
// first level carrying a version control marker. Colocation is checked before the
// single-backend cases because a colocated directory satisfies both marker tests.
// Filesystem errors degrade to RepositoryKindNone so prompt rendering never aborts.
func (detector *FilesystemRepositoryDetector) Detect(startDirectory string) Classification {
	currentDirectory, normalizationError := filepath.Abs(startDirectory)
	if normalizationError != nil {
		return Classification{Kind: RepositoryKindNone}
	}

	for {
		jjMarkerPresent := metadataEntryExists(currentDirectory, jjMetadataEntryNameConstant)
		gitMarkerPresent := metadataEntryExists(currentDirectory, gitMetadataEntryNameConstant)

		switch {
		case jjMarkerPresent && gitMarkerPresent:
			return Classification{Kind: RepositoryKindColocated, RepositoryRoot: currentDirectory}
		case jjMarkerPresent:
			return Classification{Kind: RepositoryKindJJ, RepositoryRoot: currentDirectory}
		case gitMarkerPresent:
			return Classification{Kind: RepositoryKindGit, RepositoryRoot: currentDirectory}
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return Classification{Kind: RepositoryKindNone}
		}
		currentDirectory = parentDirectory
	}
}

// InRepository reports whether any repository governs the starting directory. It
// performs the same upward walk as Detect without collecting status information.
func (detector *FilesystemRepositoryDetector) InRepository(startDirectory string) bool {
	classification := detector.Detect(startDirectory)
	return classification.Kind != RepositoryKindNone
}

func metadataEntryExists(directory string, entryName string) bool {
	_, statError := os.Stat(filepath.Join(directory, entryName))
	return statError == nil
}
