package detect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/vix/internal/detect"
)

const (
	gitMarkerNameConstant               = ".git"
	jjMarkerNameConstant                = ".jj"
	nestedDirectoryNameConstant         = "src/deeply/nested"
	innerRepositoryDirectoryConstant    = "vendor/inner"
	gitRepositoryTestNameConstant       = "git_marker_classifies_git"
	jjRepositoryTestNameConstant        = "jj_marker_classifies_jj"
	colocatedRepositoryTestNameConstant = "both_markers_classify_colocated"
	gitFileMarkerTestNameConstant       = "git_file_marker_classifies_git"
	markerlessTreeTestNameConstant      = "markerless_tree_classifies_none"
	directoryPermissionsConstant        = 0o755
	filePermissionsConstant             = 0o644
)

func createMarker(testInstance *testing.T, repositoryRoot string, markerName string, asDirectory bool) {
	markerPath := filepath.Join(repositoryRoot, markerName)
	if asDirectory {
		require.NoError(testInstance, os.MkdirAll(markerPath, directoryPermissionsConstant))
		return
	}
	require.NoError(testInstance, os.WriteFile(markerPath, []byte{}, filePermissionsConstant))
}

func TestFilesystemRepositoryDetectorClassifications(testInstance *testing.T) {
	testCases := []struct {
		name           string
		gitMarker      bool
		gitMarkerIsDir bool
		jjMarker       bool
		expectedKind   detect.RepositoryKind
	}{
		{
			name:           gitRepositoryTestNameConstant,
			gitMarker:      true,
			gitMarkerIsDir: true,
			expectedKind:   detect.RepositoryKindGit,
		},
		{
			name:         jjRepositoryTestNameConstant,
			jjMarker:     true,
			expectedKind: detect.RepositoryKindJJ,
		},
		{
			name:           colocatedRepositoryTestNameConstant,
			gitMarker:      true,
			gitMarkerIsDir: true,
			jjMarker:       true,
			expectedKind:   detect.RepositoryKindColocated,
		},
		{
			name:         gitFileMarkerTestNameConstant,
			gitMarker:    true,
			expectedKind: detect.RepositoryKindGit,
		},
		{
			name:         markerlessTreeTestNameConstant,
			expectedKind: detect.RepositoryKindNone,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			repositoryRoot := subtestInstance.TempDir()
			if testCase.gitMarker {
				createMarker(subtestInstance, repositoryRoot, gitMarkerNameConstant, testCase.gitMarkerIsDir)
			}
			if testCase.jjMarker {
				createMarker(subtestInstance, repositoryRoot, jjMarkerNameConstant, true)
			}

			nestedDirectory := filepath.Join(repositoryRoot, nestedDirectoryNameConstant)
			require.NoError(subtestInstance, os.MkdirAll(nestedDirectory, directoryPermissionsConstant))

			detector := detect.NewFilesystemRepositoryDetector()
			classification := detector.Detect(nestedDirectory)

			require.Equal(subtestInstance, testCase.expectedKind, classification.Kind)
			if testCase.expectedKind == detect.RepositoryKindNone {
				require.Empty(subtestInstance, classification.RepositoryRoot)
				require.False(subtestInstance, detector.InRepository(nestedDirectory))
				return
			}
			require.Equal(subtestInstance, repositoryRoot, classification.RepositoryRoot)
			require.True(subtestInstance, detector.InRepository(nestedDirectory))
		})
	}
}

func TestFilesystemRepositoryDetectorInnermostRootWins(testInstance *testing.T) {
	outerRoot := testInstance.TempDir()
	createMarker(testInstance, outerRoot, jjMarkerNameConstant, true)

	innerRoot := filepath.Join(outerRoot, innerRepositoryDirectoryConstant)
	require.NoError(testInstance, os.MkdirAll(innerRoot, directoryPermissionsConstant))
	createMarker(testInstance, innerRoot, gitMarkerNameConstant, true)

	detector := detect.NewFilesystemRepositoryDetector()
	classification := detector.Detect(innerRoot)

	require.Equal(testInstance, detect.RepositoryKindGit, classification.Kind)
	require.Equal(testInstance, innerRoot, classification.RepositoryRoot)
}
