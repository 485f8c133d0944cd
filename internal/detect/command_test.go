package detect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/vix/internal/detect"
)

const (
	detectCommandUseConstant               = "detect"
	insideRepositoryTestNameConstant       = "repository_present_exits_cleanly"
	outsideRepositoryTestNameConstant      = "repository_absent_returns_sentinel"
	detectionCompletedMessageConstant      = "repository detection completed"
	expectedDetectionLogEntryCountConstant = 1
)

func TestDetectCommandMetadata(testInstance *testing.T) {
	builder := detect.CommandBuilder{}

	detectCommand, buildError := builder.Build()

	require.NoError(testInstance, buildError)
	require.Equal(testInstance, detectCommandUseConstant, detectCommand.Use)
}

func TestDetectCommandRun(testInstance *testing.T) {
	testCases := []struct {
		name            string
		createGitMarker bool
		expectedError   error
	}{
		{
			name:            insideRepositoryTestNameConstant,
			createGitMarker: true,
			expectedError:   nil,
		},
		{
			name:            outsideRepositoryTestNameConstant,
			createGitMarker: false,
			expectedError:   detect.ErrNoRepositoryDetected,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			workingDirectory := subtestInstance.TempDir()
			if testCase.createGitMarker {
				require.NoError(subtestInstance, os.MkdirAll(filepath.Join(workingDirectory, gitMarkerNameConstant), directoryPermissionsConstant))
			}

			observedCore, observedLogs := observer.New(zap.DebugLevel)
			builder := detect.CommandBuilder{
				LoggerProvider: func() *zap.Logger {
					return zap.New(observedCore)
				},
				WorkingDirectoryProvider: func() string {
					return workingDirectory
				},
			}

			detectCommand, buildError := builder.Build()
			require.NoError(subtestInstance, buildError)

			runError := detectCommand.RunE(detectCommand, nil)

			if testCase.expectedError != nil {
				require.ErrorIs(subtestInstance, runError, testCase.expectedError)
			} else {
				require.NoError(subtestInstance, runError)
			}

			loggedEntries := observedLogs.FilterMessage(detectionCompletedMessageConstant).All()
			require.Len(subtestInstance, loggedEntries, expectedDetectionLogEntryCountConstant)
		})
	}
}
