package segment

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/vix/internal/detect"
	"github.com/temirov/vix/internal/gitrepo"
	"github.com/temirov/vix/internal/jjrepo"
)

const (
	detectorMissingMessageConstant  = "repository detector not configured"
	gitReaderMissingMessageConstant = "git status reader not configured"
	jjReaderMissingMessageConstant  = "jj status reader not configured"
	promptBuiltMessageConstant      = "prompt segment built"
	statusReadFailedMessageConstant = "status collection failed"
	logFieldKindConstant            = "repository_kind"
	logFieldRootConstant            = "repository_root"
	logFieldErrorConstant           = "error"
)

// Service construction errors.
var (
	ErrDetectorNotConfigured  = errors.New(detectorMissingMessageConstant)
	ErrGitReaderNotConfigured = errors.New(gitReaderMissingMessageConstant)
	ErrJJReaderNotConfigured  = errors.New(jjReaderMissingMessageConstant)
)

// RepositoryDetector classifies the repository governing a directory.
type RepositoryDetector interface {
	Detect(startDirectory string) detect.Classification
}

// GitStatusReader reads raw Git working status.
type GitStatusReader interface {
	ReadStatus(repositoryRoot string) (gitrepo.WorkingStatus, error)
}

// JJStatusReader reads raw JJ working copy status.
type JJStatusReader interface {
	ReadStatus(executionContext context.Context, repositoryRoot string, identifierLength int) (jjrepo.WorkingStatus, error)
}

// ServiceDependencies lists the collaborators the prompt service requires.
type ServiceDependencies struct {
	Logger    *zap.Logger
	Detector  RepositoryDetector
	GitReader GitStatusReader
	JJReader  JJStatusReader
}

// Service assembles the prompt segment: detect, read, normalize, render.
type Service struct {
	logger    *zap.Logger
	detector  RepositoryDetector
	gitReader GitStatusReader
	jjReader  JJStatusReader
	renderer  *PromptRenderer
}

// PromptRequest carries the per-invocation inputs for prompt assembly.
type PromptRequest struct {
	WorkingDirectory string
	Options          RenderOptions
	GitDisplay       DisplayConfiguration
	JJDisplay        DisplayConfiguration
}

// NewService validates dependencies and constructs the prompt service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Detector == nil {
		return nil, ErrDetectorNotConfigured
	}
	if dependencies.GitReader == nil {
		return nil, ErrGitReaderNotConfigured
	}
	if dependencies.JJReader == nil {
		return nil, ErrJJReaderNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger:    logger,
		detector:  dependencies.Detector,
		gitReader: dependencies.GitReader,
		jjReader:  dependencies.JJReader,
		renderer:  NewPromptRenderer(),
	}, nil
}

// BuildPrompt returns the rendered prompt segment for the request, or the
// empty string when no repository is found or status collection fails. The
// failure policy is silence: prompt renderers must never see error text.
func (service *Service) BuildPrompt(executionContext context.Context, request PromptRequest) string {
	classification := service.detector.Detect(request.WorkingDirectory)

	var renderedSegment string
	switch classification.Kind {
	case detect.RepositoryKindJJ:
		renderedSegment, _ = service.buildJJSegment(executionContext, classification.RepositoryRoot, request)
	case detect.RepositoryKindColocated:
		// JJ takes precedence in colocated working trees; Git is the fallback
		// only when the jj read itself fails. A successful read that renders
		// nothing (all sections suppressed) must stay empty.
		jjSegment, jjReadSucceeded := service.buildJJSegment(executionContext, classification.RepositoryRoot, request)
		renderedSegment = jjSegment
		if !jjReadSucceeded {
			renderedSegment = service.buildGitSegment(classification.RepositoryRoot, request)
		}
	case detect.RepositoryKindGit:
		renderedSegment = service.buildGitSegment(classification.RepositoryRoot, request)
	default:
		return ""
	}

	service.logger.Debug(
		promptBuiltMessageConstant,
		zap.String(logFieldKindConstant, classification.Kind.String()),
		zap.String(logFieldRootConstant, classification.RepositoryRoot),
	)

	return renderedSegment
}

func (service *Service) buildGitSegment(repositoryRoot string, request PromptRequest) string {
	workingStatus, readError := service.gitReader.ReadStatus(repositoryRoot)
	if readError != nil {
		service.logger.Debug(
			statusReadFailedMessageConstant,
			zap.String(logFieldKindConstant, detect.RepositoryKindGit.String()),
			zap.String(logFieldErrorConstant, readError.Error()),
		)
		return ""
	}

	snapshot := NormalizeGitStatus(workingStatus, request.Options)
	return service.renderer.Render(snapshot, request.GitDisplay, request.Options)
}

func (service *Service) buildJJSegment(executionContext context.Context, repositoryRoot string, request PromptRequest) (string, bool) {
	workingStatus, readError := service.jjReader.ReadStatus(executionContext, repositoryRoot, request.Options.IdentifierLength)
	if readError != nil {
		service.logger.Debug(
			statusReadFailedMessageConstant,
			zap.String(logFieldKindConstant, detect.RepositoryKindJJ.String()),
			zap.String(logFieldErrorConstant, readError.Error()),
		)
		return "", false
	}

	snapshot := NormalizeJJStatus(workingStatus, request.Options)
	return service.renderer.Render(snapshot, request.JJDisplay, request.Options), true
}
