package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/gitimporter/internal/execshell"
	"github.com/temirov/gitimporter/internal/githubapi"
	"github.com/temirov/gitimporter/internal/gitrepo"
)

const (
	logFieldStageConstant                 = "stage"
	logFieldErrorKindConstant             = "error_kind"
	logFieldOwnerConstant                 = "owner"
	logFieldRepositoryConstant            = "repository"
	logFieldSourceConstant                = "source"
	logFieldTargetConstant                = "target"
	logFieldLoginConstant                 = "login"
	logFieldWorkspaceConstant             = "workspace"
	logFieldBranchConstant                = "branch"
	logFieldOutcomeConstant               = "outcome"
	logFieldBranchCountConstant           = "branches"
	logFieldTagCountConstant              = "tags"
	logFieldPrivateConstant               = "private"
	importStartedMessageConstant          = "Import started"
	importFinishedMessageConstant         = "Import finished"
	importFailedMessageConstant           = "Import failed"
	importDeclinedMessageConstant         = "Overwrite declined; nothing changed"
	tokenValidatedMessageConstant         = "Token validated"
	repositoryExistsMessageConstant       = "Target repository already exists"
	repositoryCreatedMessageConstant      = "Target repository created"
	repositoryConflictMessageConstant     = "Target repository appeared during creation"
	branchUnchangedMessageConstant        = "Default branch already set"
	branchUpdatedMessageConstant          = "Default branch updated"
	cleanupFailedMessageConstant          = "Temporary directory cleanup failed"
	mirrorDirectoryNameConstant           = "mirror.git"
	overwritePromptTemplateConstant       = "Repository %s/%s already exists on %s. Overwrite all of its branches and tags with %s? [y/N] "
	repositoryPageURLTemplateConstant     = "https://%s/%s/%s"
	repositoryLabelTemplateConstant       = "%s/%s"
	localReferencesErrorTemplateConstant  = "reading mirror references: %w"
	remoteReferencesErrorTemplateConstant = "reading target references: %w"
	confirmationErrorTemplateConstant     = "reading confirmation: %w"
)

// ServiceDependencies describes the collaborators of an import.
type ServiceDependencies struct {
	Logger              *zap.Logger
	HostClient          HostAPIClient
	Mirror              MirrorOperations
	ReferenceVerifier   ReferenceVerifier
	Prompter            ConfirmationPrompter
	ToolChecker         ToolChecker
	Workspace           Workspace
	Observer            StageObserver
	DescriptionRenderer *DescriptionRenderer
	Clock               func() time.Time
}

// Service runs the import state machine.
type Service struct {
	logger              *zap.Logger
	hostClient          HostAPIClient
	mirror              MirrorOperations
	referenceVerifier   ReferenceVerifier
	prompter            ConfirmationPrompter
	toolChecker         ToolChecker
	workspace           Workspace
	observer            StageObserver
	descriptionRenderer *DescriptionRenderer
	clock               func() time.Time
}

// NewService validates dependencies and fills in defaults for the optional ones.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.HostClient == nil {
		return nil, ErrHostClientNotConfigured
	}
	if dependencies.Mirror == nil {
		return nil, ErrMirrorOperationsNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	referenceVerifier := dependencies.ReferenceVerifier
	if referenceVerifier == nil {
		referenceVerifier = gitrepo.NewReferenceInspector()
	}
	toolChecker := dependencies.ToolChecker
	if toolChecker == nil {
		toolChecker = execshell.NewToolLocator(nil)
	}
	workspace := dependencies.Workspace
	if workspace == nil {
		workspace = NewOSWorkspace()
	}
	observer := dependencies.Observer
	if observer == nil {
		observer = noopStageObserver{}
	}
	descriptionRenderer := dependencies.DescriptionRenderer
	if descriptionRenderer == nil {
		descriptionRenderer = NewDescriptionRenderer(DefaultDescriptionTemplate)
	}
	clock := dependencies.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		logger:              logger,
		hostClient:          dependencies.HostClient,
		mirror:              dependencies.Mirror,
		referenceVerifier:   referenceVerifier,
		prompter:            dependencies.Prompter,
		toolChecker:         toolChecker,
		workspace:           workspace,
		observer:            observer,
		descriptionRenderer: descriptionRenderer,
		clock:               clock,
	}, nil
}

// importRun carries the mutable state of one Run call.
type importRun struct {
	options    Options
	host       string
	targetURL  string
	result     Result
	startedAt  time.Time
	baseFields []zap.Field
	mirrorPath string
	workspace  string
}

// Run imports options.SourceURL into options.Owner/options.RepositoryName.
// A declined overwrite returns a Result with OutcomeDeclined and a nil error.
// Every failure is an ImportError carrying its kind and stage.
func (service *Service) Run(executionContext context.Context, options Options) (result Result, runError error) {
	run := &importRun{options: options, startedAt: service.clock()}
	run.host = githubapi.NormalizeHost(options.Host)
	run.result = Result{
		Owner:          strings.TrimSpace(options.Owner),
		RepositoryName: strings.TrimSpace(options.RepositoryName),
		SourceURL:      execshell.RedactURL(strings.TrimSpace(options.SourceURL)),
		DefaultBranch:  strings.TrimSpace(options.DefaultBranch),
	}
	run.baseFields = []zap.Field{
		zap.String(logFieldOwnerConstant, run.result.Owner),
		zap.String(logFieldRepositoryConstant, run.result.RepositoryName),
		zap.String(logFieldSourceConstant, run.result.SourceURL),
	}

	defer func() {
		run.result.Duration = service.clock().Sub(run.startedAt)
		result = run.result
		if runError != nil {
			service.reportFailure(run, runError)
		}
	}()

	if initError := service.initialize(run); initError != nil {
		return run.result, initError
	}
	service.logger.Info(importStartedMessageConstant, append(run.baseFields, zap.String(logFieldTargetConstant, run.targetURL))...)

	if tokenError := service.validateToken(executionContext, run); tokenError != nil {
		return run.result, tokenError
	}

	proceed, repositoryError := service.ensureRepository(executionContext, run)
	if repositoryError != nil {
		return run.result, repositoryError
	}
	if !proceed {
		run.result.Outcome = OutcomeDeclined
		service.logger.Info(importDeclinedMessageConstant, run.baseFields...)
		return run.result, nil
	}

	if transferError := service.transfer(executionContext, run); transferError != nil {
		return run.result, transferError
	}

	service.observer.StageCompleted(StageDone, run.result.RepositoryURL)
	service.logger.Info(importFinishedMessageConstant, append(run.baseFields,
		zap.String(logFieldOutcomeConstant, string(run.result.Outcome)),
		zap.Int(logFieldBranchCountConstant, run.result.BranchCount),
		zap.Int(logFieldTagCountConstant, run.result.TagCount),
	)...)
	return run.result, nil
}

func (service *Service) initialize(run *importRun) error {
	service.observer.StageStarted(StageInit, run.result.SourceURL)

	if validationError := run.options.Validate(); validationError != nil {
		return validationError
	}

	target := gitrepo.RemoteURL{
		Protocol:   gitrepo.RemoteProtocolHTTPS,
		Host:       run.host,
		Owner:      run.result.Owner,
		Repository: run.result.RepositoryName,
	}
	targetURL, formatError := gitrepo.FormatRemoteURL(target)
	if formatError != nil {
		return newImportError(ErrorKindInvalidInput, StageInit, formatError)
	}
	run.targetURL = targetURL
	run.result.TargetURL = targetURL
	run.result.RepositoryURL = fmt.Sprintf(repositoryPageURLTemplateConstant, run.host, target.Owner, target.Repository)

	if source, parseError := gitrepo.ParseRemoteURL(strings.TrimSpace(run.options.SourceURL)); parseError == nil && source.SameRepository(target) {
		return newImportError(ErrorKindInvalidInput, StageInit, InvalidInputError{FieldName: sourceFieldNameConstant, Message: sameRepositoryMessageConstant})
	}

	if toolError := service.toolChecker.RequireTools(execshell.CommandGit); toolError != nil {
		return newImportError(ErrorKindDependencyMissing, StageInit, toolError)
	}

	service.observer.StageCompleted(StageInit, run.targetURL)
	return nil
}

func (service *Service) validateToken(executionContext context.Context, run *importRun) error {
	service.observer.StageStarted(StageValidateToken, run.host)

	login, validationError := service.hostClient.ValidateToken(executionContext)
	if validationError != nil {
		var transportError githubapi.TransportError
		if errors.As(validationError, &transportError) {
			return newImportError(ErrorKindTransport, StageValidateToken, validationError)
		}
		return newImportError(ErrorKindAuth, StageValidateToken, validationError)
	}

	run.result.AuthenticatedLogin = login
	service.logger.Debug(tokenValidatedMessageConstant, zap.String(logFieldLoginConstant, login))
	service.observer.StageCompleted(StageValidateToken, login)
	return nil
}

// ensureRepository creates the target or, when it already exists, asks whether to overwrite it.
// The returned flag is false only when the overwrite was declined.
func (service *Service) ensureRepository(executionContext context.Context, run *importRun) (bool, error) {
	repositoryLabel := fmt.Sprintf(repositoryLabelTemplateConstant, run.result.Owner, run.result.RepositoryName)
	service.observer.StageStarted(StageCheckExists, repositoryLabel)

	exists, lookupError := service.hostClient.RepositoryExists(executionContext, run.result.Owner, run.result.RepositoryName)
	if lookupError != nil {
		return false, newImportError(ErrorKindTransport, StageCheckExists, lookupError)
	}
	service.observer.StageCompleted(StageCheckExists, repositoryLabel)

	if !exists {
		created, createError := service.createRepository(executionContext, run)
		if createError != nil {
			return false, createError
		}
		if created {
			run.result.Outcome = OutcomeCreated
			return true, nil
		}
	} else {
		service.logger.Info(repositoryExistsMessageConstant, run.baseFields...)
	}

	proceed, confirmationError := service.confirmOverwrite(run)
	if confirmationError != nil {
		return false, confirmationError
	}
	if proceed {
		run.result.Outcome = OutcomeOverwritten
	}
	return proceed, nil
}

// createRepository reports false without error when the name was taken concurrently.
func (service *Service) createRepository(executionContext context.Context, run *importRun) (bool, error) {
	service.observer.StageStarted(StageCreateRepository, run.result.RepositoryURL)

	details, createError := service.hostClient.CreateRepository(executionContext, githubapi.CreateRepositoryRequest{
		Owner:              run.result.Owner,
		Name:               run.result.RepositoryName,
		Description:        service.descriptionRenderer.Render(run.options),
		Private:            run.options.Private,
		AuthenticatedLogin: run.result.AuthenticatedLogin,
	})
	if createError != nil {
		var conflictError githubapi.RepositoryConflictError
		if errors.As(createError, &conflictError) {
			service.logger.Info(repositoryConflictMessageConstant, run.baseFields...)
			service.observer.StageCompleted(StageCreateRepository, conflictError.Error())
			return false, nil
		}
		return false, newImportError(ErrorKindCreate, StageCreateRepository, createError)
	}

	if len(details.HTMLURL) > 0 {
		run.result.RepositoryURL = details.HTMLURL
	}
	service.logger.Info(repositoryCreatedMessageConstant, append(run.baseFields, zap.Bool(logFieldPrivateConstant, details.Private))...)
	service.observer.StageCompleted(StageCreateRepository, run.result.RepositoryURL)
	return true, nil
}

func (service *Service) confirmOverwrite(run *importRun) (bool, error) {
	service.observer.StageStarted(StageConfirmOverwrite, run.result.RepositoryURL)

	if run.options.AssumeYes {
		service.observer.StageCompleted(StageConfirmOverwrite, run.result.RepositoryURL)
		return true, nil
	}
	if service.prompter == nil {
		return false, newImportError(ErrorKindInvalidInput, StageConfirmOverwrite, errOverwriteConfirmationUnavailable)
	}

	prompt := fmt.Sprintf(overwritePromptTemplateConstant, run.result.Owner, run.result.RepositoryName, run.host, run.result.SourceURL)
	confirmed, promptError := service.prompter.Confirm(prompt)
	if promptError != nil {
		return false, newImportError(ErrorKindInvalidInput, StageConfirmOverwrite, fmt.Errorf(confirmationErrorTemplateConstant, promptError))
	}
	service.observer.StageCompleted(StageConfirmOverwrite, run.result.RepositoryURL)
	return confirmed, nil
}

// transfer mirrors the source into the target and always removes the temporary directory afterwards.
func (service *Service) transfer(executionContext context.Context, run *importRun) error {
	service.observer.StageStarted(StageClone, run.result.SourceURL)

	workspacePath, workspaceError := service.workspace.Create(run.options.TemporaryRoot, run.result.RepositoryName)
	if workspaceError != nil {
		return newImportError(ErrorKindClone, StageClone, workspaceError)
	}
	run.workspace = workspacePath
	run.mirrorPath = filepath.Join(workspacePath, mirrorDirectoryNameConstant)
	defer service.cleanup(run)

	if cloneError := service.mirror.MirrorClone(executionContext, strings.TrimSpace(run.options.SourceURL), run.mirrorPath); cloneError != nil {
		return newImportError(ErrorKindClone, StageClone, cloneError)
	}
	service.observer.StageCompleted(StageClone, run.mirrorPath)

	service.observer.StageStarted(StagePush, run.targetURL)
	if pushError := service.mirror.MirrorPush(executionContext, run.mirrorPath, run.targetURL, run.options.Token); pushError != nil {
		return newImportError(ErrorKindPush, StagePush, pushError)
	}
	service.observer.StageCompleted(StagePush, run.targetURL)

	if len(run.result.DefaultBranch) > 0 {
		if branchError := service.setDefaultBranch(executionContext, run); branchError != nil {
			return branchError
		}
	}

	return service.verify(executionContext, run)
}

func (service *Service) setDefaultBranch(executionContext context.Context, run *importRun) error {
	service.observer.StageStarted(StageSetDefaultBranch, run.result.DefaultBranch)

	changed, branchError := service.hostClient.SetDefaultBranch(executionContext, run.result.Owner, run.result.RepositoryName, run.result.DefaultBranch)
	if branchError != nil {
		return newImportError(ErrorKindAPI, StageSetDefaultBranch, branchError)
	}

	run.result.DefaultBranchChanged = changed
	message := branchUnchangedMessageConstant
	if changed {
		message = branchUpdatedMessageConstant
	}
	service.logger.Info(message, append(run.baseFields, zap.String(logFieldBranchConstant, run.result.DefaultBranch))...)
	service.observer.StageCompleted(StageSetDefaultBranch, run.result.DefaultBranch)
	return nil
}

// verify records branch and tag counts of the mirror and, when requested,
// compares them with what the target now advertises.
func (service *Service) verify(executionContext context.Context, run *importRun) error {
	service.observer.StageStarted(StageVerify, run.targetURL)

	localReferences, localError := service.referenceVerifier.LocalReferences(run.mirrorPath)
	if localError != nil {
		if !run.options.Verify {
			service.observer.StageCompleted(StageVerify, run.targetURL)
			return nil
		}
		return newImportError(ErrorKindVerification, StageVerify, fmt.Errorf(localReferencesErrorTemplateConstant, localError))
	}
	run.result.BranchCount = localReferences.BranchCount()
	run.result.TagCount = localReferences.TagCount()

	if !run.options.Verify {
		service.observer.StageCompleted(StageVerify, run.targetURL)
		return nil
	}

	remoteReferences, remoteError := service.referenceVerifier.RemoteReferences(executionContext, run.targetURL, run.options.Token)
	if remoteError != nil {
		return newImportError(ErrorKindVerification, StageVerify, fmt.Errorf(remoteReferencesErrorTemplateConstant, remoteError))
	}

	comparison := gitrepo.CompareReferences(localReferences, remoteReferences)
	if !comparison.Consistent() {
		return newImportError(ErrorKindVerification, StageVerify, VerificationMismatchError{Comparison: comparison})
	}

	run.result.Verified = true
	service.observer.StageCompleted(StageVerify, run.targetURL)
	return nil
}

func (service *Service) cleanup(run *importRun) {
	service.observer.StageStarted(StageCleanup, run.workspace)
	if removalError := service.workspace.Remove(run.workspace); removalError != nil {
		service.logger.Warn(cleanupFailedMessageConstant, zap.String(logFieldWorkspaceConstant, run.workspace), zap.Error(removalError))
		return
	}
	service.observer.StageCompleted(StageCleanup, run.workspace)
}

func (service *Service) reportFailure(run *importRun, failure error) {
	fields := append([]zap.Field{}, run.baseFields...)
	stage := StageFailed
	var importError ImportError
	if errors.As(failure, &importError) {
		stage = importError.Stage
		fields = append(fields, zap.String(logFieldErrorKindConstant, string(importError.Kind)))
	}
	fields = append(fields, zap.String(logFieldStageConstant, string(stage)), zap.Error(failure))
	service.logger.Error(importFailedMessageConstant, fields...)
	service.observer.StageFailed(stage, failure)
}

type noopStageObserver struct{}

func (noopStageObserver) StageStarted(Stage, string)   {}
func (noopStageObserver) StageCompleted(Stage, string) {}
func (noopStageObserver) StageFailed(Stage, error)     {}
