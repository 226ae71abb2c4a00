package importer

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/temirov/gitimporter/internal/execshell"
	"github.com/temirov/gitimporter/internal/githubapi"
	"github.com/temirov/gitimporter/internal/gitrepo"
)

// ImportExecutor runs a single import.
type ImportExecutor interface {
	Run(executionContext context.Context, options Options) (Result, error)
}

// ServiceResolver creates import executors for the command.
type ServiceResolver interface {
	Resolve(logger *zap.Logger, options Options, prompter ConfirmationPrompter) (ImportExecutor, error)
}

// DefaultServiceResolver wires the shell-backed git executor and the GitHub REST client.
type DefaultServiceResolver struct {
	GitExecutor          gitrepo.GitExecutor
	HostClient           HostAPIClient
	ReferenceVerifier    ReferenceVerifier
	ToolChecker          ToolChecker
	Workspace            Workspace
	Observer             StageObserver
	HTTPClient           *http.Client
	APIBaseURL           string
	HumanReadableLogging bool
}

// Resolve builds a Service for the provided options.
func (resolver *DefaultServiceResolver) Resolve(logger *zap.Logger, options Options, prompter ConfirmationPrompter) (ImportExecutor, error) {
	gitExecutor, executorError := ResolveGitExecutor(resolver.GitExecutor, logger, resolver.HumanReadableLogging)
	if executorError != nil {
		return nil, executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(gitExecutor)
	if managerError != nil {
		return nil, managerError
	}

	hostClient, clientError := ResolveHostClient(resolver.HostClient, githubapi.ClientConfiguration{
		Token:      options.Token,
		Host:       options.Host,
		APIBaseURL: resolver.APIBaseURL,
		HTTPClient: resolver.HTTPClient,
	})
	if clientError != nil {
		return nil, newImportError(ErrorKindInvalidInput, StageInit, clientError)
	}

	return NewService(ServiceDependencies{
		Logger:              logger,
		HostClient:          hostClient,
		Mirror:              repositoryManager,
		ReferenceVerifier:   resolver.ReferenceVerifier,
		Prompter:            prompter,
		ToolChecker:         resolver.ToolChecker,
		Workspace:           resolver.Workspace,
		Observer:            resolver.Observer,
		DescriptionRenderer: NewDescriptionRenderer(options.Description),
	})
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing gitrepo.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (gitrepo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), humanReadableLogging)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveHostClient returns the provided client or constructs a GitHub REST client.
func ResolveHostClient(existing HostAPIClient, configuration githubapi.ClientConfiguration) (HostAPIClient, error) {
	if existing != nil {
		return existing, nil
	}
	client, creationError := githubapi.NewClient(configuration)
	if creationError != nil {
		return nil, creationError
	}
	return client, nil
}
