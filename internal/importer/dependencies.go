package importer

import (
	"context"

	"github.com/temirov/gitimporter/internal/execshell"
	"github.com/temirov/gitimporter/internal/githubapi"
	"github.com/temirov/gitimporter/internal/gitrepo"
)

// HostAPIClient exposes the GitHub REST operations used by the import.
type HostAPIClient interface {
	ValidateToken(executionContext context.Context) (string, error)
	RepositoryExists(executionContext context.Context, owner string, name string) (bool, error)
	CreateRepository(executionContext context.Context, request githubapi.CreateRepositoryRequest) (githubapi.RepositoryDetails, error)
	SetDefaultBranch(executionContext context.Context, owner string, name string, branch string) (bool, error)
}

// MirrorOperations copies every reference from the source into the target.
type MirrorOperations interface {
	MirrorClone(executionContext context.Context, sourceURL string, destination string) error
	MirrorPush(executionContext context.Context, repositoryPath string, remoteURL string, token string) error
}

// ReferenceVerifier reads branch and tag references of the mirror and of the target.
type ReferenceVerifier interface {
	LocalReferences(repositoryPath string) (gitrepo.ReferenceSnapshot, error)
	RemoteReferences(executionContext context.Context, remoteURL string, token string) (gitrepo.ReferenceSnapshot, error)
}

// ConfirmationPrompter asks the user to approve overwriting an existing repository.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}

// ToolChecker verifies that required executables are installed.
type ToolChecker interface {
	RequireTools(tools ...execshell.CommandName) error
}

// Workspace allocates and removes the temporary directory holding the mirror.
type Workspace interface {
	Create(temporaryRoot string, repositoryName string) (string, error)
	Remove(path string) error
}

// StageObserver receives stage transitions for user-facing progress output.
type StageObserver interface {
	StageStarted(stage Stage, detail string)
	StageCompleted(stage Stage, detail string)
	StageFailed(stage Stage, failure error)
}
