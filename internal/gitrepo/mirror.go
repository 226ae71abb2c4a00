package gitrepo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/temirov/gitimporter/internal/execshell"
)

const (
	gitCloneSubcommandConstant             = "clone"
	gitPushSubcommandConstant              = "push"
	gitMirrorFlagConstant                  = "--mirror"
	gitEndOfOptionsConstant                = "--"
	gitTerminalPromptVariableConstant      = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledConstant      = "0"
	gitConfigCountVariableConstant         = "GIT_CONFIG_COUNT"
	gitConfigKeyVariablePrefixConstant     = "GIT_CONFIG_KEY_"
	gitConfigValueVariablePrefixConstant   = "GIT_CONFIG_VALUE_"
	gitExtraHeaderKeyConstant              = "http.extraHeader"
	basicAuthorizationHeaderPrefixConstant = "Authorization: Basic "
	credentialSeparatorConstant            = ":"
	executorNotConfiguredMessageConstant   = "git executor not configured"
	sourceFieldNameConstant                = "source url"
	destinationFieldNameConstant           = "destination"
	repositoryPathFieldNameConstant        = "repository path"
	remoteFieldNameConstant                = "remote url"
	mirrorCloneErrorTemplateConstant       = "mirror clone of %s failed: %w"
	mirrorPushErrorTemplateConstant        = "mirror push to %s failed: %w"
	invalidInputErrorTemplateConstant      = "%s: %s"
)

// TokenUserName is the user name GitHub expects alongside a token in basic authentication.
const TokenUserName = "x-access-token"

// GitExecutor exposes the subset of shell execution used for mirroring.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ErrGitExecutorNotConfigured indicates NewRepositoryManager received a nil executor.
var ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// InvalidInputError surfaces validation issues for mirror inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// RepositoryManager performs mirror clones and pushes through the git CLI.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// MirrorClone copies every reference of sourceURL into a bare repository at destination.
// Interactive credential prompts are disabled so an unreachable source fails instead of hanging.
func (manager *RepositoryManager) MirrorClone(executionContext context.Context, sourceURL string, destination string) error {
	if len(strings.TrimSpace(sourceURL)) == 0 {
		return InvalidInputError{FieldName: sourceFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(destination)) == 0 {
		return InvalidInputError{FieldName: destinationFieldNameConstant, Message: requiredValueMessageConstant}
	}

	details := execshell.CommandDetails{
		Arguments:            []string{gitCloneSubcommandConstant, gitMirrorFlagConstant, gitEndOfOptionsConstant, sourceURL, destination},
		EnvironmentVariables: map[string]string{gitTerminalPromptVariableConstant: gitTerminalPromptDisabledConstant},
	}
	if _, executionError := manager.executor.ExecuteGit(executionContext, details); executionError != nil {
		return fmt.Errorf(mirrorCloneErrorTemplateConstant, execshell.RedactURL(sourceURL), executionError)
	}
	return nil
}

// MirrorPush pushes every reference of the repository at repositoryPath to remoteURL.
// The token travels in an http.extraHeader set through GIT_CONFIG_* variables, so it never
// appears in the command line or the remote URL.
func (manager *RepositoryManager) MirrorPush(executionContext context.Context, repositoryPath string, remoteURL string, token string) error {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(remoteURL)) == 0 {
		return InvalidInputError{FieldName: remoteFieldNameConstant, Message: requiredValueMessageConstant}
	}

	details := execshell.CommandDetails{
		Arguments:            []string{gitPushSubcommandConstant, gitMirrorFlagConstant, remoteURL},
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: AuthorizationEnvironment(token),
	}
	if _, executionError := manager.executor.ExecuteGit(executionContext, details); executionError != nil {
		return fmt.Errorf(mirrorPushErrorTemplateConstant, execshell.RedactURL(remoteURL), executionError)
	}
	return nil
}

// AuthorizationEnvironment returns the environment that makes git send the token as a basic
// authorization header and never prompt. An empty token only disables prompting.
// The header entry is appended after any GIT_CONFIG_* entries already present in the process environment.
func AuthorizationEnvironment(token string) map[string]string {
	environment := map[string]string{gitTerminalPromptVariableConstant: gitTerminalPromptDisabledConstant}
	trimmedToken := strings.TrimSpace(token)
	if len(trimmedToken) == 0 {
		return environment
	}

	encodedCredentials := base64.StdEncoding.EncodeToString([]byte(TokenUserName + credentialSeparatorConstant + trimmedToken))
	entryIndex := existingConfigurationEntryCount()
	entrySuffix := strconv.Itoa(entryIndex)
	environment[gitConfigKeyVariablePrefixConstant+entrySuffix] = gitExtraHeaderKeyConstant
	environment[gitConfigValueVariablePrefixConstant+entrySuffix] = basicAuthorizationHeaderPrefixConstant + encodedCredentials
	environment[gitConfigCountVariableConstant] = strconv.Itoa(entryIndex + 1)
	return environment
}

func existingConfigurationEntryCount() int {
	parsedCount, parseError := strconv.Atoi(strings.TrimSpace(os.Getenv(gitConfigCountVariableConstant)))
	if parseError != nil || parsedCount < 0 {
		return 0
	}
	return parsedCount
}
