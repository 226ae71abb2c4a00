package importer

import (
	"fmt"
	"os"
	"strings"
)

const (
	workspacePatternTemplateConstant     = "git-import-%s-*"
	workspaceCreateErrorTemplateConstant = "creating temporary directory: %w"
	workspaceRemoveErrorTemplateConstant = "removing temporary directory %s: %w"
	workspaceNameReplacementsConstant    = "/\\:*"
	workspaceNameReplacementRuneConstant = '_'
)

// OSWorkspace allocates uniquely named temporary directories on the local filesystem.
type OSWorkspace struct{}

// NewOSWorkspace constructs an OSWorkspace.
func NewOSWorkspace() *OSWorkspace {
	return &OSWorkspace{}
}

// Create makes a fresh directory named after the repository under temporaryRoot,
// or under the OS temporary directory when temporaryRoot is empty.
func (workspace *OSWorkspace) Create(temporaryRoot string, repositoryName string) (string, error) {
	pattern := fmt.Sprintf(workspacePatternTemplateConstant, sanitizeWorkspaceName(repositoryName))
	directoryPath, creationError := os.MkdirTemp(strings.TrimSpace(temporaryRoot), pattern)
	if creationError != nil {
		return "", fmt.Errorf(workspaceCreateErrorTemplateConstant, creationError)
	}
	return directoryPath, nil
}

// Remove deletes the directory and everything below it.
func (workspace *OSWorkspace) Remove(path string) error {
	if removalError := os.RemoveAll(path); removalError != nil {
		return fmt.Errorf(workspaceRemoveErrorTemplateConstant, path, removalError)
	}
	return nil
}

func sanitizeWorkspaceName(repositoryName string) string {
	return strings.Map(func(character rune) rune {
		if strings.ContainsRune(workspaceNameReplacementsConstant, character) {
			return workspaceNameReplacementRuneConstant
		}
		return character
	}, repositoryName)
}
