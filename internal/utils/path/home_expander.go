package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

var tildeWithPathSeparatorPrefix = tildeSymbolConstant + string(os.PathSeparator)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// EnvironmentExpander substitutes environment references such as $TMPDIR in a path.
type EnvironmentExpander func(candidatePath string) string

// HomeExpander converts user home shortcuts and environment references to usable paths.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	environmentExpander   EnvironmentExpander
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewHomeExpander constructs a HomeExpander using the operating system lookups.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProviders(os.UserHomeDir, os.ExpandEnv)
}

// NewHomeExpanderWithProviders constructs a HomeExpander with custom lookups.
func NewHomeExpanderWithProviders(homeProvider HomeDirectoryProvider, environmentExpander EnvironmentExpander) *HomeExpander {
	if homeProvider == nil {
		homeProvider = os.UserHomeDir
	}
	if environmentExpander == nil {
		environmentExpander = os.ExpandEnv
	}
	return &HomeExpander{homeDirectoryProvider: homeProvider, environmentExpander: environmentExpander}
}

// Expand trims the path, substitutes environment references, and resolves a leading tilde.
func (expander *HomeExpander) Expand(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if expander == nil || len(trimmedPath) == 0 {
		return trimmedPath
	}

	expandedPath := expander.environmentExpander(trimmedPath)
	if !strings.HasPrefix(expandedPath, tildeSymbolConstant) {
		return expandedPath
	}

	resolvedHomeDirectory := expander.resolveHomeDirectory()
	if len(resolvedHomeDirectory) == 0 {
		return expandedPath
	}

	if expandedPath == tildeSymbolConstant {
		return resolvedHomeDirectory
	}

	for _, prefix := range []string{tildeForwardSlashPrefixConstant, tildeWithPathSeparatorPrefix} {
		if strings.HasPrefix(expandedPath, prefix) {
			return filepath.Join(resolvedHomeDirectory, strings.TrimPrefix(expandedPath, prefix))
		}
	}

	return expandedPath
}

func (expander *HomeExpander) resolveHomeDirectory() string {
	expander.initializationGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	if expander.homeDirectoryError != nil {
		return ""
	}
	return expander.homeDirectory
}
