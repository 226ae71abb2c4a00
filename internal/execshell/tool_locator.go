package execshell

import (
	"fmt"
	"os/exec"
)

const (
	missingToolTemplateConstant = "required tool %q not found on PATH: %v"
)

// ExecutableLookup resolves an executable name to its path.
type ExecutableLookup func(file string) (string, error)

// MissingToolError reports an executable that could not be located.
type MissingToolError struct {
	Tool  CommandName
	Cause error
}

// Error describes the missing executable.
func (missingError MissingToolError) Error() string {
	return fmt.Sprintf(missingToolTemplateConstant, string(missingError.Tool), missingError.Cause)
}

// Unwrap exposes the lookup failure.
func (missingError MissingToolError) Unwrap() error {
	return missingError.Cause
}

// ToolLocator verifies that external executables are installed.
type ToolLocator struct {
	lookup ExecutableLookup
}

// NewToolLocator constructs a ToolLocator; a nil lookup falls back to exec.LookPath.
func NewToolLocator(lookup ExecutableLookup) *ToolLocator {
	if lookup == nil {
		lookup = exec.LookPath
	}
	return &ToolLocator{lookup: lookup}
}

// RequireTools returns a MissingToolError for the first executable that cannot be found.
func (locator *ToolLocator) RequireTools(tools ...CommandName) error {
	for _, tool := range tools {
		if _, lookupError := locator.lookup(string(tool)); lookupError != nil {
			return MissingToolError{Tool: tool, Cause: lookupError}
		}
	}
	return nil
}
