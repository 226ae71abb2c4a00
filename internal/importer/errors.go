package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gitimporter/internal/gitrepo"
)

const (
	importErrorTemplateConstant            = "%s error during %s: %v"
	invalidInputErrorTemplateConstant      = "%s: %s"
	verificationMismatchTemplateConstant   = "pushed references differ from the mirror (missing: %s; mismatched: %s; unexpected: %s)"
	referenceListSeparatorConstant         = ", "
	emptyReferenceListConstant             = "none"
	hostClientMissingMessageConstant       = "host api client not configured"
	mirrorOperationsMissingMessageConstant = "mirror operations not configured"
	overwriteConfirmationMessageConstant   = "repository already exists and no confirmation prompter is available; rerun with --yes"
)

// ErrorKind classifies why an import failed.
type ErrorKind string

// Error kinds, each mapped to a distinct exit status by the CLI.
const (
	ErrorKindDependencyMissing ErrorKind = ErrorKind("dependency_missing")
	ErrorKindInvalidInput      ErrorKind = ErrorKind("invalid_input")
	ErrorKindAuth              ErrorKind = ErrorKind("auth")
	ErrorKindTransport         ErrorKind = ErrorKind("transport")
	ErrorKindCreate            ErrorKind = ErrorKind("create")
	ErrorKindClone             ErrorKind = ErrorKind("clone")
	ErrorKindPush              ErrorKind = ErrorKind("push")
	ErrorKindAPI               ErrorKind = ErrorKind("api")
	ErrorKindVerification      ErrorKind = ErrorKind("verification")
)

var (
	// ErrHostClientNotConfigured indicates NewService received no HostAPIClient.
	ErrHostClientNotConfigured = errors.New(hostClientMissingMessageConstant)
	// ErrMirrorOperationsNotConfigured indicates NewService received no MirrorOperations.
	ErrMirrorOperationsNotConfigured = errors.New(mirrorOperationsMissingMessageConstant)

	errOverwriteConfirmationUnavailable = errors.New(overwriteConfirmationMessageConstant)
)

// ImportError is the terminal failure of an import, tagged with its kind and the stage it occurred in.
type ImportError struct {
	Kind  ErrorKind
	Stage Stage
	Cause error
}

// Error describes the failure.
func (importError ImportError) Error() string {
	return fmt.Sprintf(importErrorTemplateConstant, importError.Kind, importError.Stage, importError.Cause)
}

// Unwrap exposes the underlying cause.
func (importError ImportError) Unwrap() error {
	return importError.Cause
}

func newImportError(kind ErrorKind, stage Stage, cause error) ImportError {
	return ImportError{Kind: kind, Stage: stage, Cause: cause}
}

// KindOf extracts the ErrorKind carried by err, reporting false when err is not an ImportError.
func KindOf(err error) (ErrorKind, bool) {
	var importError ImportError
	if errors.As(err, &importError) {
		return importError.Kind, true
	}
	return "", false
}

// InvalidInputError describes an option validation failure.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// VerificationMismatchError reports references that did not arrive on the target intact.
type VerificationMismatchError struct {
	Comparison gitrepo.ReferenceComparison
}

// Error lists the differing references.
func (mismatchError VerificationMismatchError) Error() string {
	return fmt.Sprintf(verificationMismatchTemplateConstant,
		formatReferenceList(mismatchError.Comparison.MissingOnRemote),
		formatReferenceList(mismatchError.Comparison.Mismatched),
		formatReferenceList(mismatchError.Comparison.ExtraOnRemote),
	)
}

func formatReferenceList(references []string) string {
	if len(references) == 0 {
		return emptyReferenceListConstant
	}
	return strings.Join(references, referenceListSeparatorConstant)
}
