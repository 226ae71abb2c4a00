package importer

import (
	"strings"
	"time"
)

const (
	tokenFieldNameConstant          = "token"
	ownerFieldNameConstant          = "owner"
	sourceFieldNameConstant         = "source"
	repositoryNameFieldNameConstant = "name"
	branchFieldNameConstant         = "branch"
	requiredValueMessageConstant    = "value required"
	whitespaceMessageConstant       = "must not contain whitespace"
	sameRepositoryMessageConstant   = "source and target are the same repository"
)

// Stage names a step of the import state machine.
type Stage string

// Import stages in execution order, followed by the terminal states.
const (
	StageInit             Stage = Stage("init")
	StageValidateToken    Stage = Stage("validate_token")
	StageCheckExists      Stage = Stage("check_exists")
	StageCreateRepository Stage = Stage("create_repository")
	StageConfirmOverwrite Stage = Stage("confirm_overwrite")
	StageClone            Stage = Stage("clone")
	StagePush             Stage = Stage("push")
	StageSetDefaultBranch Stage = Stage("set_default_branch")
	StageVerify           Stage = Stage("verify")
	StageCleanup          Stage = Stage("cleanup")
	StageDone             Stage = Stage("done")
	StageFailed           Stage = Stage("failed")
)

// Outcome summarizes how a run ended.
type Outcome string

// Run outcomes.
const (
	OutcomeCreated     Outcome = Outcome("created")
	OutcomeOverwritten Outcome = Outcome("overwritten")
	OutcomeDeclined    Outcome = Outcome("declined")
)

// Options holds the parameters of a single import. It is built once and never modified.
type Options struct {
	Token          string
	Owner          string
	SourceURL      string
	RepositoryName string
	DefaultBranch  string
	Description    string
	Host           string
	TemporaryRoot  string
	Private        bool
	Verify         bool
	AssumeYes      bool
}

// Validate reports the first missing or malformed option as an invalid_input ImportError.
func (options Options) Validate() error {
	requiredValues := []struct {
		fieldName string
		value     string
	}{
		{fieldName: tokenFieldNameConstant, value: options.Token},
		{fieldName: ownerFieldNameConstant, value: options.Owner},
		{fieldName: sourceFieldNameConstant, value: options.SourceURL},
		{fieldName: repositoryNameFieldNameConstant, value: options.RepositoryName},
	}
	for _, requiredValue := range requiredValues {
		if len(strings.TrimSpace(requiredValue.value)) == 0 {
			return newImportError(ErrorKindInvalidInput, StageInit, InvalidInputError{FieldName: requiredValue.fieldName, Message: requiredValueMessageConstant})
		}
	}

	for _, identifier := range []struct {
		fieldName string
		value     string
	}{
		{fieldName: ownerFieldNameConstant, value: options.Owner},
		{fieldName: repositoryNameFieldNameConstant, value: options.RepositoryName},
		{fieldName: branchFieldNameConstant, value: options.DefaultBranch},
	} {
		if strings.ContainsAny(identifier.value, " \t\n") {
			return newImportError(ErrorKindInvalidInput, StageInit, InvalidInputError{FieldName: identifier.fieldName, Message: whitespaceMessageConstant})
		}
	}
	return nil
}

// Result describes a finished import.
type Result struct {
	Outcome              Outcome
	AuthenticatedLogin   string
	Owner                string
	RepositoryName       string
	SourceURL            string
	TargetURL            string
	RepositoryURL        string
	DefaultBranch        string
	DefaultBranchChanged bool
	Verified             bool
	BranchCount          int
	TagCount             int
	Duration             time.Duration
}
