package githubapi

import (
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v68/github"
)

const (
	invalidInputErrorTemplateConstant        = "%s: %s"
	authenticationErrorTemplateConstant      = "github authentication failed with status %d: %v"
	transportErrorTemplateConstant           = "%s request could not reach github: %v"
	operationErrorTemplateConstant           = "%s failed with status %d: %v"
	repositoryConflictErrorTemplateConstant  = "repository %s/%s cannot be created: %v"
	ownerMismatchErrorTemplateConstant       = "cannot create a repository for user %q while authenticated as %q"
	requiredValueMessageConstant             = "value required"
	validateTokenOperationNameConstant       = OperationName("ValidateToken")
	repositoryLookupOperationNameConstant    = OperationName("GetRepository")
	ownerLookupOperationNameConstant         = OperationName("ResolveOwnerType")
	createRepositoryOperationNameConstant    = OperationName("CreateRepository")
	updateDefaultBranchOperationNameConstant = OperationName("UpdateDefaultBranch")
	ownerFieldNameConstant                   = "owner"
	repositoryFieldNameConstant              = "repository"
	branchFieldNameConstant                  = "branch"
	authenticatedLoginFieldNameConstant      = "authenticated login"
)

// OperationName identifies a GitHub REST workflow performed by the client.
type OperationName string

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// AuthenticationError reports a token that the API refused.
type AuthenticationError struct {
	StatusCode int
	Cause      error
}

// Error describes the rejected token.
func (authenticationError AuthenticationError) Error() string {
	return fmt.Sprintf(authenticationErrorTemplateConstant, authenticationError.StatusCode, authenticationError.Cause)
}

// Unwrap exposes the underlying API error.
func (authenticationError AuthenticationError) Unwrap() error {
	return authenticationError.Cause
}

// TransportError reports a request that never produced an HTTP response.
type TransportError struct {
	Operation OperationName
	Cause     error
}

// Error describes the transport failure.
func (transportError TransportError) Error() string {
	return fmt.Sprintf(transportErrorTemplateConstant, transportError.Operation, transportError.Cause)
}

// Unwrap exposes the underlying network error.
func (transportError TransportError) Unwrap() error {
	return transportError.Cause
}

// OperationError reports an unexpected HTTP status.
type OperationError struct {
	Operation  OperationName
	StatusCode int
	Cause      error
}

// Error describes the failed operation.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation, operationError.StatusCode, operationError.Cause)
}

// Unwrap exposes the underlying API error.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// RepositoryConflictError reports a 422 response to a create request, typically a name already taken.
type RepositoryConflictError struct {
	Owner      string
	Repository string
	Cause      error
}

// Error describes the conflict.
func (conflictError RepositoryConflictError) Error() string {
	return fmt.Sprintf(repositoryConflictErrorTemplateConstant, conflictError.Owner, conflictError.Repository, conflictError.Cause)
}

// Unwrap exposes the underlying API error.
func (conflictError RepositoryConflictError) Unwrap() error {
	return conflictError.Cause
}

// OwnerMismatchError reports an attempt to create a repository in another user's namespace.
type OwnerMismatchError struct {
	Owner              string
	AuthenticatedLogin string
}

// Error describes the mismatch.
func (mismatchError OwnerMismatchError) Error() string {
	return fmt.Sprintf(ownerMismatchErrorTemplateConstant, mismatchError.Owner, mismatchError.AuthenticatedLogin)
}

func classifyFailure(operation OperationName, response *gh.Response, failure error) error {
	if response == nil || response.Response == nil {
		return TransportError{Operation: operation, Cause: failure}
	}
	return OperationError{Operation: operation, StatusCode: response.StatusCode, Cause: failure}
}

func responseStatus(response *gh.Response) int {
	if response == nil || response.Response == nil {
		return 0
	}
	return response.StatusCode
}

func isStatus(response *gh.Response, statusCode int) bool {
	return responseStatus(response) == statusCode
}

func isNotFound(response *gh.Response) bool {
	return isStatus(response, http.StatusNotFound)
}
