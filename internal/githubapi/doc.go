// Package githubapi wraps the GitHub REST API operations used by the importer.
//
// Client validates tokens, checks for and creates repositories, resolves whether an
// owner is a user or an organization, and updates the default branch. Failures are
// classified into AuthenticationError, TransportError, OperationError,
// RepositoryConflictError and OwnerMismatchError so callers can map them to exit codes.
package githubapi
