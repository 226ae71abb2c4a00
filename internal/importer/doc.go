// Package importer mirrors a git repository into a GitHub repository.
//
// Service runs a linear state machine: validate the token, check for or create the
// target repository, mirror-clone the source into a temporary directory, mirror-push
// it to the target, optionally switch the default branch, verify the pushed references,
// and remove the temporary directory. Failures are reported as ImportError values tagged
// with an ErrorKind and the Stage that failed. CommandBuilder exposes the service as the
// "import" cobra command.
package importer
