package cli

import (
	"github.com/temirov/gitimporter/internal/importer"
)

const (
	exitCodeSuccessConstant           = 0
	exitCodeGenericFailureConstant    = 1
	exitCodeInvalidInputConstant      = 2
	exitCodeDependencyMissingConstant = 3
	exitCodeAuthConstant              = 4
	exitCodeTransportConstant         = 5
	exitCodeCreateConstant            = 6
	exitCodeCloneConstant             = 7
	exitCodePushConstant              = 8
	exitCodeAPIConstant               = 9
	exitCodeVerificationConstant      = 10
)

var exitCodeByErrorKind = map[importer.ErrorKind]int{
	importer.ErrorKindInvalidInput:      exitCodeInvalidInputConstant,
	importer.ErrorKindDependencyMissing: exitCodeDependencyMissingConstant,
	importer.ErrorKindAuth:              exitCodeAuthConstant,
	importer.ErrorKindTransport:         exitCodeTransportConstant,
	importer.ErrorKindCreate:            exitCodeCreateConstant,
	importer.ErrorKindClone:             exitCodeCloneConstant,
	importer.ErrorKindPush:              exitCodePushConstant,
	importer.ErrorKindAPI:               exitCodeAPIConstant,
	importer.ErrorKindVerification:      exitCodeVerificationConstant,
}

// ExitCode converts an execution error into the process exit status.
// A nil error, including a declined overwrite, exits with zero.
func ExitCode(executionError error) int {
	if executionError == nil {
		return exitCodeSuccessConstant
	}

	errorKind, classified := importer.KindOf(executionError)
	if !classified {
		return exitCodeGenericFailureConstant
	}

	if exitCode, known := exitCodeByErrorKind[errorKind]; known {
		return exitCode
	}
	return exitCodeGenericFailureConstant
}
