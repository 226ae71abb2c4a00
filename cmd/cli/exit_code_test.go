package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitimporter/cmd/cli"
	"github.com/temirov/gitimporter/internal/importer"
)

func TestExitCode(testInstance *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{name: "success", err: nil, expectedCode: 0},
		{name: "unclassified", err: errors.New("unknown flag: --bogus"), expectedCode: 1},
		{name: "invalid_input", err: importer.ImportError{Kind: importer.ErrorKindInvalidInput, Stage: importer.StageInit}, expectedCode: 2},
		{name: "dependency_missing", err: importer.ImportError{Kind: importer.ErrorKindDependencyMissing, Stage: importer.StageInit}, expectedCode: 3},
		{name: "auth", err: importer.ImportError{Kind: importer.ErrorKindAuth, Stage: importer.StageValidateToken}, expectedCode: 4},
		{name: "transport", err: importer.ImportError{Kind: importer.ErrorKindTransport, Stage: importer.StageCheckExists}, expectedCode: 5},
		{name: "create", err: importer.ImportError{Kind: importer.ErrorKindCreate, Stage: importer.StageCreateRepository}, expectedCode: 6},
		{name: "clone", err: importer.ImportError{Kind: importer.ErrorKindClone, Stage: importer.StageClone}, expectedCode: 7},
		{name: "push", err: importer.ImportError{Kind: importer.ErrorKindPush, Stage: importer.StagePush}, expectedCode: 8},
		{name: "api", err: importer.ImportError{Kind: importer.ErrorKindAPI, Stage: importer.StageSetDefaultBranch}, expectedCode: 9},
		{name: "verification", err: importer.ImportError{Kind: importer.ErrorKindVerification, Stage: importer.StageVerify}, expectedCode: 10},
		{name: "wrapped", err: fmt.Errorf("import failed: %w", importer.ImportError{Kind: importer.ErrorKindPush, Stage: importer.StagePush}), expectedCode: 8},
		{name: "unknown_kind", err: importer.ImportError{Kind: importer.ErrorKind("other")}, expectedCode: 1},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedCode, cli.ExitCode(testCase.err))
		})
	}
}
