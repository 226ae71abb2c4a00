package githubauth_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitimporter/internal/githubauth"
)

const (
	testExplicitTokenConstant     = "explicit-token"
	testEnvironmentTokenConstant  = "environment-token"
	testAPITokenConstant          = "api-token"
	testCustomVariableConstant    = "IMPORT_TOKEN"
	testCustomTokenConstant       = "custom-token"
	testTokenFileNameConstant     = "token.txt"
	testTokenFileContentsConstant = "  file-token\n"
	testFileTokenConstant         = "file-token"
)

func staticEnvironment(values map[string]string) githubauth.EnvironmentLookup {
	return func(key string) (string, bool) {
		value, exists := values[key]
		return value, exists
	}
}

func TestResolverResolutionOrder(testInstance *testing.T) {
	tokenDirectory := testInstance.TempDir()
	tokenFilePath := filepath.Join(tokenDirectory, testTokenFileNameConstant)
	require.NoError(testInstance, os.WriteFile(tokenFilePath, []byte(testTokenFileContentsConstant), 0o600))

	testCases := []struct {
		name           string
		environment    map[string]string
		explicitToken  string
		tokenSource    string
		expectedToken  string
		expectedOrigin githubauth.TokenOrigin
		expectedError  error
		expectAnyError bool
	}{
		{
			name:           "explicit_wins",
			environment:    map[string]string{githubauth.EnvGitHubToken: testEnvironmentTokenConstant},
			explicitToken:  "  " + testExplicitTokenConstant + " ",
			expectedToken:  testExplicitTokenConstant,
			expectedOrigin: githubauth.TokenOriginExplicit,
		},
		{
			name:           "environment_source",
			environment:    map[string]string{testCustomVariableConstant: testCustomTokenConstant, githubauth.EnvGitHubToken: testEnvironmentTokenConstant},
			tokenSource:    "env:" + testCustomVariableConstant,
			expectedToken:  testCustomTokenConstant,
			expectedOrigin: githubauth.TokenOriginSource,
		},
		{
			name:           "file_source",
			environment:    map[string]string{},
			tokenSource:    "file:" + tokenFilePath,
			expectedToken:  testFileTokenConstant,
			expectedOrigin: githubauth.TokenOriginSource,
		},
		{
			name:           "missing_source_variable",
			environment:    map[string]string{githubauth.EnvGitHubToken: testEnvironmentTokenConstant},
			tokenSource:    "env:" + testCustomVariableConstant,
			expectAnyError: true,
		},
		{
			name:           "environment_preference",
			environment:    map[string]string{githubauth.EnvGitHubCLIToken: " ", githubauth.EnvGitHubToken: testEnvironmentTokenConstant, githubauth.EnvGitHubAPIToken: testAPITokenConstant},
			expectedToken:  testEnvironmentTokenConstant,
			expectedOrigin: githubauth.TokenOriginEnvironment,
		},
		{
			name:           "api_token_fallback",
			environment:    map[string]string{githubauth.EnvGitHubAPIToken: testAPITokenConstant},
			expectedToken:  testAPITokenConstant,
			expectedOrigin: githubauth.TokenOriginEnvironment,
		},
		{
			name:          "nothing_found",
			environment:   map[string]string{},
			expectedError: githubauth.ErrTokenNotFound,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolver := githubauth.NewResolver(staticEnvironment(testCase.environment), nil)
			resolvedToken, resolveError := resolver.Resolve(testCase.explicitToken, testCase.tokenSource)

			switch {
			case testCase.expectedError != nil:
				require.ErrorIs(testInstance, resolveError, testCase.expectedError)
			case testCase.expectAnyError:
				require.Error(testInstance, resolveError)
				require.NotErrorIs(testInstance, resolveError, githubauth.ErrTokenNotFound)
			default:
				require.NoError(testInstance, resolveError)
				require.Equal(testInstance, testCase.expectedToken, resolvedToken.Value)
				require.Equal(testInstance, testCase.expectedOrigin, resolvedToken.Origin)
			}
		})
	}
}

func TestResolverFileSourceErrors(testInstance *testing.T) {
	readFailure := errors.New("permission denied")
	testCases := []struct {
		name     string
		reader   githubauth.FileReader
		contains string
	}{
		{
			name:     "read_failure",
			reader:   func(string) ([]byte, error) { return nil, readFailure },
			contains: "unable to read token file",
		},
		{
			name:     "empty_file",
			reader:   func(string) ([]byte, error) { return []byte("  \n"), nil },
			contains: "is empty",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolver := githubauth.NewResolver(staticEnvironment(nil), testCase.reader)
			_, resolveError := resolver.Resolve("", "file:/secrets/token")
			require.Error(testInstance, resolveError)
			require.Contains(testInstance, resolveError.Error(), testCase.contains)
		})
	}
}

func TestParseTokenSource(testInstance *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expected      githubauth.TokenSourceConfiguration
		expectFailure bool
	}{
		{name: "bare_variable", input: testCustomVariableConstant, expected: githubauth.TokenSourceConfiguration{Type: githubauth.TokenSourceTypeEnvironment, Reference: testCustomVariableConstant}},
		{name: "env_prefix", input: " ENV: " + testCustomVariableConstant, expected: githubauth.TokenSourceConfiguration{Type: githubauth.TokenSourceTypeEnvironment, Reference: testCustomVariableConstant}},
		{name: "file_prefix", input: "file:~/token", expected: githubauth.TokenSourceConfiguration{Type: githubauth.TokenSourceTypeFile, Reference: "~/token"}},
		{name: "empty", input: " ", expectFailure: true},
		{name: "empty_env_reference", input: "env:", expectFailure: true},
		{name: "empty_file_reference", input: "file: ", expectFailure: true},
		{name: "unsupported_type", input: "vault:secret/token", expectFailure: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configuration, parseError := githubauth.ParseTokenSource(testCase.input)
			if testCase.expectFailure {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expected, configuration)
		})
	}
}
