package githubauth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	pathutils "github.com/temirov/gitimporter/internal/utils/path"
)

// Environment variable names consulted when no token is supplied explicitly.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

const (
	tokenNotFoundMessageConstant          = "github token not provided"
	tokenSourceResolutionTemplateConstant = "token source %s: %w"
)

// TokenOrigin records where a resolved token came from.
type TokenOrigin string

// Token origins in resolution order.
const (
	TokenOriginExplicit    TokenOrigin = TokenOrigin("explicit")
	TokenOriginSource      TokenOrigin = TokenOrigin("token_source")
	TokenOriginEnvironment TokenOrigin = TokenOrigin("environment")
	TokenOriginPrompt      TokenOrigin = TokenOrigin("prompt")
)

// ErrTokenNotFound indicates that none of the configured locations provided a token.
var ErrTokenNotFound = errors.New(tokenNotFoundMessageConstant)

var tokenPreference = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// ResolvedToken pairs a token value with its origin.
type ResolvedToken struct {
	Value  string
	Origin TokenOrigin
}

// EnvironmentLookup obtains an environment variable value.
type EnvironmentLookup func(key string) (string, bool)

// FileReader reads the contents of a file path.
type FileReader func(path string) ([]byte, error)

// Resolver locates a GitHub token from an explicit value, a token source, or the environment.
type Resolver struct {
	environmentLookup EnvironmentLookup
	fileReader        FileReader
	pathExpander      *pathutils.HomeExpander
}

// NewResolver constructs a Resolver; nil collaborators fall back to the operating system.
func NewResolver(environmentLookup EnvironmentLookup, fileReader FileReader) *Resolver {
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	if fileReader == nil {
		fileReader = os.ReadFile
	}
	return &Resolver{
		environmentLookup: environmentLookup,
		fileReader:        fileReader,
		pathExpander:      pathutils.NewHomeExpander(),
	}
}

// Resolve returns the first token found, checking the explicit value, then the token source
// declaration, then GH_TOKEN, GITHUB_TOKEN and GITHUB_API_TOKEN.
// ErrTokenNotFound is returned when every location is empty.
func (resolver *Resolver) Resolve(explicitToken string, tokenSource string) (ResolvedToken, error) {
	if trimmedToken := strings.TrimSpace(explicitToken); len(trimmedToken) > 0 {
		return ResolvedToken{Value: trimmedToken, Origin: TokenOriginExplicit}, nil
	}

	if len(strings.TrimSpace(tokenSource)) > 0 {
		sourceConfiguration, parseError := ParseTokenSource(tokenSource)
		if parseError != nil {
			return ResolvedToken{}, parseError
		}
		tokenValue, sourceError := resolver.ResolveSource(sourceConfiguration)
		if sourceError != nil {
			return ResolvedToken{}, fmt.Errorf(tokenSourceResolutionTemplateConstant, sourceConfiguration, sourceError)
		}
		return ResolvedToken{Value: tokenValue, Origin: TokenOriginSource}, nil
	}

	for _, environmentKey := range tokenPreference {
		if value, found := lookupNonEmpty(resolver.environmentLookup, environmentKey); found {
			return ResolvedToken{Value: value, Origin: TokenOriginEnvironment}, nil
		}
	}

	return ResolvedToken{}, ErrTokenNotFound
}

func lookupNonEmpty(environmentLookup EnvironmentLookup, key string) (string, bool) {
	value, exists := environmentLookup(key)
	if !exists {
		return "", false
	}
	value = strings.TrimSpace(value)
	if len(value) == 0 {
		return "", false
	}
	return value, true
}
