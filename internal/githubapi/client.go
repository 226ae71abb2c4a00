package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v68/github"
)

const (
	publicGitHubHostConstant               = "github.com"
	httpsSchemePrefixConstant              = "https://"
	httpSchemePrefixConstant               = "http://"
	enterpriseAPIPathConstant              = "/api/v3/"
	enterpriseUploadPathConstant           = "/api/uploads/"
	urlPathSeparatorConstant               = "/"
	tokenMissingMessageConstant            = "github token must be provided"
	enterpriseURLsErrorTemplateConstant    = "configuring github enterprise host %s: %w"
	baseURLParseErrorTemplateConstant      = "parsing github api base url %s: %w"
	repositoryNotFoundTemplateConstant     = "%s/%s not found"
	authenticatedUserEndpointOwnerConstant = ""
)

// ErrTokenNotConfigured indicates NewClient received an empty token.
var ErrTokenNotConfigured = errors.New(tokenMissingMessageConstant)

// ClientConfiguration describes how to reach the GitHub REST API.
type ClientConfiguration struct {
	Token string
	// Host selects a GitHub Enterprise server; empty or github.com targets the public API.
	Host string
	// APIBaseURL overrides the computed REST endpoint.
	APIBaseURL string
	HTTPClient *http.Client
}

// RepositoryDetails carries the repository attributes the importer reports.
type RepositoryDetails struct {
	HTMLURL       string
	DefaultBranch string
	Private       bool
}

// CreateRepositoryRequest describes a repository to create.
type CreateRepositoryRequest struct {
	Owner              string
	Name               string
	Description        string
	Private            bool
	AuthenticatedLogin string
}

// Client performs the GitHub REST operations needed to import a repository.
type Client struct {
	restClient *gh.Client
}

// NewClient constructs an authenticated Client.
func NewClient(configuration ClientConfiguration) (*Client, error) {
	trimmedToken := strings.TrimSpace(configuration.Token)
	if len(trimmedToken) == 0 {
		return nil, ErrTokenNotConfigured
	}

	restClient := gh.NewClient(configuration.HTTPClient).WithAuthToken(trimmedToken)

	normalizedHost := NormalizeHost(configuration.Host)
	if normalizedHost != publicGitHubHostConstant {
		enterpriseClient, enterpriseError := restClient.WithEnterpriseURLs(
			httpsSchemePrefixConstant+normalizedHost+enterpriseAPIPathConstant,
			httpsSchemePrefixConstant+normalizedHost+enterpriseUploadPathConstant,
		)
		if enterpriseError != nil {
			return nil, fmt.Errorf(enterpriseURLsErrorTemplateConstant, normalizedHost, enterpriseError)
		}
		restClient = enterpriseClient
	}

	trimmedBaseURL := strings.TrimSpace(configuration.APIBaseURL)
	if len(trimmedBaseURL) > 0 {
		if !strings.HasSuffix(trimmedBaseURL, urlPathSeparatorConstant) {
			trimmedBaseURL += urlPathSeparatorConstant
		}
		parsedBaseURL, parseError := url.Parse(trimmedBaseURL)
		if parseError != nil {
			return nil, fmt.Errorf(baseURLParseErrorTemplateConstant, trimmedBaseURL, parseError)
		}
		restClient.BaseURL = parsedBaseURL
	}

	return &Client{restClient: restClient}, nil
}

// NormalizeHost lowercases the host and strips any scheme or trailing slash; empty means github.com.
func NormalizeHost(host string) string {
	normalized := strings.ToLower(strings.TrimSpace(host))
	normalized = strings.TrimPrefix(normalized, httpsSchemePrefixConstant)
	normalized = strings.TrimPrefix(normalized, httpSchemePrefixConstant)
	normalized = strings.TrimRight(normalized, urlPathSeparatorConstant)
	if len(normalized) == 0 {
		return publicGitHubHostConstant
	}
	return normalized
}

// ValidateToken returns the login the token authenticates as.
// Any HTTP response other than success is an AuthenticationError.
func (client *Client) ValidateToken(executionContext context.Context) (string, error) {
	user, response, requestError := client.restClient.Users.Get(executionContext, authenticatedUserEndpointOwnerConstant)
	if requestError != nil {
		if response == nil || response.Response == nil {
			return "", TransportError{Operation: validateTokenOperationNameConstant, Cause: requestError}
		}
		return "", AuthenticationError{StatusCode: response.StatusCode, Cause: requestError}
	}
	return user.GetLogin(), nil
}

// RepositoryExists reports whether owner/name is visible to the token.
func (client *Client) RepositoryExists(executionContext context.Context, owner string, name string) (bool, error) {
	_, found, lookupError := client.lookupRepository(executionContext, owner, name)
	return found, lookupError
}

// GetRepository returns repository details; a missing repository yields an OperationError with status 404.
func (client *Client) GetRepository(executionContext context.Context, owner string, name string) (RepositoryDetails, error) {
	details, found, lookupError := client.lookupRepository(executionContext, owner, name)
	if lookupError != nil {
		return RepositoryDetails{}, lookupError
	}
	if !found {
		return RepositoryDetails{}, OperationError{Operation: repositoryLookupOperationNameConstant, StatusCode: http.StatusNotFound, Cause: fmt.Errorf(repositoryNotFoundTemplateConstant, owner, name)}
	}
	return details, nil
}

func (client *Client) lookupRepository(executionContext context.Context, owner string, name string) (RepositoryDetails, bool, error) {
	if validationError := requireValues(owner, name); validationError != nil {
		return RepositoryDetails{}, false, validationError
	}

	repository, response, requestError := client.restClient.Repositories.Get(executionContext, owner, name)
	if requestError != nil {
		if isNotFound(response) {
			return RepositoryDetails{}, false, nil
		}
		return RepositoryDetails{}, false, classifyFailure(repositoryLookupOperationNameConstant, response, requestError)
	}
	return newRepositoryDetails(repository), true, nil
}

// ResolveOwnerType looks up whether the login belongs to a user or an organization.
func (client *Client) ResolveOwnerType(executionContext context.Context, owner string) (OwnerType, error) {
	trimmedOwner := strings.TrimSpace(owner)
	if len(trimmedOwner) == 0 {
		return "", InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}

	account, response, requestError := client.restClient.Users.Get(executionContext, trimmedOwner)
	if requestError != nil {
		return "", classifyFailure(ownerLookupOperationNameConstant, response, requestError)
	}
	return ParseOwnerType(account.GetType())
}

// CreateRepository creates the repository through the organization endpoint or the
// authenticated-user endpoint, depending on the owner's account type.
// A 422 response is reported as RepositoryConflictError.
func (client *Client) CreateRepository(executionContext context.Context, request CreateRepositoryRequest) (RepositoryDetails, error) {
	if validationError := requireValues(request.Owner, request.Name); validationError != nil {
		return RepositoryDetails{}, validationError
	}

	ownerType, ownerTypeError := client.ResolveOwnerType(executionContext, request.Owner)
	if ownerTypeError != nil {
		return RepositoryDetails{}, ownerTypeError
	}

	endpointOwner := request.Owner
	if !ownerType.IsOrganization() {
		if len(strings.TrimSpace(request.AuthenticatedLogin)) == 0 {
			return RepositoryDetails{}, InvalidInputError{FieldName: authenticatedLoginFieldNameConstant, Message: requiredValueMessageConstant}
		}
		if !strings.EqualFold(request.Owner, request.AuthenticatedLogin) {
			return RepositoryDetails{}, OwnerMismatchError{Owner: request.Owner, AuthenticatedLogin: request.AuthenticatedLogin}
		}
		endpointOwner = authenticatedUserEndpointOwnerConstant
	}

	repositoryPayload := &gh.Repository{
		Name:    gh.Ptr(request.Name),
		Private: gh.Ptr(request.Private),
	}
	if len(strings.TrimSpace(request.Description)) > 0 {
		repositoryPayload.Description = gh.Ptr(request.Description)
	}

	createdRepository, response, requestError := client.restClient.Repositories.Create(executionContext, endpointOwner, repositoryPayload)
	if requestError != nil {
		if isStatus(response, http.StatusUnprocessableEntity) {
			return RepositoryDetails{}, RepositoryConflictError{Owner: request.Owner, Repository: request.Name, Cause: requestError}
		}
		return RepositoryDetails{}, classifyFailure(createRepositoryOperationNameConstant, response, requestError)
	}
	return newRepositoryDetails(createdRepository), nil
}

// SetDefaultBranch switches the default branch, skipping the update when it already matches.
// The returned flag reports whether an update was sent.
func (client *Client) SetDefaultBranch(executionContext context.Context, owner string, name string, branch string) (bool, error) {
	trimmedBranch := strings.TrimSpace(branch)
	if len(trimmedBranch) == 0 {
		return false, InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	currentDetails, lookupError := client.GetRepository(executionContext, owner, name)
	if lookupError != nil {
		return false, lookupError
	}
	if currentDetails.DefaultBranch == trimmedBranch {
		return false, nil
	}

	_, response, requestError := client.restClient.Repositories.Edit(executionContext, owner, name, &gh.Repository{DefaultBranch: gh.Ptr(trimmedBranch)})
	if requestError != nil {
		return false, classifyFailure(updateDefaultBranchOperationNameConstant, response, requestError)
	}
	return true, nil
}

func newRepositoryDetails(repository *gh.Repository) RepositoryDetails {
	return RepositoryDetails{
		HTMLURL:       repository.GetHTMLURL(),
		DefaultBranch: repository.GetDefaultBranch(),
		Private:       repository.GetPrivate(),
	}
}

func requireValues(owner string, name string) error {
	if len(strings.TrimSpace(owner)) == 0 {
		return InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(name)) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return nil
}
