package gitrepo

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	sshProtocolPrefixConstant            = "ssh://"
	sshUserDelimiterConstant             = "@"
	sshPathDelimiterConstant             = ":"
	httpsProtocolPrefixConstant          = "https://"
	gitUserPrefixConstant                = "git@"
	schemeSeparatorConstant              = "://"
	pathSeparatorConstant                = "/"
	repositoryNameSeparatorsConstant     = "/:\\"
	gitSuffixConstant                    = ".git"
	remoteURLParseErrorTemplateConstant  = "%s: %s"
	requiredValueMessageConstant         = "value required"
	invalidRemoteURLMessageConstant      = "invalid remote url"
	unknownProtocolMessageConstant       = "unsupported remote protocol"
	repositoryNameMissingMessageConstant = "repository name cannot be derived from the source url"
)

// RemoteProtocol enumerates supported git remote protocols.
type RemoteProtocol string

// Supported remote protocols.
const (
	RemoteProtocolSSH   RemoteProtocol = RemoteProtocol("ssh")
	RemoteProtocolHTTPS RemoteProtocol = RemoteProtocol("https")
)

// RemoteURL represents a hosted repository address.
type RemoteURL struct {
	Protocol   RemoteProtocol
	Host       string
	Owner      string
	Repository string
}

// SameRepository reports whether both addresses point at the same host, owner and repository,
// ignoring protocol and letter case.
func (remote RemoteURL) SameRepository(other RemoteURL) bool {
	return strings.EqualFold(remote.Host, other.Host) &&
		strings.EqualFold(remote.Owner, other.Owner) &&
		strings.EqualFold(remote.Repository, other.Repository)
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// UnsupportedProtocolError indicates the provided protocol cannot be formatted.
type UnsupportedProtocolError struct {
	Protocol RemoteProtocol
}

// Error describes the unsupported protocol.
func (protocolError UnsupportedProtocolError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, protocolError.Protocol, unknownProtocolMessageConstant)
}

// RepositoryNameFromURL derives the repository name from the final path segment of a clone URL,
// stripping a trailing .git. URLs, scp-like addresses and local paths are accepted.
func RepositoryNameFromURL(source string) (string, error) {
	trimmedSource := strings.TrimSpace(source)
	if len(trimmedSource) == 0 {
		return "", RemoteURLParseError{Input: source, Message: requiredValueMessageConstant}
	}

	candidatePath := trimmedSource
	if strings.Contains(trimmedSource, schemeSeparatorConstant) {
		parsedURL, parseError := url.Parse(trimmedSource)
		if parseError != nil {
			return "", RemoteURLParseError{Input: source, Message: invalidRemoteURLMessageConstant}
		}
		candidatePath = parsedURL.Path
	}

	candidatePath = strings.TrimRight(candidatePath, repositoryNameSeparatorsConstant)
	lastSeparatorIndex := strings.LastIndexAny(candidatePath, repositoryNameSeparatorsConstant)
	repositoryName := strings.TrimSuffix(candidatePath[lastSeparatorIndex+1:], gitSuffixConstant)
	if len(strings.TrimSpace(repositoryName)) == 0 {
		return "", RemoteURLParseError{Input: source, Message: repositoryNameMissingMessageConstant}
	}
	return repositoryName, nil
}

// ParseRemoteURL converts a hosted owner/repository address into a structured representation.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	}

	switch {
	case strings.HasPrefix(trimmedRemote, sshProtocolPrefixConstant):
		return parseSSHRemote(strings.TrimPrefix(trimmedRemote, sshProtocolPrefixConstant))
	case strings.HasPrefix(trimmedRemote, gitUserPrefixConstant):
		return parseSSHRemote(trimmedRemote)
	case strings.HasPrefix(trimmedRemote, httpsProtocolPrefixConstant):
		return parseHTTPSRemote(strings.TrimPrefix(trimmedRemote, httpsProtocolPrefixConstant))
	default:
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
}

func parseSSHRemote(remote string) (RemoteURL, error) {
	userSplitIndex := strings.Index(remote, sshUserDelimiterConstant)
	if userSplitIndex == -1 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	hostAndPath := remote[userSplitIndex+1:]

	var host string
	var path string
	if pathSplitIndex := strings.Index(hostAndPath, sshPathDelimiterConstant); pathSplitIndex == -1 {
		slashIndex := strings.Index(hostAndPath, pathSeparatorConstant)
		if slashIndex == -1 {
			return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
		}
		host = hostAndPath[:slashIndex]
		path = hostAndPath[slashIndex+1:]
	} else {
		host = hostAndPath[:pathSplitIndex]
		path = hostAndPath[pathSplitIndex+1:]
	}

	owner, repository, parseError := splitOwnerAndRepository(path)
	if parseError != nil {
		return RemoteURL{}, parseError
	}
	return RemoteURL{Protocol: RemoteProtocolSSH, Host: host, Owner: owner, Repository: repository}, nil
}

func parseHTTPSRemote(remote string) (RemoteURL, error) {
	if userSplitIndex := strings.Index(remote, sshUserDelimiterConstant); userSplitIndex != -1 && userSplitIndex < strings.Index(remote, pathSeparatorConstant) {
		remote = remote[userSplitIndex+1:]
	}
	pathComponents := strings.Split(strings.TrimRight(remote, pathSeparatorConstant), pathSeparatorConstant)
	if len(pathComponents) != 3 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	repository, parseError := normalizeRepositoryName(pathComponents[2])
	if parseError != nil {
		return RemoteURL{}, parseError
	}
	return RemoteURL{Protocol: RemoteProtocolHTTPS, Host: pathComponents[0], Owner: pathComponents[1], Repository: repository}, nil
}

func splitOwnerAndRepository(path string) (string, string, error) {
	segments := strings.Split(strings.TrimPrefix(path, pathSeparatorConstant), pathSeparatorConstant)
	if len(segments) != 2 {
		return "", "", RemoteURLParseError{Input: path, Message: invalidRemoteURLMessageConstant}
	}
	repository, parseError := normalizeRepositoryName(segments[1])
	if parseError != nil {
		return "", "", parseError
	}
	return segments[0], repository, nil
}

func normalizeRepositoryName(repository string) (string, error) {
	trimmed := strings.TrimSuffix(repository, gitSuffixConstant)
	if len(trimmed) == 0 {
		return "", RemoteURLParseError{Input: repository, Message: invalidRemoteURLMessageConstant}
	}
	return trimmed, nil
}

// FormatRemoteURL creates a textual remote URL from a structured representation.
func FormatRemoteURL(remote RemoteURL) (string, error) {
	if len(strings.TrimSpace(remote.Host)) == 0 {
		return "", RemoteURLParseError{Input: remote.Host, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(remote.Owner)) == 0 {
		return "", RemoteURLParseError{Input: remote.Owner, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(remote.Repository)) == 0 {
		return "", RemoteURLParseError{Input: remote.Repository, Message: requiredValueMessageConstant}
	}

	switch remote.Protocol {
	case RemoteProtocolSSH:
		return gitUserPrefixConstant + remote.Host + sshPathDelimiterConstant + remote.Owner + pathSeparatorConstant + remote.Repository + gitSuffixConstant, nil
	case RemoteProtocolHTTPS:
		return httpsProtocolPrefixConstant + remote.Host + pathSeparatorConstant + remote.Owner + pathSeparatorConstant + remote.Repository + gitSuffixConstant, nil
	default:
		return "", UnsupportedProtocolError{Protocol: remote.Protocol}
	}
}
