package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/temirov/gitimporter/internal/execshell"
)

const (
	verificationRemoteNameConstant         = "target"
	openRepositoryErrorTemplateConstant    = "open repository %s: %w"
	listReferencesErrorTemplateConstant    = "list references of %s: %w"
	iterateReferencesErrorTemplateConstant = "iterate references of %s: %w"
	branchReferencePrefixConstant          = "refs/heads/"
	tagReferencePrefixConstant             = "refs/tags/"
)

// ReferenceSnapshot maps fully qualified branch and tag names to commit or tag object hashes.
type ReferenceSnapshot map[string]string

// ReferenceComparison lists the differences between a local mirror and a remote.
type ReferenceComparison struct {
	MissingOnRemote []string
	Mismatched      []string
	ExtraOnRemote   []string
}

// Consistent reports whether the two snapshots carry the same branches and tags at the same hashes.
func (comparison ReferenceComparison) Consistent() bool {
	return len(comparison.MissingOnRemote) == 0 && len(comparison.Mismatched) == 0 && len(comparison.ExtraOnRemote) == 0
}

// ReferenceInspector reads branch and tag references without invoking the git CLI.
type ReferenceInspector struct{}

// NewReferenceInspector constructs a ReferenceInspector.
func NewReferenceInspector() *ReferenceInspector {
	return &ReferenceInspector{}
}

// LocalReferences reads the branches and tags of the repository at repositoryPath, bare or not.
func (inspector *ReferenceInspector) LocalReferences(repositoryPath string) (ReferenceSnapshot, error) {
	repository, openError := git.PlainOpen(repositoryPath)
	if openError != nil {
		return nil, fmt.Errorf(openRepositoryErrorTemplateConstant, repositoryPath, openError)
	}

	referenceIterator, iteratorError := repository.References()
	if iteratorError != nil {
		return nil, fmt.Errorf(iterateReferencesErrorTemplateConstant, repositoryPath, iteratorError)
	}

	snapshot := ReferenceSnapshot{}
	iterationError := referenceIterator.ForEach(func(reference *plumbing.Reference) error {
		snapshot.record(reference)
		return nil
	})
	if iterationError != nil {
		return nil, fmt.Errorf(iterateReferencesErrorTemplateConstant, repositoryPath, iterationError)
	}
	return snapshot, nil
}

// RemoteReferences lists the branches and tags advertised by remoteURL, authenticating with token
// when one is provided. An empty remote yields an empty snapshot.
func (inspector *ReferenceInspector) RemoteReferences(executionContext context.Context, remoteURL string, token string) (ReferenceSnapshot, error) {
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: verificationRemoteNameConstant,
		URLs: []string{remoteURL},
	})

	listOptions := &git.ListOptions{PeelingOption: git.IgnorePeeled}
	if trimmedToken := strings.TrimSpace(token); len(trimmedToken) > 0 {
		listOptions.Auth = &githttp.BasicAuth{Username: TokenUserName, Password: trimmedToken}
	}

	references, listError := remote.ListContext(executionContext, listOptions)
	if listError != nil {
		if errors.Is(listError, transport.ErrEmptyRemoteRepository) {
			return ReferenceSnapshot{}, nil
		}
		return nil, fmt.Errorf(listReferencesErrorTemplateConstant, execshell.RedactURL(remoteURL), listError)
	}

	snapshot := ReferenceSnapshot{}
	for _, reference := range references {
		snapshot.record(reference)
	}
	return snapshot, nil
}

// BranchCount returns the number of branches in the snapshot.
func (snapshot ReferenceSnapshot) BranchCount() int {
	return snapshot.countWithPrefix(branchReferencePrefixConstant)
}

// TagCount returns the number of tags in the snapshot.
func (snapshot ReferenceSnapshot) TagCount() int {
	return snapshot.countWithPrefix(tagReferencePrefixConstant)
}

func (snapshot ReferenceSnapshot) countWithPrefix(prefix string) int {
	count := 0
	for referenceName := range snapshot {
		if strings.HasPrefix(referenceName, prefix) {
			count++
		}
	}
	return count
}

func (snapshot ReferenceSnapshot) record(reference *plumbing.Reference) {
	if reference.Type() != plumbing.HashReference {
		return
	}
	if !reference.Name().IsBranch() && !reference.Name().IsTag() {
		return
	}
	snapshot[reference.Name().String()] = reference.Hash().String()
}

// CompareReferences reports every branch or tag whose presence or hash differs between local and remote.
func CompareReferences(local ReferenceSnapshot, remote ReferenceSnapshot) ReferenceComparison {
	comparison := ReferenceComparison{}
	for referenceName, localHash := range local {
		remoteHash, present := remote[referenceName]
		switch {
		case !present:
			comparison.MissingOnRemote = append(comparison.MissingOnRemote, referenceName)
		case remoteHash != localHash:
			comparison.Mismatched = append(comparison.Mismatched, referenceName)
		}
	}
	for referenceName := range remote {
		if _, present := local[referenceName]; !present {
			comparison.ExtraOnRemote = append(comparison.ExtraOnRemote, referenceName)
		}
	}
	sort.Strings(comparison.MissingOnRemote)
	sort.Strings(comparison.Mismatched)
	sort.Strings(comparison.ExtraOnRemote)
	return comparison
}
