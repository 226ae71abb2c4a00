// Package gitrepo mirrors repositories and inspects their references.
//
// RepositoryManager drives `git clone --mirror` and `git push --mirror` through
// execshell, supplying the push token through git configuration environment
// variables. ReferenceInspector reads branch and tag references with go-git so a
// pushed mirror can be compared against its local copy. The remote URL helpers
// derive repository names from source URLs and format target remotes.
package gitrepo
