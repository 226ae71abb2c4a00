// Package githubauth locates the GitHub token used for API calls and git pushes.
package githubauth
