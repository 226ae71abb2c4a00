package gitrepo_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/temirov/gitimporter/internal/execshell"
	"github.com/temirov/gitimporter/internal/gitrepo"
)

func requireGitExecutable(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip("git executable not available")
	}
}

func newShellRepositoryManager(testInstance *testing.T) *gitrepo.RepositoryManager {
	testInstance.Helper()
	executor, executorError := execshell.NewShellExecutor(zaptest.NewLogger(testInstance), execshell.NewOSCommandRunner(), false)
	require.NoError(testInstance, executorError)

	manager, managerError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, managerError)
	return manager
}

func TestMirrorRoundTripReproducesEveryReference(testInstance *testing.T) {
	requireGitExecutable(testInstance)
	testInstance.Setenv("GIT_CONFIG_COUNT", "")

	sourcePath, commitHash := createRepositoryWithHistory(testInstance)
	workingDirectory := testInstance.TempDir()
	mirrorPath := filepath.Join(workingDirectory, "mirror.git")
	targetPath := filepath.Join(workingDirectory, "target.git")
	_, targetInitError := git.PlainInit(targetPath, true)
	require.NoError(testInstance, targetInitError)

	manager := newShellRepositoryManager(testInstance)
	executionContext := context.Background()
	require.NoError(testInstance, manager.MirrorClone(executionContext, sourcePath, mirrorPath))
	require.NoError(testInstance, manager.MirrorPush(executionContext, mirrorPath, targetPath, ""))

	inspector := gitrepo.NewReferenceInspector()
	localSnapshot, localError := inspector.LocalReferences(mirrorPath)
	require.NoError(testInstance, localError)
	remoteSnapshot, remoteError := inspector.RemoteReferences(executionContext, targetPath, "")
	require.NoError(testInstance, remoteError)

	require.Equal(testInstance, 2, remoteSnapshot.BranchCount())
	require.Equal(testInstance, 2, remoteSnapshot.TagCount())
	require.Equal(testInstance, commitHash.String(), remoteSnapshot["refs/heads/develop"])
	require.Equal(testInstance, commitHash.String(), remoteSnapshot["refs/tags/v1.0.0"])
	require.NotContains(testInstance, remoteSnapshot, "HEAD")

	comparison := gitrepo.CompareReferences(localSnapshot, remoteSnapshot)
	require.True(testInstance, comparison.Consistent(), "comparison: %+v", comparison)
}

func TestRemoteReferencesOfEmptyRepository(testInstance *testing.T) {
	requireGitExecutable(testInstance)

	emptyPath := filepath.Join(testInstance.TempDir(), "empty.git")
	_, initError := git.PlainInit(emptyPath, true)
	require.NoError(testInstance, initError)

	snapshot, listError := gitrepo.NewReferenceInspector().RemoteReferences(context.Background(), emptyPath, "")
	require.NoError(testInstance, listError)
	require.Empty(testInstance, snapshot)
	require.Zero(testInstance, snapshot.BranchCount())
}

func TestRemoteReferencesOfMissingRepository(testInstance *testing.T) {
	requireGitExecutable(testInstance)

	_, listError := gitrepo.NewReferenceInspector().RemoteReferences(context.Background(), filepath.Join(testInstance.TempDir(), "absent.git"), "")
	require.Error(testInstance, listError)
}
