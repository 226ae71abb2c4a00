package importer_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitimporter/internal/importer"
)

func TestOSWorkspaceCreatesUniqueDirectories(testInstance *testing.T) {
	temporaryRoot := testInstance.TempDir()
	workspace := importer.NewOSWorkspace()

	firstPath, firstError := workspace.Create(temporaryRoot, "service")
	require.NoError(testInstance, firstError)
	secondPath, secondError := workspace.Create(temporaryRoot, "service")
	require.NoError(testInstance, secondError)

	require.NotEqual(testInstance, firstPath, secondPath)
	require.Equal(testInstance, temporaryRoot, filepath.Dir(firstPath))
	require.True(testInstance, strings.HasPrefix(filepath.Base(firstPath), "git-import-service-"))

	require.NoError(testInstance, os.WriteFile(filepath.Join(firstPath, "HEAD"), []byte("ref: refs/heads/main\n"), 0o644))
	require.NoError(testInstance, workspace.Remove(firstPath))
	require.NoError(testInstance, workspace.Remove(secondPath))
	requireEmptyDirectory(testInstance, temporaryRoot)
}

func TestOSWorkspaceSanitizesRepositoryName(testInstance *testing.T) {
	temporaryRoot := testInstance.TempDir()

	workspacePath, creationError := importer.NewOSWorkspace().Create(temporaryRoot, "team/service")
	require.NoError(testInstance, creationError)
	require.Equal(testInstance, temporaryRoot, filepath.Dir(workspacePath))
	require.True(testInstance, strings.HasPrefix(filepath.Base(workspacePath), "git-import-team_service-"))
}

func TestOSWorkspaceReportsMissingRoot(testInstance *testing.T) {
	_, creationError := importer.NewOSWorkspace().Create(filepath.Join(testInstance.TempDir(), "absent"), "service")
	require.Error(testInstance, creationError)
}
