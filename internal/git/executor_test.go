package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary git repository for testing
func setupTestRepo(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	runIn(t, tmpDir, "init")
	runIn(t, tmpDir, "config", "user.email", "test@example.com")
	runIn(t, tmpDir, "config", "user.name", "Test User")
	runIn(t, tmpDir, "config", "commit.gpgsign", "false")

	return tmpDir
}

// runIn runs a git command in dir and returns its trimmed output
func runIn(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	return strings.TrimSpace(string(out))
}

// createAndStageFile creates a file and stages it
func createAndStageFile(t *testing.T, repoDir, filename, content string) {
	t.Helper()

	filePath := filepath.Join(repoDir, filename)
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	runIn(t, repoDir, "add", filename)
}

// commitFile commits staged changes
func commitFile(t *testing.T, repoDir, message string) {
	t.Helper()

	runIn(t, repoDir, "commit", "-m", message)
}

// lastMessage returns the full message of HEAD
func lastMessage(t *testing.T, repoDir string) string {
	t.Helper()

	return runIn(t, repoDir, "log", "-1", "--format=%B")
}

func TestNewExecutor(t *testing.T) {
	executor := NewExecutor("/tmp/test")
	assert.NotNil(t, executor)
}

func TestExecutor_DiffCached(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)
	ctx := context.Background()

	t.Run("empty staging area", func(t *testing.T) {
		diff, err := executor.DiffCached(ctx)
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("with staged changes", func(t *testing.T) {
		createAndStageFile(t, repoDir, "test.txt", "hello world")

		diff, err := executor.DiffCached(ctx)
		require.NoError(t, err)
		assert.Contains(t, diff, "test.txt")
		assert.Contains(t, diff, "hello world")
	})
}

func TestExecutor_Status(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)
	ctx := context.Background()

	t.Run("clean repo", func(t *testing.T) {
		status, err := executor.Status(ctx)
		require.NoError(t, err)
		assert.Empty(t, status)
	})

	t.Run("with staged file", func(t *testing.T) {
		createAndStageFile(t, repoDir, "new.txt", "content")

		status, err := executor.Status(ctx)
		require.NoError(t, err)
		assert.Contains(t, status, "new.txt")
	})
}

func TestExecutor_Commit(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)
	ctx := context.Background()

	t.Run("commit staged changes", func(t *testing.T) {
		createAndStageFile(t, repoDir, "commit-test.txt", "test content")

		err := executor.Commit(ctx, "[FIX] base: correct minor typos in code", CommitOptions{})
		require.NoError(t, err)
		assert.Equal(t, "[FIX] base: correct minor typos in code", lastMessage(t, repoDir))
	})

	t.Run("commit with body keeps blank line", func(t *testing.T) {
		createAndStageFile(t, repoDir, "commit-body.txt", "body test")

		message := "[IMP] sale: add margin\n\nline one\nline two"
		require.NoError(t, executor.Commit(ctx, message, CommitOptions{}))
		assert.Equal(t, message, lastMessage(t, repoDir))
	})

	t.Run("sign off appends trailer", func(t *testing.T) {
		createAndStageFile(t, repoDir, "signed.txt", "signed")

		require.NoError(t, executor.Commit(ctx, "[REF] stock: split", CommitOptions{SignOff: true}))
		assert.Contains(t, lastMessage(t, repoDir), "Signed-off-by: Test User <test@example.com>")
	})

	t.Run("commit with empty staging area fails", func(t *testing.T) {
		err := executor.Commit(ctx, "[FIX] base: nothing", CommitOptions{})
		assert.Error(t, err)
	})
}

func TestExecutor_CurrentBranch(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)
	ctx := context.Background()

	// Need at least one commit to have a branch
	createAndStageFile(t, repoDir, "init.txt", "init")
	commitFile(t, repoDir, "initial commit")

	runIn(t, repoDir, "checkout", "-b", "17.0-mig-sale")

	branch, err := executor.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "17.0-mig-sale", branch)
}

func TestExecutor_NotAGitRepo(t *testing.T) {
	tmpDir := t.TempDir()
	executor := NewExecutor(tmpDir)
	ctx := context.Background()

	_, err := executor.Status(ctx)
	assert.Error(t, err)
}
