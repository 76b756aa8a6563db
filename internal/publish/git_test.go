package publish

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/model"
)

func gitRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return strings.TrimSpace(string(out))
}

// setupRepos creates a bare remote and a clone with one commit.
func setupRepos(t *testing.T) (work, remote string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	base := t.TempDir()
	remote = filepath.Join(base, "remote.git")
	work = filepath.Join(base, "work")

	gitRun(t, base, "init", "--bare", "-b", "main", remote)
	gitRun(t, base, "init", "-b", "main", work)
	gitRun(t, work, "config", "user.email", "test@example.com")
	gitRun(t, work, "config", "user.name", "Test")
	gitRun(t, work, "remote", "add", "origin", remote)
	require.NoError(t, os.MkdirAll(filepath.Join(work, "content"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(work, "content", "hero.md"), []byte("v1\n"), 0o644))
	gitRun(t, work, "add", "-A")
	gitRun(t, work, "commit", "-m", "init")
	gitRun(t, work, "push", "origin", "HEAD:main")
	return work, remote
}

func TestGit_PublishCommitsAndPushes(t *testing.T) {
	work, remote := setupRepos(t)
	require.NoError(t, os.WriteFile(filepath.Join(work, "content", "hero.md"), []byte("v2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(work, "unrelated.txt"), []byte("x"), 0o644))

	g := &Git{RepoDir: work, ContentPath: "content", Remote: "origin", Branch: "main"}
	require.NoError(t, g.Publish(context.Background(), "Update hero"))

	assert.Equal(t, "Update hero", gitRun(t, remote, "log", "-1", "--format=%s", "main"))
	// Only the content directory is staged.
	assert.Contains(t, gitRun(t, work, "status", "--porcelain"), "unrelated.txt")
}

func TestGit_PublishNothingToCommit(t *testing.T) {
	work, remote := setupRepos(t)

	g := &Git{RepoDir: work, ContentPath: "content", Remote: "origin", Branch: "main"}
	require.NoError(t, g.Publish(context.Background(), "No-op"))
	assert.Equal(t, "init", gitRun(t, remote, "log", "-1", "--format=%s", "main"))
}

func TestGit_PublishFailureIsUpstream(t *testing.T) {
	work, _ := setupRepos(t)
	require.NoError(t, os.WriteFile(filepath.Join(work, "content", "hero.md"), []byte("v3\n"), 0o644))

	g := &Git{RepoDir: work, ContentPath: "content", Remote: "nowhere", Branch: "main"}
	err := g.Publish(context.Background(), "Will not push")

	var up *model.UpstreamError
	require.True(t, errors.As(err, &up), "got %v", err)
	assert.Equal(t, "publish", up.Service)
}

func TestGit_PublishRequiresMessage(t *testing.T) {
	err := (&Git{}).Publish(context.Background(), "  ")
	var verr *model.ValidationError
	assert.True(t, errors.As(err, &verr))
}
