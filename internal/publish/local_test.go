package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"

	"github.com/MykhailoOS/PortfolioLab/internal/site"
)

func TestLocalPublisher_InitsAndCommits(t *testing.T) {
	dir := t.TempDir()

	publisher, err := NewLocalPublisher(dir)
	require.NoError(t, err)

	files := []site.File{
		site.TextFile("en/index.html", "<html></html>"),
		site.TextFile("README.txt", "readme"),
	}
	hash, err := publisher.Publish(context.Background(), "/", files, "first export")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	data, err := os.ReadFile(filepath.Join(dir, "en", "index.html"))
	require.NoError(t, err)
	require.Equal(t, "<html></html>", string(data))

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	commit, err := repo.CommitObject(plumbing.NewHash(hash))
	require.NoError(t, err)
	require.Equal(t, "first export", commit.Message)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	status, err := wt.Status()
	require.NoError(t, err)
	require.True(t, status.IsClean(), "everything published is committed")
}

func TestLocalPublisher_BasePathAndExistingRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	publisher, err := NewLocalPublisher(dir)
	require.NoError(t, err)

	_, err = publisher.Publish(context.Background(), "/docs",
		[]site.File{site.TextFile("a.txt", "x")}, "")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "docs", "a.txt"))
	require.NoError(t, err)
}
