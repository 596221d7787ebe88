package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	builderrors "github.com/MykhailoOS/PortfolioLab/internal/errors"
	"github.com/MykhailoOS/PortfolioLab/internal/site"
)

// LocalPublisher writes generated files into a local git repository and
// commits them, for users who push with their own git remote setup instead
// of a token.
type LocalPublisher struct {
	repoPath string
	author   object.Signature
}

// NewLocalPublisher targets an existing git repository at repoPath. The
// directory is initialized as a repository if it is not one already.
func NewLocalPublisher(repoPath string) (*LocalPublisher, error) {
	if _, err := git.PlainOpen(repoPath); err != nil {
		if err != git.ErrRepositoryNotExists {
			return nil, builderrors.Wrap(err, builderrors.CategoryFileSystem,
				fmt.Sprintf("open git repository at %s", repoPath))
		}
		if _, err := git.PlainInit(repoPath, false); err != nil {
			return nil, builderrors.Wrap(err, builderrors.CategoryFileSystem,
				fmt.Sprintf("initialize git repository at %s", repoPath))
		}
	}
	return &LocalPublisher{
		repoPath: repoPath,
		author:   object.Signature{Name: "PortfolioLab", Email: "portfoliolab@localhost"},
	}, nil
}

// Publish writes every file under the repository root (below basePath) and
// commits the result. Returns the commit hash.
func (p *LocalPublisher) Publish(ctx context.Context, basePath string, files []site.File, message string) (string, error) {
	repo, err := git.PlainOpen(p.repoPath)
	if err != nil {
		return "", builderrors.Wrap(err, builderrors.CategoryFileSystem, "open git repository")
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", builderrors.Wrap(err, builderrors.CategoryFileSystem, "open git worktree")
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rel := joinBasePath(basePath, f.Path)
		abs := filepath.Join(p.repoPath, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return "", builderrors.Wrap(err, builderrors.CategoryFileSystem,
				fmt.Sprintf("create directory for %s", rel))
		}
		if err := os.WriteFile(abs, f.Data, 0o644); err != nil {
			return "", builderrors.Wrap(err, builderrors.CategoryFileSystem,
				fmt.Sprintf("write %s", rel))
		}
		if _, err := wt.Add(rel); err != nil {
			return "", builderrors.Wrap(err, builderrors.CategoryPublish,
				fmt.Sprintf("stage %s", rel))
		}
	}

	if message == "" {
		message = fmt.Sprintf("chore: portfolio export %s", time.Now().UTC().Format(time.RFC3339))
	}
	author := p.author
	author.When = time.Now()
	hash, err := wt.Commit(message, &git.CommitOptions{Author: &author})
	if err != nil {
		return "", builderrors.Wrap(err, builderrors.CategoryPublish, "commit generated site")
	}

	slog.Info("committed portfolio to local repository",
		"repo", p.repoPath, "commit", hash.String(), "files", len(files))
	return hash.String(), nil
}
