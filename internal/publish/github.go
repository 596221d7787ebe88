// Package publish delivers generated site files to their destination: a
// GitHub repository over the contents API, or a local git worktree. It also
// persists publish settings so a re-push needs no re-entry.
package publish

import (
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	builderrors "github.com/MykhailoOS/PortfolioLab/internal/errors"
	"github.com/MykhailoOS/PortfolioLab/internal/retry"
	"github.com/MykhailoOS/PortfolioLab/internal/site"
)

// Status describes the phase of an ongoing push.
type Status string

const (
	StatusIdle         Status = "idle"
	StatusValidating   Status = "validating"
	StatusCheckingRepo Status = "checking-repo"
	StatusUploading    Status = "uploading"
	StatusDone         Status = "done"
	StatusError        Status = "error"
)

// ProgressFunc receives push progress. current/total are only meaningful
// during the uploading phase.
type ProgressFunc func(status Status, message string, current, total int)

// PushConfig identifies the destination of a push.
type PushConfig struct {
	Owner    string
	Repo     string
	Branch   string
	BasePath string // "/" or "/docs"
	Message  string // commit message, defaulted when empty
}

// PushResult is the terminal outcome of a push. A failed push carries the
// error message instead of returning a Go error so callers render one shape.
type PushResult struct {
	Success      bool   `json:"success"`
	CommitURL    string `json:"commitUrl,omitempty"`
	Error        string `json:"error,omitempty"`
	FilesUpdated int    `json:"filesUpdated"`
}

// GitHubClient talks to the GitHub REST API with a personal access token.
type GitHubClient struct {
	httpClient *http.Client
	apiURL     string
	token      string
	retry      retry.Policy

	// uploadDelay spaces out contents-API writes to stay under secondary
	// rate limits. Tests set it to zero.
	uploadDelay time.Duration
}

// ClientOption configures a GitHubClient.
type ClientOption func(*GitHubClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *GitHubClient) { c.httpClient = hc }
}

// WithAPIURL points the client at a different API base (test servers,
// GitHub Enterprise).
func WithAPIURL(u string) ClientOption {
	return func(c *GitHubClient) { c.apiURL = u }
}

// WithUploadDelay overrides the inter-file delay during uploads.
func WithUploadDelay(d time.Duration) ClientOption {
	return func(c *GitHubClient) { c.uploadDelay = d }
}

// WithRetryPolicy overrides the per-file upload retry policy.
func WithRetryPolicy(p retry.Policy) ClientOption {
	return func(c *GitHubClient) { c.retry = p }
}

// NewGitHubClient creates a client for the given token.
func NewGitHubClient(token string, opts ...ClientOption) (*GitHubClient, error) {
	if token == "" {
		return nil, builderrors.New(builderrors.CategoryAuth, "GitHub token is required")
	}
	c := &GitHubClient{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		apiURL:      "https://api.github.com",
		token:       token,
		retry:       retry.DefaultPolicy(),
		uploadDelay: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// User is the authenticated GitHub account.
type User struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// Repo is a GitHub repository as returned by the API.
type Repo struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	Description   string `json:"description"`
	HTMLURL       string `json:"html_url"`
	DefaultBranch string `json:"default_branch"`
	Owner         struct {
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	} `json:"owner"`
	Permissions struct {
		Admin bool `json:"admin"`
		Push  bool `json:"push"`
		Pull  bool `json:"pull"`
	} `json:"permissions"`
}

// Branch is a repository branch.
type Branch struct {
	Name   string `json:"name"`
	Commit struct {
		SHA string `json:"sha"`
		URL string `json:"url"`
	} `json:"commit"`
	Protected bool `json:"protected"`
}

// GetUser fetches the authenticated user, which doubles as a token check.
func (c *GitHubClient) GetUser(ctx context.Context) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return nil, err
	}
	var u User
	if err := c.doRequest(req, &u); err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryAuth, "token validation failed")
	}
	return &u, nil
}

// ListRepos returns a page of the user's repositories, most recently
// updated first.
func (c *GitHubClient) ListRepos(ctx context.Context, page, perPage int) ([]Repo, error) {
	endpoint := fmt.Sprintf("/user/repos?page=%d&per_page=%d&sort=updated", page, perPage)
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var repos []Repo
	if err := c.doRequest(req, &repos); err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryNetwork, "list repositories failed")
	}
	return repos, nil
}

// GetRepo fetches a single repository.
func (c *GitHubClient) GetRepo(ctx context.Context, owner, repo string) (*Repo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s", owner, repo), nil)
	if err != nil {
		return nil, err
	}
	var r Repo
	if err := c.doRequest(req, &r); err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryPublish,
			fmt.Sprintf("repository %s/%s not accessible", owner, repo))
	}
	return &r, nil
}

// CreateRepo creates a new repository under the authenticated user.
func (c *GitHubClient) CreateRepo(ctx context.Context, name string, private bool, description string) (*Repo, error) {
	if !IsValidRepoName(name) {
		return nil, builderrors.New(builderrors.CategoryConfig,
			fmt.Sprintf("invalid repository name %q", name))
	}
	if description == "" {
		description = "Portfolio created with PortfolioLab"
	}
	body := map[string]any{
		"name":        name,
		"private":     private,
		"description": description,
		"auto_init":   true,
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/user/repos", body)
	if err != nil {
		return nil, err
	}
	var r Repo
	if err := c.doRequest(req, &r); err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryPublish, "create repository failed")
	}
	return &r, nil
}

// ListBranches returns the branches of a repository.
func (c *GitHubClient) ListBranches(ctx context.Context, owner, repo string) ([]Branch, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s/branches", owner, repo), nil)
	if err != nil {
		return nil, err
	}
	var branches []Branch
	if err := c.doRequest(req, &branches); err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryNetwork, "list branches failed")
	}
	return branches, nil
}

// GetBranch fetches a single branch.
func (c *GitHubClient) GetBranch(ctx context.Context, owner, repo, branch string) (*Branch, error) {
	req, err := c.newRequest(ctx, http.MethodGet,
		fmt.Sprintf("/repos/%s/%s/branches/%s", owner, repo, branch), nil)
	if err != nil {
		return nil, err
	}
	var b Branch
	if err := c.doRequest(req, &b); err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryPublish,
			fmt.Sprintf("branch %q not found", branch))
	}
	return &b, nil
}

// CreateBranch creates branchName pointing at the head of fromBranch.
func (c *GitHubClient) CreateBranch(ctx context.Context, owner, repo, branchName, fromBranch string) error {
	if fromBranch == "" {
		fromBranch = "main"
	}
	src, err := c.GetBranch(ctx, owner, repo, fromBranch)
	if err != nil {
		return err
	}
	body := map[string]any{
		"ref": "refs/heads/" + branchName,
		"sha": src.Commit.SHA,
	}
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/git/refs", owner, repo), body)
	if err != nil {
		return err
	}
	if err := c.doRequest(req, nil); err != nil {
		return builderrors.Wrap(err, builderrors.CategoryPublish,
			fmt.Sprintf("create branch %q failed", branchName))
	}
	return nil
}

type fileContent struct {
	SHA     string `json:"sha"`
	Content string `json:"content"`
}

// getFileContent returns the existing file at path on branch, or nil when
// it does not exist.
func (c *GitHubClient) getFileContent(ctx context.Context, owner, repo, filePath, branch string) (*fileContent, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/contents/%s?ref=%s",
		owner, repo, escapePath(filePath), url.QueryEscape(branch))
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var fc fileContent
	err = c.doRequest(req, &fc)
	if err != nil {
		var apiErr *apiError
		if stderrors.As(err, &apiErr) && apiErr.status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &fc, nil
}

// createOrUpdateFile writes one file through the contents API. sha is empty
// for a create and the current blob sha for an update.
func (c *GitHubClient) createOrUpdateFile(ctx context.Context, owner, repo, filePath string, content []byte, message, branch, sha string) error {
	body := map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  branch,
	}
	if sha != "" {
		body["sha"] = sha
	}
	req, err := c.newRequest(ctx, http.MethodPut,
		fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, escapePath(filePath)), body)
	if err != nil {
		return err
	}
	return c.doRequest(req, nil)
}

// Push uploads every file to the destination repository, creating or
// updating each one in its own commit. Preconditions (repository and branch
// existence) are verified before any write so a misconfigured destination
// never receives a partial upload. Failures are reported through the
// result, never a Go error.
func (c *GitHubClient) Push(ctx context.Context, cfg PushConfig, files []site.File, onProgress ProgressFunc) PushResult {
	progress := func(status Status, message string, current, total int) {
		if onProgress != nil {
			onProgress(status, message, current, total)
		}
	}

	fail := func(err error) PushResult {
		slog.Error("push to GitHub failed",
			"owner", cfg.Owner, "repo", cfg.Repo, "branch", cfg.Branch, "error", err)
		progress(StatusError, err.Error(), 0, 0)
		return PushResult{Success: false, Error: err.Error()}
	}

	progress(StatusValidating, "Validating GitHub connection...", 0, 0)
	if _, err := c.GetUser(ctx); err != nil {
		return fail(err)
	}

	progress(StatusCheckingRepo, "Checking repository...", 0, 0)
	if _, err := c.GetRepo(ctx, cfg.Owner, cfg.Repo); err != nil {
		return fail(err)
	}
	if _, err := c.GetBranch(ctx, cfg.Owner, cfg.Repo, cfg.Branch); err != nil {
		return fail(err)
	}

	message := cfg.Message
	if message == "" {
		message = fmt.Sprintf("chore: portfolio export %s", time.Now().UTC().Format(time.RFC3339))
	}

	progress(StatusUploading, "Uploading files...", 0, len(files))

	// The contents API commits one file per request, so uploads are
	// strictly sequential.
	updated := 0
	for _, f := range files {
		fullPath := joinBasePath(cfg.BasePath, f.Path)

		existing, err := c.getFileContent(ctx, cfg.Owner, cfg.Repo, fullPath, cfg.Branch)
		if err != nil {
			return fail(builderrors.Wrap(err, builderrors.CategoryPublish,
				fmt.Sprintf("check existing file %s failed", fullPath)))
		}
		sha := ""
		if existing != nil {
			sha = existing.SHA
		}

		// A blob sha only changes when our own write succeeds, so retrying
		// the PUT with the same sha is safe.
		err = c.retry.Do(ctx, func() error {
			return c.createOrUpdateFile(ctx, cfg.Owner, cfg.Repo, fullPath, f.Data, message, cfg.Branch, sha)
		})
		if err != nil {
			return fail(builderrors.WrapRetryable(err, builderrors.CategoryPublish,
				fmt.Sprintf("upload %s failed", fullPath)))
		}

		updated++
		progress(StatusUploading, "Uploading files...", updated, len(files))

		if c.uploadDelay > 0 && updated < len(files) {
			select {
			case <-ctx.Done():
				return fail(ctx.Err())
			case <-time.After(c.uploadDelay):
			}
		}
	}

	progress(StatusDone, "Successfully pushed to GitHub!", updated, len(files))
	slog.Info("pushed portfolio to GitHub",
		"owner", cfg.Owner, "repo", cfg.Repo, "branch", cfg.Branch, "files", updated)

	return PushResult{
		Success:      true,
		CommitURL:    fmt.Sprintf("https://github.com/%s/%s/tree/%s", cfg.Owner, cfg.Repo, cfg.Branch),
		FilesUpdated: updated,
	}
}

// joinBasePath prefixes a site-relative file path with the configured base
// path ("/" keeps the file at the repository root).
func joinBasePath(basePath, filePath string) string {
	base := strings.Trim(basePath, "/")
	if base == "" {
		return filePath
	}
	return base + "/" + filePath
}

// escapePath percent-encodes each path segment while keeping separators.
func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("GitHub API error: %d %s", e.status, e.message)
	}
	return fmt.Sprintf("GitHub API error: %d", e.status)
}

func (c *GitHubClient) newRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	u, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, err
	}
	rawPath := endpoint
	rawQuery := ""
	if i := strings.Index(endpoint, "?"); i >= 0 {
		rawPath, rawQuery = endpoint[:i], endpoint[i+1:]
	}
	u.Path = path.Join(u.Path, rawPath)
	u.RawQuery = rawQuery

	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		req, err = http.NewRequestWithContext(ctx, method, u.String(), strings.NewReader(string(jsonBody)))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		var err error
		req, err = http.NewRequestWithContext(ctx, method, u.String(), nil)
		if err != nil {
			return nil, err
		}
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "PortfolioLab/1.0")

	return req, nil
}

func (c *GitHubClient) doRequest(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var ghErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&ghErr)
		return &apiError{status: resp.StatusCode, message: ghErr.Message}
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}
