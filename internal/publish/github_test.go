package publish

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MykhailoOS/PortfolioLab/internal/retry"
	"github.com/MykhailoOS/PortfolioLab/internal/site"
)

// fakeGitHub is a minimal contents-API double. Existing maps path→sha for
// files already in the repository.
type fakeGitHub struct {
	t        *testing.T
	existing map[string]string
	noBranch bool

	puts         []putRecord
	createdRepos []map[string]any
	createdRefs  []map[string]any
}

type putRecord struct {
	path string
	body map[string]any
}

func (f *fakeGitHub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		require.Equal(f.t, "Bearer ghp_"+strings.Repeat("a", 36), auth)
		require.Equal(f.t, "application/vnd.github+json", r.Header.Get("Accept"))
		require.Equal(f.t, "2022-11-28", r.Header.Get("X-GitHub-Api-Version"))

		switch {
		case r.URL.Path == "/user":
			_ = json.NewEncoder(w).Encode(map[string]any{"login": "jane", "id": 1})
		case r.URL.Path == "/user/repos" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"name": "site", "full_name": "jane/site", "default_branch": "main"},
				{"name": "blog", "full_name": "jane/blog", "private": true, "default_branch": "main"},
			})
		case r.URL.Path == "/user/repos" && r.Method == http.MethodPost:
			var body map[string]any
			require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
			f.createdRepos = append(f.createdRepos, body)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"name":           body["name"],
				"full_name":      "jane/" + body["name"].(string),
				"default_branch": "main",
			})
		case r.URL.Path == "/repos/jane/site":
			_ = json.NewEncoder(w).Encode(map[string]any{"name": "site", "default_branch": "main"})
		case r.URL.Path == "/repos/jane/site/branches" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"name": "main", "commit": map[string]string{"sha": "abc123"}},
				{"name": "gh-pages", "commit": map[string]string{"sha": "def456"}, "protected": true},
			})
		case r.URL.Path == "/repos/jane/site/git/refs" && r.Method == http.MethodPost:
			var body map[string]any
			require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
			f.createdRefs = append(f.createdRefs, body)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"ref": body["ref"]})
		case strings.HasPrefix(r.URL.Path, "/repos/jane/site/branches/"):
			if f.noBranch {
				w.WriteHeader(http.StatusNotFound)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "Branch not found"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"name":   strings.TrimPrefix(r.URL.Path, "/repos/jane/site/branches/"),
				"commit": map[string]string{"sha": "abc123"},
			})
		case strings.HasPrefix(r.URL.Path, "/repos/jane/site/contents/"):
			path := strings.TrimPrefix(r.URL.Path, "/repos/jane/site/contents/")
			switch r.Method {
			case http.MethodGet:
				if sha, ok := f.existing[path]; ok {
					_ = json.NewEncoder(w).Encode(map[string]string{"sha": sha})
					return
				}
				w.WriteHeader(http.StatusNotFound)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
			case http.MethodPut:
				var body map[string]any
				require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
				f.puts = append(f.puts, putRecord{path: path, body: body})
				_ = json.NewEncoder(w).Encode(map[string]any{"content": map[string]string{"sha": "new"}})
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
		}
	})
}

func testToken() string { return "ghp_" + strings.Repeat("a", 36) }

func newTestClient(t *testing.T, fake *fakeGitHub) *GitHubClient {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	c, err := NewGitHubClient(testToken(), WithAPIURL(srv.URL), WithUploadDelay(0))
	require.NoError(t, err)
	return c
}

func TestNewGitHubClient_RequiresToken(t *testing.T) {
	_, err := NewGitHubClient("")
	require.Error(t, err)
}

func TestPush_CreateAndUpdateFlow(t *testing.T) {
	fake := &fakeGitHub{t: t, existing: map[string]string{"README.txt": "oldsha"}}
	client := newTestClient(t, fake)

	files := []site.File{
		site.TextFile("README.txt", "updated"),
		site.TextFile("en/index.html", "<html></html>"),
		site.BinaryFile("assets/img/avatar-0.png", []byte{0x89, 0x50}),
	}

	var statuses []Status
	result := client.Push(context.Background(), PushConfig{
		Owner: "jane", Repo: "site", Branch: "main", BasePath: "/", Message: "deploy",
	}, files, func(status Status, _ string, _, _ int) {
		statuses = append(statuses, status)
	})

	require.True(t, result.Success, result.Error)
	require.Equal(t, 3, result.FilesUpdated)
	require.Equal(t, "https://github.com/jane/site/tree/main", result.CommitURL)

	require.Len(t, fake.puts, 3)
	require.Equal(t, "README.txt", fake.puts[0].path)
	require.Equal(t, "oldsha", fake.puts[0].body["sha"], "update carries the existing sha")
	_, hasSHA := fake.puts[1].body["sha"]
	require.False(t, hasSHA, "create sends no sha")

	require.Equal(t, "deploy", fake.puts[0].body["message"])
	content, err := base64.StdEncoding.DecodeString(fake.puts[2].body["content"].(string))
	require.NoError(t, err)
	require.Equal(t, []byte{0x89, 0x50}, content)

	require.Equal(t, StatusValidating, statuses[0])
	require.Equal(t, StatusCheckingRepo, statuses[1])
	require.Equal(t, StatusDone, statuses[len(statuses)-1])
}

func TestPush_BasePathDocs(t *testing.T) {
	fake := &fakeGitHub{t: t}
	client := newTestClient(t, fake)

	result := client.Push(context.Background(), PushConfig{
		Owner: "jane", Repo: "site", Branch: "main", BasePath: "/docs",
	}, []site.File{site.TextFile("en/index.html", "x")}, nil)

	require.True(t, result.Success, result.Error)
	require.Equal(t, "docs/en/index.html", fake.puts[0].path)
}

func TestPush_MissingBranchFailsBeforeAnyWrite(t *testing.T) {
	fake := &fakeGitHub{t: t, noBranch: true}
	client := newTestClient(t, fake)

	var lastStatus Status
	result := client.Push(context.Background(), PushConfig{
		Owner: "jane", Repo: "site", Branch: "gone", BasePath: "/",
	}, []site.File{site.TextFile("a.txt", "x")}, func(status Status, _ string, _, _ int) {
		lastStatus = status
	})

	require.False(t, result.Success)
	require.Contains(t, result.Error, "gone")
	require.Empty(t, fake.puts, "precondition failure must not upload anything")
	require.Equal(t, StatusError, lastStatus)
	require.Equal(t, 0, result.FilesUpdated)
}

func TestPush_DefaultCommitMessage(t *testing.T) {
	fake := &fakeGitHub{t: t}
	client := newTestClient(t, fake)

	result := client.Push(context.Background(), PushConfig{
		Owner: "jane", Repo: "site", Branch: "main", BasePath: "/",
	}, []site.File{site.TextFile("a.txt", "x")}, nil)

	require.True(t, result.Success)
	msg := fake.puts[0].body["message"].(string)
	require.True(t, strings.HasPrefix(msg, "chore: portfolio export "), msg)
}

func TestPush_RetriesTransientUploadFailure(t *testing.T) {
	fake := &fakeGitHub{t: t}
	failures := 1
	inner := fake.handler()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && failures > 0 {
			failures--
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		inner.ServeHTTP(w, r)
	}))
	defer srv.Close()

	client, err := NewGitHubClient(testToken(), WithAPIURL(srv.URL), WithUploadDelay(0),
		WithRetryPolicy(retry.Policy{Mode: retry.BackoffFixed, Initial: time.Millisecond, Max: time.Millisecond, MaxRetries: 2}))
	require.NoError(t, err)

	result := client.Push(context.Background(), PushConfig{
		Owner: "jane", Repo: "site", Branch: "main", BasePath: "/",
	}, []site.File{site.TextFile("a.txt", "x")}, nil)

	require.True(t, result.Success, result.Error)
	require.Equal(t, 1, result.FilesUpdated)
	require.Len(t, fake.puts, 1)
}

func TestListRepos_ReturnsUserRepositories(t *testing.T) {
	fake := &fakeGitHub{t: t}
	client := newTestClient(t, fake)

	repos, err := client.ListRepos(context.Background(), 1, 100)
	require.NoError(t, err)
	require.Len(t, repos, 2)
	require.Equal(t, "jane/site", repos[0].FullName)
	require.True(t, repos[1].Private)
}

func TestCreateRepo_SendsAutoInitAndDefaults(t *testing.T) {
	fake := &fakeGitHub{t: t}
	client := newTestClient(t, fake)

	repo, err := client.CreateRepo(context.Background(), "portfolio", true, "")
	require.NoError(t, err)
	require.Equal(t, "jane/portfolio", repo.FullName)

	require.Len(t, fake.createdRepos, 1)
	body := fake.createdRepos[0]
	require.Equal(t, "portfolio", body["name"])
	require.Equal(t, true, body["private"])
	require.Equal(t, true, body["auto_init"])
	require.Equal(t, "Portfolio created with PortfolioLab", body["description"])
}

func TestCreateRepo_RejectsInvalidName(t *testing.T) {
	fake := &fakeGitHub{t: t}
	client := newTestClient(t, fake)

	_, err := client.CreateRepo(context.Background(), "bad name!", false, "")
	require.Error(t, err)
	require.Empty(t, fake.createdRepos, "invalid name must never reach the API")
}

func TestListBranches_ReturnsBranches(t *testing.T) {
	fake := &fakeGitHub{t: t}
	client := newTestClient(t, fake)

	branches, err := client.ListBranches(context.Background(), "jane", "site")
	require.NoError(t, err)
	require.Len(t, branches, 2)
	require.Equal(t, "main", branches[0].Name)
	require.Equal(t, "abc123", branches[0].Commit.SHA)
	require.True(t, branches[1].Protected)
}

func TestCreateBranch_PointsAtSourceHead(t *testing.T) {
	fake := &fakeGitHub{t: t}
	client := newTestClient(t, fake)

	err := client.CreateBranch(context.Background(), "jane", "site", "gh-pages", "main")
	require.NoError(t, err)

	require.Len(t, fake.createdRefs, 1)
	require.Equal(t, "refs/heads/gh-pages", fake.createdRefs[0]["ref"])
	require.Equal(t, "abc123", fake.createdRefs[0]["sha"])
}

func TestCreateBranch_MissingSourceBranch(t *testing.T) {
	fake := &fakeGitHub{t: t, noBranch: true}
	client := newTestClient(t, fake)

	err := client.CreateBranch(context.Background(), "jane", "site", "gh-pages", "main")
	require.Error(t, err)
	require.Empty(t, fake.createdRefs)
}

func TestGetUser_InvalidTokenSurfacesAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	}))
	defer srv.Close()

	client, err := NewGitHubClient(testToken(), WithAPIURL(srv.URL))
	require.NoError(t, err)

	_, err = client.GetUser(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "Bad credentials")
}

func TestJoinBasePath(t *testing.T) {
	tests := []struct {
		base, file, want string
	}{
		{"/", "en/index.html", "en/index.html"},
		{"", "en/index.html", "en/index.html"},
		{"/docs", "en/index.html", "docs/en/index.html"},
		{"docs", "README.txt", "docs/README.txt"},
		{"/docs/", "a.txt", "docs/a.txt"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, joinBasePath(tt.base, tt.file), fmt.Sprintf("%q + %q", tt.base, tt.file))
	}
}
