package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MykhailoOS/PortfolioLab/internal/portfolio"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfoliolab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "document: my-portfolio.json\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "my-portfolio.json", cfg.Document)
	require.Equal(t, ".", cfg.Output.Directory)
	require.Equal(t, "main", cfg.Publish.Branch)
	require.Equal(t, "/", cfg.Publish.BasePath)
	require.Equal(t, "portfolio.media.unreachable", cfg.Events.Subject)
	require.Equal(t, 2*time.Second, cfg.Daemon.DebounceDuration())
	require.Equal(t, time.Duration(0), cfg.Daemon.IntervalDuration())
	require.Equal(t, ":9090", cfg.Daemon.MetricsAddr)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_PORTFOLIO_TOKEN", "ghp_from_env")
	path := writeConfig(t, "publish:\n  token: ${TEST_PORTFOLIO_TOKEN}\n  owner: jane\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "ghp_from_env", cfg.Publish.Token)
	require.Equal(t, "jane", cfg.Publish.Owner)
}

func TestLoad_GithubTokenFallback(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_ambient")
	path := writeConfig(t, "document: p.json\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "ghp_ambient", cfg.Publish.Token)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
document: p.json
output:
  directory: dist
  report: true
publish:
  owner: jane
  repo: site
  branch: gh-pages
  base_path: /docs
events:
  nats_url: nats://localhost:4222
  subject: media.checks
daemon:
  watch: true
  debounce: 5s
  interval: 1h
  metrics_addr: ":9999"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dist", cfg.Output.Directory)
	require.True(t, cfg.Output.Report)
	require.Equal(t, "gh-pages", cfg.Publish.Branch)
	require.Equal(t, "/docs", cfg.Publish.BasePath)
	require.Equal(t, "nats://localhost:4222", cfg.Events.NATSURL)
	require.Equal(t, "media.checks", cfg.Events.Subject)
	require.True(t, cfg.Daemon.Watch)
	require.Equal(t, 5*time.Second, cfg.Daemon.DebounceDuration())
	require.Equal(t, time.Hour, cfg.Daemon.IntervalDuration())
	require.Equal(t, ":9999", cfg.Daemon.MetricsAddr)
}

func TestInit_WritesConfigAndSeed(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "portfoliolab.yaml")
	docPath := filepath.Join(dir, "portfolio.json")

	require.NoError(t, Init(configPath, docPath, false))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.Equal(t, docPath, cfg.Document)

	doc, err := portfolio.Load(docPath)
	require.NoError(t, err)
	require.NoError(t, doc.CheckInvariants())
	require.Len(t, doc.Sections, 5)

	// Re-running without force fails instead of clobbering.
	require.Error(t, Init(configPath, docPath, false))
	require.NoError(t, Init(configPath, docPath, true))
}
