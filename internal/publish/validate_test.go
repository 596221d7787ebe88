package publish

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidPAT(t *testing.T) {
	require.True(t, IsValidPAT("ghp_"+strings.Repeat("A", 36)))
	require.True(t, IsValidPAT("github_pat_"+strings.Repeat("x", 82)))
	require.True(t, IsValidPAT(strings.Repeat("a1f9", 10)))

	require.False(t, IsValidPAT(""))
	require.False(t, IsValidPAT("ghp_tooshort"))
	require.False(t, IsValidPAT("gho_"+strings.Repeat("A", 36)), "only classic ghp_ prefix is accepted")
	require.False(t, IsValidPAT(strings.Repeat("z", 40)), "non-hex 40 chars rejected")
}

func TestIsValidRepoName(t *testing.T) {
	require.True(t, IsValidRepoName("my-portfolio"))
	require.True(t, IsValidRepoName("jane.github.io"))
	require.True(t, IsValidRepoName("a_b.c-d"))

	require.False(t, IsValidRepoName(""))
	require.False(t, IsValidRepoName(".hidden"))
	require.False(t, IsValidRepoName("repo.git"))
	require.False(t, IsValidRepoName("has space"))
	require.False(t, IsValidRepoName(strings.Repeat("a", 101)))
}

func TestIsValidBranchName(t *testing.T) {
	require.True(t, IsValidBranchName("main"))
	require.True(t, IsValidBranchName("feature/export"))
	require.True(t, IsValidBranchName("gh-pages"))

	require.False(t, IsValidBranchName(""))
	require.False(t, IsValidBranchName("/leading"))
	require.False(t, IsValidBranchName("trailing/"))
	require.False(t, IsValidBranchName("a..b"))
	require.False(t, IsValidBranchName("has space"))
}

func TestPagesURL(t *testing.T) {
	require.Equal(t, "https://jane.github.io/my-portfolio", PagesURL("Jane", "my-portfolio"))
	require.Equal(t, "https://jane.github.io", PagesURL("Jane", "Jane.github.io"))
	require.Equal(t, "https://jane.github.io", PagesURL("jane", "jane.github.io"))
}
