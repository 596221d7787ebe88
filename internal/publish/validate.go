package publish

import (
	"regexp"
	"strings"
)

var (
	classicPATPattern     = regexp.MustCompile(`^ghp_[a-zA-Z0-9]{36}$`)
	fineGrainedPATPattern = regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`)
	legacyHexPATPattern   = regexp.MustCompile(`^[a-fA-F0-9]{40}$`)

	repoNamePattern   = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	branchNamePattern = regexp.MustCompile(`^[a-zA-Z0-9/_-]+$`)
)

// IsValidPAT reports whether the string looks like a GitHub personal access
// token: classic (ghp_ prefix), fine-grained (github_pat_ prefix) or a
// legacy 40-hex token.
func IsValidPAT(pat string) bool {
	return classicPATPattern.MatchString(pat) ||
		fineGrainedPATPattern.MatchString(pat) ||
		legacyHexPATPattern.MatchString(pat)
}

// IsValidRepoName reports whether name is an acceptable GitHub repository
// name.
func IsValidRepoName(name string) bool {
	return name != "" &&
		len(name) <= 100 &&
		repoNamePattern.MatchString(name) &&
		!strings.HasPrefix(name, ".") &&
		!strings.HasSuffix(name, ".git")
}

// IsValidBranchName reports whether name is an acceptable git branch name
// for pushing.
func IsValidBranchName(name string) bool {
	return name != "" &&
		len(name) <= 250 &&
		branchNamePattern.MatchString(name) &&
		!strings.HasPrefix(name, "/") &&
		!strings.HasSuffix(name, "/") &&
		!strings.Contains(name, "..")
}

// PagesURL returns the GitHub Pages URL for a repository. A repository
// named <owner>.github.io is a user page and lives at the domain root;
// anything else is a project page under the owner's domain.
func PagesURL(owner, repo string) string {
	lowerOwner := strings.ToLower(owner)
	if strings.ToLower(repo) == lowerOwner+".github.io" {
		return "https://" + lowerOwner + ".github.io"
	}
	return "https://" + lowerOwner + ".github.io/" + repo
}
