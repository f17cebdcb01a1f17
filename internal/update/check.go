// Package update implements a best-effort "newer release available" check
// against GitHub releases. Failures here must never fail the command that
// asked.
package update

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-github/v81/github"
)

// Repo identifies the GitHub repository used for release checks.
const (
	RepoOwner = "pantry-project"
	RepoName  = "pantryctl"
)

// CheckResult captures the latest release check outcome.
type CheckResult struct {
	Current      string
	Latest       string
	Outdated     bool
	CurrentIsDev bool
}

// Check fetches the latest release via the given GitHub client and compares
// it to currentVersion. Dev builds ("dev", empty, prerelease suffixes) are
// reported as CurrentIsDev and never flagged outdated.
func Check(ctx context.Context, client *github.Client, currentVersion string) (CheckResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		return CheckResult{}, errors.New("update check: nil github client")
	}

	current, isDev := normalizeCurrentVersion(currentVersion)
	result := CheckResult{Current: current, CurrentIsDev: isDev}

	release, _, err := client.Repositories.GetLatestRelease(ctx, RepoOwner, RepoName)
	if err != nil {
		return CheckResult{}, fmt.Errorf("update check: fetch latest release: %w", err)
	}
	latest := strings.TrimPrefix(release.GetTagName(), "v")
	if latest == "" {
		return CheckResult{}, errors.New("update check: latest release has no tag")
	}
	result.Latest = latest

	if !isDev {
		newer, err := versionLess(current, latest)
		if err != nil {
			return CheckResult{}, err
		}
		result.Outdated = newer
	}
	return result, nil
}

func normalizeCurrentVersion(raw string) (version string, isDev bool) {
	v := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if v == "" || v == "dev" || strings.Contains(v, "-") {
		return v, true
	}
	return v, false
}

// versionLess reports whether a < b for dotted numeric versions.
func versionLess(a, b string) (bool, error) {
	as, err := versionParts(a)
	if err != nil {
		return false, err
	}
	bs, err := versionParts(b)
	if err != nil {
		return false, err
	}
	for i := 0; i < len(as) || i < len(bs); i++ {
		av, bv := 0, 0
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		if av != bv {
			return av < bv, nil
		}
	}
	return false, nil
}

func versionParts(v string) ([]int, error) {
	fields := strings.Split(v, ".")
	parts := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("update check: unparseable version %q", v)
		}
		parts = append(parts, n)
	}
	return parts, nil
}
