package vcs

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// MinimumVersion is the oldest git that understands the `branch` key in
// .gitmodules together with `submodule update --merge`.
const MinimumVersion = "1.8.2"

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion extracts the version from `git --version` output, e.g.
// "git version 2.39.3 (Apple Git-146)" or "git version 2.41.0.windows.1".
func ParseVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("no version number in %q", output)
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	return semver.NewVersion(m[1] + "." + m[2] + "." + patch)
}

// Version runs `git --version` and parses the result.
func Version(ctx context.Context, r Runner) (*semver.Version, error) {
	out, err := r.Output(ctx, "", VersionArgs()...)
	if err != nil {
		return nil, fmt.Errorf("querying git version: %w", err)
	}
	return ParseVersion(out)
}

// SupportsMinimum reports whether v is at least MinimumVersion.
func SupportsMinimum(v *semver.Version) bool {
	return v.Compare(semver.MustParse(MinimumVersion)) >= 0
}
