package app

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the semantic version of aidex, set at build time via -ldflags.
var Version = "dev"

// Build is the git commit hash or build identifier, set at build time via -ldflags.
var Build = "unknown"

// VersionInfo describes the running build.
type VersionInfo struct {
	Version    string `json:"version"`
	Build      string `json:"build"`
	Release    bool   `json:"release"`
	Prerelease string `json:"prerelease,omitempty"`
}

// CurrentVersion reports Version and Build. Versions that are not valid
// semver, such as "dev", are never releases.
func CurrentVersion() VersionInfo {
	return describeVersion(Version, Build)
}

func describeVersion(version, build string) VersionInfo {
	info := VersionInfo{Version: version, Build: build}
	candidate := strings.TrimSpace(version)
	if candidate != "" && !strings.HasPrefix(candidate, "v") {
		candidate = "v" + candidate
	}
	canonical := semver.Canonical(candidate)
	if canonical == "" {
		return info
	}
	info.Version = canonical
	info.Prerelease = strings.TrimPrefix(semver.Prerelease(canonical), "-")
	info.Release = info.Prerelease == ""
	return info
}
