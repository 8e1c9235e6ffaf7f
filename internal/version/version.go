// Package version provides centralized version information management
// for the splitfile application.
//
// Build-time injection:
// The version variables are typically set during build using ldflags:
//
//	-ldflags "-X splitfile/internal/version.version=v1.0.0 -X splitfile/internal/version.commit=abc123 -X splitfile/internal/version.buildTime=2026-01-01T00:00:00Z"
package version

import (
	"fmt"
	"io"
)

// These variables are set via ldflags during build.
// They should not be modified directly in code.
//
//nolint:gochecknoglobals // Required for build-time injection via ldflags.
var (
	// version holds the application version (e.g., "v1.0.0").
	version string
	// commit holds the git commit hash (e.g., "abc123def456").
	commit string
	// buildTime holds the build timestamp in RFC3339 format.
	buildTime string
)

// ApplicationName is the name of the application displayed in version output.
const ApplicationName = "splitfile CLI"

// Default values used when version information is not available.
const (
	DefaultVersion   = "dev"
	DefaultCommit    = "unknown"
	DefaultBuildTime = "unknown"
)

// VersionInfo encapsulates all version-related information with proper defaults.
type VersionInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// GetVersion returns the current version information with defaults
// applied for any value not injected at build time.
func GetVersion() *VersionInfo {
	info := &VersionInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
	}
	if info.Version == "" {
		info.Version = DefaultVersion
	}
	if info.Commit == "" {
		info.Commit = DefaultCommit
	}
	if info.BuildTime == "" {
		info.BuildTime = DefaultBuildTime
	}
	return info
}

// SetBuildVars overrides the build-time variables. It exists for build
// systems that inject version information through a different package.
func SetBuildVars(v, c, bt string) {
	version = v
	commit = c
	buildTime = bt
}

// Write renders the version information to w. In short mode only the
// bare version number is printed.
func (v *VersionInfo) Write(w io.Writer, short bool) error {
	if short {
		_, err := fmt.Fprintln(w, v.Version)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", ApplicationName, v.Version); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Commit: %s\n", v.Commit); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Built: %s\n", v.BuildTime)
	return err
}
