package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	// GitCommit and BuildDate are optional and may be empty.
	_ = GitCommit
	_ = BuildDate
}

func TestBanner_PlainWhenColorDisabled(t *testing.T) {
	origNoColor := color.NoColor
	origVersion := Version
	defer func() {
		color.NoColor = origNoColor
		Version = origVersion
	}()

	color.NoColor = true
	Version = "1.2.3"
	if got := Banner(); got != "castlink 1.2.3" {
		t.Errorf("Banner() = %q, want %q", got, "castlink 1.2.3")
	}

	Version = ""
	if got := Banner(); !strings.HasSuffix(got, " dev") {
		t.Errorf("Banner() with empty version = %q, want dev suffix", got)
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origGitCommit, origBuildDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origGitCommit, origBuildDate
	}()

	// Simulates build-time ldflags.
	Version = "1.2.3-rc.1+build.123"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	if Version != "1.2.3-rc.1+build.123" || GitCommit != "abc123def456" || BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("overrides not applied: %q %q %q", Version, GitCommit, BuildDate)
	}
}
