package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestBannerPlain(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	if got := Banner(); got != "silver 1.2.3" {
		t.Errorf("Banner() = %q, want %q", got, "silver 1.2.3")
	}

	Version, GitCommit, BuildDate = "1.2.3-rc1", "abc123", "2024-01-15"
	want := "silver 1.2.3-rc1 (abc123, 2024-01-15)"
	if got := Banner(); got != want {
		t.Errorf("Banner() = %q, want %q", got, want)
	}
}

func TestBannerKeepsOddVersions(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	orig := Version
	defer func() { Version = orig }()

	Version = "nightly"
	if got := colorize(Version); got != "nightly" {
		t.Errorf("colorize(%q) = %q", Version, got)
	}
}
