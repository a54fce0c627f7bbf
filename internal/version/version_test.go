package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestColoredKeepsText(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	for _, v := range []string{"0.1.0-dev", "1.2.3", "1.2.3-rc.1+build.123", "weird"} {
		withVersion(t, v, "", "")
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestString(t *testing.T) {
	color.NoColor = true
	withVersion(t, "1.0.0", "abc123", "2024-01-15")
	got := String()
	for _, want := range []string{"lexkit 1.0.0", "(abc123)", "built 2024-01-15", runtime.GOOS + "/" + runtime.GOARCH} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, lacks %q", got, want)
		}
	}
}

func TestStringOmitsEmptyFields(t *testing.T) {
	color.NoColor = true
	withVersion(t, "1.0.0", "", "")
	if got := String(); strings.Contains(got, "()") || strings.Contains(got, "built") {
		t.Errorf("String() = %q", got)
	}
}
