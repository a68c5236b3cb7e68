package version

import "github.com/fatih/color"

// Version information for the castlink CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	nameColor    = color.New(color.FgYellow, color.Bold)
	versionColor = color.New(color.FgGreen, color.Bold)
)

// Banner returns "castlink <version>" with colour when enabled.
func Banner() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	return nameColor.Sprint("castlink") + " " + versionColor.Sprint(v)
}
