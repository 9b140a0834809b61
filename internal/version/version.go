// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Template is the cobra version template for the nvl root command.
func Template() string {
	return fmt.Sprintf("nvl version {{.Version}} (commit: %s, built: %s)\n", Commit, Date)
}
