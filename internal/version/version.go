package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/alekulyn/limo/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/alekulyn/limo/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/alekulyn/limo/internal/version.Date={{.Date}}
)

// String is the multi-line text printed by `limo version`.
func String() string {
	return fmt.Sprintf("limo version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
