package utils

import "fmt"

// Set at build time:
//
//	go build -ldflags "-X gitlab.com/nunet/cudamon/utils.Version=v0.1.0 -X gitlab.com/nunet/cudamon/utils.Commit=$(git rev-parse --short HEAD)"
var (
	Version = "dev"
	Commit  = "unknown"
)

// VersionString returns the version line printed by the version command.
func VersionString() string {
	return fmt.Sprintf("cudamon %s (commit %s)", Version, Commit)
}
