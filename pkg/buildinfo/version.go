// Package buildinfo holds version metadata stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/framer/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/framer/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" \
//	    ./cmd/framer
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String returns the multi-line build summary printed by `framer version`.
func String() string {
	return fmt.Sprintf("version: %s\ncommit:  %s\nbuilt:   %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s)\n", Version, Commit)
}

// CacheScope returns the prefix that partitions cached artifacts by build.
// Development builds also scope by commit since their output may change
// between commits under the same version.
func CacheScope() string {
	if Version == "dev" {
		return fmt.Sprintf("framer:dev-%s:", Commit)
	}
	return fmt.Sprintf("framer:%s:", Version)
}
