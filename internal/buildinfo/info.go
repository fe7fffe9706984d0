// Package buildinfo holds version metadata stamped at build time via
// -ldflags "-X github.com/civicledger/munibudget/internal/buildinfo.Version=...".
package buildinfo

var (
	// Version is the release version, "dev" for local builds.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
