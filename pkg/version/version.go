// Package version holds build metadata injected via ldflags:
//
//	go build -ldflags "-X github.com/smashmate/smashmate/pkg/version.tag=v0.1.0
//	  -X github.com/smashmate/smashmate/pkg/version.commit=abc1234"
package version

var (
	tag    = ""        // git tag, empty off-tag
	commit = "unknown" // short commit SHA
)

// String returns the tag when built from one, otherwise the commit,
// otherwise "dev".
func String() string {
	if tag != "" {
		return tag
	}
	if commit != "unknown" {
		return commit
	}
	return "dev"
}

// Commit returns the short commit SHA.
func Commit() string { return commit }
