// Package version holds build metadata. Defaults suit dev builds; releases
// set Version/Commit via: go build -ldflags "-X github.com/chuckie/aigitcommit/internal/version.Version=v1.0.0"
package version

// Name is the program name used in CLI help and outbound request headers.
const Name = "aigitcommit"

// Description is the one-line summary shown by the CLI.
const Description = "Generate conventional Git commit messages for staged changes with an LLM."

// Homepage is sent as the HTTP-Referer header on LLM requests.
const Homepage = "https://github.com/chuckie/aigitcommit"

// Version is the CLI version. Set at build time for releases.
var Version = "dev"

// Commit is the short git commit hash. Set at build time via ldflags.
var Commit = ""

// String returns the version string for display (e.g. --version).
func String() string {
	if Version != "dev" || Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}

// UserAgent identifies the client on outbound HTTP requests.
func UserAgent() string {
	return Name + "/" + String()
}
