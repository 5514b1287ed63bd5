package version

import (
	"fmt"
	"runtime"
)

// Build-time variables (override via -ldflags -X ...).
// Example:
//
//	go build -ldflags "-X github.com/tomlin-labs/archivefs/internal/version.Version=0.3.0 -X github.com/tomlin-labs/archivefs/internal/version.Commit=abcd123 -X github.com/tomlin-labs/archivefs/internal/version.BuildDate=2026-01-10"
var (
	Version   = "v0.3.0"
	Commit    = ""
	BuildDate = ""
)

// Info is printed by cmd/archivefs's --version flag; nothing in this
// engine exposes it over a wire format, so it carries no struct tags.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	// Keep this stable for CLI output.
	s := i.Version
	if s == "" {
		s = "dev"
	}
	if i.Commit != "" {
		s += fmt.Sprintf(" (%s)", i.Commit)
	}
	if i.BuildDate != "" {
		s += fmt.Sprintf(" built %s", i.BuildDate)
	}
	s += fmt.Sprintf(" [%s]", i.GoVersion)
	return s
}
