// Package version carries build metadata, set at link time with
// -ldflags "-X github.com/MrSnakeDoc/bio/internal/version.Version=v1.2.0 ...".
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"     // ex: v0.1.0
	Commit    = "none"    // ex: abcd123
	BuildDate = "unknown" // ex: 2025-08-11T18:42:00Z
)

// Info is the build metadata of the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
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
	return fmt.Sprintf("%s (commit=%s, built=%s, go=%s)", i.Version, i.Commit, i.BuildDate, i.GoVersion)
}
