// Package version reports build metadata for the luadoc binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string
)

// Info is the build metadata of the running binary.
type Info struct {
	Version   string `json:"version"             yaml:"version"`
	Revision  string `json:"revision"            yaml:"revision"`
	Branch    string `json:"branch,omitempty"    yaml:"branch,omitempty"`
	BuildUser string `json:"buildUser,omitempty" yaml:"buildUser,omitempty"`
	BuildDate string `json:"buildDate,omitempty" yaml:"buildDate,omitempty"`
	GoVersion string `json:"goVersion"           yaml:"goVersion"`
	Platform  string `json:"platform"            yaml:"platform"`
}

// Get returns the build metadata. Unset ldflags fall back to the module
// build info embedded by the Go toolchain.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()

	return newInfo(bi)
}

func newInfo(bi *debug.BuildInfo) Info {
	info := Info{
		Version:   Version,
		Revision:  revision(bi),
		Branch:    Branch,
		BuildUser: BuildUser,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if info.Version == "" && bi != nil && bi.Main.Version != "" {
		info.Version = bi.Main.Version
	}

	if info.Version == "" {
		info.Version = "(devel)"
	}

	return info
}

// String renders i as one line per field, skipping empty ones.
func (i Info) String() string {
	var sb strings.Builder

	fields := []struct{ k, v string }{
		{"version", i.Version},
		{"revision", i.Revision},
		{"branch", i.Branch},
		{"build user", i.BuildUser},
		{"build date", i.BuildDate},
		{"go version", i.GoVersion},
		{"platform", i.Platform},
	}

	for _, f := range fields {
		if f.v == "" {
			continue
		}

		fmt.Fprintf(&sb, "%-11s %s\n", f.k+":", f.v)
	}

	return sb.String()
}

func revision(bi *debug.BuildInfo) string {
	rev := "unknown"

	if bi == nil {
		return rev
	}

	modified := false

	for _, v := range bi.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
