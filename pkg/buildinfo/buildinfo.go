// Package buildinfo contains build information and the subprogram that shows
// it.
//
// Build information can be overridden when building fnmatch by passing
// -ldflags "-X github.com/ianloic/llvm-fnmatch/pkg/buildinfo.Var=value" to
// "go build".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/ianloic/llvm-fnmatch/pkg/prog"
)

// VersionBase is the version of the next release. Development builds append
// a suffix to it.
const VersionBase = "0.2.0"

// VCSOverride, when set, is used in place of the VCS information recorded by
// the Go toolchain. It should be a pseudo-version suffix of the form
// "20060102150405-123456789012".
var VCSOverride string

// BuildVariant identifies who built the binary, for example a distribution.
var BuildVariant string

// Type contains all the build information fields.
type Type struct {
	Version   string `json:"version"`
	GoVersion string `json:"goversion"`
	Variant   string `json:"variant,omitempty"`
}

// Value contains all the build information.
var Value = Type{
	Version:   devVersion(VersionBase, VCSOverride, debug.ReadBuildInfo),
	GoVersion: runtime.Version(),
	Variant:   BuildVariant,
}

func devVersion(next, vcsOverride string, readBuildInfo func() (*debug.BuildInfo, bool)) string {
	if vcsOverride != "" {
		return next + "-dev.0." + vcsOverride
	}
	fallback := next + "-dev.unknown"
	info, ok := readBuildInfo()
	if !ok {
		return fallback
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		// Installed with "go install module@version".
		return strings.TrimPrefix(v, "v")
	}
	var revision, commitTime string
	modified := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.time":
			commitTime = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(revision) < 12 {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, commitTime)
	if err != nil {
		return fallback
	}
	v := fmt.Sprintf("%s-dev.0.%s-%s", next, t.UTC().Format("20060102150405"), revision[:12])
	if modified {
		v += "-dirty"
	}
	return v
}

// Program is the buildinfo subprogram. It handles -version and -buildinfo.
type Program struct {
	version, buildinfo bool
	json               *bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.version, "version", false, "show version and quit")
	fs.BoolVar(&p.buildinfo, "buildinfo", false, "show build info and quit")
	p.json = fs.JSON()
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	switch {
	case p.buildinfo:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
			if Value.Variant != "" {
				fmt.Fprintln(fds[1], "Variant:", Value.Variant)
			}
		}
	case p.version:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value.Version))
		} else {
			fmt.Fprintln(fds[1], Value.Version)
		}
	default:
		return prog.ErrNextProgram
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
