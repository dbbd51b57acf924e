package buildinfo

import (
	"fmt"
	"runtime/debug"
	"testing"

	. "github.com/ianloic/llvm-fnmatch/pkg/prog/progtest"
)

func TestProgram(t *testing.T) {
	Test(t, &Program{},
		ThatFnmatch("-version").WritesStdout(Value.Version+"\n"),
		ThatFnmatch("-version", "-json").WritesStdout(mustToJSON(Value.Version)+"\n"),

		ThatFnmatch("-buildinfo").WritesStdout(
			fmt.Sprintf("Version: %v\nGo version: %v\n", Value.Version, Value.GoVersion)),
		ThatFnmatch("-buildinfo", "-json").WritesStdout(mustToJSON(Value)+"\n"),

		ThatFnmatch().ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func vcsSettings(revision, time, modified string) *debug.BuildInfo {
	return &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: revision},
		{Key: "vcs.time", Value: time},
		{Key: "vcs.modified", Value: modified},
	}}
}

func TestDevVersion(t *testing.T) {
	tests := []struct {
		name        string
		vcsOverride string
		info        *debug.BuildInfo
		want        string
	}{
		{"no build info", "", nil, "1.2.0-dev.unknown"},
		{"devel main module",
			"", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			"1.2.0-dev.unknown"},
		{"installed at a version",
			"", &debug.BuildInfo{Main: debug.Module{Version: "v1.2.0-dev.abc"}},
			"1.2.0-dev.abc"},
		{"clean checkout",
			"", vcsSettings("abcdef0123456789", "2023-05-06T07:08:09Z", "false"),
			"1.2.0-dev.0.20230506070809-abcdef012345"},
		{"dirty checkout",
			"", vcsSettings("abcdef0123456789", "2023-05-06T07:08:09Z", "true"),
			"1.2.0-dev.0.20230506070809-abcdef012345-dirty"},
		{"commit time with offset",
			"", vcsSettings("abcdef0123456789", "2023-05-06T09:08:09+02:00", "false"),
			"1.2.0-dev.0.20230506070809-abcdef012345"},
		{"bad commit time",
			"", vcsSettings("abcdef0123456789", "yesterday", "false"),
			"1.2.0-dev.unknown"},
		{"short revision",
			"", vcsSettings("abc", "2023-05-06T07:08:09Z", "false"),
			"1.2.0-dev.unknown"},
		{"override",
			"20230506070809-abcdef012345", nil,
			"1.2.0-dev.0.20230506070809-abcdef012345"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			read := func() (*debug.BuildInfo, bool) { return test.info, test.info != nil }
			if got := devVersion("1.2.0", test.vcsOverride, read); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}
