// Package testutil contains common test utilities.
package testutil

import (
	"os"
	"path/filepath"

	"github.com/ianloic/llvm-fnmatch/pkg/must"
)

// Cleanuper wraps the Cleanup method. It is a subset of testing.TB, thus
// satisfied by *testing.T and *testing.B.
type Cleanuper interface {
	Cleanup(func())
}

// TempDirer is satisfied by *testing.T and *testing.B.
type TempDirer interface {
	Cleanuper
	TempDir() string
}

// TempDir returns a temporary directory with symlinks resolved, removed when
// the test finishes.
func TempDir(t TempDirer) string {
	return must.OK1(filepath.EvalSymlinks(t.TempDir()))
}

// InTempDir is like TempDir, but also changes into the directory, and changes
// back to the original working directory when the test finishes.
func InTempDir(t TempDirer) string {
	dir := TempDir(t)
	pwd := must.OK1(os.Getwd())
	must.Chdir(dir)
	t.Cleanup(func() { must.Chdir(pwd) })
	return dir
}

// WriteFiles writes files into the current directory. Keys are file names
// relative to the directory, and values are the contents.
func WriteFiles(files map[string]string) {
	for name, content := range files {
		must.OK(os.MkdirAll(filepath.Dir(name), 0o700))
		must.OK(os.WriteFile(name, []byte(content), 0o600))
	}
}
