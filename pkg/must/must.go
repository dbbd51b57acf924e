// Package must contains functions that panic on errors.
//
// It should only be used in tests and in places where errors are provably
// impossible.
package must

import "os"

// OK panics if err is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 returns v, panicking if err is not nil.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// OK2 returns v1 and v2, panicking if err is not nil.
func OK2[T1, T2 any](v1 T1, v2 T2, err error) (T1, T2) {
	OK(err)
	return v1, v2
}

// Chdir wraps os.Chdir.
func Chdir(dir string) { OK(os.Chdir(dir)) }

// Pipe wraps os.Pipe.
func Pipe() (*os.File, *os.File) { return OK2(os.Pipe()) }
