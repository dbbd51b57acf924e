// Command fnmatch matches strings against shell glob patterns compiled to
// finite-state automata.
//
// Usage:
//
//	fnmatch [flags] pattern [input...]
//
// Without inputs, each line of stdin is matched. Matching inputs are printed,
// and the exit status is 0 if any input matched, 1 if none did and 2 on errors.
// Run with -help for all flags, including -bench for comparing matchers and
// -lsp for running a language server for files of patterns.
package main

import (
	"os"

	"github.com/ianloic/llvm-fnmatch/pkg/bench"
	"github.com/ianloic/llvm-fnmatch/pkg/buildinfo"
	"github.com/ianloic/llvm-fnmatch/pkg/lsp"
	"github.com/ianloic/llvm-fnmatch/pkg/match"
	"github.com/ianloic/llvm-fnmatch/pkg/pprof"
	"github.com/ianloic/llvm-fnmatch/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&pprof.Program{}, &buildinfo.Program{}, &lsp.Program{},
			&bench.Program{}, &match.Program{})))
}
