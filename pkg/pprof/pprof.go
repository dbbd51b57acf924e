// Package pprof provides the profiling subprogram, which handles the
// -cpuprofile and -allocsprofile flags and lets later subprograms run while
// the profiles are collected.
package pprof

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/ianloic/llvm-fnmatch/pkg/prog"
)

// Program is the profiling subprogram. It always defers to the next program.
type Program struct {
	cpuProfile    string
	allocsProfile string
}

func (p *Program) RegisterFlags(f *prog.FlagSet) {
	f.StringVar(&p.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	f.StringVar(&p.allocsProfile, "allocsprofile", "", "write memory allocation profile to file")
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	var cleanups []func([3]*os.File)
	if f := create(fds, "CPU profile", p.cpuProfile); f != nil {
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot start CPU profiling:", err)
			f.Close()
		} else {
			cleanups = append(cleanups, func([3]*os.File) {
				pprof.StopCPUProfile()
				f.Close()
			})
		}
	}
	if f := create(fds, "memory allocation profile", p.allocsProfile); f != nil {
		cleanups = append(cleanups, func([3]*os.File) {
			pprof.Lookup("allocs").WriteTo(f, 0)
			f.Close()
		})
	}
	return prog.NextProgram(cleanups...)
}

// Creates a profile file, or warns and returns nil if that fails. Also returns
// nil if path is empty.
func create(fds [3]*os.File, what, path string) *os.File {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(fds[2], "Warning: cannot create %s: %v\n", what, err)
		fmt.Fprintf(fds[2], "Continuing without writing %s.\n", what)
		return nil
	}
	return f
}
