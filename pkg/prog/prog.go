// Package prog provides the entry point to the fnmatch command. The
// subprograms it runs live in their own packages.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ianloic/llvm-fnmatch/pkg/logutil"
)

// Program represents a subprogram.
type Program interface {
	// RegisterFlags registers the flags of the subprogram. Flags that are
	// shared among subprograms are registered through the methods of FlagSet.
	RegisterFlags(fs *FlagSet)
	// Run runs the subprogram with the non-flag arguments. It returns
	// ErrNextProgram or a value from NextProgram if it is not applicable.
	Run(fds [3]*os.File, args []string) error
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: fnmatch [flags] pattern [input...]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the given Program, usually built
// with Composite. It returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	fs := flag.NewFlagSet("fnmatch", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	var log string
	var help bool
	fs.StringVar(&log, "log", "", "a file to write debug log to")
	fs.BoolVar(&help, "help", false, "show usage help and quit")

	p.RegisterFlags(&FlagSet{FlagSet: fs})

	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// -h is not defined but flag still returns ErrHelp for it; treat
			// it like any other unknown flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if log != "" {
		err = logutil.SetOutputFile(log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	if help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, fs.Args())
	if err == nil {
		return 0
	}
	if np, ok := err.(nextProgramError); ok {
		np.cleanup(fds)
		err = errNoSuitableSubprogram
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// Composite returns a Program made up of the given programs. It registers the
// flags of all of them, and runs them in turn until one of them does not
// return a value from NextProgram.
func Composite(programs ...Program) Program {
	return composite(programs)
}

type composite []Program

func (cp composite) RegisterFlags(f *FlagSet) {
	for _, p := range cp {
		p.RegisterFlags(f)
	}
}

func (cp composite) Run(fds [3]*os.File, args []string) error {
	var cleanups []func([3]*os.File)
	for _, p := range cp {
		err := p.Run(fds, args)
		if np, ok := err.(nextProgramError); ok {
			cleanups = append(cleanups, np.cleanups...)
			continue
		}
		nextProgramError{cleanups}.cleanup(fds)
		return err
	}
	return nextProgramError{cleanups}
}

var errNoSuitableSubprogram = errors.New("internal error: no suitable subprogram")

// ErrNextProgram is a special error that may be returned by Program.Run, to
// signify that the next program in a Composite should be run instead.
var ErrNextProgram error = nextProgramError{}

// NextProgram is like ErrNextProgram, but also carries cleanup functions to
// run after the subprogram that ends up handling the invocation finishes.
// Cleanups run in the reverse order they are collected.
func NextProgram(cleanups ...func([3]*os.File)) error {
	return nextProgramError{cleanups}
}

type nextProgramError struct{ cleanups []func([3]*os.File) }

func (nextProgramError) Error() string { return "next program" }

func (e nextProgramError) cleanup(fds [3]*os.File) {
	for i := len(e.cleanups) - 1; i >= 0; i-- {
		e.cleanups[i](fds)
	}
}

// IsNextProgram reports whether err was returned by ErrNextProgram or
// NextProgram.
func IsNextProgram(err error) bool {
	_, ok := err.(nextProgramError)
	return ok
}

// BadUsage returns a special error that may be returned by Program.Run. It
// causes Run to print out a message, the usage information and exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// Run to exit with the given code without printing any error messages. Exit(0)
// returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
