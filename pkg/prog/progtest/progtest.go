// Package progtest provides a framework for testing subprograms.
//
// The entry point is Test, which runs a prog.Program against a number of
// Case values built with ThatFnmatch, checking the exit status and the
// output written to stdout and stderr:
//
//	Test(t, &match.Program{},
//		ThatFnmatch("*.txt", "a.txt").WritesStdout("a.txt\n"),
//		ThatFnmatch("[").ExitsWith(2),
//	)
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/ianloic/llvm-fnmatch/pkg/must"
	"github.com/ianloic/llvm-fnmatch/pkg/prog"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitStatus int
	stdout     output
	stderr     output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + o.content
	}
	return o.content
}

// ThatFnmatch returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "fnmatch -bad-flag" exits with 2 reads
// like:
//
//	ThatFnmatch("-bad-flag").ExitsWith(2)
func ThatFnmatch(args ...string) Case {
	return Case{args: append([]string{"fnmatch"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin of
// the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatFnmatch("-help").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit status.
func (c Case) ExitsWith(code int) Case {
	c.want.exitStatus = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program run
// to write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program run
// to write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			exit, stdout, stderr := Run(p, c.args, c.stdin)
			if exit != c.want.exitStatus {
				t.Errorf("got exit status %v, want %v", exit, c.want.exitStatus)
			}
			if !matchOutput(stdout, c.want.stdout) {
				t.Errorf("got stdout %q, want %s", stdout, c.want.stdout)
			}
			if !matchOutput(stderr, c.want.stderr) {
				t.Errorf("got stderr %q, want %s", stderr, c.want.stderr)
			}
		})
	}
}

// Run runs a Program with the given arguments and stdin. It returns the exit
// status and the output written to stdout and stderr.
//
// The first element of args is the name of the program; it is not parsed as a
// flag.
func Run(p prog.Program, args []string, stdin string) (exit int, stdout, stderr string) {
	r0, w0 := must.Pipe()
	// Write stdin concurrently, so that a program that doesn't read all of it
	// doesn't block us.
	go func() {
		w0.WriteString(stdin)
		w0.Close()
	}()
	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()
	// Read output concurrently, so that a program writing more than a pipe
	// can buffer doesn't deadlock.
	outCh, errCh := readAllAsync(r1), readAllAsync(r2)

	exit = prog.Run([3]*os.File{r0, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	stdout, stderr = <-outCh, <-errCh
	r0.Close()
	r1.Close()
	r2.Close()
	return exit, stdout, stderr
}

func readAllAsync(r io.Reader) <-chan string {
	ch := make(chan string, 1)
	go func() {
		ch <- string(must.OK1(io.ReadAll(r)))
	}()
	return ch
}

func matchOutput(got string, want output) bool {
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}
