package progtest

import (
	"io"
	"os"
	"testing"

	"github.com/ianloic/llvm-fnmatch/pkg/prog"
)

// Verify we don't deadlock if more output is written to stdout than can be
// buffered by a pipe.
func TestOutputCaptureDoesNotDeadlock(t *testing.T) {
	Test(t, noisyProgram{},
		ThatFnmatch().WritesStdoutContaining("hello"),
	)
}

type noisyProgram struct{}

func (noisyProgram) RegisterFlags(f *prog.FlagSet) {}

func (noisyProgram) Run(fds [3]*os.File, args []string) error {
	// We need enough data to verify whether we're likely to deadlock due to
	// filling the pipe before the test completes. Pipes typically buffer 8 to
	// 128 KiB.
	bytes := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	for i := 0; i < 128*1024/len(bytes); i++ {
		fds[1].Write(bytes)
	}
	fds[1].WriteString("hello")
	return nil
}

func TestStdin(t *testing.T) {
	Test(t, echoProgram{},
		ThatFnmatch().WithStdin("some input\n").WritesStdout("some input\n"),
		ThatFnmatch().WritesStdout(""),
	)
}

type echoProgram struct{}

func (echoProgram) RegisterFlags(f *prog.FlagSet) {}

func (echoProgram) Run(fds [3]*os.File, args []string) error {
	_, err := io.Copy(fds[1], fds[0])
	return err
}

func TestRun(t *testing.T) {
	exit, stdout, stderr := Run(failingProgram{}, []string{"fnmatch"}, "")
	if exit != 3 || stdout != "out" || stderr != "err" {
		t.Errorf("Run -> %v, %q, %q", exit, stdout, stderr)
	}
}

type failingProgram struct{}

func (failingProgram) RegisterFlags(f *prog.FlagSet) {}

func (failingProgram) Run(fds [3]*os.File, args []string) error {
	fds[1].WriteString("out")
	fds[2].WriteString("err")
	return prog.Exit(3)
}
