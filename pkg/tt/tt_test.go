package tt

import (
	"fmt"
	"strings"
	"testing"
)

// recorder implements the T interface and records the errors.
type recorder []string

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	*r = append(*r, fmt.Sprintf(format, args...))
}

func add(x, y int) int { return x + y }

func addsub(x, y int) (int, int) { return x + y, x - y }

func TestPass(t *testing.T) {
	var r recorder
	Test(&r, Fn("addsub", addsub), Table{
		Args(1, 10).Rets(11, -9),
		Args(2, 2).Rets(4, 0).Rets(Any, 0),
	})
	if len(r) > 0 {
		t.Errorf("Test errors when test should pass: %q", r)
	}
}

func TestFailDefaultFmtOneReturn(t *testing.T) {
	var r recorder
	Test(&r, Fn("add", add), Table{Args(1, 10).Rets(12)})
	assertOneError(t, r, "add(1, 10) returns (-Wanted +Actual):\n")
}

func TestFailDefaultFmtMultiReturn(t *testing.T) {
	var r recorder
	Test(&r, Fn("addsub", addsub), Table{Args(1, 10).Rets(11, -90)})
	assertOneError(t, r, "addsub(1, 10) returns (-Wanted +Actual):\n")
}

func TestFailCustomFmt(t *testing.T) {
	var r recorder
	Test(&r,
		Fn("addsub", addsub).ArgsFmt("x = %d, y = %d").RetsFmt("(a = %d, b = %d)"),
		Table{Args(1, 10).Rets(11, -90)})
	assertOneError(t, r, "addsub(x = 1, y = 10) returns (-Wanted +Actual):\n")
}

func TestNilArgument(t *testing.T) {
	var r recorder
	Test(&r, Fn("isNil", func(v any) bool { return v == nil }), Table{
		Args(nil).Rets(true),
	})
	if len(r) > 0 {
		t.Errorf("Test errors when test should pass: %q", r)
	}
}

func assertOneError(t *testing.T, r recorder, wantPrefix string) {
	t.Helper()
	switch len(r) {
	case 0:
		t.Errorf("Test didn't error when it should have done so")
	case 1:
		if !strings.HasPrefix(r[0], wantPrefix) {
			t.Errorf("Test wrote message:\nWanted: %q...\nActual: %q", wantPrefix, r[0])
		}
	default:
		t.Errorf("Test wrote too many error messages")
	}
}
