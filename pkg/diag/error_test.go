package diag

import (
	"errors"
	"strings"
	"testing"
)

var errTest = errors.New("test kind")

func TestError(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")

	err := &Error{
		Type:    "syntax error",
		Message: "bad thing",
		Context: *NewContext("pattern", "ab(cd", Ranging{2, 5}),
		Cause:   errTest,
	}

	wantError := "syntax error: pattern:1:3: bad thing"
	if got := err.Error(); got != wantError {
		t.Errorf("Error() -> %q, want %q", got, wantError)
	}
	if got := err.Range(); got != (Ranging{2, 5}) {
		t.Errorf("Range() -> %v", got)
	}
	wantShow := "Syntax error: {bad thing}\n  pattern:1:3: ab<(cd>"
	if got := err.Show(""); got != wantShow {
		t.Errorf("Show() -> %q, want %q", got, wantShow)
	}
	if !errors.Is(err, errTest) {
		t.Errorf("errors.Is(err, errTest) -> false")
	}
}

func TestShowError(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")
	err := &Error{Type: "syntax error", Message: "m",
		Context: *NewContext("p", "x", Ranging{0, 1})}

	var sb strings.Builder
	ShowError(&sb, err, true)
	if got, want := sb.String(), "Syntax error: {m}\n  p:1:1: <x>\n"; got != want {
		t.Errorf("styled -> %q, want %q", got, want)
	}
	sb.Reset()
	ShowError(&sb, err, false)
	if got, want := sb.String(), "syntax error: p:1:1: m\n"; got != want {
		t.Errorf("plain -> %q, want %q", got, want)
	}
	sb.Reset()
	ShowError(&sb, errors.New("plain"), true)
	if got := sb.String(); got != "plain\n" {
		t.Errorf("non-Shower -> %q", got)
	}
}
