package nfa

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianloic/llvm-fnmatch/pkg/charset"
	"github.com/ianloic/llvm-fnmatch/pkg/diag"
	"github.com/ianloic/llvm-fnmatch/pkg/fsm"
	"github.com/ianloic/llvm-fnmatch/pkg/tt"
)

func match(pattern, s string) bool {
	g, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return fsm.MatchNFA(g, s)
}

func TestCompile_Matching(t *testing.T) {
	tt.Test(t, tt.Fn("match", match), tt.Table{
		tt.Args("*.txt", "README.txt").Rets(true),
		tt.Args("*.txt", "README").Rets(false),
		tt.Args("*.txt", ".txt").Rets(true),
		tt.Args("README*", "README.txt").Rets(true),
		tt.Args("README*", "README").Rets(true),
		tt.Args("[a-c]at", "bat").Rets(true),
		tt.Args("[a-c]at", "dat").Rets(false),
		tt.Args("[!a-c]at", "dat").Rets(true),
		tt.Args("[!a-c]at", "bat").Rets(false),
		tt.Args("", "").Rets(true),
		tt.Args("", "x").Rets(false),

		tt.Args("?", "a").Rets(true),
		tt.Args("?", "").Rets(false),
		tt.Args("?", "ab").Rets(false),
		tt.Args("a*b*c", "abc").Rets(true),
		tt.Args("a*b*c", "axxbyyc").Rets(true),
		tt.Args("a*b*c", "axxbyy").Rets(false),
		tt.Args("**", "").Rets(true),
		tt.Args("a**b", "ab").Rets(true),
		tt.Args("*", "anything at all").Rets(true),
		tt.Args(`\*`, "*").Rets(true),
		tt.Args(`\*`, "x").Rets(false),
		tt.Args(`\?\[`, "?[").Rets(true),
		tt.Args(`[*?]`, "?").Rets(true),
		tt.Args(`[*?]`, "x").Rets(false),
		tt.Args("[a-]", "-").Rets(true),
		tt.Args("[a-]", "a").Rets(true),
		tt.Args("[a-]", "b").Rets(false),
		tt.Args("[-a]", "-").Rets(true),
		tt.Args("[a-c-e]", "-").Rets(true),
		tt.Args("[a-c-e]", "d").Rets(false),
		tt.Args("[c-a]", "b").Rets(true),
		tt.Args("[]", "x").Rets(false),
		tt.Args("[!]", "x").Rets(true),
		tt.Args("[α-γ]", "β").Rets(true),
		tt.Args("日*", "日本語").Rets(true),
	})
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		pattern string
		kind    error
		rng     diag.Ranging
	}{
		{"[abc", ErrUnterminatedBracketExpression, diag.Ranging{From: 0, To: 4}},
		{"x[", ErrUnterminatedBracketExpression, diag.Ranging{From: 1, To: 2}},
		{"x[!", ErrUnterminatedBracketExpression, diag.Ranging{From: 1, To: 3}},
		{"[a-", ErrUnterminatedBracketExpression, diag.Ranging{From: 0, To: 3}},
		{`abc\`, ErrUnterminatedEscape, diag.Ranging{From: 3, To: 4}},
		{`\`, ErrUnterminatedEscape, diag.Ranging{From: 0, To: 1}},
	}
	for _, test := range tests {
		g, err := Compile(test.pattern)
		if g != nil {
			t.Errorf("Compile(%q) returned a graph", test.pattern)
		}
		if !errors.Is(err, test.kind) {
			t.Errorf("Compile(%q) -> %v, want %v", test.pattern, err, test.kind)
			continue
		}
		var diagErr *diag.Error
		if !errors.As(err, &diagErr) {
			t.Errorf("Compile(%q) -> %T, want *diag.Error", test.pattern, err)
			continue
		}
		if diagErr.Range() != test.rng {
			t.Errorf("Compile(%q) error range %v, want %v", test.pattern, diagErr.Range(), test.rng)
		}
	}
}

func TestCompile_Shape(t *testing.T) {
	g, err := Compile("a*[!x]")
	if err != nil {
		t.Fatal(err)
	}
	want := []fsm.State{
		{ID: 0, Name: InitialName, Transitions: []fsm.Transition{
			{Chars: charset.Including('a'), Target: 1}}},
		{ID: 1, Name: "a", Transitions: []fsm.Transition{
			{Chars: charset.Any(), Target: 2},
			{Chars: charset.Excluding('x'), Target: 3}}},
		{ID: 2, Name: "*", Transitions: []fsm.Transition{
			{Chars: charset.Any(), Target: 2},
			{Chars: charset.Excluding('x'), Target: 3}}},
		{ID: 3, Name: "[!x]", Terminal: true},
	}
	var got []fsm.State
	g.Walk(func(s fsm.State) { got = append(got, s) })
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compile(%q) (-want +got):\n%s", "a*[!x]", diff)
	}
	if g.Deterministic() {
		t.Errorf("NFA is marked deterministic")
	}
}

func TestCompile_Empty(t *testing.T) {
	g, err := Compile("")
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 1 || !g.State(g.Initial()).Terminal {
		t.Errorf("Compile(\"\") should have a single terminal state")
	}
}
