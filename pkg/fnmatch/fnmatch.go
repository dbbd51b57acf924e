// Package fnmatch matches strings against shell glob patterns by compiling
// them into deterministic finite automata.
//
// Supported syntax: "*" matches any run of characters, "?" matches one
// character, "[...]" and "[!...]" match one character in or not in a set
// (with ranges such as "a-z"), and a backslash escapes the character after
// it. All other characters match themselves.
package fnmatch

import (
	"github.com/ianloic/llvm-fnmatch/pkg/dfa"
	"github.com/ianloic/llvm-fnmatch/pkg/fsm"
	"github.com/ianloic/llvm-fnmatch/pkg/nfa"
)

// Pattern is a compiled glob pattern. It is safe for concurrent use.
type Pattern struct {
	src string
	nfa *fsm.Graph
	dfa *fsm.Graph
}

// Compile compiles a pattern. Syntax errors are *diag.Error values wrapping
// nfa.ErrUnterminatedBracketExpression or nfa.ErrUnterminatedEscape.
func Compile(pattern string) (*Pattern, error) {
	n, err := nfa.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Pattern{pattern, n, dfa.FromNFA(n)}, nil
}

// MustCompile is like Compile, but panics on errors.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether s matches pattern.
func Match(pattern, s string) (bool, error) {
	p, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return p.Match(s), nil
}

// Match reports whether s matches the pattern, using the DFA.
func (p *Pattern) Match(s string) bool { return fsm.MatchDFA(p.dfa, s) }

// MatchNFA reports whether s matches the pattern, using the NFA. It always
// agrees with Match.
func (p *Pattern) MatchNFA(s string) bool { return fsm.MatchNFA(p.nfa, s) }

// NFA returns the nondeterministic graph of the pattern.
func (p *Pattern) NFA() *fsm.Graph { return p.nfa }

// DFA returns the deterministic graph of the pattern.
func (p *Pattern) DFA() *fsm.Graph { return p.dfa }

// String returns the source of the pattern.
func (p *Pattern) String() string { return p.src }
