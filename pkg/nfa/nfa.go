// Package nfa compiles glob patterns into nondeterministic automata.
//
// The pattern syntax is:
//
//   - a literal character matches itself;
//   - ? matches any single character;
//   - * matches any run of zero or more characters;
//   - [set] matches any character in set, where set consists of literal
//     characters and ranges like a-z;
//   - [!set] matches any character not in set;
//   - \x matches x literally.
package nfa

import (
	"errors"
	"unicode/utf8"

	"github.com/ianloic/llvm-fnmatch/pkg/charset"
	"github.com/ianloic/llvm-fnmatch/pkg/diag"
	"github.com/ianloic/llvm-fnmatch/pkg/fsm"
)

// Kinds of syntax errors, for use with errors.Is. Errors returned by Compile
// are always of type *diag.Error.
var (
	ErrUnterminatedBracketExpression = errors.New("unterminated bracket expression")
	ErrUnterminatedEscape            = errors.New("unterminated escape")
)

// InitialName is the name of the initial state of a compiled graph.
const InitialName = "INITIAL"

// Compile compiles a pattern into a nondeterministic graph. Each symbol of the
// pattern adds one state, named after the symbol's source text.
func Compile(pattern string) (*fsm.Graph, error) {
	var b fsm.Builder
	// States the transition for the next symbol leaves from. There is more than
	// one after a *, which may match nothing.
	heads := []fsm.StateID{b.AddState(InitialName)}
	p := &parser{src: pattern}
	lastStar := false
	for {
		start := p.pos
		r := p.next()
		if r == eof {
			break
		}
		star := r == '*'
		if star && lastStar {
			// ** is the same as *.
			continue
		}
		lastStar = star

		var chars charset.Set
		switch r {
		case '?', '*':
			chars = charset.Any()
		case '\\':
			x := p.next()
			if x == eof {
				return nil, p.error(start, ErrUnterminatedEscape)
			}
			chars = charset.Including(x)
		case '[':
			var err error
			chars, err = p.bracket(start)
			if err != nil {
				return nil, err
			}
		default:
			chars = charset.Including(r)
		}

		s := b.AddState(pattern[start:p.pos])
		for _, h := range heads {
			b.AddTransition(h, chars, s)
		}
		if star {
			b.AddTransition(s, charset.Any(), s)
			heads = append(heads, s)
		} else {
			heads = append(heads[:0], s)
		}
	}
	for _, h := range heads {
		b.SetTerminal(h, true)
	}
	return b.Build(), nil
}

// Parses the rest of a bracket expression whose [ is at start.
func (p *parser) bracket(start int) (charset.Set, error) {
	negated := false
	r := p.next()
	if r == '!' {
		negated = true
		r = p.next()
	}
	var set charset.Set
	// The last literal member, which may start a range.
	var last rune
	haveLast := false
	for r != ']' {
		switch {
		case r == eof:
			return charset.Set{}, p.error(start, ErrUnterminatedBracketExpression)
		case r == '-' && haveLast:
			hi := p.next()
			switch hi {
			case eof:
				return charset.Set{}, p.error(start, ErrUnterminatedBracketExpression)
			case ']':
				// A - right before ] is literal.
				set = set.Union(charset.Including('-'))
				r = hi
				continue
			}
			set = set.Union(charset.Range(last, hi))
			haveLast = false
		default:
			set = set.Union(charset.Including(r))
			last, haveLast = r, true
		}
		r = p.next()
	}
	if negated {
		return charset.Any().Difference(set), nil
	}
	return set, nil
}

type parser struct {
	src string
	pos int
}

const eof rune = -1

func (p *parser) next() rune {
	if p.pos == len(p.src) {
		return eof
	}
	r, s := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += s
	return r
}

// Returns a syntax error spanning from start to the end of the pattern.
func (p *parser) error(start int, kind error) error {
	return &diag.Error{
		Type:    "syntax error",
		Message: kind.Error(),
		Context: *diag.NewContext("pattern", p.src, diag.Ranging{From: start, To: len(p.src)}),
		Cause:   kind,
	}
}
