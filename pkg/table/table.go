// Package table compiles deterministic graphs into dispatch tables, trading
// memory for a matcher that does no set lookups on the hot path.
package table

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/ianloic/llvm-fnmatch/pkg/fsm"
)

// ErrNotDeterministic is returned by Compile for graphs not marked as
// deterministic.
var ErrNotDeterministic = errors.New("graph is not deterministic")

const dead int32 = -1

// Table is a compiled matcher. It is safe for concurrent use.
type Table struct {
	states  []state
	initial int32
}

type state struct {
	terminal bool
	// Targets of runes below 256.
	low [256]int32
	// Targets of runes of at least 256, as spans sorted by their first rune.
	// The first span starts at 256 and each span ends where the next starts.
	high []span
}

type span struct {
	lo     rune
	target int32
}

// Compile builds a Table from a deterministic graph.
func Compile(g *fsm.Graph) (*Table, error) {
	if !g.Deterministic() {
		return nil, ErrNotDeterministic
	}
	if err := fsm.CheckDeterministic(g); err != nil {
		return nil, fmt.Errorf("compile table: %w", err)
	}
	t := &Table{states: make([]state, g.Len()), initial: int32(g.Initial())}
	g.Walk(func(s fsm.State) {
		st := &t.states[s.ID]
		st.terminal = s.Terminal
		for r := rune(0); r < 256; r++ {
			st.low[r] = lookup(s, r)
		}
		// Membership can only change where an interval starts or ends.
		bounds := []rune{256}
		for _, tr := range s.Transitions {
			for _, iv := range tr.Chars.Intervals() {
				bounds = append(bounds, iv.Lo, iv.Hi+1)
			}
		}
		sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })
		for _, lo := range bounds {
			if lo < 256 || lo > utf8.MaxRune {
				continue
			}
			if n := len(st.high); n > 0 && st.high[n-1].lo == lo {
				continue
			}
			target := lookup(s, firstValid(lo))
			if n := len(st.high); n > 0 && st.high[n-1].target == target {
				continue
			}
			st.high = append(st.high, span{lo, target})
		}
	})
	return t, nil
}

// Returns r, or the first rune after the surrogate halves if r is one.
// Strings never decode to surrogates, so a span starting at one is only used
// for the runes after them.
func firstValid(r rune) rune {
	if r >= 0xD800 && r <= 0xDFFF {
		return 0xE000
	}
	return r
}

func lookup(s fsm.State, r rune) int32 {
	for _, tr := range s.Transitions {
		if tr.Chars.Contains(r) {
			return int32(tr.Target)
		}
	}
	return dead
}

// Len returns the number of states.
func (t *Table) Len() int { return len(t.states) }

// Match reports whether s is accepted.
func (t *Table) Match(s string) bool {
	id := t.initial
	for _, r := range s {
		id = t.states[id].next(r)
		if id == dead {
			return false
		}
	}
	return t.states[id].terminal
}

func (st *state) next(r rune) int32 {
	if r >= 0 && r < 256 {
		return st.low[r]
	}
	// The last span starting at or before r.
	i := sort.Search(len(st.high), func(i int) bool { return st.high[i].lo > r }) - 1
	if i < 0 {
		return dead
	}
	return st.high[i].target
}
