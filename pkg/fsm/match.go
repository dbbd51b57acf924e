package fsm

import (
	"github.com/bits-and-blooms/bitset"
)

// Match reports whether s is accepted by g, using MatchDFA for deterministic
// graphs and MatchNFA otherwise.
func Match(g *Graph, s string) bool {
	if g.deterministic {
		return MatchDFA(g, s)
	}
	return MatchNFA(g, s)
}

// MatchNFA reports whether s is accepted by g, tracking the set of all states
// the graph can be in. It works for any graph.
func MatchNFA(g *Graph, s string) bool {
	n := uint(len(g.states))
	frontier, next := bitset.New(n), bitset.New(n)
	frontier.Set(uint(g.initial))
	for _, r := range s {
		if frontier.None() {
			// No further input can lead to a match.
			return false
		}
		next.ClearAll()
		for i, ok := frontier.NextSet(0); ok; i, ok = frontier.NextSet(i + 1) {
			for _, t := range g.states[i].Transitions {
				if t.Chars.Contains(r) {
					next.Set(uint(t.Target))
				}
			}
		}
		frontier, next = next, frontier
	}
	for i, ok := frontier.NextSet(0); ok; i, ok = frontier.NextSet(i + 1) {
		if g.states[i].Terminal {
			return true
		}
	}
	return false
}

// MatchDFA reports whether s is accepted by g, following at most one
// transition per character. It is only correct for deterministic graphs.
func MatchDFA(g *Graph, s string) bool {
	id := g.initial
	for _, r := range s {
		id = g.Next(id, r)
		if id == Dead {
			return false
		}
	}
	return g.states[id].Terminal
}
