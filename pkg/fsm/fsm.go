// Package fsm implements finite-state automata whose transitions are labeled
// with sets of characters, and evaluation of strings against them.
//
// A Graph owns its states in an arena; states refer to each other by StateID,
// so cycles need no special treatment. Graphs are built with a Builder and
// are immutable afterwards, so they can be shared between goroutines.
package fsm

import (
	"github.com/ianloic/llvm-fnmatch/pkg/charset"
)

// StateID identifies a state within a Graph. It is the index of the state in
// the graph's arena, and is only meaningful within that graph.
type StateID int

// Dead is the implicit state entered by a deterministic graph when no
// transition matches a character. It never matches.
const Dead StateID = -1

// Transition is an edge to Target, taken on any character in Chars.
type Transition struct {
	Chars  charset.Set
	Target StateID
}

// State is a node of a Graph.
type State struct {
	ID StateID
	// Name is a human-readable description, used when displaying the graph.
	Name string
	// Terminal is whether reaching the state at the end of the input is a
	// match.
	Terminal    bool
	Transitions []Transition
}

// Graph is an automaton with one initial state.
type Graph struct {
	states        []State
	initial       StateID
	deterministic bool
}

// Initial returns the ID of the initial state.
func (g *Graph) Initial() StateID { return g.initial }

// Len returns the number of states.
func (g *Graph) Len() int { return len(g.states) }

// State returns the state with the given ID. The Transitions slice is shared
// with the graph and must not be modified.
func (g *Graph) State(id StateID) State { return g.states[id] }

// Deterministic reports whether the graph was built as a DFA, in which case
// the outgoing transitions of every state are pairwise disjoint.
func (g *Graph) Deterministic() bool { return g.deterministic }

// Walk calls f with every state, in ascending order of ID.
func (g *Graph) Walk(f func(State)) {
	for _, s := range g.states {
		f(s)
	}
}

// Step appends to buf the targets of all transitions of state id that
// contain r, and returns the extended buffer.
func (g *Graph) Step(id StateID, r rune, buf []StateID) []StateID {
	for _, t := range g.states[id].Transitions {
		if t.Chars.Contains(r) {
			buf = append(buf, t.Target)
		}
	}
	return buf
}

// Next returns the target of the first transition of state id that contains
// r, or Dead if there is none.
func (g *Graph) Next(id StateID, r rune) StateID {
	for _, t := range g.states[id].Transitions {
		if t.Chars.Contains(r) {
			return t.Target
		}
	}
	return Dead
}

// Builder builds a Graph. The zero value is ready to use; the first state
// added is the initial state unless SetInitial is called.
type Builder struct {
	states        []State
	initial       StateID
	deterministic bool
}

// AddState adds a non-terminal state without transitions and returns its ID.
func (b *Builder) AddState(name string) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{ID: id, Name: name})
	return id
}

// SetTerminal sets the terminal flag of a state.
func (b *Builder) SetTerminal(id StateID, terminal bool) {
	b.states[id].Terminal = terminal
}

// AddTransition adds a transition from one state to another. Transitions
// keep the order in which they are added.
func (b *Builder) AddTransition(from StateID, chars charset.Set, to StateID) {
	if int(to) >= len(b.states) || to < 0 {
		panic("fsm: transition to unknown state")
	}
	b.states[from].Transitions = append(b.states[from].Transitions, Transition{chars, to})
}

// SetInitial sets the initial state.
func (b *Builder) SetInitial(id StateID) { b.initial = id }

// SetDeterministic marks the graph as deterministic. The caller is
// responsible for keeping the transitions of every state disjoint.
func (b *Builder) SetDeterministic(d bool) { b.deterministic = d }

// Len returns the number of states added so far.
func (b *Builder) Len() int { return len(b.states) }

// Build returns the Graph. The Builder must not be used afterwards.
func (b *Builder) Build() *Graph {
	if len(b.states) == 0 {
		panic("fsm: graph has no states")
	}
	g := &Graph{b.states, b.initial, b.deterministic}
	*b = Builder{}
	return g
}
