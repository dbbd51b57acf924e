// Package dfa converts nondeterministic graphs into deterministic ones by
// subset construction.
//
// Each DFA state stands for a Signature: the set of NFA states the NFA can be
// in at the same time. The outgoing transitions of a DFA state are computed by
// partitioning the character sets on the transitions of its NFA states into
// disjoint blocks with charset.Distinct, so that the result stays
// deterministic even though transitions are labeled with sets.
package dfa

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/ianloic/llvm-fnmatch/pkg/charset"
	"github.com/ianloic/llvm-fnmatch/pkg/fsm"
	"github.com/ianloic/llvm-fnmatch/pkg/logutil"
)

var logger = logutil.GetLogger("[dfa] ")

// FromNFA returns a deterministic graph that accepts the same strings as n.
func FromNFA(n *fsm.Graph) *fsm.Graph {
	g, _ := Build(n)
	return g
}

// Build is like FromNFA, but also returns the Signature of each DFA state,
// indexed by StateID. States are named after their Signatures.
func Build(n *fsm.Graph) (*fsm.Graph, []Signature) {
	b := &builder{nfa: n, memo: make(map[Signature]fsm.StateID)}
	b.materialize(NewSignature(n.Initial()))
	b.dfa.SetDeterministic(true)
	logger.Printf("%d NFA states -> %d DFA states", n.Len(), len(b.sigs))
	return b.dfa.Build(), b.sigs
}

type builder struct {
	nfa  *fsm.Graph
	dfa  fsm.Builder
	memo map[Signature]fsm.StateID
	sigs []Signature
}

// Returns the DFA state for sig, creating it and everything reachable from it
// if needed.
func (b *builder) materialize(sig Signature) fsm.StateID {
	if id, ok := b.memo[sig]; ok {
		return id
	}
	id := b.dfa.AddState(sig.String())
	// Memoize before recursing, so that cycles resolve to this state.
	b.memo[sig] = id
	b.sigs = append(b.sigs, sig)

	members := sig.IDs()
	for _, m := range members {
		if b.nfa.State(m).Terminal {
			b.dfa.SetTerminal(id, true)
			break
		}
	}
	for _, a := range b.arcs(members) {
		b.dfa.AddTransition(id, a.chars, b.materialize(a.sig))
	}
	return id
}

type arc struct {
	chars charset.Set
	sig   Signature
}

// Computes the disjoint outgoing arcs of the DFA state made of the given NFA
// states. Blocks leading to the same Signature are merged.
func (b *builder) arcs(members []fsm.StateID) []arc {
	type group struct {
		chars   charset.Set
		targets *bitset.BitSet
	}
	var groups []group
	index := make(map[charset.Set]int)
	for _, m := range members {
		for _, t := range b.nfa.State(m).Transitions {
			i, ok := index[t.Chars]
			if !ok {
				i = len(groups)
				index[t.Chars] = i
				groups = append(groups, group{t.Chars, new(bitset.BitSet)})
			}
			groups[i].targets.Set(uint(t.Target))
		}
	}

	sets := make([]charset.Set, len(groups))
	for i, g := range groups {
		sets[i] = g.chars
	}
	blocks := charset.Distinct(sets...)
	checkBlocks(sets, blocks)
	var arcs []arc
	bySig := make(map[Signature]int)
	for _, block := range blocks {
		// Every block is either inside or disjoint from each group's set.
		var targets bitset.BitSet
		for _, g := range groups {
			if block.SubsetOf(g.chars) {
				targets.InPlaceUnion(g.targets)
			}
		}
		sig := signatureOf(&targets)
		if i, ok := bySig[sig]; ok {
			arcs[i].chars = arcs[i].chars.Union(block)
		} else {
			bySig[sig] = len(arcs)
			arcs = append(arcs, arc{block, sig})
		}
	}
	return arcs
}

// Logs the blocks and reports whether they partition sets.
func checkBlocks(sets, blocks []charset.Set) bool {
	if err := charset.CheckPartition(sets, blocks); err != nil {
		logger.Printf("bad partition of %v into %v: %v", sets, blocks, err)
		return false
	}
	logger.Printf("partitioned %d sets into %d blocks", len(sets), len(blocks))
	return true
}
