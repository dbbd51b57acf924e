package charset

import "fmt"

// Distinct returns the coarsest partition of the union of sets into
// non-empty, pairwise disjoint Sets, such that every input equals the union
// of the blocks that are subsets of it. The result is sorted by Compare.
//
// The inputs are folded one at a time into the running partition P: a new set
// S replaces P with {p - S} ∪ {p ∩ S} ∪ {S - ⋃P}, dropping empty blocks.
func Distinct(sets ...Set) []Set {
	var partition []Set
	for _, s := range sets {
		partition = refine(partition, s)
	}
	Sort(partition)
	return partition
}

func refine(partition []Set, s Set) []Set {
	next := make([]Set, 0, 2*len(partition)+1)
	seen := make(map[Set]struct{}, 2*len(partition)+1)
	add := func(block Set) {
		if block.IsEmpty() {
			return
		}
		if _, ok := seen[block]; ok {
			return
		}
		seen[block] = struct{}{}
		next = append(next, block)
	}
	rest := s
	for _, p := range partition {
		add(p.Difference(s))
		add(p.Intersection(s))
		rest = rest.Difference(p)
	}
	add(rest)
	return next
}

// UnionAll returns the union of all the given Sets.
func UnionAll(sets ...Set) Set {
	var u Set
	for _, s := range sets {
		u = u.Union(s)
	}
	return u
}

// CheckPartition checks that out is a partition of in as returned by
// Distinct, and returns an error describing the first violation found.
func CheckPartition(in, out []Set) error {
	for i, a := range out {
		if a.IsEmpty() {
			return fmt.Errorf("block %d is empty", i)
		}
		for j := i + 1; j < len(out); j++ {
			if a.Intersects(out[j]) {
				return fmt.Errorf("blocks %v and %v intersect", a, out[j])
			}
		}
	}
	if uIn, uOut := UnionAll(in...), UnionAll(out...); uIn != uOut {
		return fmt.Errorf("union of blocks is %v, want %v", uOut, uIn)
	}
	for _, s := range in {
		var u Set
		for _, block := range out {
			if block.SubsetOf(s) {
				u = u.Union(block)
			}
		}
		if u != s {
			return fmt.Errorf("%v is not a union of blocks (got %v)", s, u)
		}
	}
	return nil
}
