// Package charset implements sets of characters that are described either by
// the characters they include, or by the characters they exclude.
//
// The alphabet is the set of valid runes, that is all runes from 0 to
// utf8.MaxRune except surrogate halves. An inclusive Set denotes exactly its
// base runes; an exclusive Set denotes every rune of the alphabet except its
// base runes. Base runes are stored as sorted, merged intervals, so the cost
// of the algebra depends on the number of intervals and not on the number of
// runes.
//
// A Set is exclusive if and only if it contains utf8.MaxRune. Every set of
// runes therefore has exactly one representation, and two Sets are equal if
// and only if they denote the same characters.
package charset

import (
	"encoding/binary"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Set is an immutable set of characters. The zero value is the empty set.
//
// Sets are comparable with == and can be used as map keys.
type Set struct {
	exclusive bool
	// Base intervals in ascending order, each packed as two 4-byte
	// big-endian bounds.
	chars string
}

// Interval is the range of runes from Lo to Hi, both inclusive.
type Interval struct {
	Lo, Hi rune
}

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// The alphabet as intervals.
var alphabet = []Interval{{0, surrogateMin - 1}, {surrogateMax + 1, utf8.MaxRune}}

// Including returns a Set containing just the given runes. Invalid runes are
// ignored.
func Including(rs ...rune) Set { return newSet(false, runeIntervals(rs)) }

// IncludingString returns a Set containing just the runes in s.
func IncludingString(s string) Set { return Including([]rune(s)...) }

// Excluding returns a Set containing all runes except the given ones.
func Excluding(rs ...rune) Set { return newSet(true, runeIntervals(rs)) }

// ExcludingString returns a Set containing all runes except the ones in s.
func ExcludingString(s string) Set { return Excluding([]rune(s)...) }

// Any returns the Set of all runes.
func Any() Set { return Set{exclusive: true} }

// None returns the empty Set.
func None() Set { return Set{} }

// Range returns the Set of all runes between lo and hi, both inclusive. The
// bounds are swapped if hi < lo.
func Range(lo, hi rune) Set {
	if hi < lo {
		lo, hi = hi, lo
	}
	return newSet(false, []Interval{{lo, hi}})
}

// Ranges returns the Set containing the runes of all the given intervals,
// which may overlap and come in any order.
func Ranges(ivs ...Interval) Set {
	return newSet(false, append([]Interval(nil), ivs...))
}

// Returns the canonical Set with the given tag and base intervals, which are
// normalized in place.
func newSet(exclusive bool, base []Interval) Set {
	base = normalize(base)
	if n := len(base); n > 0 && base[n-1].Hi == utf8.MaxRune {
		// Only exclusive Sets contain MaxRune.
		return Set{!exclusive, pack(complement(base))}
	}
	return Set{exclusive, pack(base)}
}

// Inclusive reports whether the Set is described by the runes it includes.
func (s Set) Inclusive() bool { return !s.exclusive }

// Intervals returns the base runes of the Set as sorted, disjoint and
// non-adjacent intervals. For an exclusive Set, these are the runes not in the
// Set.
func (s Set) Intervals() []Interval { return unpack(s.chars) }

// Complement returns the Set of all runes not in s.
func (s Set) Complement() Set { return Set{!s.exclusive, s.chars} }

// Contains reports whether r is in the Set.
func (s Set) Contains(r rune) bool {
	if !utf8.ValidRune(r) {
		return false
	}
	n := len(s.chars) / 8
	i := sort.Search(n, func(i int) bool { return hiAt(s.chars, i) >= r })
	inBase := i < n && loAt(s.chars, i) <= r
	return inBase != s.exclusive
}

// IsUniversal reports whether the Set contains all runes.
func (s Set) IsUniversal() bool { return s.exclusive && s.chars == "" }

// IsEmpty reports whether the Set contains no runes.
func (s Set) IsEmpty() bool { return !s.exclusive && s.chars == "" }

// Equal reports whether two Sets are equal.
func (s Set) Equal(o Set) bool { return s == o }

// Union returns the Set of runes in either s or o.
func (s Set) Union(o Set) Set {
	a, b := s.Intervals(), o.Intervals()
	switch {
	case !s.exclusive && !o.exclusive:
		return newSet(false, union(a, b))
	case s.exclusive && o.exclusive:
		return newSet(true, intersect(a, b))
	case !s.exclusive:
		// a ∪ ¬b = ¬(b - a)
		return newSet(true, subtract(b, a))
	default:
		// ¬a ∪ b = ¬(a - b)
		return newSet(true, subtract(a, b))
	}
}

// Difference returns the Set of runes in s but not in o.
func (s Set) Difference(o Set) Set {
	a, b := s.Intervals(), o.Intervals()
	switch {
	case !s.exclusive && !o.exclusive:
		return newSet(false, subtract(a, b))
	case s.exclusive && o.exclusive:
		// ¬a - ¬b = b - a
		return newSet(false, subtract(b, a))
	case !s.exclusive:
		// a - ¬b = a ∩ b
		return newSet(false, intersect(a, b))
	default:
		// ¬a - b = ¬(a ∪ b)
		return newSet(true, union(a, b))
	}
}

// Intersection returns the Set of runes in both s and o. It is computed as
// s - (s - o).
func (s Set) Intersection(o Set) Set {
	return s.Difference(s.Difference(o))
}

// Disjoint reports whether s and o have no runes in common.
func (s Set) Disjoint(o Set) bool { return s.Intersection(o).IsEmpty() }

// Intersects reports whether s and o have at least one rune in common.
func (s Set) Intersects(o Set) bool { return !s.Disjoint(o) }

// SubsetOf reports whether every rune in s is also in o.
func (s Set) SubsetOf(o Set) bool { return s.Difference(o).IsEmpty() }

// String returns a label for the Set: NONE, ANY, a quoted list of runes, or
// NOT followed by a quoted list of runes. Intervals of more than three runes
// are written as lo-hi.
func (s Set) String() string {
	switch {
	case s.IsEmpty():
		return "NONE"
	case s.IsUniversal():
		return "ANY"
	}
	var sb strings.Builder
	for _, iv := range s.Intervals() {
		if iv.Hi-iv.Lo < 3 {
			for r := iv.Lo; r <= iv.Hi; r++ {
				sb.WriteRune(r)
			}
		} else {
			sb.WriteRune(iv.Lo)
			sb.WriteByte('-')
			sb.WriteRune(iv.Hi)
		}
	}
	if s.exclusive {
		return "NOT " + strconv.Quote(sb.String())
	}
	return strconv.Quote(sb.String())
}

// Compare orders Sets: inclusive Sets before exclusive ones, then by base
// intervals. It returns -1, 0 or 1.
func Compare(a, b Set) int {
	if a.exclusive != b.exclusive {
		if b.exclusive {
			return -1
		}
		return 1
	}
	// Bounds are packed big-endian, so byte order is interval order.
	return strings.Compare(a.chars, b.chars)
}

// Sort sorts Sets in place in the order defined by Compare.
func Sort(sets []Set) {
	sort.Slice(sets, func(i, j int) bool { return Compare(sets[i], sets[j]) < 0 })
}

func runeIntervals(rs []rune) []Interval {
	ivs := make([]Interval, len(rs))
	for i, r := range rs {
		ivs[i] = Interval{r, r}
	}
	return ivs
}

// Sorts the intervals, removes runes outside the alphabet and merges
// overlapping and adjacent intervals.
func normalize(ivs []Interval) []Interval {
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Lo < ivs[j].Lo })
	var out []Interval
	for _, iv := range ivs {
		if iv.Lo < 0 {
			iv.Lo = 0
		}
		if iv.Hi > utf8.MaxRune {
			iv.Hi = utf8.MaxRune
		}
		if iv.Lo > iv.Hi {
			continue
		}
		out = appendMerged(out, iv)
	}
	return intersect(out, alphabet)
}

// Appends iv, whose Lo is not less than that of any interval in ivs.
func appendMerged(ivs []Interval, iv Interval) []Interval {
	if n := len(ivs); n > 0 && iv.Lo <= ivs[n-1].Hi+1 {
		if iv.Hi > ivs[n-1].Hi {
			ivs[n-1].Hi = iv.Hi
		}
		return ivs
	}
	return append(ivs, iv)
}

// The following operate on normalized intervals.

func union(a, b []Interval) []Interval {
	out := make([]Interval, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		if j == len(b) || (i < len(a) && a[i].Lo <= b[j].Lo) {
			out = appendMerged(out, a[i])
			i++
		} else {
			out = appendMerged(out, b[j])
			j++
		}
	}
	return out
}

func intersect(a, b []Interval) []Interval {
	var out []Interval
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo, hi := a[i].Lo, a[i].Hi
		if b[j].Lo > lo {
			lo = b[j].Lo
		}
		if b[j].Hi < hi {
			hi = b[j].Hi
		}
		if lo <= hi {
			out = append(out, Interval{lo, hi})
		}
		if a[i].Hi < b[j].Hi {
			i++
		} else {
			j++
		}
	}
	return out
}

// Returns the runes of the alphabet not in ivs.
func complement(ivs []Interval) []Interval {
	var gaps []Interval
	next := rune(0)
	for _, iv := range ivs {
		if iv.Lo > next {
			gaps = append(gaps, Interval{next, iv.Lo - 1})
		}
		next = iv.Hi + 1
	}
	if next <= utf8.MaxRune {
		gaps = append(gaps, Interval{next, utf8.MaxRune})
	}
	return intersect(gaps, alphabet)
}

func subtract(a, b []Interval) []Interval {
	return intersect(a, complement(b))
}

func pack(ivs []Interval) string {
	buf := make([]byte, 8*len(ivs))
	for i, iv := range ivs {
		binary.BigEndian.PutUint32(buf[8*i:], uint32(iv.Lo))
		binary.BigEndian.PutUint32(buf[8*i+4:], uint32(iv.Hi))
	}
	return string(buf)
}

func unpack(chars string) []Interval {
	ivs := make([]Interval, len(chars)/8)
	for i := range ivs {
		ivs[i] = Interval{loAt(chars, i), hiAt(chars, i)}
	}
	return ivs
}

func loAt(chars string, i int) rune { return runeAt(chars, 8*i) }
func hiAt(chars string, i int) rune { return runeAt(chars, 8*i+4) }

func runeAt(chars string, off int) rune {
	return rune(chars[off])<<24 | rune(chars[off+1])<<16 | rune(chars[off+2])<<8 | rune(chars[off+3])
}
