package bench

import (
	"fmt"
	"time"

	"github.com/gobwas/glob"

	"github.com/ianloic/llvm-fnmatch/pkg/dfa"
	"github.com/ianloic/llvm-fnmatch/pkg/fsm"
	"github.com/ianloic/llvm-fnmatch/pkg/nfa"
	"github.com/ianloic/llvm-fnmatch/pkg/table"
)

// Matchers in the order they are measured and reported.
var matcherNames = []string{"nfa", "dfa", "table", "gobwas"}

// Timing is the result of running one matcher on one case.
type Timing struct {
	Matched bool
	// Average time of one match.
	PerOp time.Duration
}

// Result is the result of measuring one Case.
type Result struct {
	Case Case
	// Time to build all the matchers.
	Compile time.Duration
	// Indexed like matcherNames.
	Timings []Timing
}

// Problem returns a description of why the result is wrong, or "" if it is
// not. A result is wrong if the matchers disagree, or if they all disagree
// with Case.Want.
func (r Result) Problem() string {
	first := r.Timings[0].Matched
	for i, t := range r.Timings[1:] {
		if t.Matched != first {
			return fmt.Sprintf("%s -> %v, %s -> %v",
				matcherNames[0], first, matcherNames[i+1], t.Matched)
		}
	}
	if r.Case.Want != nil && *r.Case.Want != first {
		return fmt.Sprintf("all matchers -> %v, want %v", first, *r.Case.Want)
	}
	return ""
}

// Measure builds all the matchers for c.Pattern and runs each of them count
// times on c.Path.
func Measure(c Case, count int) (Result, error) {
	if count < 1 {
		count = 1
	}
	start := time.Now()
	n, err := nfa.Compile(c.Pattern)
	if err != nil {
		return Result{}, err
	}
	d := dfa.FromNFA(n)
	tab, err := table.Compile(d)
	if err != nil {
		return Result{}, err
	}
	g, err := glob.Compile(c.Pattern)
	if err != nil {
		return Result{}, fmt.Errorf("gobwas/glob: %w", err)
	}
	compile := time.Since(start)

	matchers := []func(string) bool{
		func(s string) bool { return fsm.MatchNFA(n, s) },
		func(s string) bool { return fsm.MatchDFA(d, s) },
		tab.Match,
		g.Match,
	}
	timings := make([]Timing, len(matchers))
	for i, match := range matchers {
		timings[i] = time1(match, c.Path, count)
	}
	return Result{c, compile, timings}, nil
}

func time1(match func(string) bool, s string, count int) Timing {
	matched := false
	start := time.Now()
	for i := 0; i < count; i++ {
		matched = match(s)
	}
	return Timing{matched, time.Since(start) / time.Duration(count)}
}
