// Package match implements the default subprogram of fnmatch, which matches
// inputs against a pattern or dumps the automata compiled from it.
package match

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ianloic/llvm-fnmatch/pkg/dfa"
	"github.com/ianloic/llvm-fnmatch/pkg/diag"
	"github.com/ianloic/llvm-fnmatch/pkg/dot"
	"github.com/ianloic/llvm-fnmatch/pkg/fsm"
	"github.com/ianloic/llvm-fnmatch/pkg/logutil"
	"github.com/ianloic/llvm-fnmatch/pkg/nfa"
	"github.com/ianloic/llvm-fnmatch/pkg/prog"
	"github.com/ianloic/llvm-fnmatch/pkg/store"
	"github.com/ianloic/llvm-fnmatch/pkg/sys"
	"github.com/ianloic/llvm-fnmatch/pkg/table"
)

var logger = logutil.GetLogger("[match] ")

// Exit statuses.
const (
	exitMatched    = 0
	exitNotMatched = 1
	exitBadPattern = 2
)

// Program is the match subprogram. It accepts any arguments, so it should be
// the last one in a prog.Composite.
type Program struct {
	useNFA, useTable bool
	dot, dotNFA      bool
	yaml             bool
	json             *bool
	db               *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.useNFA, "nfa", false, "match with the NFA instead of the DFA")
	fs.BoolVar(&p.useTable, "table", false, "match with a dispatch table compiled from the DFA")
	fs.BoolVar(&p.dot, "dot", false, "print the DFA in Graphviz format instead of matching")
	fs.BoolVar(&p.dotNFA, "dot-nfa", false, "print the NFA in Graphviz format instead of matching")
	fs.BoolVar(&p.yaml, "yaml", false, "print the DFA as a YAML document instead of matching")
	p.json = fs.JSON()
	p.db = fs.DB()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if len(args) == 0 {
		return prog.BadUsage("a pattern is required")
	}
	if p.useNFA && p.useTable {
		return prog.BadUsage("-nfa and -table cannot be used together")
	}
	pattern, inputs := args[0], args[1:]

	n, d, err := p.compile(pattern)
	if err != nil {
		var diagErr *diag.Error
		if !errors.As(err, &diagErr) {
			return err
		}
		if *p.json {
			fds[1].Write(errorToJSON(diagErr))
			fds[1].WriteString("\n")
		} else {
			diag.ShowError(fds[2], diagErr, sys.IsATTY(fds[2]))
		}
		return prog.Exit(exitBadPattern)
	}

	switch {
	case p.dot:
		return dot.Write(fds[1], pattern, "DFA of "+pattern, d)
	case p.dotNFA:
		return dot.Write(fds[1], pattern, "NFA of "+pattern, n)
	case p.yaml:
		data, err := fsm.Encode(d)
		if err != nil {
			return err
		}
		_, err = fds[1].Write(data)
		return err
	}

	match, err := p.matcher(n, d)
	if err != nil {
		return err
	}
	var matches []string
	check := func(s string) {
		if match(s) {
			matches = append(matches, s)
			if !*p.json {
				fmt.Fprintln(fds[1], s)
			}
		}
	}
	if len(inputs) > 0 {
		for _, s := range inputs {
			check(s)
		}
	} else if err := eachLine(fds[0], check); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	logger.Printf("%q: %d matches", pattern, len(matches))

	if *p.json {
		if matches == nil {
			matches = []string{}
		}
		out, err := json.Marshal(struct {
			Pattern string   `json:"pattern"`
			Matches []string `json:"matches"`
		}{pattern, matches})
		if err != nil {
			return err
		}
		fmt.Fprintf(fds[1], "%s\n", out)
	}
	if len(matches) == 0 {
		return prog.Exit(exitNotMatched)
	}
	return nil
}

// Compiles the pattern. The NFA is nil if it is not needed and the DFA came
// from the cache.
func (p *Program) compile(pattern string) (n, d *fsm.Graph, err error) {
	if *p.db == "" {
		n, err = nfa.Compile(pattern)
		if err != nil {
			return nil, nil, err
		}
		return n, dfa.FromNFA(n), nil
	}

	st, err := store.Open(*p.db)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	defer st.Close()
	d, err = st.Compile(pattern)
	if err != nil {
		return nil, nil, err
	}
	if p.useNFA || p.dotNFA {
		// The pattern is known to be valid at this point.
		n, err = nfa.Compile(pattern)
	}
	return n, d, err
}

func (p *Program) matcher(n, d *fsm.Graph) (func(string) bool, error) {
	switch {
	case p.useNFA:
		return func(s string) bool { return fsm.MatchNFA(n, s) }, nil
	case p.useTable:
		t, err := table.Compile(d)
		if err != nil {
			return nil, err
		}
		return t.Match, nil
	default:
		return func(s string) bool { return fsm.MatchDFA(d, s) }, nil
	}
}

// Calls f with each line of r, without the line terminator.
func eachLine(r io.Reader, f func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1<<20)
	for scanner.Scan() {
		f(scanner.Text())
	}
	return scanner.Err()
}
