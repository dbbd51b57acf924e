// Package bench implements the benchmark subprogram, which compares the
// matchers built from patterns with each other and with github.com/gobwas/glob.
package bench

import (
	"fmt"
	"os"

	"github.com/ianloic/llvm-fnmatch/pkg/logutil"
	"github.com/ianloic/llvm-fnmatch/pkg/prog"
)

var logger = logutil.GetLogger("[bench] ")

// Program is the bench subprogram. It runs when -bench is given.
type Program struct {
	casesFile string
	count     int
	format    string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.casesFile, "bench", "", "run the benchmark cases in the given YAML file")
	fs.IntVar(&p.count, "count", 1000, "number of times to run each matcher on each case, with -bench")
	fs.StringVar(&p.format, "format", FormatText, "output format of -bench: text or csv")
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if p.casesFile == "" {
		return prog.ErrNextProgram
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -bench")
	}
	if p.format != FormatText && p.format != FormatCSV {
		return prog.BadUsage(fmt.Sprintf("unknown format %q", p.format))
	}
	if p.count < 1 {
		return prog.BadUsage("-count must be positive")
	}
	cases, err := LoadCases(p.casesFile)
	if err != nil {
		return err
	}

	var results []Result
	failed := 0
	for _, c := range cases {
		r, err := Measure(c, p.count)
		if err != nil {
			fmt.Fprintf(fds[2], "%q: %v\n", c.Pattern, err)
			failed++
			continue
		}
		if problem := r.Problem(); problem != "" {
			fmt.Fprintf(fds[2], "%q on %q: %s\n", c.Pattern, c.Path, problem)
			failed++
		}
		results = append(results, r)
	}
	logger.Printf("%d cases, %d failed", len(cases), failed)

	if err := Report(fds[1], p.format, results); err != nil {
		return err
	}
	if failed > 0 {
		return prog.Exit(1)
	}
	return nil
}
