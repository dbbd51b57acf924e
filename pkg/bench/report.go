package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// Formats accepted by Report.
const (
	FormatText = "text"
	FormatCSV  = "csv"
)

func header() []string {
	h := append([]string{"pattern", "path", "compile"}, matcherNames...)
	return append(h, "matched")
}

func row(r Result, duration func(int64) string) []string {
	cols := []string{r.Case.Pattern, r.Case.Path, duration(r.Compile.Nanoseconds())}
	for _, t := range r.Timings {
		cols = append(cols, duration(t.PerOp.Nanoseconds()))
	}
	return append(cols, strconv.FormatBool(r.Timings[0].Matched))
}

// Report writes the results in the given format. Durations are in
// nanoseconds.
func Report(w io.Writer, format string, results []Result) error {
	switch format {
	case FormatText:
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		writeTabbed(tw, header())
		for _, r := range results {
			writeTabbed(tw, row(r, func(ns int64) string { return strconv.FormatInt(ns, 10) + "ns" }))
		}
		return tw.Flush()
	case FormatCSV:
		cw := csv.NewWriter(w)
		cw.Write(header())
		for _, r := range results {
			cw.Write(row(r, func(ns int64) string { return strconv.FormatInt(ns, 10) }))
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeTabbed(w io.Writer, cols []string) {
	for i, col := range cols {
		if i > 0 {
			io.WriteString(w, "\t")
		}
		io.WriteString(w, col)
	}
	io.WriteString(w, "\n")
}
