// Package dot writes graphs in the Graphviz DOT language.
package dot

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/ianloic/llvm-fnmatch/pkg/fsm"
)

// Write writes a digraph called name containing the given graphs, each in its
// own cluster, to w. The label is shown at the top of the output; it may be
// empty.
//
// Terminal states are drawn with a double border and edges are labeled with
// the character sets of their transitions.
func Write(w io.Writer, name, label string, graphs ...*fsm.Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", strconv.Quote(name))
	bw.WriteString("  rankdir=LR;\n")
	if label != "" {
		fmt.Fprintf(bw, "  label=%s;\n  labelloc=t;\n", strconv.Quote(label))
	}
	for i, g := range graphs {
		prefix := "g" + strconv.Itoa(i) + "_"
		if len(graphs) > 1 {
			fmt.Fprintf(bw, "  subgraph cluster_%d {\n", i)
		}
		writeGraph(bw, prefix, g)
		if len(graphs) > 1 {
			bw.WriteString("  }\n")
		}
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

func writeGraph(w *bufio.Writer, prefix string, g *fsm.Graph) {
	// An invisible node with an arrow into the initial state.
	fmt.Fprintf(w, "  %sstart [shape=point];\n", prefix)
	fmt.Fprintf(w, "  %sstart -> %s%d;\n", prefix, prefix, g.Initial())
	g.Walk(func(s fsm.State) {
		name := s.Name
		if name == "" {
			name = strconv.Itoa(int(s.ID))
		}
		fmt.Fprintf(w, "  %s%d [label=%s", prefix, s.ID, strconv.Quote(name))
		if s.Terminal {
			w.WriteString(" peripheries=2")
		}
		w.WriteString("];\n")
	})
	g.Walk(func(s fsm.State) {
		for _, t := range s.Transitions {
			fmt.Fprintf(w, "  %s%d -> %s%d [label=%s];\n",
				prefix, s.ID, prefix, t.Target, strconv.Quote(t.Chars.String()))
		}
	})
}
