package fsm

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ianloic/llvm-fnmatch/pkg/charset"
)

// Document is the serializable form of a Graph.
type Document struct {
	Deterministic bool            `yaml:"deterministic,omitempty"`
	Initial       int             `yaml:"initial"`
	States        []StateDocument `yaml:"states"`
}

// StateDocument is the serializable form of a State. Its position in
// Document.States is its ID.
type StateDocument struct {
	Name        string               `yaml:"name,omitempty"`
	Terminal    bool                 `yaml:"terminal,omitempty"`
	Transitions []TransitionDocument `yaml:"transitions,omitempty"`
}

// TransitionDocument is the serializable form of a Transition. Ranges are
// the base intervals of the character set.
type TransitionDocument struct {
	Exclusive bool            `yaml:"exclusive,omitempty"`
	Ranges    []RangeDocument `yaml:"ranges,flow"`
	Target    int             `yaml:"target"`
}

// RangeDocument is the serializable form of a charset.Interval.
type RangeDocument struct {
	Lo rune `yaml:"lo"`
	Hi rune `yaml:"hi"`
}

// ToDocument converts a Graph to a Document.
func ToDocument(g *Graph) *Document {
	doc := &Document{Deterministic: g.deterministic, Initial: int(g.initial)}
	g.Walk(func(s State) {
		sd := StateDocument{Name: s.Name, Terminal: s.Terminal}
		for _, t := range s.Transitions {
			td := TransitionDocument{Exclusive: !t.Chars.Inclusive(), Target: int(t.Target)}
			for _, iv := range t.Chars.Intervals() {
				td.Ranges = append(td.Ranges, RangeDocument{iv.Lo, iv.Hi})
			}
			sd.Transitions = append(sd.Transitions, td)
		}
		doc.States = append(doc.States, sd)
	})
	return doc
}

// FromDocument converts a Document to a Graph, checking that all state
// references are valid.
func FromDocument(doc *Document) (*Graph, error) {
	n := len(doc.States)
	if n == 0 {
		return nil, fmt.Errorf("document has no states")
	}
	if doc.Initial < 0 || doc.Initial >= n {
		return nil, fmt.Errorf("initial state %d out of range", doc.Initial)
	}
	var b Builder
	for _, sd := range doc.States {
		id := b.AddState(sd.Name)
		b.SetTerminal(id, sd.Terminal)
	}
	for i, sd := range doc.States {
		for _, td := range sd.Transitions {
			if td.Target < 0 || td.Target >= n {
				return nil, fmt.Errorf("state %d: transition target %d out of range", i, td.Target)
			}
			ivs := make([]charset.Interval, len(td.Ranges))
			for j, rd := range td.Ranges {
				if rd.Lo > rd.Hi {
					return nil, fmt.Errorf("state %d: bad range %d-%d", i, rd.Lo, rd.Hi)
				}
				ivs[j] = charset.Interval{Lo: rd.Lo, Hi: rd.Hi}
			}
			chars := charset.Ranges(ivs...)
			if td.Exclusive {
				chars = chars.Complement()
			}
			b.AddTransition(StateID(i), chars, StateID(td.Target))
		}
	}
	b.SetInitial(StateID(doc.Initial))
	b.SetDeterministic(doc.Deterministic)
	g := b.Build()
	if g.deterministic {
		if err := CheckDeterministic(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Encode returns the YAML form of a Graph.
func Encode(g *Graph) ([]byte, error) {
	return yaml.Marshal(ToDocument(g))
}

// Decode parses the YAML form of a Graph.
func Decode(data []byte) (*Graph, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return FromDocument(&doc)
}
