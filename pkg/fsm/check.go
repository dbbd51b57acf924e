package fsm

import "fmt"

// OverlapError is returned by CheckDeterministic.
type OverlapError struct {
	State  StateID
	First  Transition
	Second Transition
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("state %d: transitions on %v (to %d) and %v (to %d) overlap",
		e.State, e.First.Chars, e.First.Target, e.Second.Chars, e.Second.Target)
}

// CheckDeterministic returns an *OverlapError for the first state of g that
// has two outgoing transitions with intersecting sets, or nil if there is
// none.
func CheckDeterministic(g *Graph) error {
	for _, s := range g.states {
		ts := s.Transitions
		for i := range ts {
			for j := i + 1; j < len(ts); j++ {
				if ts[i].Chars.Intersects(ts[j].Chars) {
					return &OverlapError{s.ID, ts[i], ts[j]}
				}
			}
		}
	}
	return nil
}
