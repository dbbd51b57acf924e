package diag

import (
	"fmt"
	"io"
)

// Error represents an error with context that can be showed.
type Error struct {
	Type    string
	Message string
	Context Context
	// Cause identifies the kind of the error for errors.Is. It may be nil.
	Cause error
}

// Variables controlling the style of the message in Show.
var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Error returns a plain text representation of the error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Context.Describe(), e.Message)
}

// Unwrap returns the Cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// Range returns the range of the error.
func (e *Error) Range() Ranging { return e.Context.Range() }

// Show shows the error, highlighting the message and the culprit.
func (e *Error) Show(indent string) string {
	return fmt.Sprintf("%s: %s%s%s\n%s%s", title(e.Type),
		messageStart, e.Message, messageEnd, indent+"  ", e.Context.Show(indent+"  "))
}

// Shower wraps the Show method.
type Shower interface {
	// Show takes an indentation string and shows.
	Show(indent string) string
}

// ShowError writes err to w, followed by a newline. If styled is true and err
// implements Shower, the styled form is used.
func ShowError(w io.Writer, err error, styled bool) {
	if shower, ok := err.(Shower); ok && styled {
		fmt.Fprintln(w, shower.Show(""))
	} else {
		fmt.Fprintln(w, err.Error())
	}
}

func title(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
