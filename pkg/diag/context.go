// Package diag contains building blocks for formatting and processing
// diagnostic messages about pattern source.
package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Ranger wraps the Range method.
type Ranger interface {
	// Range returns the range associated with the value.
	Range() Ranging
}

// Ranging is a byte range [From, To) within a source. Structs can embed
// Ranging to satisfy the Ranger interface.
type Ranging struct {
	From int
	To   int
}

// Range returns the Ranging itself.
func (r Ranging) Range() Ranging { return r }

// PointRanging returns a zero-width Ranging at the given point.
func PointRanging(p int) Ranging { return Ranging{p, p} }

// Context is a range of text in a named source.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Variables controlling the style of the culprit.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
)

// Position returns the 1-based line and column of the start of the range.
// Columns count runes.
func (c *Context) Position() (line, col int) {
	before := c.Source[:c.From]
	line = strings.Count(before, "\n") + 1
	col = utf8.RuneCountInString(before[strings.LastIndexByte(before, '\n')+1:]) + 1
	return line, col
}

// Describe returns "name:line:col", or a description of why the range is
// unusable.
func (c *Context) Describe() string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	line, col := c.Position()
	return fmt.Sprintf("%s:%d:%d", c.Name, line, col)
}

// Show shows the position followed by the source line, with the culprit
// highlighted.
func (c *Context) Show(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	return c.Describe() + ": " + c.relevantSource(indent)
}

func (c *Context) checkPosition() error {
	switch {
	case c.From == -1:
		return fmt.Errorf("%s, unknown position", c.Name)
	case c.From < 0 || c.To > len(c.Source) || c.From > c.To:
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func (c *Context) relevantSource(indent string) string {
	before, culprit, after := c.Source[:c.From], c.Source[c.From:c.To], c.Source[c.To:]
	culprit = strings.TrimSuffix(culprit, "\n")
	if culprit == "" {
		culprit = culpritPlaceHolder
	}

	var sb strings.Builder
	sb.WriteString(before[strings.LastIndexByte(before, '\n')+1:])
	for i, line := range strings.Split(culprit, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(indent)
		}
		sb.WriteString(culpritStart + line + culpritEnd)
	}
	if i := strings.IndexByte(after, '\n'); i != -1 {
		after = after[:i]
	}
	sb.WriteString(after)
	return sb.String()
}
