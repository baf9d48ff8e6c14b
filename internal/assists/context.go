// Package assists implements the individual code assists. Each assist is
// a pure function from a Context to zero or more applicable edits; an
// empty result means the assist does not apply at the requested position.
package assists

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxlift/oxlift/internal/sema"
	tt "github.com/oxlift/oxlift/internal/types"
)

// Context carries everything an assist needs to inspect one position in
// one parsed file.
type Context struct {
	Filename string
	Src      []byte
	Root     *sitter.Node
	Offset   uint32
	Types    sema.Resolver
}

// Text returns the source text of a node.
func (c *Context) Text(n *sitter.Node) string {
	return n.Content(c.Src)
}

// Position converts a byte offset into a line and column position. Lines
// and columns are 1-based; columns count bytes.
func (c *Context) Position(off uint32) tt.Position {
	if int(off) > len(c.Src) {
		off = uint32(len(c.Src))
	}
	line, col := 1, 1
	for _, b := range c.Src[:off] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return tt.Position{Offset: int(off), Line: line, Column: col}
}

// lineIndent returns the leading whitespace of the line containing off.
func (c *Context) lineIndent(off uint32) string {
	start := int(off)
	if start > len(c.Src) {
		start = len(c.Src)
	}
	for start > 0 && c.Src[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(c.Src) && (c.Src[end] == ' ' || c.Src[end] == '\t') {
		end++
	}
	return string(c.Src[start:end])
}

// assist builds a populated Assist for a replacement of the given range.
func (c *Context) assist(id, label string, kind tt.AssistKind, start, end uint32, newText string) tt.Assist {
	return tt.Assist{
		ID:       id,
		Kind:     kind,
		Label:    label,
		Filename: c.Filename,
		Start:    c.Position(start),
		End:      c.Position(end),
		Target:   tt.TextRange{Start: start, End: end},
		Edit: tt.TextEdit{
			Range:   tt.TextRange{Start: start, End: end},
			NewText: newText,
		},
	}
}
