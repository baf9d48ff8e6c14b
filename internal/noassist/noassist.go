// Package noassist silences assists with source comments. "// noassist"
// hides every assist and "// noassist:merge-match-arms" hides the listed
// ones. A comment trailing code covers its own line; a comment on a line
// of its own also covers the line below it.
package noassist

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const noassistPrefix = "noassist"

// scope is a line range in one file where a noassist comment applies.
type scope struct {
	startLine int
	endLine   int
	ids       map[string]struct{} // empty means every assist
}

// Manager holds the noassist scopes of parsed files and answers whether a
// reported assist is silenced.
type Manager struct {
	scopes map[string][]scope // filename to scopes
}

// ParseComments collects the noassist comments reachable from root.
func ParseComments(root *sitter.Node, src []byte, filename string) *Manager {
	m := &Manager{scopes: make(map[string][]scope)}
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "line_comment" {
			if sc, ok := parseComment(n, src); ok {
				m.scopes[filename] = append(m.scopes[filename], sc)
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	if root != nil {
		walk(root)
	}
	return m
}

// IsSuppressed reports whether an assist with the given id, reported at
// line in filename, falls inside a noassist scope.
func (m *Manager) IsSuppressed(filename string, line int, id string) bool {
	if m == nil {
		return false
	}
	for _, sc := range m.scopes[filename] {
		if line < sc.startLine || line > sc.endLine {
			continue
		}
		if len(sc.ids) == 0 {
			return true
		}
		if _, ok := sc.ids[id]; ok {
			return true
		}
	}
	return false
}

// parseComment parses a single line comment and determines its scope.
func parseComment(comment *sitter.Node, src []byte) (scope, bool) {
	text := strings.TrimSpace(comment.Content(src))
	text = strings.TrimSpace(strings.TrimPrefix(text, "//"))
	if !strings.HasPrefix(text, noassistPrefix) {
		return scope{}, false
	}

	rest := text[len(noassistPrefix):]
	sc := scope{ids: make(map[string]struct{})}
	switch {
	case rest == "":
	case strings.HasPrefix(rest, ":"):
		for _, id := range strings.Split(rest[1:], ",") {
			if id = strings.TrimSpace(id); id != "" {
				sc.ids[id] = struct{}{}
			}
		}
	default:
		// a longer word that merely starts with the marker
		return scope{}, false
	}

	line := int(comment.StartPoint().Row) + 1
	sc.startLine = line
	sc.endLine = line
	if standsAlone(comment, src) {
		sc.endLine = line + 1
	}
	return sc, true
}

// standsAlone reports whether only whitespace precedes the comment on its
// line.
func standsAlone(comment *sitter.Node, src []byte) bool {
	for i := int(comment.StartByte()) - 1; i >= 0; i-- {
		switch src[i] {
		case '\n':
			return true
		case ' ', '\t':
		default:
			return false
		}
	}
	return true
}
