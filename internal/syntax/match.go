package syntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// MatchArm is one arm of a match expression with its pieces split out.
// Pattern excludes the guard; the trailing comma, when present, belongs to
// Node. Pattern or Body may be nil for malformed arms.
type MatchArm struct {
	Node    *sitter.Node
	Pattern *sitter.Node
	Guard   *sitter.Node
	Body    *sitter.Node
	Index   int
}

// newMatchArm splits a match_arm node into pattern, guard and body.
// The wildcard pattern is an anonymous "_" token, so the pattern child
// cannot be found through named-child navigation alone.
func newMatchArm(node *sitter.Node, index int) MatchArm {
	arm := MatchArm{Node: node, Index: index, Body: node.ChildByFieldName("value")}
	mp := node.ChildByFieldName("pattern")
	if mp == nil {
		return arm
	}
	arm.Guard = mp.ChildByFieldName("condition")
	for i := 0; i < int(mp.ChildCount()); i++ {
		child := mp.Child(i)
		if child.IsNamed() || child.Type() == "_" {
			arm.Pattern = child
			break
		}
	}
	return arm
}

// PatternText returns the arm's pattern exactly as written, guard excluded.
func (a MatchArm) PatternText(src []byte) string {
	if a.Pattern == nil {
		return ""
	}
	return a.Pattern.Content(src)
}

// IsWildcard reports whether the arm's whole pattern is the wildcard.
func (a MatchArm) IsWildcard(src []byte) bool {
	return strings.TrimSpace(a.PatternText(src)) == "_"
}

// Arms returns the arms of a match expression in source order. Comments
// interleaved between arms are skipped.
func Arms(matchExpr *sitter.Node) []MatchArm {
	body := matchExpr.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var arms []MatchArm
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() != "match_arm" {
			continue
		}
		arms = append(arms, newMatchArm(child, len(arms)))
	}
	return arms
}

// ArmAt resolves the innermost match arm containing the byte offset and
// returns the arm list of its enclosing match together with the arm's
// index. A cursor sitting at the very end of an arm still resolves to it.
func ArmAt(root *sitter.Node, off uint32) ([]MatchArm, int, bool) {
	armNode := Ancestor(NodeAt(root, off), "match_arm")
	if armNode == nil && off > 0 {
		armNode = Ancestor(NodeAt(root, off-1), "match_arm")
	}
	if armNode == nil {
		return nil, 0, false
	}
	matchExpr := Ancestor(armNode, "match_expression")
	if matchExpr == nil {
		return nil, 0, false
	}
	arms := Arms(matchExpr)
	for i := range arms {
		if SameNode(arms[i].Node, armNode) {
			return arms, i, true
		}
	}
	return nil, 0, false
}

// AllMatchArms returns every match_arm node in the tree in source order.
func AllMatchArms(root *sitter.Node) []*sitter.Node {
	var arms []*sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "match_arm" {
			arms = append(arms, n)
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	if root != nil {
		walk(root)
	}
	return arms
}

// TupleStructFields splits a tuple struct pattern such as Ok(a, b) into its
// constructor path and positional field patterns. Wildcard fields are
// anonymous tokens and are kept so positions stay aligned. ok is false for
// every other pattern shape.
func TupleStructFields(pat *sitter.Node) (path *sitter.Node, fields []*sitter.Node, ok bool) {
	if pat == nil || pat.Type() != "tuple_struct_pattern" {
		return nil, nil, false
	}
	path = pat.ChildByFieldName("type")
	for i := 0; i < int(pat.ChildCount()); i++ {
		child := pat.Child(i)
		if path != nil && SameNode(child, path) {
			continue
		}
		if !child.IsNamed() && child.Type() != "_" {
			continue
		}
		fields = append(fields, child)
	}
	return path, fields, true
}

// SplitLastAlternative splits an or pattern into the text before its final
// alternative and the final alternative itself. ok is false when pat is not
// an or pattern.
func SplitLastAlternative(pat *sitter.Node, src []byte) (rest, last string, ok bool) {
	if pat == nil || pat.Type() != "or_pattern" {
		return "", "", false
	}
	count := int(pat.ChildCount())
	if count < 3 {
		return "", "", false
	}
	pipe := pat.Child(count - 2)
	if pipe.Type() != "|" {
		return "", "", false
	}
	rest = strings.TrimSpace(string(src[pat.StartByte():pipe.StartByte()]))
	last = strings.TrimSpace(pat.Child(count - 1).Content(src))
	if rest == "" || last == "" {
		return "", "", false
	}
	return rest, last, true
}
