package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// NodeAt returns the deepest node whose byte range contains off, or nil
// when off lies outside the tree.
func NodeAt(root *sitter.Node, off uint32) *sitter.Node {
	if root == nil || off < root.StartByte() || off >= root.EndByte() {
		return nil
	}

	node := root
	for {
		var next *sitter.Node
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.StartByte() <= off && off < child.EndByte() {
				next = child
				break
			}
		}
		if next == nil {
			return node
		}
		node = next
	}
}

// Ancestor climbs from node towards the root and returns the first node of
// the given type, node itself included.
func Ancestor(node *sitter.Node, nodeType string) *sitter.Node {
	for n := node; n != nil; n = n.Parent() {
		if n.Type() == nodeType {
			return n
		}
	}
	return nil
}

// SameNode reports whether two nodes cover the same byte range and type.
// Node handles returned by separate queries are distinct values even when
// they refer to the same underlying node.
func SameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Type() == b.Type() && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}
