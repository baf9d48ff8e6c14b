// Package trie stores path segment sequences for prefix matching. It
// backs the engine's ignore-path handling: inserted paths mark whole
// subtrees, and ContainsPrefixOf answers whether a candidate path falls
// under any of them.
//
// Nodes live in an arena: a single slice indexed by NodeIndex instead of
// a pointer per node. One inserted path costs one map entry per segment,
// and lookups walk indices with no pointer chasing.
package trie

import (
	"sort"
	"strings"
)

// NodeIndex represents the index of a trie node within its arena.
type NodeIndex int

// Arena is the pool that stores all trie nodes. Index 0 is the root.
type Arena struct {
	nodes []arenaNode
}

type arenaNode struct {
	// children maps a path segment to the index of the child node.
	children map[string]NodeIndex
	// isEnd marks the last segment of an inserted path.
	isEnd bool
}

// NewArena creates an arena holding only the root node.
func NewArena() *Arena {
	arena := &Arena{
		nodes: make([]arenaNode, 0, 1024),
	}
	arena.nodes = append(arena.nodes, arenaNode{
		children: make(map[string]NodeIndex),
	})
	return arena
}

func (a *Arena) newNode() NodeIndex {
	idx := NodeIndex(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode{
		children: make(map[string]NodeIndex),
	})
	return idx
}

// Insert inserts a sequence of path segments into the trie.
func (a *Arena) Insert(sequence []string) {
	current := NodeIndex(0)

	for _, part := range sequence {
		node := &a.nodes[current]
		childIdx, exists := node.children[part]

		if !exists {
			childIdx = a.newNode()
			node.children[part] = childIdx
		}

		current = childIdx
	}

	a.nodes[current].isEnd = true
}

// ContainsPrefixOf reports whether any inserted sequence is a prefix of
// the given sequence. An inserted sequence matches itself.
func (a *Arena) ContainsPrefixOf(sequence []string) bool {
	current := NodeIndex(0)
	if a.nodes[current].isEnd {
		return true
	}

	for _, part := range sequence {
		childIdx, exists := a.nodes[current].children[part]
		if !exists {
			return false
		}
		current = childIdx
		if a.nodes[current].isEnd {
			return true
		}
	}
	return false
}

// Equal checks whether two tries are identical in structure and content.
func (a *Arena) Equal(b *Arena) bool {
	if len(a.nodes) != len(b.nodes) {
		return false
	}

	return a.equalNodes(NodeIndex(0), b, NodeIndex(0))
}

func (a *Arena) equalNodes(aIdx NodeIndex, b *Arena, bIdx NodeIndex) bool {
	nodeA := a.nodes[aIdx]
	nodeB := b.nodes[bIdx]

	if nodeA.isEnd != nodeB.isEnd || len(nodeA.children) != len(nodeB.children) {
		return false
	}

	keys := make([]string, 0, len(nodeA.children))
	for key := range nodeA.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		childA := nodeA.children[key]
		childB, exists := nodeB.children[key]
		if !exists || !a.equalNodes(childA, b, childB) {
			return false
		}
	}

	return true
}

// DebugString returns a string representation of the trie for debugging.
func (a *Arena) DebugString() string {
	return a.debugStringNode(NodeIndex(0))
}

func (a *Arena) debugStringNode(idx NodeIndex) string {
	node := a.nodes[idx]
	var sb strings.Builder

	if node.isEnd {
		sb.WriteString("*")
	}

	keys := make([]string, 0, len(node.children))
	for key := range node.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteString("(")
		sb.WriteString(a.debugStringNode(node.children[key]))
		sb.WriteString(")")
	}

	return sb.String()
}

// Trie wraps an arena behind the conventional container API.
type Trie struct {
	arena *Arena
}

// New returns an initialized Trie.
func New() *Trie {
	return &Trie{
		arena: NewArena(),
	}
}

// Insert inserts a sequence of path segments into the trie.
func (t *Trie) Insert(sequence []string) {
	t.arena.Insert(sequence)
}

// ContainsPrefixOf reports whether any inserted sequence is a prefix of
// the given sequence.
func (t *Trie) ContainsPrefixOf(sequence []string) bool {
	return t.arena.ContainsPrefixOf(sequence)
}

// Equal checks whether two tries are identical in structure and content.
func (t *Trie) Equal(other *Trie) bool {
	return t.arena.Equal(other.arena)
}

// DebugString returns a string representation of the trie for debugging.
func (t *Trie) DebugString() string {
	return t.arena.DebugString()
}
