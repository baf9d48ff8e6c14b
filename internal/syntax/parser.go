package syntax

import (
	"context"
	"fmt"
	"os"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// Parser wraps a tree-sitter parser configured for Rust sources.
// The underlying parser is not reentrant, so Parse serializes callers;
// the trees it returns can be read concurrently.
type Parser struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// NewParser returns a parser for Rust sources.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())
	return &Parser{parser: p}
}

// Tree couples a parsed syntax tree with the source bytes it was built
// from. Close releases the tree; nodes must not be used afterwards.
type Tree struct {
	tree *sitter.Tree
	src  []byte
}

// Parse parses src into a syntax tree.
func (p *Parser) Parse(ctx context.Context, src []byte) (*Tree, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tree, err := p.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("error parsing source: %w", err)
	}
	return &Tree{tree: tree, src: src}, nil
}

// ParseFile reads filename and parses its content.
func (p *Parser) ParseFile(ctx context.Context, filename string) (*Tree, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return p.Parse(ctx, src)
}

// Root returns the root node of the tree.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Src returns the source bytes the tree was parsed from.
func (t *Tree) Src() []byte {
	return t.src
}

// Close releases the tree's memory.
func (t *Tree) Close() {
	t.tree.Close()
}
