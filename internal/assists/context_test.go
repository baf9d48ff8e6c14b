package assists

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxlift/oxlift/internal/fixer"
	"github.com/oxlift/oxlift/internal/sema"
	"github.com/oxlift/oxlift/internal/syntax"
	tt "github.com/oxlift/oxlift/internal/types"
)

// fixtureContext parses a source fixture whose cursor position is marked
// with $0 and builds an assist context for it.
func fixtureContext(t *testing.T, fixture string) *Context {
	t.Helper()
	marker := strings.Index(fixture, "$0")
	require.GreaterOrEqual(t, marker, 0, "fixture has no $0 cursor marker")
	src := []byte(fixture[:marker] + fixture[marker+2:])

	tree, err := syntax.NewParser().Parse(context.Background(), src)
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	return &Context{
		Filename: "fixture.rs",
		Src:      src,
		Root:     tree.Root(),
		Offset:   uint32(marker),
		Types:    sema.NewFileResolver(tree.Root(), src),
	}
}

// checkRewrite runs an assist on the fixture and requires that applying
// its single edit yields exactly the after text.
func checkRewrite(t *testing.T, fn func(*Context) ([]tt.Assist, error), before, after string) {
	t.Helper()
	ctx := fixtureContext(t, before)
	out, err := fn(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)

	fixed, err := fixer.FixSource(ctx.Src, out)
	require.NoError(t, err)
	require.Equal(t, after, string(fixed))
}

// checkNotApplicable runs an assist on the fixture and requires that it
// offers nothing.
func checkNotApplicable(t *testing.T, fn func(*Context) ([]tt.Assist, error), fixture string) {
	t.Helper()
	ctx := fixtureContext(t, fixture)
	out, err := fn(ctx)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestContextPosition(t *testing.T) {
	t.Parallel()
	ctx := &Context{Src: []byte("ab\ncd\ne")}

	assert.Equal(t, tt.Position{Offset: 0, Line: 1, Column: 1}, ctx.Position(0))
	assert.Equal(t, tt.Position{Offset: 1, Line: 1, Column: 2}, ctx.Position(1))
	assert.Equal(t, tt.Position{Offset: 3, Line: 2, Column: 1}, ctx.Position(3))
	assert.Equal(t, tt.Position{Offset: 6, Line: 3, Column: 1}, ctx.Position(6))
	assert.Equal(t, tt.Position{Offset: 7, Line: 3, Column: 2}, ctx.Position(99))
}

func TestContextLineIndent(t *testing.T) {
	t.Parallel()
	ctx := &Context{Src: []byte("fn main() {\n    let x = 1;\n\tlet y = 2;\n}")}

	assert.Equal(t, "", ctx.lineIndent(3))
	assert.Equal(t, "    ", ctx.lineIndent(20))
	assert.Equal(t, "\t", ctx.lineIndent(30))
}
