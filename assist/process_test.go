package assist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oxlift/oxlift/internal/types"
)

const rustSample = `enum X { A, B, C }

fn f(x: X) -> i32 {
    match x {
        X::A => 1,
        X::B => 1,
        X::C => 2,
    }
}
`

// TestProcessPathContextCancellation tests that context cancellation is
// handled before any file is dispatched.
func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "test_cancel")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	for _, name := range []string{"a.rs", "b.rs", "c.rs"} {
		err := os.WriteFile(filepath.Join(tempDir, name), []byte(rustSample), 0o644)
		require.NoError(t, err)
	}

	engine, err := New("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ProcessPath(ctx, nil, engine, tempDir, ProcessFile)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestProcessPathSkipsFailedFiles tests that a failing file does not take
// down the whole directory scan.
func TestProcessPathSkipsFailedFiles(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "test_errors")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	paths := createTempFiles(t, tempDir, "good1.rs", "bad.rs", "good2.rs")

	good1 := sampleAssist("merge-match-arms", paths[0])
	good2 := sampleAssist("merge-match-arms", paths[2])

	mockEngine := new(mockAssistEngine)
	mockEngine.On("IsIgnoredPath", mock.Anything).Return(false)
	mockEngine.On("ScanFile", paths[0]).Return([]types.Assist{good1}, nil)
	mockEngine.On("ScanFile", paths[1]).Return(nil, errors.New("read failed"))
	mockEngine.On("ScanFile", paths[2]).Return([]types.Assist{good2}, nil)

	found, err := ProcessPath(context.Background(), nil, mockEngine, tempDir, ProcessFile)

	assert.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Contains(t, found, good1)
	assert.Contains(t, found, good2)
	mockEngine.AssertExpectations(t)
}

// TestProcessPathIgnoredPaths tests that ignored directories are pruned from
// the walk.
func TestProcessPathIgnoredPaths(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "test_ignored")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	generated := filepath.Join(tempDir, "generated")
	require.NoError(t, os.MkdirAll(generated, 0o755))

	keep := filepath.Join(tempDir, "a.rs")
	require.NoError(t, os.WriteFile(keep, []byte(rustSample), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(generated, "gen.rs"), []byte(rustSample), 0o644))

	engine, err := New("")
	require.NoError(t, err)
	engine.IgnorePath(generated)

	found, err := ProcessPath(context.Background(), nil, engine, tempDir, ProcessFile)

	require.NoError(t, err)
	require.NotEmpty(t, found)
	for _, a := range found {
		assert.Equal(t, keep, a.Filename)
	}
}
