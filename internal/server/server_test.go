package server

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oxlift/oxlift/internal"
	"github.com/oxlift/oxlift/internal/fixer"
)

const mergeableSource = `enum X { A, B, C }

fn f(x: X) -> i32 {
    match x {
        X::A => 1,
        X::B => 1,
        X::C => 2,
    }
}
`

const mergedSource = `enum X { A, B, C }

fn f(x: X) -> i32 {
    match x {
        X::A | X::B => 1,
        X::C => 2,
    }
}
`

func dialTestServer(t *testing.T) *websocket.Conn {
	t.Helper()

	engine, err := internal.NewEngine(nil)
	require.NoError(t, err)

	srv := New(engine, fixer.New(false), zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, in wsInbound) wsOutbound {
	t.Helper()
	require.NoError(t, conn.WriteJSON(in))

	var out wsOutbound
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

func TestServerPing(t *testing.T) {
	conn := dialTestServer(t)

	out := roundTrip(t, conn, wsInbound{Type: "ping"})
	assert.Equal(t, "pong", out.Type)
}

func TestServerScanAndAt(t *testing.T) {
	conn := dialTestServer(t)

	tempDir := t.TempDir()
	filename := filepath.Join(tempDir, "sample.rs")
	require.NoError(t, os.WriteFile(filename, []byte(mergeableSource), 0o644))

	out := roundTrip(t, conn, wsInbound{Type: "scan", Path: filename})
	require.Equal(t, "assists", out.Type)
	require.Len(t, out.Assists, 1)
	assert.Equal(t, "merge-match-arms", out.Assists[0].ID)

	out = roundTrip(t, conn, wsInbound{Type: "assists", Path: filename, Offset: 65})
	require.Equal(t, "assists", out.Type)
	require.Len(t, out.Assists, 1)
	assert.Equal(t, "X::A | X::B => 1,", out.Assists[0].Edit.NewText)
}

func TestServerApplyRoundTrip(t *testing.T) {
	conn := dialTestServer(t)

	tempDir := t.TempDir()
	filename := filepath.Join(tempDir, "sample.rs")
	require.NoError(t, os.WriteFile(filename, []byte(mergeableSource), 0o644))

	out := roundTrip(t, conn, wsInbound{Type: "apply", Path: filename, ID: "merge-match-arms"})
	require.Equal(t, "applied", out.Type)
	assert.Equal(t, 1, out.Applied)

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, mergedSource, string(content))

	// The merged arm can be split right back.
	out = roundTrip(t, conn, wsInbound{Type: "apply", Path: filename, ID: "unmerge-match-arm"})
	require.Equal(t, "applied", out.Type)
	assert.Equal(t, 1, out.Applied)

	content, err = os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, mergeableSource, string(content))
}

func TestServerApplyNoMatches(t *testing.T) {
	conn := dialTestServer(t)

	tempDir := t.TempDir()
	filename := filepath.Join(tempDir, "sample.rs")
	require.NoError(t, os.WriteFile(filename, []byte(mergeableSource), 0o644))

	out := roundTrip(t, conn, wsInbound{Type: "apply", Path: filename, ID: "no-such-assist"})
	require.Equal(t, "applied", out.Type)
	assert.Equal(t, 0, out.Applied)

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, mergeableSource, string(content))
}

func TestServerInvalidRequests(t *testing.T) {
	conn := dialTestServer(t)

	out := roundTrip(t, conn, wsInbound{Type: "scan"})
	assert.Equal(t, "error", out.Type)
	assert.Equal(t, "invalid_argument", out.Code)

	out = roundTrip(t, conn, wsInbound{Type: "launch-missiles"})
	assert.Equal(t, "error", out.Type)
	assert.Equal(t, "invalid_argument", out.Code)
	assert.Contains(t, out.Message, "unsupported type")
}
