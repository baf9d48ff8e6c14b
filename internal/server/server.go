// Package server exposes the assist engine over a websocket endpoint so
// editor integrations can query and apply assists without shelling out to
// the CLI for every keystroke.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/oxlift/oxlift/internal/fixer"
	tt "github.com/oxlift/oxlift/internal/types"
)

// Engine is the part of the assist engine the server needs.
type Engine interface {
	At(ctx context.Context, filename string, offset uint32) ([]tt.Assist, error)
	ScanFile(ctx context.Context, filename string) ([]tt.Assist, error)
}

type Server struct {
	engine Engine
	fixer  *fixer.Fixer
	logger *zap.Logger
}

func New(engine Engine, fix *fixer.Fixer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine: engine,
		fixer:  fix,
		logger: logger,
	}
}

// Handler returns the HTTP handler serving the websocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("serving assists", zap.String("addr", addr))
	return srv.ListenAndServe()
}

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type wsInbound struct {
	Type   string `json:"type"`
	Path   string `json:"path,omitempty"`
	Offset uint32 `json:"offset,omitempty"`
	ID     string `json:"id,omitempty"`
}

type wsOutbound struct {
	Type    string      `json:"type"`
	Path    string      `json:"path,omitempty"`
	Assists []tt.Assist `json:"assists,omitempty"`
	Applied int         `json:"applied,omitempty"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		s.logger.Warn("set read deadline failed", zap.Error(err))
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	writeCh := make(chan wsOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(wsPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		s.dispatch(ctx, writeCh, in)
	}
}

func (s *Server) dispatch(ctx context.Context, writeCh chan wsOutbound, in wsInbound) {
	msgType := strings.ToLower(strings.TrimSpace(in.Type))
	switch msgType {
	case "ping":
		push(writeCh, wsOutbound{Type: "pong"})

	case "assists":
		if in.Path == "" {
			pushError(writeCh, "invalid_argument", "path is required")
			return
		}
		found, err := s.engine.At(ctx, in.Path, in.Offset)
		if err != nil {
			pushError(writeCh, "internal", err.Error())
			return
		}
		push(writeCh, wsOutbound{Type: "assists", Path: in.Path, Assists: found})

	case "scan":
		if in.Path == "" {
			pushError(writeCh, "invalid_argument", "path is required")
			return
		}
		found, err := s.engine.ScanFile(ctx, in.Path)
		if err != nil {
			pushError(writeCh, "internal", err.Error())
			return
		}
		push(writeCh, wsOutbound{Type: "assists", Path: in.Path, Assists: found})

	case "apply":
		if in.Path == "" {
			pushError(writeCh, "invalid_argument", "path is required")
			return
		}
		applied, err := s.apply(ctx, in)
		if err != nil {
			pushError(writeCh, "internal", err.Error())
			return
		}
		push(writeCh, wsOutbound{Type: "applied", Path: in.Path, Applied: applied})

	default:
		pushError(writeCh, "invalid_argument", "unsupported type: "+msgType)
	}
}

// apply rescans the file and applies the matching assists. An empty ID
// applies everything found.
func (s *Server) apply(ctx context.Context, in wsInbound) (int, error) {
	found, err := s.engine.ScanFile(ctx, in.Path)
	if err != nil {
		return 0, err
	}

	selected := found
	if in.ID != "" {
		selected = selected[:0:0]
		for _, a := range found {
			if a.ID == in.ID {
				selected = append(selected, a)
			}
		}
	}
	if len(selected) == 0 {
		return 0, nil
	}

	if err := s.fixer.Fix(in.Path, selected); err != nil {
		return 0, err
	}
	s.logger.Info("applied assists",
		zap.String("path", in.Path),
		zap.Int("count", len(selected)))
	return len(selected), nil
}

// push drops the oldest queued message instead of blocking when the peer
// stops reading.
func push(writeCh chan wsOutbound, out wsOutbound) {
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}

func pushError(writeCh chan wsOutbound, code, message string) {
	push(writeCh, wsOutbound{Type: "error", Code: code, Message: message})
}
