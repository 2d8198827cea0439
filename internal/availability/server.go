package availability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/tablekit/internal/logging"
)

const (
	// Path is the WebSocket endpoint served by Server.
	Path = "/v1/usernames"

	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed between requests before the connection is dropped
	idleWait = 120 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Time allowed for a single check
	checkTimeout = 5 * time.Second
)

type request struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type response struct {
	ID     uint64 `json:"id"`
	Result Result `json:"result"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

// Server answers availability checks over WebSocket.
type Server struct {
	checker  Checker
	upgrader websocket.Upgrader
}

// NewServer creates a server backed by checker.
func NewServer(checker Checker) *Server {
	return &Server{
		checker: checker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler returns the HTTP handler with the endpoint mounted at Path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, s)
	return mux
}

// ServeHTTP upgrades the connection and answers requests until the peer
// closes it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}
	defer func() {
		_ = conn.Close()
		logging.Debug("Availability connection closed", zap.String("remote_addr", r.RemoteAddr))
	}()

	conn.SetReadLimit(maxMessageSize)
	logging.Debug("Availability connection opened", zap.String("remote_addr", r.RemoteAddr))

	for {
		if err := conn.SetReadDeadline(time.Now().Add(idleWait)); err != nil {
			return
		}

		var req request
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Debug("Availability read ended",
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
			}
			return
		}

		resp := s.answer(r.Context(), req)
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := conn.WriteJSON(resp); err != nil {
			logging.Warn("Availability write failed",
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			return
		}
	}
}

func (s *Server) answer(ctx context.Context, req request) response {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	result, err := s.checker.Check(ctx, req.Username)
	resp := response{ID: req.ID, Result: result}
	if err != nil {
		resp.Error = err.Error()
		var checkErr *CheckError
		if errors.As(err, &checkErr) {
			resp.Kind = checkErr.Kind.String()
		}
	}
	logging.Debug("Availability check answered",
		zap.Uint64("id", req.ID),
		zap.String("username", req.Username),
		zap.Bool("available", result.Available),
		zap.String("error", resp.Error),
	)
	return resp
}

// ListenAndServe serves on addr until ctx is canceled. If ready is non-nil it
// receives the bound address once the listener is up.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Info("Availability server listening", zap.String("addr", ln.Addr().String()))
	if ready != nil {
		ready(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down availability server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("availability server failed: %w", err)
	}
}
