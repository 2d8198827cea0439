package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/tablekit/internal/logging"
)

// Client checks usernames against a remote Server. It keeps one connection
// open and sends one request at a time.
type Client struct {
	URL    string
	Dialer *websocket.Dialer

	mu     sync.Mutex
	conn   *websocket.Conn
	nextID uint64
}

// NewClient creates a client for the server at url, e.g.
// "ws://127.0.0.1:7878/v1/usernames".
func NewClient(url string) *Client {
	return &Client{
		URL: url,
		Dialer: &websocket.Dialer{
			HandshakeTimeout: 5 * time.Second,
		},
	}
}

// Check implements Checker. A failed round trip drops the connection so the
// next check dials again.
func (c *Client) Check(ctx context.Context, username string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connect(ctx); err != nil {
		return Result{}, err
	}

	c.nextID++
	req := request{ID: c.nextID, Username: username}

	deadline := time.Now().Add(checkTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	conn := c.conn
	stop := context.AfterFunc(ctx, func() {
		// Unblocks a pending read when the caller gives up.
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return Result{}, c.fail(ctx, "failed to set write deadline", err)
	}
	if err := c.conn.WriteJSON(req); err != nil {
		return Result{}, c.fail(ctx, "failed to send check", err)
	}

	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return Result{}, c.fail(ctx, "failed to set read deadline", err)
	}
	if ctx.Err() != nil {
		return Result{}, c.fail(ctx, "check canceled", ctx.Err())
	}
	var resp response
	if err := c.conn.ReadJSON(&resp); err != nil {
		return Result{}, c.fail(ctx, "failed to read check result", err)
	}

	if resp.ID != req.ID {
		c.drop()
		return Result{}, &CheckError{
			Kind:    ErrKindProtocol,
			Message: fmt.Sprintf("response id %d does not match request id %d", resp.ID, req.ID),
		}
	}
	if resp.Error != "" {
		return Result{}, remoteError(resp)
	}
	return resp.Result, nil
}

func (c *Client) connect(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}
	conn, _, err := c.Dialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return &CheckError{
			Kind:      ErrKindNetwork,
			Message:   "failed to connect to " + c.URL,
			Err:       err,
			Retryable: true,
		}
	}
	logging.Debug("Connected to availability server", zap.String("url", c.URL))
	c.conn = conn
	return nil
}

func (c *Client) fail(ctx context.Context, msg string, err error) error {
	c.drop()
	if ctx.Err() != nil {
		return &CheckError{Kind: ErrKindCanceled, Message: "check canceled", Err: ctx.Err(), Retryable: true}
	}
	return &CheckError{Kind: ErrKindNetwork, Message: msg, Err: err, Retryable: true}
}

func (c *Client) drop() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

func remoteError(resp response) error {
	kind := ErrKindProtocol
	if resp.Kind == ErrKindInvalid.String() {
		kind = ErrKindInvalid
	}
	msg := resp.Error
	// The server reports the full error string; keep only the message part.
	if prefix := kind.String() + ": "; strings.HasPrefix(msg, prefix) {
		msg = strings.TrimPrefix(msg, prefix)
	}
	return &CheckError{Kind: kind, Message: msg}
}

// Close closes the connection, if any.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	closeErr := c.conn.Close()
	c.conn = nil
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		return fmt.Errorf("failed to close availability connection: %w", err)
	}
	return closeErr
}
