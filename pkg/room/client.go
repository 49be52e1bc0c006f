// Package room connects two TCP players to a heads-up Hold'em game. It owns
// the join handshake, the line-oriented message plumbing, and the dealer loop
// that drives hands until the match ends.
package room

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"headsuppoker-server/pkg/wire"
)

// ErrConnectionClosed is an error when the remote side went away
var ErrConnectionClosed = errors.New("connection closed")

// ErrReceiveTimeout is an error when no message arrived within the deadline
var ErrReceiveTimeout = errors.New("receive timed out")

// DisconnectError reports which seat's connection failed
type DisconnectError struct {
	Seat int
	Err  error
}

// Error implements the error interface
func (e *DisconnectError) Error() string {
	return fmt.Sprintf("seat %d disconnected: %v", e.Seat, e.Err)
}

// Unwrap returns the underlying error
func (e *DisconnectError) Unwrap() error {
	return e.Err
}

// Client wraps a player's TCP connection with newline-delimited JSON framing.
// Sends are serialized so a keep-alive or observer path can share the
// connection; receives are only ever issued by the dealer loop.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	logger logrus.FieldLogger

	mu       sync.Mutex
	closed   bool
	closeErr error
}

// NewClient creates a new client around an accepted connection
func NewClient(conn net.Conn, logger logrus.FieldLogger) *Client {
	return &Client{
		conn:   conn,
		reader: bufio.NewReader(conn),
		logger: logger.WithField("remoteAddr", conn.RemoteAddr().String()),
	}
}

// Send writes a single message to the player
func (c *Client) Send(msg wire.ServerMessage) error {
	line, err := wire.Encode(msg)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnectionClosed
	}

	if _, err := c.conn.Write(line); err != nil {
		c.logger.WithError(err).Debug("send failed")
		return ErrConnectionClosed
	}

	return nil
}

// Receive blocks until the player sends a line, the timeout elapses, or the
// connection drops. A timeout of zero waits forever. A malformed line is
// returned as a plain error distinct from ErrReceiveTimeout and
// ErrConnectionClosed so the caller can treat it as a protocol violation.
func (c *Client) Receive(timeout time.Duration) (wire.ClientMessage, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, ErrConnectionClosed
	}

	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return nil, ErrReceiveTimeout
			}

			c.logger.WithError(err).Debug("receive failed")
			return nil, ErrConnectionClosed
		}

		// skip blank keep-alive lines
		if len(line) == 1 {
			continue
		}

		return wire.ParseClientMessage(line)
	}
}

// Close shuts down the connection. Safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.closeErr
	}

	c.closed = true
	c.closeErr = c.conn.Close()
	return c.closeErr
}

// RemoteAddr returns the player's remote address
func (c *Client) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
