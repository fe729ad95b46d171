package ipc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

const (
	maxDialAttempts = 3
	retryDelay      = 200 * time.Millisecond
)

// Client sends requests to a Server. Only dialing is retried; a request that
// reached the host is never sent twice.
type Client struct {
	socketPath string
	attempts   int
	delay      time.Duration
	dialer     net.Dialer
}

// NewClient creates a client for the socket at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		attempts:   maxDialAttempts,
		delay:      retryDelay,
	}
}

// SocketPath returns the socket the client talks to.
func (c *Client) SocketPath() string {
	return c.socketPath
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	var lastErr error
	for i := 0; i < c.attempts; i++ {
		conn, err := c.dialer.DialContext(ctx, "unix", c.socketPath)
		if err == nil {
			return conn, nil
		}
		lastErr = err

		if i == c.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.delay):
		}
	}
	return nil, fmt.Errorf("failed to connect to host after %d attempts: %w", c.attempts, lastErr)
}

// Do sends req and waits for its response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.ID != "" && resp.ID != req.ID {
		return nil, fmt.Errorf("response id %q does not match request id %q", resp.ID, req.ID)
	}
	return &resp, nil
}

// Call sends a single command with its encoded arguments.
func (c *Client) Call(ctx context.Context, command string, args json.RawMessage) (*Response, error) {
	return c.Do(ctx, NewRequest(command, args))
}

// Ping reports whether a host is accepting connections on the socket.
func (c *Client) Ping(ctx context.Context) bool {
	conn, err := c.dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
