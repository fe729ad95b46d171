package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultIOTimeout bounds how long a single connection may take to send its
// request and receive the reply.
const DefaultIOTimeout = 30 * time.Second

// Dispatcher executes a named command. *commands.Registry satisfies it.
type Dispatcher interface {
	Invoke(ctx context.Context, name string, args json.RawMessage) (any, error)
}

// Server accepts one request per connection on a unix socket and answers it
// with the dispatcher's result.
type Server struct {
	socketPath string
	dispatcher Dispatcher
	logger     *zap.Logger
	ioTimeout  time.Duration

	wg sync.WaitGroup
}

// NewServer creates a server for socketPath.
func NewServer(socketPath string, dispatcher Dispatcher, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		socketPath: socketPath,
		dispatcher: dispatcher,
		logger:     logger,
		ioTimeout:  DefaultIOTimeout,
	}
}

// ListenAndServe listens on the server's socket path and serves until ctx is
// cancelled. A stale socket file left by a previous run is removed first.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := Listen(s.socketPath)
	if err != nil {
		return err
	}
	defer os.Remove(s.socketPath)
	return s.Serve(ctx, ln)
}

// Listen removes any stale socket at path and listens on it. The socket is
// only accessible to the current user.
func Listen(path string) (net.Listener, error) {
	if path == "" {
		return nil, errors.New("socket path is empty")
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		ln.Close()
		return nil, fmt.Errorf("failed to restrict socket permissions: %w", err)
	}
	return ln, nil
}

// Serve accepts connections on ln until ctx is cancelled, then waits for
// in-flight requests to finish. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			ln.Close()
		case <-stop:
		}
	}()

	s.logger.Info("IPC server listening", zap.String("socket", ln.Addr().String()))
	defer s.wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("IPC server stopped")
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	if s.ioTimeout > 0 {
		conn.SetDeadline(time.Now().Add(s.ioTimeout))
	}

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	var req Request
	if err := dec.Decode(&req); err != nil {
		s.logger.Debug("Rejected malformed request", zap.Error(err))
		enc.Encode(errorResponse("", "invalid request: "+err.Error()))
		return
	}

	resp := s.dispatch(ctx, &req)
	if err := enc.Encode(resp); err != nil {
		s.logger.Warn("Failed to write response",
			zap.String("id", req.ID),
			zap.String("command", req.Command),
			zap.Error(err))
	}
}

func (s *Server) dispatch(ctx context.Context, req *Request) *Response {
	start := time.Now()
	result, err := s.dispatcher.Invoke(ctx, req.Command, req.Args)

	s.logger.Debug("Handled request",
		zap.String("id", req.ID),
		zap.String("command", req.Command),
		zap.Duration("took", time.Since(start)),
		zap.Bool("ok", err == nil))

	if err != nil {
		return errorResponse(req.ID, err.Error())
	}

	resp := &Response{ID: req.ID, Status: StatusOK}
	if result != nil {
		data, err := json.Marshal(result)
		if err != nil {
			return errorResponse(req.ID, "failed to encode result: "+err.Error())
		}
		resp.Data = data
	}
	return resp
}
