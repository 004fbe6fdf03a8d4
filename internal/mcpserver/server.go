// Package mcpserver exposes one calculator session as MCP tools, so a remote
// client can press keys and read the display.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/toejough/keycalc"
	"github.com/toejough/keycalc/internal/engine"
	"github.com/toejough/keycalc/internal/keys"
)

// StateURI is the resource holding the current state snapshot.
const StateURI = "calculator://state"

// unexported constants.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server holds the session the tool handlers act on.
type Server struct {
	mu      sync.Mutex
	session *keycalc.Session
	logger  *slog.Logger
	mcp     *server.MCPServer
}

// New creates a Server over session with every tool and the state resource
// registered.
func New(session *keycalc.Session, version string, logger *slog.Logger) *Server {
	s := &Server{
		session: session,
		logger:  logger,
		mcp: server.NewMCPServer(
			"keycalc",
			version,
			server.WithToolCapabilities(true),
			server.WithResourceCapabilities(false, false),
			server.WithRecovery(),
		),
	}

	s.addTools()
	s.addStateResource()

	return s
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// ListenHTTP serves streamable HTTP on addr until ctx is done.
func (s *Server) ListenHTTP(ctx context.Context, addr string) error {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return s.ServeHTTP(ctx, listener)
}

// ServeHTTP serves streamable HTTP on listener until ctx is done, then shuts
// down gracefully. The listener is closed on return.
func (s *Server) ServeHTTP(ctx context.Context, listener net.Listener) error {
	s.logger.Info("serving MCP over HTTP", "addr", listener.Addr().String())

	httpServer := &http.Server{
		Handler:           server.NewStreamableHTTPServer(s.mcp),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	served := make(chan error, 1)

	go func() { served <- httpServer.Serve(listener) }()

	select {
	case err := <-served:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("http shutdown failed: %w", err)
	}

	err = <-served
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}

	return nil
}

// ServeStdio serves JSON-RPC over in and out until ctx is done or in closes.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("serving MCP over stdio")

	err := server.NewStdioServer(s.mcp).Listen(ctx, in, out)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server failed: %w", err)
	}

	return nil
}

// dispatch gates and applies events as one step, so a concurrent mode toggle
// cannot slip between the check and the update.
func (s *Server) dispatch(events ...engine.Event) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := keys.Gate(s.session.State(), events)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	st, err := s.session.Dispatch(events...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return snapshotResult(st)
}

func (s *Server) addStateResource() {
	resource := mcp.NewResource(StateURI,
		"Calculator State",
		mcp.WithResourceDescription("Display, pending operation, memory and modes of the calculator"),
		mcp.WithMIMEType("application/json"),
	)

	s.mcp.AddResource(resource, s.readState)
}

func (s *Server) readState(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(NewSnapshot(s.session.State()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StateURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
