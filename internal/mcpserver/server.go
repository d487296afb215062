// Package mcpserver exposes the wizard command vocabulary as MCP tools, over
// stdio for agent hosts or over streamable HTTP on a loopback port.
package mcpserver

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mark3labs/listwiz/internal/command"
	"github.com/mark3labs/listwiz/internal/logger"
)

const (
	serverName    = "listwiz"
	serverVersion = "1.0.0"
)

// Server owns one wizard session and the MCP server fronting it.
type Server struct {
	dispatcher *command.Dispatcher
	mcpServer  *server.MCPServer

	// mu serialises command execution; the session itself is not safe for
	// concurrent use.
	mu sync.Mutex

	lifecycle sync.Mutex
	stdServer *http.Server
	port      int
}

// New registers one tool per command against d.
func New(d *command.Dispatcher) *Server {
	s := &Server{dispatcher: d}
	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)
	s.mcpServer.AddTools(s.tools()...)
	return s
}

// Serve speaks MCP over in and out until ctx is cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	logger.Debug("Serving MCP over stdio")
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

// Start serves MCP over streamable HTTP on a random loopback port and
// returns the port.
func (s *Server) Start(ctx context.Context) (int, error) {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find available port: %w", err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(s.mcpServer, server.WithStateLess(true)))
	s.stdServer = &http.Server{Handler: mux}

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	logger.Debug("MCP server ready on port %d", s.port)
	return s.port, nil
}

// Stop shuts the HTTP server down. Stopping a stopped server is a no-op.
func (s *Server) Stop() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.stdServer == nil {
		return nil
	}
	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.stdServer = nil
	logger.Debug("MCP server stopped")
	return nil
}

// URL is the HTTP endpoint of a started server.
func (s *Server) URL() string {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
