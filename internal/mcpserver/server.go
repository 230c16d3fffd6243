// Package mcpserver exposes calculator sessions as MCP tools.
package mcpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"abacus/internal/buildinfo"
	"abacus/internal/metrics"
	"abacus/internal/session"
)

// Server wraps the MCP server with the session store it serves.
type Server struct {
	mcp      *mcpserver.MCPServer
	sessions *session.Store
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// New creates an MCP server with all calculator tools registered. m and log
// may be nil.
func New(store *session.Store, m *metrics.Metrics, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		sessions: store,
		metrics:  m,
		log:      log,
	}
	s.mcp = mcpserver.NewMCPServer(
		"abacus",
		buildinfo.Short(),
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions("A four-function calculator. Press keys with the press tool using keypad labels: digits, '.', '+', '-', '*', '/', '^', '%', '=', 'AC' and '⌫'."),
	)
	s.registerTools()
	return s
}

// ServeStdio serves MCP over r and w until ctx is cancelled or input ends.
func (s *Server) ServeStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	return mcpserver.NewStdioServer(s.mcp).Listen(ctx, r, w)
}

// HTTPHandler returns a streamable-HTTP handler for mounting on a router.
func (s *Server) HTTPHandler() http.Handler {
	return mcpserver.NewStreamableHTTPServer(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("new_session",
			mcp.WithDescription("Open a fresh calculator session and return its id"),
		),
		s.handleNewSession,
	)

	s.mcp.AddTool(
		mcp.NewTool("press",
			mcp.WithDescription("Press a sequence of calculator keys and return the resulting display. Whitespace between keys is ignored."),
			mcp.WithString("keys", mcp.Description("Key labels, e.g. '12+3=' or 'AC 7 ^ 2 ='"), mcp.Required()),
			mcp.WithString("session", mcp.Description("Session id from new_session (default session if omitted)")),
		),
		s.handlePress,
	)

	s.mcp.AddTool(
		mcp.NewTool("display",
			mcp.WithDescription("Read the current display and pending operation of a session"),
			mcp.WithString("session", mcp.Description("Session id (default session if omitted)")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleDisplay,
	)

	s.mcp.AddTool(
		mcp.NewTool("evaluate",
			mcp.WithDescription("Evaluate one binary operation with calculator rounding, without touching any session"),
			mcp.WithString("a", mcp.Description("First operand, '.' or ',' decimal separator"), mcp.Required()),
			mcp.WithString("operator", mcp.Description("Operator"), mcp.Required(), mcp.Enum("+", "-", "*", "/", "^", "%")),
			mcp.WithString("b", mcp.Description("Second operand (ignored for %)")),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithIdempotentHintAnnotation(true),
		),
		s.handleEvaluate,
	)

	s.mcp.AddTool(
		mcp.NewTool("keypad",
			mcp.WithDescription("List the keypad labels row by row"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleKeypad,
	)

	s.mcp.AddTool(
		mcp.NewTool("close_session",
			mcp.WithDescription("Close a session opened with new_session"),
			mcp.WithString("session", mcp.Description("Session id"), mcp.Required()),
		),
		s.handleCloseSession,
	)
}

// toText serializes v to YAML for an MCP response.
func toText(v any) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}
