package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"abacus/abacusos/calc"
)

type sessionResult struct {
	Session string `yaml:"session"`
}

type evaluateResult struct {
	A        string `yaml:"a"`
	Operator string `yaml:"operator"`
	B        string `yaml:"b,omitempty"`
	Result   string `yaml:"result"`
}

type keypadResult struct {
	Rows [][]string `yaml:"rows"`
}

func (s *Server) handleNewSession(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.sessions.Open()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.log.Info("session opened", zap.String("session", id))
	return mcp.NewToolResultText(toText(sessionResult{Session: id})), nil
}

func (s *Server) handlePress(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys, err := request.RequireString("keys")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id := request.GetString("session", "")

	snap, err := s.sessions.Press(id, keys)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, ev := range snap.Evaluations {
		s.log.Debug("evaluated",
			zap.String("session", snap.Session),
			zap.String("a", ev.A),
			zap.String("operator", ev.Operator),
			zap.String("b", ev.B),
			zap.String("result", ev.Result),
		)
	}
	return mcp.NewToolResultText(toText(snap)), nil
}

func (s *Server) handleDisplay(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.sessions.Get(request.GetString("session", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(snap)), nil
}

func (s *Server) handleEvaluate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := request.RequireString("a")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	op, err := request.RequireString("operator")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !calc.IsOperator(op) {
		return mcp.NewToolResultErrorf("unknown operator %q", op), nil
	}
	b := request.GetString("b", "")

	res := evaluateResult{A: a, Operator: op, B: b, Result: calc.Evaluate(a, op, b)}
	s.metrics.ObserveEvaluation(op)
	return mcp.NewToolResultText(toText(res)), nil
}

func (s *Server) handleKeypad(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pad := calc.DefaultKeypad()
	return mcp.NewToolResultText(toText(keypadResult{Rows: pad.Labels()})), nil
}

func (s *Server) handleCloseSession(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.sessions.Close(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.log.Info("session closed", zap.String("session", id))
	return mcp.NewToolResultText(toText(sessionResult{Session: id})), nil
}
