package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"abacus/internal/metrics"
	"abacus/internal/session"
)

func newTestServer() *Server {
	return New(session.NewStore(0, nil), metrics.New(), nil)
}

// call runs a registered tool the way the transport would.
func call(t *testing.T, s *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.mcp.GetTool(name)
	if tool == nil {
		t.Fatalf("tool %q not registered", name)
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handler(context.Background(), req)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("content = %+v", res.Content)
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T", res.Content[0])
	}
	return tc.Text
}

func decode(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool error: %s", text(t, res))
	}
	var out map[string]any
	if err := yaml.Unmarshal([]byte(text(t, res)), &out); err != nil {
		t.Fatalf("result is not YAML: %v", err)
	}
	return out
}

func TestToolsRegistered(t *testing.T) {
	s := newTestServer()
	for _, name := range []string{"new_session", "press", "display", "evaluate", "keypad", "close_session"} {
		if s.mcp.GetTool(name) == nil {
			t.Fatalf("tool %q missing", name)
		}
	}
}

func TestPressDefaultSession(t *testing.T) {
	s := newTestServer()
	out := decode(t, call(t, s, "press", map[string]any{"keys": "2+3="}))
	if out["display"] != "5" || out["session"] != session.DefaultID {
		t.Fatalf("press result = %v", out)
	}

	out = decode(t, call(t, s, "display", nil))
	if out["display"] != "5" || out["clear_label"] != "C" {
		t.Fatalf("display result = %v", out)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer()
	id, _ := decode(t, call(t, s, "new_session", nil))["session"].(string)
	if id == "" {
		t.Fatal("no session id")
	}

	out := decode(t, call(t, s, "press", map[string]any{"session": id, "keys": "1/3="}))
	if out["display"] != "0,333333" {
		t.Fatalf("display = %v", out["display"])
	}
	if def := decode(t, call(t, s, "display", nil)); def["display"] != "0" {
		t.Fatalf("default session touched: %v", def)
	}

	decode(t, call(t, s, "close_session", map[string]any{"session": id}))
	res := call(t, s, "display", map[string]any{"session": id})
	if !res.IsError || !strings.Contains(text(t, res), "not found") {
		t.Fatalf("display after close = %+v", res)
	}
}

func TestPressErrors(t *testing.T) {
	s := newTestServer()
	if res := call(t, s, "press", nil); !res.IsError {
		t.Fatal("missing keys should be a tool error")
	}
	if res := call(t, s, "press", map[string]any{"keys": "2x3"}); !res.IsError {
		t.Fatal("unknown key should be a tool error")
	}
}

func TestEvaluate(t *testing.T) {
	s := newTestServer()
	out := decode(t, call(t, s, "evaluate", map[string]any{"a": "2", "operator": "^", "b": "10"}))
	if out["result"] != "1024" {
		t.Fatalf("result = %v", out)
	}
	out = decode(t, call(t, s, "evaluate", map[string]any{"a": "7", "operator": "/", "b": "0"}))
	if out["result"] != "Infinity" {
		t.Fatalf("result = %v", out)
	}
	if res := call(t, s, "evaluate", map[string]any{"a": "1", "operator": "x", "b": "2"}); !res.IsError {
		t.Fatal("unknown operator should be a tool error")
	}
}

func TestKeypad(t *testing.T) {
	s := newTestServer()
	var out keypadResult
	if err := yaml.Unmarshal([]byte(text(t, call(t, s, "keypad", nil))), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Rows) != 5 || out.Rows[0][0] != "AC" || out.Rows[4][3] != "=" {
		t.Fatalf("rows = %v", out.Rows)
	}
}
