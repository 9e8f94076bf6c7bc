package toolkit_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/hamzaessahbaoui/accounts-toolkit/toolkit"
)

// sendMCP feeds one JSON-RPC message to s and returns the encoded response.
func sendMCP(t *testing.T, s *server.MCPServer, msg string) []byte {
	t.Helper()
	resp := s.HandleMessage(context.Background(), json.RawMessage(msg))
	require.NotNil(t, resp)
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	return out
}

func newTestMCPServer(t *testing.T) *server.MCPServer {
	t.Helper()
	tk := toolkit.New("mcp_tk",
		createTestParent(t, "parent1",
			createTestChildFn(t, "echo", "r", false),
			createTestChildFn(t, "broken", "", true),
		),
		createTestParent(t, "parent2", createTestChildFn(t, "other", "o", false)),
	)

	s := server.NewMCPServer("test", "1.0.0", server.WithToolCapabilities(false))
	tk.RegisterMCP(s)
	sendMCP(t, s, `{"jsonrpc":"2.0","id":0,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`)
	return s
}

func TestRegisterMCP_ListsEveryChild(t *testing.T) {
	s := newTestMCPServer(t)

	out := sendMCP(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	names := gjson.GetBytes(out, "result.tools.#.name").Array()

	var got []string
	for _, n := range names {
		got = append(got, n.String())
	}
	assert.ElementsMatch(t, []string{"echo", "broken", "other"}, got)

	echo := gjson.GetBytes(out, `result.tools.#(name=="echo")`)
	require.True(t, echo.Exists())
	assert.Equal(t, "desc_echo", echo.Get("description").String())
	assert.Equal(t, "object", echo.Get("inputSchema.type").String())
	assert.True(t, echo.Get("inputSchema.properties.val").Exists())
}

func TestRegisterMCP_CallTool(t *testing.T) {
	s := newTestMCPServer(t)

	out := sendMCP(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"echo","arguments":{"val":"hi"}}}`)
	assert.Equal(t, "text", gjson.GetBytes(out, "result.content.0.type").String())
	assert.Equal(t, "r:hi", gjson.GetBytes(out, "result.content.0.text").String())
	assert.False(t, gjson.GetBytes(out, "result.isError").Bool())
}

func TestRegisterMCP_CallToolErrors(t *testing.T) {
	s := newTestMCPServer(t)

	tests := []struct {
		name     string
		msg      string
		contains string
	}{
		{
			name:     "handler error",
			msg:      `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"broken","arguments":{"val":"x"}}}`,
			contains: "handler_execution_error",
		},
		{
			name:     "invalid arguments",
			msg:      `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"echo","arguments":{"val":7}}}`,
			contains: "invalid_arguments",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := sendMCP(t, s, tc.msg)
			assert.True(t, gjson.GetBytes(out, "result.isError").Bool())
			assert.Contains(t, gjson.GetBytes(out, "result.content.0.text").String(), tc.contains)
		})
	}
}
