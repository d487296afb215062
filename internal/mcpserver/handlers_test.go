package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/listwiz/internal/command"
	"github.com/mark3labs/listwiz/internal/session"
	"github.com/mark3labs/listwiz/internal/wizard"
)

func setupTestServer(t *testing.T, strict bool) *Server {
	t.Helper()
	store := session.New(session.Options{StrictValidation: strict})
	ctl := wizard.New(store)
	t.Cleanup(func() {
		ctl.Close()
		store.Close()
	})
	return New(command.NewDispatcher(ctl, 0))
}

// extractText extracts text from CallToolResult.Content[0]
func extractText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

func toolByName(t *testing.T, srv *Server, name string) server.ServerTool {
	t.Helper()
	for _, tool := range srv.tools() {
		if tool.Tool.Name == name {
			return tool
		}
	}
	t.Fatalf("no tool %q", name)
	return server.ServerTool{}
}

func call(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	result, err := toolByName(t, srv, name).Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestToolsCoverEveryCommand(t *testing.T) {
	srv := setupTestServer(t, true)
	tools := srv.tools()
	require.Len(t, tools, len(command.All()))

	for _, tool := range tools {
		cmd, ok := command.Lookup(tool.Tool.Name)
		require.True(t, ok, tool.Tool.Name)
		assert.Equal(t, cmd.Description, tool.Tool.Description)
		if cmd.IsPatch() {
			assert.Equal(t, []string{fieldsArg}, tool.Tool.InputSchema.Required, cmd.Name)
		}
	}
}

func TestToolSchemas(t *testing.T) {
	srv := setupTestServer(t, true)

	t.Run("goto step is a required enum", func(t *testing.T) {
		schema := toolByName(t, srv, "goto").Tool.InputSchema
		assert.Equal(t, []string{"step"}, schema.Required)
		step := schema.Properties["step"].(map[string]any)
		assert.Equal(t, "string", step["type"])
		assert.Contains(t, step["enum"], "gallery")
	})

	t.Run("patch fields carry nullable types", func(t *testing.T) {
		schema := toolByName(t, srv, "pricing").Tool.InputSchema
		fields := schema.Properties[fieldsArg].(map[string]any)
		props := fields["properties"].(map[string]any)
		price := props["sellingPrice"].(map[string]any)
		assert.Equal(t, []string{"number", "null"}, price["type"])
		priceType := props["priceType"].(map[string]any)
		assert.Equal(t, "string", priceType["type"])
		assert.Contains(t, priceType["enum"], "negotiable")
	})

	t.Run("upload paths are a string array", func(t *testing.T) {
		schema := toolByName(t, srv, "upload").Tool.InputSchema
		paths := schema.Properties["paths"].(map[string]any)
		assert.Equal(t, "array", paths["type"])
		assert.Equal(t, map[string]any{"type": "string"}, paths["items"])
	})
}

func TestHandleStatus(t *testing.T) {
	srv := setupTestServer(t, false)
	result := call(t, srv, "status", nil)
	assert.False(t, result.IsError)

	text := extractText(result)
	msg, viewJSON, ok := strings.Cut(text, "\n\n")
	require.True(t, ok)
	assert.Equal(t, "Step 1/6: Listing Type (in-progress), validation bypassed", msg)

	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(viewJSON), &view))
	assert.Equal(t, "listingType", view["step"])
	assert.Equal(t, true, view["bypass"])
}

func TestHandlePatchCommand(t *testing.T) {
	srv := setupTestServer(t, true)

	t.Run("fields are merged", func(t *testing.T) {
		result := call(t, srv, "listing-type", map[string]any{
			fieldsArg: map[string]any{"propertyCategory": "residential", "listingPurpose": "rent"},
		})
		assert.False(t, result.IsError, extractText(result))
		draft := srv.dispatcher.Controller().Store().Draft()
		assert.Equal(t, "residential", string(draft.PropertyCategory))
		assert.Equal(t, "rent", string(draft.ListingPurpose))
	})

	t.Run("json numbers arrive as float64", func(t *testing.T) {
		result := call(t, srv, "unit-details", map[string]any{
			fieldsArg: map[string]any{"bedrooms": float64(3), "builtUp": float64(1250)},
		})
		assert.False(t, result.IsError, extractText(result))
		assert.Equal(t, 3, *srv.dispatcher.Controller().Store().Draft().UnitDetails.Bedrooms)
	})

	t.Run("missing fields object is a tool error", func(t *testing.T) {
		result := call(t, srv, "pricing", map[string]any{"sellingPrice": float64(10)})
		assert.True(t, result.IsError)
		assert.Contains(t, extractText(result), "fields")
	})

	t.Run("fields must be an object", func(t *testing.T) {
		result := call(t, srv, "pricing", map[string]any{fieldsArg: "sellingPrice=10"})
		assert.True(t, result.IsError)
	})
}

func TestHandleErrorsLeaveSessionUntouched(t *testing.T) {
	srv := setupTestServer(t, true)
	before := srv.dispatcher.Controller().Store().State()

	result := call(t, srv, "pricing", map[string]any{
		fieldsArg: map[string]any{"sellingPrice": "a lot"},
	})
	assert.True(t, result.IsError)
	assert.Contains(t, extractText(result), "sellingPrice")

	result = call(t, srv, "goto", map[string]any{"step": "nowhere"})
	assert.True(t, result.IsError)

	assert.Equal(t, before, srv.dispatcher.Controller().Store().State())
}

func TestHandleNextBlocksInStrictMode(t *testing.T) {
	srv := setupTestServer(t, true)
	result := call(t, srv, "next", nil)
	assert.False(t, result.IsError)
	assert.Contains(t, extractText(result), "Listing Type is blocked")
}

func TestHTTPLifecycle(t *testing.T) {
	srv := setupTestServer(t, false)
	port, err := srv.Start(context.Background())
	require.NoError(t, err)
	require.NotZero(t, port)
	t.Cleanup(func() { _ = srv.Stop() })

	_, err = srv.Start(context.Background())
	assert.Error(t, err, "second start")

	body := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"status","arguments":{}}}`)
	req, err := http.NewRequest(http.MethodPost, srv.URL(), bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Step 1/6: Listing Type")

	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop())
}
