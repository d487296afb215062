package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mark3labs/listwiz/internal/command"
)

// fieldsArg carries the draft fields of a patch command.
const fieldsArg = "fields"

var readOnly = map[string]bool{
	"status":           true,
	"validate":         true,
	"search-locations": true,
	"preview":          true,
}

func (s *Server) tools() []server.ServerTool {
	cmds := command.All()
	out := make([]server.ServerTool, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, server.ServerTool{Tool: toolFor(cmd), Handler: s.handle(cmd)})
	}
	return out
}

func toolFor(cmd command.Command) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(cmd.Description)}
	if readOnly[cmd.Name] {
		opts = append(opts, mcp.WithReadOnlyHintAnnotation(true))
	}
	if cmd.IsPatch() {
		props := make(map[string]any, len(cmd.Fields))
		for _, f := range cmd.Fields {
			props[f.Name] = fieldSchema(f)
		}
		opts = append(opts, mcp.WithObject(fieldsArg,
			mcp.Required(),
			mcp.Description("Fields to merge into the draft. Omitted fields are left unchanged."),
			mcp.Properties(props),
		))
		return mcp.NewTool(cmd.Name, opts...)
	}
	for _, p := range cmd.Params {
		opts = append(opts, paramOption(p))
	}
	return mcp.NewTool(cmd.Name, opts...)
}

func paramOption(p command.Param) mcp.ToolOption {
	var props []mcp.PropertyOption
	if p.Required {
		props = append(props, mcp.Required())
	}
	if p.Description != "" {
		props = append(props, mcp.Description(p.Description))
	}
	switch p.Kind {
	case command.KindBoolean:
		return mcp.WithBoolean(p.Name, props...)
	case command.KindNumber, command.KindInteger:
		return mcp.WithNumber(p.Name, props...)
	case command.KindArray:
		props = append(props, mcp.Items(map[string]any{"type": "string"}))
		return mcp.WithArray(p.Name, props...)
	default:
		if len(p.Enum) > 0 {
			props = append(props, mcp.Enum(p.Enum...))
		}
		return mcp.WithString(p.Name, props...)
	}
}

// fieldSchema is the JSON schema of one patch field. Nullable fields accept
// null to clear the value.
func fieldSchema(p command.Param) map[string]any {
	schema := map[string]any{}
	if p.Nullable {
		schema["type"] = []string{string(p.Kind), "null"}
	} else {
		schema["type"] = string(p.Kind)
	}
	if p.Kind == command.KindArray {
		schema["items"] = map[string]any{"type": "string"}
	}
	if len(p.Enum) > 0 {
		schema["enum"] = p.Enum
	}
	if p.Description != "" {
		schema["description"] = p.Description
	}
	return schema
}

// handle runs cmd under the session lock. Command errors are tool errors, not
// protocol errors.
func (s *Server) handle(cmd command.Command) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw := request.GetArguments()
		if cmd.IsPatch() {
			fields, err := patchFields(raw)
			if err != nil {
				return mcp.NewToolResultError(cmd.Name + ": " + err.Error()), nil
			}
			raw = fields
		}

		s.mu.Lock()
		res, err := s.dispatcher.Dispatch(cmd.Name, raw)
		s.mu.Unlock()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		view, err := json.MarshalIndent(res.View, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding view: %v", err)), nil
		}
		return mcp.NewToolResultText(res.Message + "\n\n" + string(view)), nil
	}
}

func patchFields(raw map[string]any) (map[string]any, error) {
	for key := range raw {
		if key != fieldsArg {
			return nil, fmt.Errorf("unknown argument %q, put draft fields inside %q", key, fieldsArg)
		}
	}
	v, ok := raw[fieldsArg]
	if !ok {
		return nil, fmt.Errorf("missing %q", fieldsArg)
	}
	fields, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%q must be an object", fieldsArg)
	}
	return fields, nil
}
