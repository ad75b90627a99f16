package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/govlens/docpipe"
)

// RegisterMCP registers the analysis tools on an MCP server.
func (p *Pipeline) RegisterMCP(srv *mcp.Server) {
	p.registerAnalyzeTool(srv)
	p.registerParseTool(srv)
	p.registerSectionsTool(srv)
	p.registerFormatsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// addTool wraps an endpoint with argument decoding and JSON text
// results. Endpoint errors surface as tool errors, not protocol ones.
func addTool(srv *mcp.Server, tool *mcp.Tool, endpoint func(context.Context, json.RawMessage) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := endpoint(ctx, req.Params.Arguments)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(errors.New(err.Error()))
			return &res, nil
		}
		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

// --- analyze ---

type analyzeReq struct {
	Path  string `json:"path"`
	Title string `json:"title,omitempty"`
}

func (p *Pipeline) registerAnalyzeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "govlens_analyze",
		Description: "Run the full governance analysis on a plan document: sections, template mappings, policy gaps, risk report and assembled plan draft.",
		InputSchema: inputSchema(map[string]any{
			"path":  map[string]any{"type": "string", "description": "Plan document to analyze"},
			"title": map[string]any{"type": "string", "description": "Plan title (defaults to the document title)"},
		}, []string{"path"}),
	}

	addTool(srv, tool, func(ctx context.Context, args json.RawMessage) (any, error) {
		var r analyzeReq
		if err := json.Unmarshal(args, &r); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		return p.Run(ctx, r.Path, r.Title)
	})
}

// --- parse ---

type parseReq struct {
	Path string `json:"path"`
}

func (p *Pipeline) registerParseTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "govlens_parse",
		Description: "Extract structured content from a plan document (pdf, docx, md, txt, html, xlsx, csv).",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "File path to parse"},
		}, []string{"path"}),
	}

	addTool(srv, tool, func(ctx context.Context, args json.RawMessage) (any, error) {
		var r parseReq
		if err := json.Unmarshal(args, &r); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		return p.Parse(ctx, r.Path)
	})
}

// --- sections ---

func (p *Pipeline) registerSectionsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "govlens_sections",
		Description: "Parse a plan document and return its detected sections.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "File path to parse"},
		}, []string{"path"}),
	}

	addTool(srv, tool, func(ctx context.Context, args json.RawMessage) (any, error) {
		var r parseReq
		if err := json.Unmarshal(args, &r); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		sections, err := p.Sections(ctx, r.Path)
		if err != nil {
			return nil, err
		}
		return map[string]any{"sections": sections}, nil
	})
}

// --- formats ---

func (p *Pipeline) registerFormatsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "govlens_formats",
		Description: "List all supported document formats.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	addTool(srv, tool, func(_ context.Context, _ json.RawMessage) (any, error) {
		return map[string]any{"formats": docpipe.SupportedFormats()}, nil
	})
}
