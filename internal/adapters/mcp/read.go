package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ggufcat/internal/application/commands"
	"ggufcat/internal/domain"
	"ggufcat/internal/ports"
)

// Services are the adapters the tools run against
type Services struct {
	Pipeline commands.Pipeline
	Options  commands.PipelineOptions
}

// RegisterReadTools adds the read-only catalog tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, svc Services) {
	s.AddTool(scanTool(svc.Options), scanHandler(svc))
	s.AddTool(readCatalogTool(), readCatalogHandler(svc))
}

// --- scan ---

func scanTool(opts commands.PipelineOptions) mcp.Tool {
	return mcp.NewTool("scan",
		mcp.WithDescription("Find .gguf model files under a directory and list their derived identifiers. Writes nothing."),
		mcp.WithString("root",
			mcp.Description(fmt.Sprintf("Directory to scan. Omit to use %s.", opts.ScanDir)),
		),
	)
}

func scanHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root, err := svc.Pipeline.Resolver.Resolve(req.GetString("root", ""), svc.Options.ScanDir, ports.RequireDir)
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewCollectCommand(svc.Pipeline.Scanner, root).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintln(&sb, result.Message)
		writeEntries(&sb, result.Catalog.Entries)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- read_catalog ---

func readCatalogTool() mcp.Tool {
	return mcp.NewTool("read_catalog",
		mcp.WithDescription("Load a GGUF catalog CSV and return the identifier to path mapping, plus any duplicate identifiers."),
		mcp.WithString("path",
			mcp.Description("Path to the catalog CSV (e.g. ~/.ollama/modelfiles/latest_GGUF_catalog.csv)"),
			mcp.Required(),
		),
	)
}

func readCatalogHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := req.GetString("path", "")
		if strings.TrimSpace(input) == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		path, err := svc.Pipeline.Resolver.Resolve(input, "", ports.RequireFile)
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewLoadCatalogCommand(svc.Pipeline.Store, path).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintln(&sb, result.Message)
		writeEntries(&sb, result.Index.Entries())
		if len(result.Conflicts) > 0 {
			sb.WriteString("\nDuplicates:\n")
			for _, c := range result.Conflicts {
				fmt.Fprintf(&sb, "%s\n", c)
				for _, p := range c.Discarded {
					fmt.Fprintf(&sb, "  discarded %s\n", p)
				}
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func writeEntries(sb *strings.Builder, entries []domain.Entry) {
	for _, e := range entries {
		fmt.Fprintf(sb, "%s  %s\n", e.Identifier, e.Path)
	}
}
