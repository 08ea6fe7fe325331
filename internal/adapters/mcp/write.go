package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ggufcat/internal/adapters/prompt"
	"ggufcat/internal/application"
	"ggufcat/internal/application/commands"
)

// RegisterWriteTools adds the tools that write catalogs and Modelfiles.
func RegisterWriteTools(s *server.MCPServer, svc Services) {
	s.AddTool(generateTool(), generateHandler(svc))
}

// --- generate ---

func generateTool() mcp.Tool {
	return mcp.NewTool("generate",
		mcp.WithDescription("Run the full pipeline: scan for .gguf files, save latest_GGUF_catalog.csv and write one <identifier>.Modelfile per model."),
		mcp.WithString("scan_dir",
			mcp.Description("Directory to scan. Omit for the configured default."),
		),
		mcp.WithString("output_dir",
			mcp.Description("Directory for the catalog and Modelfiles. Omit for the configured default."),
		),
		mcp.WithString("catalog",
			mcp.Description("Generate from this catalog CSV instead of the freshly saved one."),
		),
		mcp.WithString("on_duplicate",
			mcp.Description("Duplicate identifier policy: last (default) or suffix."),
			mcp.Enum(string(application.DuplicateLastWins), string(application.DuplicateSuffix)),
		),
	)
}

func generateHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := svc.Options
		if name := req.GetString("on_duplicate", ""); name != "" {
			policy, ok := application.ParseDuplicatePolicy(name)
			if !ok {
				return toolError(application.ValidateDuplicatePolicy("on_duplicate", name))
			}
			opts.Policy = policy
		}

		answers := []string{req.GetString("scan_dir", ""), req.GetString("output_dir", "")}
		if catalog := req.GetString("catalog", ""); catalog != "" {
			answers = append(answers, "n", catalog)
		}

		p := svc.Pipeline
		p.Prompter = prompt.NewStaticPrompter(answers...)

		var out strings.Builder
		_, err := commands.NewRunPipelineCommand(p, opts, &out).Execute(ctx)
		if err != nil {
			out.WriteString("Error: ")
			out.WriteString(err.Error())
			return mcp.NewToolResultError(out.String()), nil
		}
		return mcp.NewToolResultText(out.String()), nil
	}
}
