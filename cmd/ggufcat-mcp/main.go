package main

import (
	"context"
	"flag"
	stdlog "log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ggufcat/internal/adapters/csvstore"
	"ggufcat/internal/adapters/filesystem"
	mcpadapter "ggufcat/internal/adapters/mcp"
	"ggufcat/internal/adapters/sqlite"
	"ggufcat/internal/application/commands"
	"ggufcat/internal/config"
	"ggufcat/internal/logging"
)

func main() {
	configFlag := flag.String("config", "", "config file (default .ggufcat.yaml in the working or home directory)")
	flag.Parse()

	if _, err := config.LoadEnvFiles(config.EnvFiles...); err != nil {
		stdlog.Fatalf("ggufcat-mcp: %v", err)
	}
	cfg, err := config.Load(config.New(), *configFlag)
	if err != nil {
		stdlog.Fatalf("ggufcat-mcp: %v", err)
	}

	// stdout carries the protocol
	log := logging.NewLoggerFromConfig(&logging.Config{
		Level:  cfg.EffectiveLogLevel(),
		Format: "json",
		Output: "stderr",
	})

	svc := mcpadapter.Services{
		Pipeline: commands.Pipeline{
			Resolver: filesystem.NewResolver(),
			Scanner:  filesystem.NewScanner(log),
			Store:    csvstore.NewStore(),
			Writer:   filesystem.NewStubWriter(),
			Log:      log,
		},
		Options: commands.PipelineOptions{
			ScanDir:   cfg.ScanDir,
			OutputDir: cfg.OutputDir,
			Defaults:  cfg.ModelfileDefaults,
			Policy:    cfg.DuplicatePolicy,
		},
	}

	if cfg.HistoryEnabled {
		history := sqlite.NewHistory()
		if err := history.Open(cfg.HistoryPath); err != nil {
			log.Warn().Err(err).Str("path", cfg.HistoryPath).Msg("Run history disabled")
		} else {
			defer history.Close()
			svc.Pipeline.History = history
		}
	}

	mcpServer := server.NewMCPServer(
		"ggufcat-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, svc)
	mcpadapter.RegisterWriteTools(mcpServer, svc)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Error().Err(err).Msg("ggufcat-mcp stopped")
		stdlog.Fatalf("ggufcat-mcp: %v", err)
	}
}
