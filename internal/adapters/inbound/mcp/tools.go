package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	configAdapter "github.com/layerguard/layerguard/internal/adapters/outbound/config"
	"github.com/layerguard/layerguard/internal/adapters/outbound/locator"
	"github.com/layerguard/layerguard/internal/adapters/outbound/manifest"
	"github.com/layerguard/layerguard/internal/application"
	"github.com/layerguard/layerguard/internal/domain"
)

// registerTools registers all Layerguard MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. layerguard_check
	s.AddTool(
		mcplib.NewTool("layerguard_check",
			mcplib.WithDescription("Run the boundary check and return the violation report as JSON"),
			mcplib.WithString("profile",
				mcplib.Description("Strictness profile: full or simple (default: from config)"),
			),
		),
		handleCheck(projectPath),
	)

	// 2. layerguard_rules
	s.AddTool(
		mcplib.NewTool("layerguard_rules",
			mcplib.WithDescription("Return the effective layer rule table as JSON"),
		),
		handleRules(projectPath),
	)
}

// loadRegistry resolves the project's effective configuration and registry.
func loadRegistry(projectPath string) (domain.ProjectConfig, *domain.Registry, error) {
	cfg, err := configAdapter.New().Load(projectPath)
	if err != nil {
		return domain.ProjectConfig{}, nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, domain.BuildRegistry(cfg), nil
}

func handleCheck(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, registry, err := loadRegistry(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		if profile := request.GetString("profile", ""); profile != "" {
			cfg.Profile = domain.Profile(profile)
			if err := domain.ValidateProfile(cfg.Profile); err != nil {
				return errorResult(err.Error()), nil
			}
			registry = domain.BuildRegistry(cfg)
		}

		svc := application.NewCheckService(locator.New(), manifest.New(), nil)
		report, err := svc.Check(projectPath, registry, application.CheckOptions{
			ManifestPath: cfg.ManifestPath,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}

		return jsonResult(struct {
			Clean      bool               `json:"clean"`
			ExitCode   int                `json:"exit_code"`
			Violations []domain.Violation `json:"violations"`
		}{
			Clean:      report.IsClean(),
			ExitCode:   report.ExitCode(),
			Violations: report.Violations,
		})
	}
}

func handleRules(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		_, registry, err := loadRegistry(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(registry.Snapshot())
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
