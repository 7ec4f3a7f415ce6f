package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/layerguard/layerguard/internal/adapters/outbound/locator"
	"github.com/layerguard/layerguard/internal/adapters/outbound/manifest"
	"github.com/layerguard/layerguard/internal/application"
)

// registerResources registers all Layerguard MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. layerguard://report - current violation report
	s.AddResource(
		mcplib.NewResource(
			"layerguard://report",
			"Boundary Report",
			mcplib.WithResourceDescription("Current boundary-check report for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath),
	)

	// 2. layerguard://rules - effective rule table
	s.AddResource(
		mcplib.NewResource(
			"layerguard://rules",
			"Rule Table",
			mcplib.WithResourceDescription("Effective layer rules after applying any config overlay"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(projectPath),
	)
}

func handleReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, registry, err := loadRegistry(projectPath)
		if err != nil {
			return nil, err
		}

		svc := application.NewCheckService(locator.New(), manifest.New(), nil)
		report, err := svc.Check(projectPath, registry, application.CheckOptions{
			ManifestPath: cfg.ManifestPath,
		})
		if err != nil {
			return nil, fmt.Errorf("check failed: %w", err)
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "layerguard://report",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleRulesResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		_, registry, err := loadRegistry(projectPath)
		if err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(registry.Snapshot(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling rules: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "layerguard://rules",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
