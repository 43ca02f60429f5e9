package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/mulegate/mulegate/internal/adapters/outbound/artifact"
	"github.com/mulegate/mulegate/internal/adapters/outbound/history"
	"github.com/mulegate/mulegate/internal/domain"
)

// registerResources registers all mulegate MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. mulegate://config/default - built-in configuration defaults
	s.AddResource(
		mcplib.NewResource(
			"mulegate://config/default",
			"Default Configuration",
			mcplib.WithResourceDescription("Built-in scoring weights, severity weights, and gate settings as YAML"),
			mcplib.WithMIMEType("application/yaml"),
		),
		handleDefaultConfigResource(),
	)

	// 2. mulegate://report/latest - last persisted report artifact
	s.AddResource(
		mcplib.NewResource(
			"mulegate://report/latest",
			"Latest Report",
			mcplib.WithResourceDescription("The most recently persisted compliance report artifact"),
			mcplib.WithMIMEType("application/json"),
		),
		handleLatestReportResource(projectPath),
	)

	// 3. mulegate://history - recorded review runs
	s.AddResource(
		mcplib.NewResource(
			"mulegate://history",
			"Review History",
			mcplib.WithResourceDescription("Recorded review runs for the project, oldest first"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath),
	)

	// 4. mulegate://rules/{id} - rule explanation (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"mulegate://rules/{id}",
			"Rule Explanation",
			mcplib.WithTemplateDescription("Category, description, and suggested fix for an analyzer rule"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleRuleResource(),
	)
}

func handleDefaultConfigResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg := domain.DefaultConfig()
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "mulegate://config/default",
				MIMEType: "application/yaml",
				Text:     string(data),
			},
		}, nil
	}
}

func handleLatestReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := os.ReadFile(artifact.PathIn(projectPath))
		if err != nil {
			return nil, fmt.Errorf("no report artifact found, run a review first: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "mulegate://report/latest",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleHistoryResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := history.New(projectPath).Load()
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}

		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling history: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "mulegate://history",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleRuleResource() server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		// Extract rule id from the arguments (populated by template matching)
		ruleID, ok := request.Params.Arguments["id"].(string)
		if !ok || ruleID == "" {
			return nil, fmt.Errorf("rule id is required")
		}

		data, err := json.MarshalIndent(ruleExplanation(ruleID), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling explanation: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
