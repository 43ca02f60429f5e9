package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mulegate/mulegate/internal/adapters/outbound/artifact"
	"github.com/mulegate/mulegate/internal/adapters/outbound/baseline"
	"github.com/mulegate/mulegate/internal/adapters/outbound/config"
	"github.com/mulegate/mulegate/internal/adapters/outbound/detector"
	"github.com/mulegate/mulegate/internal/adapters/outbound/gitinfo"
	"github.com/mulegate/mulegate/internal/adapters/outbound/heuristic"
	"github.com/mulegate/mulegate/internal/adapters/outbound/history"
	"github.com/mulegate/mulegate/internal/adapters/outbound/pmdreport"
	"github.com/mulegate/mulegate/internal/adapters/outbound/proclog"
	"github.com/mulegate/mulegate/internal/adapters/outbound/scanner"
	"github.com/mulegate/mulegate/internal/application"
	"github.com/mulegate/mulegate/internal/domain"
	"github.com/mulegate/mulegate/internal/domain/rules"
)

// registerTools registers all mulegate MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. mulegate_review_project
	s.AddTool(
		mcplib.NewTool("mulegate_review_project",
			mcplib.WithDescription("Review the project and return the full compliance report as JSON"),
			mcplib.WithString("filter", mcplib.Description("Severity filter: all, high, medium+, low+")),
			mcplib.WithString("mode", mcplib.Description("Analysis mode: comprehensive, security, performance")),
			mcplib.WithString("report", mcplib.Description("Analyzer report XML path (default: target/pmd-report.xml)")),
			mcplib.WithString("log", mcplib.Description("Analyzer process log path for the consistency audit")),
		),
		handleReviewProject(projectPath),
	)

	// 2. mulegate_evaluate_gate
	s.AddTool(
		mcplib.NewTool("mulegate_evaluate_gate",
			mcplib.WithDescription("Judge a report artifact against the compliance threshold and return the verdict"),
			mcplib.WithString("artifact", mcplib.Description("Report artifact path (default: .mulegate/report.json)")),
			mcplib.WithNumber("threshold", mcplib.Description("Threshold override, 0-100")),
			mcplib.WithBoolean("require_primary", mcplib.Description("Fail runs without consistent primary analysis")),
			mcplib.WithBoolean("skip", mcplib.Description("Disable enforcement but keep warnings")),
		),
		handleEvaluateGate(projectPath),
	)

	// 3. mulegate_extract_score
	s.AddTool(
		mcplib.NewTool("mulegate_extract_score",
			mcplib.WithDescription("Recover score and violation total from a report artifact, with the strategy that produced each"),
			mcplib.WithString("artifact", mcplib.Description("Report artifact path (default: .mulegate/report.json)")),
		),
		handleExtractScore(projectPath),
	)

	// 4. mulegate_explain_rule
	s.AddTool(
		mcplib.NewTool("mulegate_explain_rule",
			mcplib.WithDescription("Explain an analyzer rule: category, description, and suggested fix"),
			mcplib.WithString("rule",
				mcplib.Required(),
				mcplib.Description("Rule id as reported by the analyzer, e.g. AvoidLoggingPayload"),
			),
		),
		handleExplainRule(),
	)

	// 5. mulegate_compliance_status
	s.AddTool(
		mcplib.NewTool("mulegate_compliance_status",
			mcplib.WithDescription("Map a compliance percentage to its status tier and recommendations"),
			mcplib.WithNumber("score",
				mcplib.Required(),
				mcplib.Description("Compliance percentage, 0-100"),
			),
		),
		handleComplianceStatus(),
	)
}

// newServices creates the standard set of outbound adapters and services.
func newServices(projectPath string) (*application.ReviewService, *application.GateService) {
	loader := config.New()
	review := application.NewReviewService(
		scanner.New(),
		detector.New(),
		pmdreport.New(projectPath),
		proclog.New(),
		heuristic.New(),
		loader,
		history.New(projectPath),
		baseline.New(projectPath),
		artifact.New(projectPath),
		gitinfo.New(),
	)
	return review, application.NewGateService(loader)
}

func handleReviewProject(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		req := application.ReviewRequest{ProjectPath: projectPath}
		if v, ok := args["filter"].(string); ok {
			req.Filter = v
		}
		if v, ok := args["mode"].(string); ok {
			req.Mode = v
		}
		if v, ok := args["report"].(string); ok {
			req.ReportPath = v
		}
		if v, ok := args["log"].(string); ok {
			req.LogPath = v
		}

		reviewSvc, _ := newServices(projectPath)
		result, err := reviewSvc.ReviewProject(req)
		if err != nil {
			return errorResult(fmt.Sprintf("review failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleEvaluateGate(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		req := application.GateRequest{
			ProjectPath:  projectPath,
			ArtifactPath: artifact.PathIn(projectPath),
		}
		if v, ok := args["artifact"].(string); ok && v != "" {
			req.ArtifactPath = v
		}
		if v, ok := args["threshold"].(float64); ok {
			req.Threshold = &v
		}
		if v, ok := args["require_primary"].(bool); ok {
			req.RequirePrimary = &v
		}
		if v, ok := args["skip"].(bool); ok {
			req.Skip = &v
		}

		_, gateSvc := newServices(projectPath)
		result, err := gateSvc.EvaluateGate(req)
		if err != nil {
			return errorResult(fmt.Sprintf("gate failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleExtractScore(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		req := application.GateRequest{
			ProjectPath:  projectPath,
			ArtifactPath: artifact.PathIn(projectPath),
		}
		if v, ok := request.GetArguments()["artifact"].(string); ok && v != "" {
			req.ArtifactPath = v
		}

		_, gateSvc := newServices(projectPath)
		ext, err := gateSvc.Extract(req)
		if err != nil {
			return errorResult(fmt.Sprintf("extraction failed: %v", err)), nil
		}
		return jsonResult(ext)
	}
}

func handleExplainRule() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ruleID, err := request.RequireString("rule")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(ruleExplanation(ruleID))
	}
}

func handleComplianceStatus() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		score, ok := request.GetArguments()["score"].(float64)
		if !ok {
			return errorResult("score is required"), nil
		}
		if score < 0 || score > 100 {
			return errorResult(fmt.Sprintf("score must be between 0 and 100 (got %.1f)", score)), nil
		}

		report := domain.ComplianceReport{CompliancePercentage: score}
		out := struct {
			Score           float64  `json:"score"`
			Status          string   `json:"status"`
			BadgeColor      string   `json:"badge_color"`
			Recommendations []string `json:"recommendations"`
		}{
			Score:           score,
			Status:          domain.StatusFor(score),
			BadgeColor:      domain.BadgeColor(score),
			Recommendations: report.Recommendations(),
		}
		return jsonResult(out)
	}
}

type explanation struct {
	Rule         string `json:"rule"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	SuggestedFix string `json:"suggested_fix"`
}

func ruleExplanation(ruleID string) explanation {
	return explanation{
		Rule:         ruleID,
		Category:     rules.Categorize(ruleID),
		Description:  rules.Describe(ruleID),
		SuggestedFix: rules.SuggestFix(ruleID),
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
