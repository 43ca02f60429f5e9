package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

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
	"github.com/mulegate/mulegate/internal/adapters/outbound/tui"
	"github.com/mulegate/mulegate/internal/application"
	"github.com/mulegate/mulegate/internal/domain"
	"github.com/spf13/cobra"
)

func newReviewCmd() *cobra.Command {
	var (
		jsonOutput     bool
		showViolations bool
		badge          bool
		ciMode         bool
		minScore       float64
		skipGate       bool
		requirePrimary bool
		noHistory      bool
		updateBaseline bool
		configPath     string
		reportPath     string
		logPath        string
		filter         string
		mode           string
		categories     []string
		excludes       []string
		outputPath     string
	)

	cmd := &cobra.Command{
		Use:   "review [path]",
		Short: "Score a MuleSoft project's compliance",
		Long: "Parse the analyzer's report (falling back to heuristic analysis when it is missing), " +
			"compute the weighted compliance score, and record the run. With --ci the gate is " +
			"evaluated immediately: exit 0 pass, 1 below threshold, 2 integrity failure.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			loader := config.New()
			if configPath != "" {
				loader = config.NewWithFile(configPath)
			}

			svc := newReviewService(absPath, excludes, loader)
			result, err := svc.ReviewProject(application.ReviewRequest{
				ProjectPath: absPath,
				ReportPath:  reportPath,
				LogPath:     logPath,
				Filter:      filter,
				Mode:        mode,
				Categories:  categories,
				SkipHistory: noHistory,
				PinBaseline: updateBaseline,
			})
			if err != nil {
				return fmt.Errorf("review failed: %w", err)
			}

			if outputPath != "" {
				if err := writeReportFile(outputPath, result.Report); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
			}

			switch {
			case jsonOutput:
				if err := renderJSON(cmd, result); err != nil {
					return err
				}
			case badge:
				return renderBadge(cmd, result.Report)
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(result.Report))
				if showViolations {
					fmt.Fprint(cmd.OutOrStdout(), tui.RenderViolations(result.Violations))
				}
			}

			if !ciMode {
				return nil
			}

			cfg, err := loader.Load(absPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			gateCfg := cfg.Gate
			if cmd.Flags().Changed("min") {
				gateCfg.Threshold = minScore
			}
			if skipGate {
				gateCfg.Skip = true
			}
			if requirePrimary {
				gateCfg.RequirePrimary = true
			}

			verdict := domain.EvaluateGate(result.Report, gateCfg)
			if !jsonOutput {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderVerdict(verdict))
			}
			if !verdict.Passed {
				return &ExitCodeError{Code: verdict.ExitCode(), Reason: verdict.Reason}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&showViolations, "violations", false, "List individual violations after the report")
	cmd.Flags().BoolVar(&badge, "badge", false, "Output shields.io badge URL")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: evaluate the gate and exit non-zero on failure")
	cmd.Flags().Float64Var(&minScore, "min", 0, "Gate threshold for CI mode (overrides config)")
	cmd.Flags().BoolVar(&skipGate, "skip-gate", false, "CI mode: disable enforcement but keep warnings")
	cmd.Flags().BoolVar(&requirePrimary, "require-primary", false, "CI mode: fail runs without consistent primary analysis")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in history")
	cmd.Flags().BoolVar(&updateBaseline, "update-baseline", false, "Pin this run's violation count as the new baseline")
	cmd.Flags().StringVar(&configPath, "config", "", "Explicit config file (default: <path>/.mulegate.yaml)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Analyzer report XML (default: target/pmd-report.xml)")
	cmd.Flags().StringVar(&logPath, "log", "", "Analyzer process log for the consistency audit")
	cmd.Flags().StringVar(&filter, "filter", "", "Severity filter (all, high, medium+, low+)")
	cmd.Flags().StringVar(&mode, "mode", "", "Analysis mode (comprehensive, security, performance, custom)")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Categories for custom mode")
	cmd.Flags().StringSliceVar(&excludes, "exclude", nil, "Extra directories to exclude from the scan")
	cmd.Flags().StringVar(&outputPath, "output", "", "Also write the report JSON to this path")

	return cmd
}

func newReviewService(projectPath string, excludes []string, loader domain.ConfigLoader) *application.ReviewService {
	return application.NewReviewService(
		scanner.New(excludes...),
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
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderBadge(cmd *cobra.Command, report *domain.ComplianceReport) error {
	color := domain.BadgeColor(report.CompliancePercentage)
	url := fmt.Sprintf("https://img.shields.io/badge/compliance-%.1f%%25-%s",
		report.CompliancePercentage, color)
	fmt.Fprintln(cmd.OutOrStdout(), url)
	return nil
}

func writeReportFile(path string, report *domain.ComplianceReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
