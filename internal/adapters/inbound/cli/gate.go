package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mulegate/mulegate/internal/adapters/outbound/artifact"
	"github.com/mulegate/mulegate/internal/adapters/outbound/config"
	"github.com/mulegate/mulegate/internal/adapters/outbound/tui"
	"github.com/mulegate/mulegate/internal/application"
	"github.com/mulegate/mulegate/internal/domain"
	"github.com/spf13/cobra"
)

func newGateCmd() *cobra.Command {
	var (
		jsonOutput     bool
		artifactPath   string
		threshold      float64
		skip           bool
		requirePrimary bool
	)

	cmd := &cobra.Command{
		Use:   "gate [path]",
		Short: "Judge the last review against the compliance threshold",
		Long: "Recover the score from a report artifact and pass or fail the run. " +
			"Exit codes: 0 pass, 1 below threshold, 2 integrity failure.",
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

			req := application.GateRequest{
				ProjectPath:  absPath,
				ArtifactPath: artifactPath,
			}
			if req.ArtifactPath == "" {
				req.ArtifactPath = artifact.PathIn(absPath)
			}
			if cmd.Flags().Changed("threshold") {
				req.Threshold = &threshold
			}
			if cmd.Flags().Changed("skip") {
				req.Skip = &skip
			}
			if cmd.Flags().Changed("require-primary") {
				req.RequirePrimary = &requirePrimary
			}

			result, err := application.NewGateService(config.New()).EvaluateGate(req)
			if err != nil {
				// An unrecoverable score must not read as a mere numeric
				// shortfall.
				if domain.IsExtractionFailed(err) {
					return &ExitCodeError{Code: domain.GateExitIntegrity, Reason: err.Error()}
				}
				return fmt.Errorf("gate failed: %w", err)
			}

			if jsonOutput {
				if err := renderJSON(cmd, result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderVerdict(result.Verdict))
			}

			if !result.Verdict.Passed {
				return &ExitCodeError{Code: result.Verdict.ExitCode(), Reason: result.Verdict.Reason}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the verdict as JSON")
	cmd.Flags().StringVar(&artifactPath, "artifact", "", "Report artifact to judge (default: .mulegate/report.json)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Override the configured threshold")
	cmd.Flags().BoolVar(&skip, "skip", false, "Skip enforcement; always pass")
	cmd.Flags().BoolVar(&requirePrimary, "require-primary", false, "Fail runs whose numbers did not come from a consistent primary analysis")

	return cmd
}
