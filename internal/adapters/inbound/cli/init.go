package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mulegate/mulegate/internal/domain"
	"github.com/spf13/cobra"
)

const configFileName = ".mulegate.yaml"

func newInitCmd() *cobra.Command {
	var (
		threshold float64
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .mulegate.yaml configuration file",
		Long:  "Create a .mulegate.yaml with the standard scoring weights and gate settings.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, configFileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
				}
			}

			if threshold < 0 || threshold > 100 {
				return fmt.Errorf("threshold must be between 0 and 100 (got %.1f)", threshold)
			}

			if err := os.WriteFile(dest, []byte(generateConfig(threshold)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", domain.DefaultConfig().Gate.Threshold, "Gate threshold to write")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .mulegate.yaml")

	return cmd
}

func generateConfig(threshold float64) string {
	cfg := domain.DefaultConfig()

	return fmt.Sprintf(`# mulegate configuration

scoring:
  file_weight: %.0f
  severity_weight: %.0f

severity_weights:
  high: %.0f
  medium: %.0f
  low: %.0f
  info: %.0f

minimum_score: %.0f

gate:
  threshold: %.0f
  skip: false
  require_primary: false

filter: %s
mode: %s

# custom_categories:
#   - Security
#   - Error Handling
`,
		cfg.Scoring.FileWeight, cfg.Scoring.SeverityWeight,
		cfg.Severity.High, cfg.Severity.Medium, cfg.Severity.Low, cfg.Severity.Info,
		cfg.MinimumScore,
		threshold,
		cfg.Filter, cfg.Mode,
	)
}
