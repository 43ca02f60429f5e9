package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// ExitCodeError carries a specific process exit status through cobra's error
// path. The gate uses it to keep numeric and integrity failures apart.
type ExitCodeError struct {
	Code   int
	Reason string
}

func (e *ExitCodeError) Error() string { return e.Reason }

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mulegate",
		Short: "Compliance scoring and gating for MuleSoft projects",
		Long: "Mulegate turns MuleSoft static-analysis findings into a weighted compliance score " +
			"and enforces it as a CI quality gate, with provenance tracking for degraded runs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newReviewCmd())
	cmd.AddCommand(newGateCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI and returns the process exit status.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var exitErr *ExitCodeError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}
