package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mulegate/mulegate/internal/domain"
)

var (
	passBannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(success).
			Padding(0, 4).
			Bold(true).
			Foreground(success)

	failBannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(0, 4).
			Bold(true).
			Foreground(danger)
)

// RenderVerdict renders a gate decision as a styled TUI string.
func RenderVerdict(verdict domain.GateVerdict) string {
	var b strings.Builder

	banner := failBannerStyle.Render("GATE FAILED")
	if verdict.Passed {
		banner = passBannerStyle.Render("GATE PASSED")
	}
	b.WriteString(banner)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %s %s\n",
		titleStyle.Render(padRight("Score", 12)),
		lipgloss.NewStyle().Foreground(scoreColor(verdict.Score)).Render(fmt.Sprintf("%.1f%%", verdict.Score)))
	fmt.Fprintf(&b, "  %s %s\n",
		titleStyle.Render(padRight("Threshold", 12)),
		dimStyle.Render(fmt.Sprintf("%.1f%%", verdict.Threshold)))
	fmt.Fprintf(&b, "  %s %s\n",
		titleStyle.Render(padRight("Reason", 12)),
		dimStyle.Render(verdict.Reason))

	if verdict.FailureKind == domain.FailureIntegrity {
		fmt.Fprintf(&b, "  %s %s\n",
			titleStyle.Render(padRight("Failure", 12)),
			failStyle.Render("integrity"))
	}

	if len(verdict.Warnings) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n",
			titleStyle.Render("Warnings"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(verdict.Warnings))))
		for _, w := range verdict.Warnings {
			fmt.Fprintf(&b, "    %s %s\n", warnStyle.Render("●"), dimStyle.Render(w))
		}
	}

	b.WriteString("\n")
	return b.String()
}
