package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mulegate/mulegate/internal/domain"
)

// ── Warm terminal palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	highTagStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	medTagStyle   = lipgloss.NewStyle().Foreground(warning).Bold(true)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport renders a compliance report as a styled TUI string.
func RenderReport(report *domain.ComplianceReport) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("mulegate")
	subtitle := dimStyle.Render("Compliance Report")
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(scoreColor(report.CompliancePercentage)).
		Render(fmt.Sprintf("%.1f%%", report.CompliancePercentage))
	statusStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(scoreColor(report.CompliancePercentage)).
		Render(report.Status)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + statusStyled))
	b.WriteString("\n\n")

	// ── Run summary ──
	clean := report.FilesScanned - report.FilesWithViolations
	fmt.Fprintf(&b, "  %s %s\n",
		titleStyle.Render(padRight("Files", 14)),
		dimStyle.Render(fmt.Sprintf("%d scanned, %d clean", report.FilesScanned, clean)))
	fmt.Fprintf(&b, "  %s %s\n",
		titleStyle.Render(padRight("Violations", 14)),
		dimStyle.Render(fmt.Sprintf("%d total", report.TotalViolations)))
	fmt.Fprintf(&b, "  %s %s\n",
		titleStyle.Render(padRight("Method", 14)),
		methodTag(report.AnalysisMethod))

	meta := metaLine(report)
	if meta != "" {
		fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render(padRight("Run", 14)), faintStyle.Render(meta))
	}

	// ── Severity breakdown ──
	b.WriteString("\n")
	renderSeverityBars(&b, report)

	// ── Categories ──
	if len(report.CategoryCounts) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + titleStyle.Render("Categories") + "\n")
		for _, cat := range sortedCategories(report.CategoryCounts) {
			fmt.Fprintf(&b, "    %s %s %s\n",
				dimStyle.Render("●"),
				padRight(cat, 24),
				dimStyle.Render(fmt.Sprintf("%d", report.CategoryCounts[cat])))
		}
	}

	// ── Warnings ──
	if len(report.Warnings) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n",
			titleStyle.Render("Warnings"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(report.Warnings))))
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "    %s %s\n", warnStyle.Render("●"), dimStyle.Render(w))
		}
	}

	// ── Recommendations ──
	b.WriteString("\n")
	b.WriteString("  " + separatorLine + "\n\n")
	b.WriteString("  " + titleStyle.Render("Recommendations") + "\n")
	for _, rec := range report.Recommendations() {
		fmt.Fprintf(&b, "    %s %s\n", passStyle.Render("→"), dimStyle.Render(rec))
	}

	b.WriteString("\n")
	return b.String()
}

// RenderViolations lists individual findings, worst first.
func RenderViolations(violations []domain.ViolationRecord) string {
	if len(violations) == 0 {
		return "  " + passStyle.Render("No violations found.") + "\n"
	}

	sorted := make([]domain.ViolationRecord, len(violations))
	copy(sorted, violations)
	order := map[domain.Severity]int{
		domain.SeverityHigh:   0,
		domain.SeverityMedium: 1,
		domain.SeverityLow:    2,
		domain.SeverityInfo:   3,
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return order[sorted[i].Severity] < order[sorted[j].Severity]
	})

	var b strings.Builder
	for _, v := range sorted {
		fmt.Fprintf(&b, "    %s %s\n", severityTag(v.Severity),
			fileStyle.Render(fmt.Sprintf("%s:%d", v.FilePath, v.Line)))
		fmt.Fprintf(&b, "         %s %s\n",
			titleStyle.Render(v.RuleID),
			dimStyle.Render(v.Message))
	}
	return b.String()
}

// RenderHistory formats past run summaries for terminal output.
func RenderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(e.Score)).
			Render(fmt.Sprintf("%5.1f%%", e.Score))

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(e.Timestamp.Format("2006-01-02")),
			faintStyle.Render(hash),
			scoreStyled,
			methodTag(e.Method),
		)

		if i > 0 {
			diff := e.Score - entries[i-1].Score
			if diff > 0.05 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%.1f", diff))
			} else if diff < -0.05 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%.1f", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func renderSeverityBars(b *strings.Builder, report *domain.ComplianceReport) {
	maxCount := 0
	for _, sev := range domain.Severities() {
		if n := report.ViolationsBySeverity[sev]; n > maxCount {
			maxCount = n
		}
	}
	if maxCount == 0 {
		b.WriteString("  " + passStyle.Render("No violations in any severity tier.") + "\n")
		return
	}

	for _, sev := range domain.Severities() {
		count := report.ViolationsBySeverity[sev]
		width := count * 20 / maxCount
		bar := lipgloss.NewStyle().Foreground(severityColor(sev)).Render(strings.Repeat("█", width)) +
			faintStyle.Render(strings.Repeat("░", 20-width))
		fmt.Fprintf(b, "  %s %s %s\n",
			severityTag(sev),
			bar,
			dimStyle.Render(fmt.Sprintf("%d", count)))
	}
}

func metaLine(report *domain.ComplianceReport) string {
	var parts []string
	if report.ProjectKind != "" {
		parts = append(parts, report.ProjectKind)
	}
	if report.CommitHash != "" {
		hash := report.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		parts = append(parts, "commit "+hash)
	}
	if report.Filter != "" && report.Filter != domain.FilterAll {
		parts = append(parts, "filter "+report.Filter)
	}
	if report.Mode != "" && report.Mode != domain.ModeComprehensive {
		parts = append(parts, "mode "+report.Mode)
	}
	return strings.Join(parts, "  ")
}

func methodTag(method domain.AnalysisMethod) string {
	switch method {
	case domain.MethodPrimary:
		return passStyle.Render(string(method))
	case domain.MethodPrimaryInconsistent:
		return warnStyle.Render(string(method))
	case domain.MethodFallback:
		return failStyle.Render(string(method))
	default:
		return dimStyle.Render(string(method))
	}
}

func severityTag(sev domain.Severity) string {
	switch sev {
	case domain.SeverityHigh:
		return highTagStyle.Render("HIGH  ")
	case domain.SeverityMedium:
		return medTagStyle.Render("MEDIUM")
	case domain.SeverityLow:
		return infoTagStyle.Render("LOW   ")
	default:
		return faintStyle.Render("INFO  ")
	}
}

func severityColor(sev domain.Severity) lipgloss.Color {
	switch sev {
	case domain.SeverityHigh:
		return danger
	case domain.SeverityMedium:
		return warning
	case domain.SeverityLow:
		return info
	default:
		return faint
	}
}

func scoreColor(score float64) lipgloss.Color {
	switch {
	case score >= 90:
		return success
	case score >= 80:
		return lipgloss.Color("#A3E635") // lime
	case score >= 70:
		return warning
	case score >= 60:
		return lipgloss.Color("#FB923C") // orange
	default:
		return danger
	}
}

func sortedCategories(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for cat := range counts {
		out = append(out, cat)
	}
	// Highest count first, name as tiebreak.
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
