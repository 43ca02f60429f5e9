// Package heuristic is the lower-fidelity substitute for the primary
// analyzer. It runs a fixed set of line checks against Mule configuration
// files and is only consulted when the primary report cannot be used, so its
// findings always carry fallback provenance.
package heuristic

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mulegate/mulegate/internal/domain"
)

// Analyzer implements domain.FallbackAnalyzer.
type Analyzer struct{}

func New() *Analyzer {
	return &Analyzer{}
}

// Analyze runs the line checks over the scanned files. Unreadable files are
// skipped; a degraded pass over most of the tree beats no pass at all.
func (a *Analyzer) Analyze(root string, files []string) ([]domain.ViolationRecord, error) {
	var out []domain.ViolationRecord
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		lines := strings.Split(string(data), "\n")

		switch strings.ToLower(filepath.Ext(rel)) {
		case ".xml":
			out = append(out, analyzeMuleXML(rel, lines)...)
			if filepath.Base(rel) == "pom.xml" {
				out = append(out, analyzePOM(rel, lines)...)
			}
		case ".yaml", ".yml":
			out = append(out, analyzeYAML(rel, lines)...)
		}
	}
	return out, nil
}

func analyzeMuleXML(path string, lines []string) []domain.ViolationRecord {
	hasErrorHandler := containsLine(lines, "error-handler")

	var out []domain.ViolationRecord
	for i, line := range lines {
		num := i + 1
		if strings.HasPrefix(strings.TrimSpace(line), "<!--") {
			continue
		}
		lower := strings.ToLower(line)

		if strings.Contains(line, "password=") && !strings.Contains(line, "${") {
			out = append(out, record(domain.SeverityHigh, "DisallowPlaintextSensitiveAttributes",
				path, num, "Password attribute should use secure property placeholder"))
		}
		if strings.Contains(line, "http://") && !strings.Contains(line, "https://") {
			out = append(out, record(domain.SeverityHigh, "EnforceTLSInHttpConnections",
				path, num, "HTTP connections should use HTTPS/TLS"))
		}
		if strings.Contains(line, "logger") && strings.Contains(line, "payload") {
			out = append(out, record(domain.SeverityHigh, "AvoidLoggingPayload",
				path, num, "Payload should not be logged directly"))
		}
		if containsAny(lower, "client_secret=", "secret=", "token=") && !strings.Contains(line, "${") {
			out = append(out, record(domain.SeverityHigh, "DisallowPlaintextSensitiveAttributes",
				path, num, "Sensitive attributes should use secure property placeholders"))
		}
		if strings.Contains(line, "<flow") && strings.Contains(line, "</flow>") && len(strings.TrimSpace(line)) < 20 {
			out = append(out, record(domain.SeverityLow, "AvoidEmptyFlows",
				path, num, "Flows should not be empty"))
		}
		if strings.Contains(line, "<mule") && !hasErrorHandler {
			out = append(out, record(domain.SeverityMedium, "CommonGlobalErrorHandlerImplemented",
				path, num, "Global error handler should be implemented"))
		}
	}
	return out
}

func analyzeYAML(path string, lines []string) []domain.ViolationRecord {
	var out []domain.ViolationRecord
	for i, line := range lines {
		num := i + 1
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lower := strings.ToLower(line)

		if strings.Contains(line, "password:") && !strings.Contains(line, "${") {
			out = append(out, record(domain.SeverityHigh, "DisallowPlaintextSensitiveAttributes",
				path, num, "Password should use secure property placeholder"))
		}
		if strings.Contains(line, "http://") && !strings.Contains(line, "https://") {
			out = append(out, record(domain.SeverityHigh, "EnforceTLSInHttpConnections",
				path, num, "HTTP URLs should use HTTPS"))
		}
		if containsAny(lower, "client_secret:", "secret:", "token:") && !strings.Contains(line, "${") {
			out = append(out, record(domain.SeverityHigh, "DisallowPlaintextSensitiveAttributes",
				path, num, "Sensitive values should use secure property placeholders"))
		}
	}
	return out
}

func analyzePOM(path string, lines []string) []domain.ViolationRecord {
	hasParent := containsLine(lines, "<parent>")

	var out []domain.ViolationRecord
	for i, line := range lines {
		num := i + 1

		if strings.Contains(line, "<project>") && !hasParent {
			out = append(out, record(domain.SeverityMedium, "ProjectPomMustHaveParent",
				path, num, "Project POM must contain a parent element"))
		}
		if containsAny(line, "<version>", "<groupId>", "<artifactId>") && !strings.Contains(line, "${") {
			out = append(out, record(domain.SeverityLow, "AvoidHardcodedValues",
				path, num, "Avoid hardcoded values in POM"))
		}
	}
	return out
}

func record(sev domain.Severity, rule, path string, line int, msg string) domain.ViolationRecord {
	return domain.ViolationRecord{
		Severity: sev,
		RuleID:   rule,
		FilePath: path,
		Line:     line,
		Message:  msg,
	}
}

func containsLine(lines []string, needle string) bool {
	for _, l := range lines {
		if strings.Contains(l, needle) {
			return true
		}
	}
	return false
}

func containsAny(line string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(line, n) {
			return true
		}
	}
	return false
}
