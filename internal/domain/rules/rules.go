// Package rules is the knowledge base for analyzer rule ids: category
// buckets, human descriptions, and remediation guidance. Rule ids are
// treated as opaque CamelCase identifiers owned by the ruleset; this package
// only interprets them for reporting.
package rules

import "strings"

// Rule categories, used for per-category reporting and mode filtering.
const (
	CategorySecurity      = "Security"
	CategoryNaming        = "Naming Conventions"
	CategoryStructure     = "Project Structure"
	CategoryPerformance   = "Performance"
	CategoryErrorHandling = "Error Handling"
	CategoryDocumentation = "Documentation"
	CategoryLogging       = "Logging"
	CategoryQuality       = "Code Quality"
)

// Categories lists all buckets in reporting order.
func Categories() []string {
	return []string{
		CategorySecurity,
		CategoryNaming,
		CategoryStructure,
		CategoryPerformance,
		CategoryErrorHandling,
		CategoryDocumentation,
		CategoryLogging,
		CategoryQuality,
	}
}

// Categorize buckets a rule id into a logical group by keyword. Rules that
// match no group land in Code Quality.
func Categorize(ruleID string) string {
	id := strings.ToLower(ruleID)
	switch {
	case containsAny(id, "security", "secure", "password", "credential", "token", "secret", "sensitive", "plaintext", "tls", "https", "injection"):
		return CategorySecurity
	case containsAny(id, "naming", "name", "convention", "camelcase"):
		return CategoryNaming
	case containsAny(id, "structure", "project", "pom", "parent", "dependency", "groupid", "folder"):
		return CategoryStructure
	case containsAny(id, "performance", "optimization", "memory", "stream", "pooling", "timeout"):
		return CategoryPerformance
	case containsAny(id, "error", "exception", "handling", "try", "catch"):
		return CategoryErrorHandling
	case containsAny(id, "documentation", "doc", "comment"):
		return CategoryDocumentation
	case containsAny(id, "logging", "logger", "log"):
		return CategoryLogging
	default:
		return CategoryQuality
	}
}

// CategoriesForMode returns the categories an analysis mode admits. The
// comprehensive mode (and any unknown mode) admits everything, signalled by
// restricted = false.
func CategoriesForMode(mode string, custom []string) (categories []string, restricted bool) {
	switch mode {
	case "security":
		return []string{CategorySecurity}, true
	case "performance":
		return []string{CategoryPerformance}, true
	case "custom":
		return custom, len(custom) > 0
	default:
		return nil, false
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
