package rules

import (
	"fmt"
	"strings"

	"github.com/fatih/camelcase"
)

// Curated descriptions for the standard ruleset. Rules outside the map get a
// description derived from the rule id itself.
var descriptions = map[string]string{
	"AvoidLoggingPayload":                  "Prevents logging of sensitive payload data",
	"DisallowPlaintextSensitiveAttributes": "Ensures sensitive attributes use secure property placeholders",
	"EnforceTLSInHttpConnections":          "Enforces HTTPS/TLS for HTTP connections",
	"DisallowInsecureTLS":                  "Prevents TLS configuration that disables certificate validation",
	"AvoidSQLInjection":                    "Prevents SQL injection through parameterized queries",
	"FlowNameHyphenatedLowerCase":          "Ensures flow names follow the lowercase-hyphenated convention",
	"FlowVariableNamingConvention":         "Enforces the var prefix and camelCase for flow variables",
	"PropertiesFileNameConvention":         "Ensures properties files follow environment-specific naming",
	"ApiSpecificationNaming":               "Ensures API specification files follow naming conventions",
	"ProjectPomMustHaveParent":             "Ensures POM files declare the organizational parent",
	"GroupIdMatchesBusinessGroupId":        "Ensures groupId follows organizational standards",
	"EnvironmentSpecificPropertyFiles":     "Promotes environment-specific configuration files",
	"TryScopeNotEmpty":                     "Ensures try blocks contain actual processing logic",
	"ErrorHandlerExists":                   "Ensures flows implement error handling",
	"AvoidLargePayloadsInMemory":           "Encourages streaming for large payloads",
	"UseConnectionPooling":                 "Ensures database connections use pooling",
	"AvoidEmptyFlows":                      "Ensures flows contain actual processing logic",
	"AvoidHardcodedValues":                 "Replaces hardcoded values with configuration properties",
	"RequireDocumentationForFlows":         "Ensures flows carry documentation",
	"CorrelationIdLogging":                 "Requires correlation id logging for request tracing",
}

// Describe returns the human description of a rule, falling back to the rule
// id split into words when the rule is not in the curated set.
func Describe(ruleID string) string {
	if d, ok := descriptions[ruleID]; ok {
		return d
	}
	return fmt.Sprintf("%s rule: %s", Categorize(ruleID), Humanize(ruleID))
}

// Humanize splits a CamelCase rule id into readable words.
func Humanize(ruleID string) string {
	words := camelcase.Split(ruleID)
	if len(words) == 0 {
		return ruleID
	}
	return strings.Join(words, " ")
}

// Curated remediation guidance for the standard ruleset.
var suggestions = map[string]string{
	"AvoidLoggingPayload":                  "Log specific payload fields instead of the whole payload",
	"DisallowPlaintextSensitiveAttributes": "Use ${secure::property.name} placeholders instead of literals",
	"EnforceTLSInHttpConnections":          "Change http:// URLs to https:// and configure TLS 1.2 or newer",
	"DisallowInsecureTLS":                  "Remove insecure=\"true\" so certificate validation stays on",
	"AvoidSQLInjection":                    "Use parameterized queries instead of string concatenation",
	"FlowNameHyphenatedLowerCase":          "Rename the flow to lowercase words joined with hyphens",
	"FlowVariableNamingConvention":         "Rename the variable to the var prefix followed by camelCase",
	"ProjectPomMustHaveParent":             "Add a parent element with the organizational groupId and version",
	"EnvironmentSpecificPropertyFiles":     "Split configuration into per-environment files such as config-dev.yaml",
	"TryScopeNotEmpty":                     "Add processing logic inside the try block or remove it",
	"ErrorHandlerExists":                   "Add an error handler to the flow",
	"AvoidLargePayloadsInMemory":           "Switch the payload handling to streaming",
	"UseConnectionPooling":                 "Add a pooling profile to the database configuration",
	"AvoidEmptyFlows":                      "Add processing logic to the flow or remove it",
	"AvoidHardcodedValues":                 "Replace the literal with a ${config.property} reference",
	"RequireDocumentationForFlows":         "Add a doc:description to the flow definition",
	"CorrelationIdLogging":                 "Include the correlation id in every log entry",
}

// Category-level guidance used when a rule has no curated suggestion.
var categorySuggestions = map[string]string{
	CategorySecurity:      "Review the flagged location against the security standards",
	CategoryNaming:        "Rename the flagged element to match the naming conventions",
	CategoryStructure:     "Align the project layout with the organizational structure standards",
	CategoryPerformance:   "Profile the flagged section and apply the documented optimization",
	CategoryErrorHandling: "Add explicit error handling at the flagged location",
	CategoryDocumentation: "Document the flagged element",
	CategoryLogging:       "Adjust the log statement to the logging standards",
	CategoryQuality:       "Refactor the flagged section to meet the quality standards",
}

// SuggestFix returns remediation guidance for a rule: the curated suggestion
// when one exists, otherwise the default for the rule's category.
func SuggestFix(ruleID string) string {
	if s, ok := suggestions[ruleID]; ok {
		return s
	}
	return categorySuggestions[Categorize(ruleID)]
}
