package domain

import (
	"fmt"
	"strings"
	"time"
)

// Severity classifies a violation into one of the four analyzer tiers.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
	SeverityInfo   Severity = "INFO"
)

// Severities lists the tiers from most to least severe.
func Severities() []Severity {
	return []Severity{SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	}
	return false
}

// ParseSeverity normalizes the analyzer's spelling of a severity tier.
// It accepts tier names in any case and the analyzer's numeric priorities
// (1 = HIGH, 2 = MEDIUM, 3 = LOW, 4 and 5 = INFO). Unknown spellings map
// to INFO: the tier set is closed but the analyzer's vocabulary is not.
func ParseSeverity(raw string) Severity {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "HIGH", "CRITICAL", "ERROR", "BLOCKER", "1":
		return SeverityHigh
	case "MEDIUM", "MAJOR", "WARNING", "2":
		return SeverityMedium
	case "LOW", "MINOR", "3":
		return SeverityLow
	default:
		return SeverityInfo
	}
}

// ViolationRecord is a single rule match against one location in an analyzed
// file. Records are created by the normalizer and read-only downstream.
type ViolationRecord struct {
	Severity Severity `json:"severity"`
	RuleID   string   `json:"rule_id"`
	FilePath string   `json:"file_path"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
}

// ScanResult pairs the files the analyzer scanned with the violations parsed
// from its report. Every violation must reference a scanned file.
type ScanResult struct {
	ScannedFiles []string          `json:"scanned_files"`
	Violations   []ViolationRecord `json:"violations"`
}

// Project kinds recognized by the detector.
const (
	ProjectKindMule4   = "mule4"
	ProjectKindMule3   = "mule3"
	ProjectKindGeneric = "generic"
)

// AnalysisMethod records the provenance of a report's numbers.
type AnalysisMethod string

const (
	MethodPrimary             AnalysisMethod = "PRIMARY"
	MethodPrimaryInconsistent AnalysisMethod = "PRIMARY_INCONSISTENT"
	MethodFallback            AnalysisMethod = "FALLBACK"
)

// ConsistencyState classifies the agreement between the analyzer's
// self-reported violation count and the count actually parsed.
type ConsistencyState string

const (
	ConsistencyConsistent   ConsistencyState = "CONSISTENT"
	ConsistencyInconsistent ConsistencyState = "INCONSISTENT"
	ConsistencyZeroSuspect  ConsistencyState = "ZERO_SUSPECT"
	ConsistencyFallbackUsed ConsistencyState = "FALLBACK_USED"
)

// Method maps a consistency state onto the provenance it implies for the
// final report.
func (s ConsistencyState) Method() AnalysisMethod {
	switch s {
	case ConsistencyInconsistent:
		return MethodPrimaryInconsistent
	case ConsistencyFallbackUsed:
		return MethodFallback
	default:
		return MethodPrimary
	}
}

// ComplianceReport is the structured score record produced once per run and
// handed to renderers, CI status reporting, and the quality gate.
type ComplianceReport struct {
	RunID                string           `json:"run_id"`
	CompliancePercentage float64          `json:"compliance_percentage"`
	TotalViolations      int              `json:"total_violations"`
	ViolationsBySeverity map[Severity]int `json:"violations_by_severity"`
	ViolationsByFile     map[string]int   `json:"violations_by_file"`
	FilesScanned         int              `json:"files_scanned"`
	FilesWithViolations  int              `json:"files_with_violations"`
	CategoryCounts       map[string]int   `json:"category_counts,omitempty"`
	AnalysisMethod       AnalysisMethod   `json:"analysis_method"`
	Status               string           `json:"status"`
	Warnings             []string         `json:"warnings,omitempty"`
	Filter               string           `json:"filter,omitempty"`
	Mode                 string           `json:"mode,omitempty"`
	ProjectKind          string           `json:"project_kind,omitempty"`
	CommitHash           string           `json:"commit_hash,omitempty"`
	Timestamp            time.Time        `json:"timestamp"`
}

// StatusFor buckets a compliance percentage into a reporting tier.
func StatusFor(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Good"
	case score >= 70:
		return "Fair"
	case score >= 60:
		return "Poor"
	default:
		return "Critical"
	}
}

func BadgeColor(score float64) string {
	switch {
	case score >= 90:
		return "brightgreen"
	case score >= 80:
		return "green"
	case score >= 70:
		return "yellow"
	case score >= 60:
		return "orange"
	default:
		return "red"
	}
}

// Recommendations derives remediation guidance from the score tier and the
// dominant severity buckets.
func (r *ComplianceReport) Recommendations() []string {
	var recs []string
	switch {
	case r.CompliancePercentage >= 90:
		recs = append(recs, "Maintain current standards; no urgent action required")
	case r.CompliancePercentage >= 80:
		recs = append(recs, "Address the remaining high severity violations to reach excellent compliance")
	case r.CompliancePercentage >= 70:
		recs = append(recs, "Plan remediation for high and medium severity violations")
	case r.CompliancePercentage >= 60:
		recs = append(recs, "Schedule a dedicated cleanup; compliance is below target")
	default:
		recs = append(recs, "Resolve high severity violations before merging any further changes")
	}
	if n := r.ViolationsBySeverity[SeverityHigh]; n > 0 {
		recs = append(recs, fmt.Sprintf("Fix %d high severity violation(s) first", n))
	}
	if n := r.ViolationsBySeverity[SeverityMedium]; n > 5 {
		recs = append(recs, fmt.Sprintf("Burn down the medium severity backlog (%d open)", n))
	}
	if r.FilesScanned > 0 && r.FilesWithViolations*2 > r.FilesScanned {
		recs = append(recs, "Violations affect most scanned files; consider a project-wide review")
	}
	return recs
}

// FailureKind distinguishes why a gate rejected a run.
type FailureKind string

const (
	FailureNone      FailureKind = "none"
	FailureNumeric   FailureKind = "numeric"
	FailureIntegrity FailureKind = "integrity"
)

// GateVerdict is the pass/fail decision for one run. Derived and short-lived,
// never persisted.
type GateVerdict struct {
	Passed      bool        `json:"passed"`
	Score       float64     `json:"score"`
	Threshold   float64     `json:"threshold"`
	Reason      string      `json:"reason"`
	FailureKind FailureKind `json:"failure_kind"`
	Warnings    []string    `json:"warnings,omitempty"`
}
