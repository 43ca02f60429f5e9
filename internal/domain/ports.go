package domain

import "time"

// ReportParser reads the analyzer's structured XML report into violation
// records. ParseLenient is the tolerant variant used when the strict parse
// rejects the document.
type ReportParser interface {
	Parse(path string) ([]ViolationRecord, error)
	ParseLenient(path string) ([]ViolationRecord, error)
}

// ProcessLogParser extracts the analyzer's self-reported counts from its
// textual execution log. This is a separate channel from the structured
// report; the consistency audit depends on the two staying independent.
type ProcessLogParser interface {
	Parse(path string) (SelfReport, error)
}

// SelfReport is the analyzer's own account of its run.
type SelfReport struct {
	Violations   int  `json:"violations"`
	FilesScanned int  `json:"files_scanned"`
	Failed       bool `json:"failed"`
}

// ProjectScanner walks a project tree and returns the analyzable files,
// relative to the project root.
type ProjectScanner interface {
	Scan(root string) ([]string, error)
}

// ProjectDetector classifies the project kind (mule4, mule3, generic).
type ProjectDetector interface {
	Detect(root string) string
}

// FallbackAnalyzer is the lower-fidelity substitute consulted when the
// primary analyzer report is missing or unusable. Its findings flow through
// the same pipeline but always carry FALLBACK_USED provenance.
type FallbackAnalyzer interface {
	Analyze(root string, files []string) ([]ViolationRecord, error)
}

// ConfigLoader loads the effective run configuration.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// HistoryEntry is one persisted run summary.
type HistoryEntry struct {
	RunID           string         `json:"run_id"`
	Timestamp       time.Time      `json:"timestamp"`
	CommitHash      string         `json:"commit_hash,omitempty"`
	Score           float64        `json:"score"`
	TotalViolations int            `json:"total_violations"`
	Method          AnalysisMethod `json:"analysis_method"`
}

// HistoryStore persists one entry per run for trend reporting.
type HistoryStore interface {
	Append(entry HistoryEntry) error
	Load() ([]HistoryEntry, error)
}

// Baseline pins the last accepted violation count. The consistency audit
// reads it for the zero-suspect signal.
type Baseline struct {
	TotalViolations int       `json:"total_violations"`
	Score           float64   `json:"score"`
	CommitHash      string    `json:"commit_hash,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BaselineStore persists the pinned baseline between runs.
type BaselineStore interface {
	Save(b Baseline) error
	Load() (*Baseline, error)
}

// ArtifactStore persists the latest report as a JSON artifact for the gate
// to judge later.
type ArtifactStore interface {
	Save(report *ComplianceReport) error
}

// CommitResolver reports the current VCS commit of the analyzed project.
type CommitResolver interface {
	Head(path string) (string, error)
}
