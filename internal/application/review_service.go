package application

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mulegate/mulegate/internal/domain"
	"github.com/mulegate/mulegate/internal/domain/rules"
)

// defaultReportPath is where the Maven PMD plugin leaves its report. The
// review falls back to heuristic analysis when no report exists there.
const defaultReportPath = "target/pmd-report.xml"

// ReviewRequest carries one review invocation. Filter, Mode and Categories
// override the loaded configuration when set. SkipHistory leaves the run out
// of the history store; PinBaseline advances the baseline even when the audit
// was not clean, for callers who accept the current count as the new normal.
type ReviewRequest struct {
	ProjectPath string
	ReportPath  string
	LogPath     string
	Filter      string
	Mode        string
	Categories  []string
	SkipHistory bool
	PinBaseline bool
}

// ReviewResult pairs the scored report with the individual findings behind
// it, post filtering.
type ReviewResult struct {
	Report     *domain.ComplianceReport `json:"report"`
	Violations []domain.ViolationRecord `json:"violations"`
}

// ReviewService orchestrates the review pipeline:
// scan → parse report (or fall back) → filter → aggregate → score → audit → persist.
type ReviewService struct {
	scanner   domain.ProjectScanner
	detector  domain.ProjectDetector
	reports   domain.ReportParser
	logs      domain.ProcessLogParser
	fallback  domain.FallbackAnalyzer
	loader    domain.ConfigLoader
	history   domain.HistoryStore
	baselines domain.BaselineStore
	artifacts domain.ArtifactStore
	commits   domain.CommitResolver
}

func NewReviewService(
	scanner domain.ProjectScanner,
	detector domain.ProjectDetector,
	reports domain.ReportParser,
	logs domain.ProcessLogParser,
	fallback domain.FallbackAnalyzer,
	loader domain.ConfigLoader,
	history domain.HistoryStore,
	baselines domain.BaselineStore,
	artifacts domain.ArtifactStore,
	commits domain.CommitResolver,
) *ReviewService {
	return &ReviewService{
		scanner:   scanner,
		detector:  detector,
		reports:   reports,
		logs:      logs,
		fallback:  fallback,
		loader:    loader,
		history:   history,
		baselines: baselines,
		artifacts: artifacts,
		commits:   commits,
	}
}

func (s *ReviewService) ReviewProject(req ReviewRequest) (*ReviewResult, error) {
	// 0. Load config and apply request overrides
	cfg, err := s.loader.Load(req.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := applyOverrides(&cfg, req); err != nil {
		return nil, err
	}

	// 1. Scan the project tree
	files, err := s.scanner.Scan(req.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	if len(files) == 0 {
		return nil, domain.ErrNoFilesScanned
	}

	// 2. Obtain violations: primary report first, heuristics as last resort
	var warnings []string
	raw, fallbackUsed, parseWarning, err := s.collectViolations(req, files)
	if err != nil {
		return nil, err
	}
	if parseWarning != "" {
		warnings = append(warnings, parseWarning)
	}

	// 3. Validate the raw records against the scanned set
	rawAgg, err := domain.AggregateScan(domain.ScanResult{ScannedFiles: files, Violations: raw})
	if err != nil {
		return nil, err
	}

	// 4. Apply severity filter and mode categories
	filtered := domain.FilterBySeverity(raw, cfg.Filter)
	if categories, restricted := rules.CategoriesForMode(cfg.Mode, cfg.CustomCategories); restricted {
		filtered = domain.FilterByCategories(filtered, categories, rules.Categorize)
	}

	// 5. Aggregate the admitted records and score them
	agg, err := domain.AggregateScan(domain.ScanResult{ScannedFiles: files, Violations: filtered})
	if err != nil {
		return nil, err
	}
	score, err := domain.ComputeCompliance(agg, cfg)
	if err != nil {
		return nil, err
	}

	// 6. Audit consistency between the log channel and the parsed report.
	// The audit always sees the raw parsed total: the analyzer knew nothing
	// about our filters.
	state, auditWarnings, err := s.audit(req, rawAgg.TotalViolations, fallbackUsed)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, auditWarnings...)

	// 7. Assemble the report
	report := &domain.ComplianceReport{
		RunID:                uuid.NewString(),
		CompliancePercentage: score.Final,
		TotalViolations:      agg.TotalViolations,
		ViolationsBySeverity: agg.BySeverity,
		ViolationsByFile:     agg.ByFile,
		FilesScanned:         agg.ScannedFiles,
		FilesWithViolations:  agg.ViolatingFiles,
		CategoryCounts:       categoryCounts(filtered),
		AnalysisMethod:       state.Method(),
		Status:               domain.StatusFor(score.Final),
		Filter:               cfg.Filter,
		Mode:                 cfg.Mode,
		ProjectKind:          s.detector.Detect(req.ProjectPath),
		Timestamp:            time.Now().UTC(),
	}
	if hash, err := s.commits.Head(req.ProjectPath); err == nil {
		report.CommitHash = hash
	}

	// 8. Persist the artifact, history and, for trusted runs, the baseline.
	// Persistence failures degrade to warnings; the score is already computed.
	report.Warnings = warnings
	report.Warnings = append(report.Warnings, s.persist(report, rawAgg.TotalViolations, state, req)...)

	return &ReviewResult{Report: report, Violations: filtered}, nil
}

// collectViolations resolves the violation source. Order: strict report
// parse, lenient recovery, heuristic fallback.
func (s *ReviewService) collectViolations(req ReviewRequest, files []string) (records []domain.ViolationRecord, fallbackUsed bool, warning string, err error) {
	reportPath := req.ReportPath
	if reportPath == "" {
		probe := filepath.Join(req.ProjectPath, filepath.FromSlash(defaultReportPath))
		if _, statErr := os.Stat(probe); statErr == nil {
			reportPath = probe
		}
	}

	if reportPath != "" {
		parsed, parseErr := s.reports.Parse(reportPath)
		if parseErr == nil {
			return parsed, false, "", nil
		}

		recovered, lenientErr := s.reports.ParseLenient(reportPath)
		if lenientErr == nil && len(recovered) > 0 {
			return recovered, false,
				fmt.Sprintf("report was malformed; recovered %d finding(s) with lenient parsing", len(recovered)), nil
		}

		// An explicitly named report that yields nothing at all means the
		// primary channel is unusable, not merely empty.
		warning = fmt.Sprintf("report %s unusable (%v); falling back to heuristic analysis", reportPath, parseErr)
	}

	records, err = s.fallback.Analyze(req.ProjectPath, files)
	if err != nil {
		return nil, false, "", fmt.Errorf("fallback analysis: %w", err)
	}
	return records, true, warning, nil
}

// audit classifies the run's provenance. No process log means no count
// audit; the run is taken at face value.
func (s *ReviewService) audit(req ReviewRequest, parsedTotal int, fallbackUsed bool) (domain.ConsistencyState, []string, error) {
	in := domain.ConsistencyInput{Parsed: parsedTotal, FallbackUsed: fallbackUsed}
	if b, err := s.baselines.Load(); err == nil && b != nil {
		in.Baseline = &b.TotalViolations
	}

	if fallbackUsed {
		state := domain.ConsistencyFallbackUsed
		return state, []string{domain.ConsistencyWarning(state, in)}, nil
	}

	if req.LogPath == "" {
		return domain.ConsistencyConsistent, nil, nil
	}

	selfReport, err := s.logs.Parse(req.LogPath)
	if err != nil {
		return domain.ConsistencyConsistent,
			[]string{fmt.Sprintf("process log unusable (%v); skipping consistency audit", err)}, nil
	}
	if selfReport.Failed {
		return domain.ConsistencyInconsistent,
			[]string{"analyzer log reports a failed run; the report may be incomplete"}, nil
	}

	in.SelfReported = selfReport.Violations
	state, err := domain.AuditConsistency(in)
	if err != nil {
		return "", nil, err
	}

	var warnings []string
	if w := domain.ConsistencyWarning(state, in); w != "" {
		warnings = append(warnings, w)
	}
	return state, warnings, nil
}

// persist writes the report artifact, appends the run to history, and
// advances the baseline when the audit found nothing suspicious. Zero-suspect
// runs keep the old baseline pinned so the signal survives until a consistent
// run clears it; PinBaseline overrides that and accepts the current count.
func (s *ReviewService) persist(report *domain.ComplianceReport, rawTotal int, state domain.ConsistencyState, req ReviewRequest) []string {
	var warnings []string

	if err := s.artifacts.Save(report); err != nil {
		warnings = append(warnings, fmt.Sprintf("failed to write report artifact: %v", err))
	}

	if !req.SkipHistory {
		entry := domain.HistoryEntry{
			RunID:           report.RunID,
			Timestamp:       report.Timestamp,
			CommitHash:      report.CommitHash,
			Score:           report.CompliancePercentage,
			TotalViolations: report.TotalViolations,
			Method:          report.AnalysisMethod,
		}
		if err := s.history.Append(entry); err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to record run history: %v", err))
		}
	}

	if state == domain.ConsistencyConsistent || req.PinBaseline {
		b := domain.Baseline{
			TotalViolations: rawTotal,
			Score:           report.CompliancePercentage,
			CommitHash:      report.CommitHash,
			UpdatedAt:       report.Timestamp,
		}
		if err := s.baselines.Save(b); err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to update baseline: %v", err))
		}
	}
	return warnings
}

func applyOverrides(cfg *domain.Config, req ReviewRequest) error {
	if req.Filter != "" {
		if !domain.ValidFilter(req.Filter) {
			return fmt.Errorf("unknown filter %q (valid: all, high, medium+, low+)", req.Filter)
		}
		cfg.Filter = req.Filter
	}
	if req.Mode != "" {
		if !domain.ValidMode(req.Mode) {
			return fmt.Errorf("unknown mode %q (valid: comprehensive, security, performance, custom)", req.Mode)
		}
		cfg.Mode = req.Mode
	}
	if len(req.Categories) > 0 {
		cfg.CustomCategories = req.Categories
	}
	if cfg.Mode == domain.ModeCustom && len(cfg.CustomCategories) == 0 {
		return fmt.Errorf("mode %q requires categories", domain.ModeCustom)
	}
	return nil
}

func categoryCounts(violations []domain.ViolationRecord) map[string]int {
	if len(violations) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, v := range violations {
		counts[rules.Categorize(v.RuleID)]++
	}
	return counts
}
