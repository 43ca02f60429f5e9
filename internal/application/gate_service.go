package application

import (
	"fmt"
	"os"

	"github.com/mulegate/mulegate/internal/domain"
)

// GateRequest carries one gate invocation against a previously produced
// report artifact. Counts, ScannedFiles and ViolatingFiles are optional
// ground truth for the recompute strategy; the pointer fields override the
// loaded gate configuration when set.
type GateRequest struct {
	ProjectPath    string
	ArtifactPath   string
	Artifact       []byte
	Counts         map[domain.Severity]int
	ScannedFiles   int
	ViolatingFiles int
	Threshold      *float64
	Skip           *bool
	RequirePrimary *bool
}

// GateResult pairs the verdict with the extraction that produced the judged
// numbers, so callers can see where each number came from.
type GateResult struct {
	Verdict    domain.GateVerdict    `json:"verdict"`
	Extraction domain.Extraction     `json:"extraction"`
	Method     domain.AnalysisMethod `json:"analysis_method"`
}

// GateService judges report artifacts against the configured threshold. It
// never re-runs analysis; it recovers the numbers an earlier run produced
// and evaluates them.
type GateService struct {
	loader domain.ConfigLoader
}

func NewGateService(loader domain.ConfigLoader) *GateService {
	return &GateService{loader: loader}
}

func (s *GateService) EvaluateGate(req GateRequest) (*GateResult, error) {
	// 0. Load config and apply request overrides
	cfg, err := s.loader.Load(req.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	gateCfg := cfg.Gate
	if req.Threshold != nil {
		if *req.Threshold < 0 || *req.Threshold > 100 {
			return nil, fmt.Errorf("threshold must be between 0 and 100 (got %.1f)", *req.Threshold)
		}
		gateCfg.Threshold = *req.Threshold
	}
	if req.Skip != nil {
		gateCfg.Skip = *req.Skip
	}
	if req.RequirePrimary != nil {
		gateCfg.RequirePrimary = *req.RequirePrimary
	}

	// 1. Read the artifact and run the recovery chain
	artifact, err := s.artifactBytes(req)
	if err != nil {
		return nil, err
	}
	ext, err := domain.ExtractScore(domain.ExtractionInput{
		Artifact:       artifact,
		Counts:         req.Counts,
		ScannedFiles:   req.ScannedFiles,
		ViolatingFiles: req.ViolatingFiles,
		Config:         cfg,
	})
	if err != nil {
		return nil, err
	}

	// 2. Establish provenance: the artifact's own claim, degraded further
	// when extraction had to leave the direct path
	method := domain.ArtifactMethod(artifact)
	var warnings []string
	if ext.ScoreSource != domain.StrategyDirect {
		warnings = append(warnings, fmt.Sprintf("compliance score recovered via %s extraction", ext.ScoreSource))
	}
	if ext.TotalSource != domain.StrategyDirect {
		warnings = append(warnings, fmt.Sprintf("violation total recovered via %s extraction", ext.TotalSource))
	}
	if ext.Degraded() {
		method = worseMethod(method, domain.MethodPrimaryInconsistent)
	}

	// 3. Evaluate
	report := &domain.ComplianceReport{
		CompliancePercentage: ext.Score,
		TotalViolations:      ext.TotalViolations,
		AnalysisMethod:       method,
		Warnings:             warnings,
	}
	verdict := domain.EvaluateGate(report, gateCfg)

	return &GateResult{Verdict: verdict, Extraction: *ext, Method: method}, nil
}

// Extract runs only the recovery chain, without judging the result.
func (s *GateService) Extract(req GateRequest) (*domain.Extraction, error) {
	cfg, err := s.loader.Load(req.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	artifact, err := s.artifactBytes(req)
	if err != nil {
		return nil, err
	}
	return domain.ExtractScore(domain.ExtractionInput{
		Artifact:       artifact,
		Counts:         req.Counts,
		ScannedFiles:   req.ScannedFiles,
		ViolatingFiles: req.ViolatingFiles,
		Config:         cfg,
	})
}

func (s *GateService) artifactBytes(req GateRequest) ([]byte, error) {
	if len(req.Artifact) > 0 {
		return req.Artifact, nil
	}
	if req.ArtifactPath == "" {
		return nil, fmt.Errorf("no report artifact given")
	}
	artifact, err := os.ReadFile(req.ArtifactPath)
	if err != nil {
		return nil, fmt.Errorf("reading report artifact: %w", err)
	}
	return artifact, nil
}

// worseMethod keeps the less trustworthy of two provenance claims.
func worseMethod(a, b domain.AnalysisMethod) domain.AnalysisMethod {
	if methodRank(a) >= methodRank(b) {
		return a
	}
	return b
}

func methodRank(m domain.AnalysisMethod) int {
	switch m {
	case domain.MethodFallback:
		return 2
	case domain.MethodPrimaryInconsistent:
		return 1
	default:
		return 0
	}
}
