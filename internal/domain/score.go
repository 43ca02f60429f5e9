package domain

import "math"

// ComplianceScore carries the blended percentage plus the two sub-scores it
// was blended from, for rendering and for audit trails.
type ComplianceScore struct {
	FileCleanliness float64 `json:"file_cleanliness"`
	SeverityPenalty float64 `json:"severity_penalty"`
	Final           float64 `json:"final"`
	FloorApplied    bool    `json:"floor_applied"`
}

// ComputeCompliance blends two independent sub-scores under the configured
// weights:
//
//   - file-cleanliness rewards the fraction of scanned files with no
//     violations: 100 × (scanned − violating) / scanned, clamped to [0,100].
//   - severity-penalty starts at 100 and deducts each violation's tier
//     weight, floored at 0.
//
// The blend is normalized by the weight sum, floored at cfg.MinimumScore and
// rounded to the one-decimal reporting precision; rounding never takes the
// result below the floor. A 100 can only come out of a zero-violation run.
func ComputeCompliance(agg *Aggregate, cfg Config) (*ComplianceScore, error) {
	if agg.ScannedFiles == 0 {
		return nil, ErrNoFilesScanned
	}
	if cfg.Scoring.Sum() == 0 {
		return nil, ErrInvalidWeightConfiguration
	}

	clean := 100 * float64(agg.ScannedFiles-agg.ViolatingFiles) / float64(agg.ScannedFiles)
	clean = clampScore(clean)

	var deduction float64
	for sev, n := range agg.BySeverity {
		deduction += float64(n) * cfg.Severity.Weight(sev)
	}
	penalty := math.Max(0, 100-deduction)

	final := (cfg.Scoring.FileWeight*clean + cfg.Scoring.SeverityWeight*penalty) / cfg.Scoring.Sum()
	score := &ComplianceScore{FileCleanliness: clean, SeverityPenalty: penalty}
	if final < cfg.MinimumScore {
		final = cfg.MinimumScore
		score.FloorApplied = true
	}
	final = roundScore(final)
	if final < cfg.MinimumScore {
		final = cfg.MinimumScore
		score.FloorApplied = true
	}
	score.Final = final
	return score, nil
}

// roundScore rounds to the one-decimal reporting precision.
func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampScore(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
