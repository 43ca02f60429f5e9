package domain

import "fmt"

// Config holds every knob the scoring and gate pipeline reads, loaded once
// per run from .mulegate.yaml plus environment overrides. Immutable for the
// run's duration.
type Config struct {
	Scoring          ScoringWeights  `yaml:"scoring"           json:"scoring"`
	Severity         SeverityWeights `yaml:"severity_weights"  json:"severity_weights"`
	MinimumScore     float64         `yaml:"minimum_score"     json:"minimum_score"`
	Gate             GateConfig      `yaml:"gate"              json:"gate"`
	Filter           string          `yaml:"filter"            json:"filter"`
	Mode             string          `yaml:"mode"              json:"mode"`
	CustomCategories []string        `yaml:"custom_categories" json:"custom_categories,omitempty"`
}

// ScoringWeights blends the file-cleanliness and severity-penalty sub-scores.
// The blend normalizes by the weight sum, so the pair need not add up to 100.
type ScoringWeights struct {
	FileWeight     float64 `yaml:"file_weight"     json:"file_weight"`
	SeverityWeight float64 `yaml:"severity_weight" json:"severity_weight"`
}

// Sum returns the normalization denominator for the blend.
func (w ScoringWeights) Sum() float64 {
	return w.FileWeight + w.SeverityWeight
}

// SeverityWeights is the per-tier deduction applied by the severity-penalty
// sub-score.
type SeverityWeights struct {
	High   float64 `yaml:"high"   json:"high"`
	Medium float64 `yaml:"medium" json:"medium"`
	Low    float64 `yaml:"low"    json:"low"`
	Info   float64 `yaml:"info"   json:"info"`
}

// Weight returns the deduction for a tier.
func (w SeverityWeights) Weight(s Severity) float64 {
	switch s {
	case SeverityHigh:
		return w.High
	case SeverityMedium:
		return w.Medium
	case SeverityLow:
		return w.Low
	case SeverityInfo:
		return w.Info
	default:
		return 0
	}
}

// GateConfig controls the pass/fail decision.
type GateConfig struct {
	Threshold      float64 `yaml:"threshold"       json:"threshold"`
	Skip           bool    `yaml:"skip"            json:"skip"`
	RequirePrimary bool    `yaml:"require_primary" json:"require_primary"`
}

// DefaultConfig returns the weights the standard ruleset ships with.
func DefaultConfig() Config {
	return Config{
		Scoring:      ScoringWeights{FileWeight: 70, SeverityWeight: 30},
		Severity:     SeverityWeights{High: 10, Medium: 5, Low: 2, Info: 1},
		MinimumScore: 20,
		Gate:         GateConfig{Threshold: 75},
		Filter:       FilterAll,
		Mode:         ModeComprehensive,
	}
}

// Validate checks the config before any score is computed.
func (c Config) Validate() error {
	// 1. scoring weights must be non-negative and not both zero
	if c.Scoring.FileWeight < 0 || c.Scoring.SeverityWeight < 0 {
		return fmt.Errorf("scoring weights must be non-negative (got file %.1f, severity %.1f)",
			c.Scoring.FileWeight, c.Scoring.SeverityWeight)
	}
	if c.Scoring.Sum() == 0 {
		return ErrInvalidWeightConfiguration
	}

	// 2. severity weights must be non-negative
	for _, sev := range Severities() {
		if w := c.Severity.Weight(sev); w < 0 {
			return fmt.Errorf("severity weight for %s must be non-negative (got %.1f)", sev, w)
		}
	}

	// 3. minimum score and threshold must stay within the percentage range
	if c.MinimumScore < 0 || c.MinimumScore > 100 {
		return fmt.Errorf("minimum_score must be between 0 and 100 (got %.1f)", c.MinimumScore)
	}
	if c.Gate.Threshold < 0 || c.Gate.Threshold > 100 {
		return fmt.Errorf("gate.threshold must be between 0 and 100 (got %.1f)", c.Gate.Threshold)
	}

	// 4. filter and mode must be known
	if c.Filter != "" && !ValidFilter(c.Filter) {
		return fmt.Errorf("unknown filter %q (valid: all, high, medium+, low+)", c.Filter)
	}
	if c.Mode != "" && !ValidMode(c.Mode) {
		return fmt.Errorf("unknown mode %q (valid: comprehensive, security, performance, custom)", c.Mode)
	}

	// 5. custom mode needs at least one category
	if c.Mode == ModeCustom && len(c.CustomCategories) == 0 {
		return fmt.Errorf("mode %q requires custom_categories", ModeCustom)
	}

	return nil
}
