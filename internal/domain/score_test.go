package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mulegate/mulegate/internal/domain"
)

func cleanAggregate(scanned int) *domain.Aggregate {
	return &domain.Aggregate{
		BySeverity:   map[domain.Severity]int{},
		ByFile:       map[string]int{},
		ScannedFiles: scanned,
	}
}

// Ten clean files score a perfect 100: the only legitimate path to 100 is an
// actual zero-violation computation.
func TestComputeCompliance_CleanRun(t *testing.T) {
	score, err := domain.ComputeCompliance(cleanAggregate(10), domain.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 100.0, score.FileCleanliness)
	assert.Equal(t, 100.0, score.SeverityPenalty)
	assert.Equal(t, 100.0, score.Final)
	assert.False(t, score.FloorApplied)
}

func TestComputeCompliance_WeightedBlend(t *testing.T) {
	agg := &domain.Aggregate{
		BySeverity: map[domain.Severity]int{
			domain.SeverityHigh:   2,
			domain.SeverityMedium: 3,
			domain.SeverityLow:    10,
		},
		ScannedFiles:    20,
		ViolatingFiles:  8,
		TotalViolations: 15,
	}
	cfg := domain.DefaultConfig()

	score, err := domain.ComputeCompliance(agg, cfg)
	require.NoError(t, err)

	assert.Equal(t, 60.0, score.FileCleanliness)
	assert.Equal(t, 45.0, score.SeverityPenalty)
	assert.Equal(t, 55.5, score.Final)
	assert.False(t, score.FloorApplied)
}

// The blend normalizes by the weight sum, so 7/3 behaves exactly like 70/30.
func TestComputeCompliance_WeightsNormalizedBySum(t *testing.T) {
	agg := &domain.Aggregate{
		BySeverity:     map[domain.Severity]int{domain.SeverityHigh: 2, domain.SeverityMedium: 3, domain.SeverityLow: 10},
		ScannedFiles:   20,
		ViolatingFiles: 8,
	}
	cfg := domain.DefaultConfig()
	cfg.Scoring = domain.ScoringWeights{FileWeight: 7, SeverityWeight: 3}

	score, err := domain.ComputeCompliance(agg, cfg)
	require.NoError(t, err)
	assert.Equal(t, 55.5, score.Final)
}

func TestComputeCompliance_FloorUnderExtremeViolations(t *testing.T) {
	agg := &domain.Aggregate{
		BySeverity:     map[domain.Severity]int{domain.SeverityHigh: 500},
		ScannedFiles:   10,
		ViolatingFiles: 10,
	}

	score, err := domain.ComputeCompliance(agg, domain.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 0.0, score.FileCleanliness)
	assert.Equal(t, 0.0, score.SeverityPenalty)
	assert.Equal(t, 20.0, score.Final)
	assert.True(t, score.FloorApplied)
}

func TestComputeCompliance_RoundsToOneDecimal(t *testing.T) {
	agg := &domain.Aggregate{
		BySeverity:     map[domain.Severity]int{},
		ScannedFiles:   3,
		ViolatingFiles: 1,
	}
	cfg := domain.DefaultConfig()
	cfg.Scoring = domain.ScoringWeights{FileWeight: 50, SeverityWeight: 50}

	score, err := domain.ComputeCompliance(agg, cfg)
	require.NoError(t, err)
	// (50×66.666 + 50×100) / 100 = 83.333...
	assert.Equal(t, 83.3, score.Final)
}

func TestComputeCompliance_NoFilesScanned(t *testing.T) {
	_, err := domain.ComputeCompliance(cleanAggregate(0), domain.DefaultConfig())
	assert.ErrorIs(t, err, domain.ErrNoFilesScanned)
}

func TestComputeCompliance_BothWeightsZero(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Scoring = domain.ScoringWeights{}

	_, err := domain.ComputeCompliance(cleanAggregate(5), cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidWeightConfiguration)
}

func TestComputeCompliance_SeverityPenaltyFlooredAtZero(t *testing.T) {
	agg := &domain.Aggregate{
		BySeverity:     map[domain.Severity]int{domain.SeverityHigh: 11},
		ScannedFiles:   100,
		ViolatingFiles: 1,
	}

	score, err := domain.ComputeCompliance(agg, domain.DefaultConfig())
	require.NoError(t, err)

	// 11 high violations deduct 110 points; the sub-score floors at 0
	// instead of going negative.
	assert.Equal(t, 0.0, score.SeverityPenalty)
	assert.Equal(t, 99.0, score.FileCleanliness)
	assert.Equal(t, 69.3, score.Final)
}
