package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/mulegate/mulegate/internal/adapters/outbound/config"
	"github.com/mulegate/mulegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mulegate.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
scoring:
  file_weight: 60
  severity_weight: 40
gate:
  threshold: 80
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.InDelta(t, 60, cfg.Scoring.FileWeight, 0.001)
	assert.InDelta(t, 40, cfg.Scoring.SeverityWeight, 0.001)
	assert.InDelta(t, 80, cfg.Gate.Threshold, 0.001)
}

func TestYAMLLoader_PartialOverrideKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
severity_weights:
  high: 15
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	// Only high changes; the rest keeps the shipped defaults.
	assert.InDelta(t, 15, cfg.Severity.High, 0.001)
	assert.InDelta(t, 5, cfg.Severity.Medium, 0.001)
	assert.InDelta(t, 70, cfg.Scoring.FileWeight, 0.001)
	assert.InDelta(t, 20, cfg.MinimumScore, 0.001)
}

func TestYAMLLoader_ExplicitZeroIsKept(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
scoring:
  file_weight: 0
  severity_weight: 100
minimum_score: 0
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Zero(t, cfg.Scoring.FileWeight)
	assert.InDelta(t, 100, cfg.Scoring.SeverityWeight, 0.001)
	assert.Zero(t, cfg.MinimumScore)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .mulegate.yaml")
}

func TestYAMLLoader_BothWeightsZeroRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
scoring:
  file_weight: 0
  severity_weight: 0
`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidWeightConfiguration)
}

func TestYAMLLoader_GateFlags(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
gate:
  skip: true
  require_primary: true
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Gate.Skip)
	assert.True(t, cfg.Gate.RequirePrimary)
	assert.InDelta(t, 75, cfg.Gate.Threshold, 0.001)
}

func TestYAMLLoader_FilterAndMode(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
filter: medium+
mode: security
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.FilterMediumUp, cfg.Filter)
	assert.Equal(t, domain.ModeSecurity, cfg.Mode)
}

func TestYAMLLoader_UnknownFilterRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `filter: extreme`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter")
}

func TestYAMLLoader_CustomModeNeedsCategories(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `mode: custom`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)

	writeConfig(t, dir, `
mode: custom
custom_categories:
  - Security
  - Logging
`)
	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Security", "Logging"}, cfg.CustomCategories)
}

func TestYAMLLoader_ExplicitFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("gate:\n  threshold: 85\n"), 0644))
	loader := appconfig.NewWithFile(cfgPath)

	cfg, err := loader.Load(t.TempDir())
	require.NoError(t, err)
	assert.InDelta(t, 85, cfg.Gate.Threshold, 0.001)
}

func TestYAMLLoader_ExplicitFileMustExist(t *testing.T) {
	// Unlike the probe, a file the user named has to be there.
	loader := appconfig.NewWithFile(filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := loader.Load(t.TempDir())
	assert.Error(t, err)
}

func TestYAMLLoader_ExplicitFileWinsOverProbe(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "gate:\n  threshold: 60\n")

	cfgPath := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("gate:\n  threshold: 95\n"), 0644))

	cfg, err := appconfig.NewWithFile(cfgPath).Load(dir)
	require.NoError(t, err)
	assert.InDelta(t, 95, cfg.Gate.Threshold, 0.001)
}

func TestYAMLLoader_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
gate:
  threshold: 80
`)
	t.Setenv("MULEGATE_THRESHOLD", "90")
	t.Setenv("MULEGATE_HIGH_WEIGHT", "12")
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.InDelta(t, 90, cfg.Gate.Threshold, 0.001)
	assert.InDelta(t, 12, cfg.Severity.High, 0.001)
}

func TestYAMLLoader_MalformedEnvValueIgnored(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MULEGATE_MIN_SCORE", "not-a-number")
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.InDelta(t, 20, cfg.MinimumScore, 0.001)
}

func TestYAMLLoader_EnvOverrideCanFailValidation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MULEGATE_THRESHOLD", "150")
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
}
