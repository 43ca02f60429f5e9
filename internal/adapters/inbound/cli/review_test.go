package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mulegate/mulegate/internal/adapters/inbound/cli"
	"github.com/mulegate/mulegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emptyReport = `<?xml version="1.0" encoding="UTF-8"?>
<pmd xmlns="http://pmd.sourceforge.net/report/2.0.0"></pmd>
`

const singleFindingReport = `<?xml version="1.0" encoding="UTF-8"?>
<pmd xmlns="http://pmd.sourceforge.net/report/2.0.0">
  <file name="src/main/mule/api.xml">
    <violation beginline="4" rule="AvoidLoggingPayload" ruleset="mule-quality" priority="1">payload logged</violation>
  </file>
</pmd>
`

func writeFixtureFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// writeFixtureProject lays out a small Mule project with the given analyzer
// report at the default probe location.
func writeFixtureProject(t *testing.T, report string) string {
	t.Helper()
	dir := t.TempDir()
	flow := `<mule>
  <flow name="mainFlow">
    <logger level="INFO" message="request received"/>
  </flow>
  <error-handler name="globalHandler"/>
</mule>
`
	writeFixtureFile(t, dir, "src/main/mule/api.xml", flow)
	writeFixtureFile(t, dir, "src/main/mule/orders.xml", flow)
	writeFixtureFile(t, dir, "target/pmd-report.xml", report)
	return dir
}

func TestReviewCommand_DefaultTUI(t *testing.T) {
	dir := writeFixtureProject(t, emptyReport)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"review", dir})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "mulegate")
	assert.Contains(t, buf.String(), "Compliance Report")
	assert.Contains(t, buf.String(), "100.0%")
}

func TestReviewCommand_JSON(t *testing.T) {
	dir := writeFixtureProject(t, emptyReport)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"review", dir, "--json"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), `"compliance_percentage"`)
	assert.Contains(t, buf.String(), `"analysis_method"`)
	assert.Contains(t, buf.String(), `"violations"`)
}

func TestReviewCommand_Badge(t *testing.T) {
	dir := writeFixtureProject(t, emptyReport)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"review", dir, "--badge"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "img.shields.io")
	assert.Contains(t, buf.String(), "brightgreen")
}

func TestReviewCommand_Violations(t *testing.T) {
	dir := writeFixtureProject(t, singleFindingReport)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"review", dir, "--violations"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "AvoidLoggingPayload")
	assert.Contains(t, buf.String(), "src/main/mule/api.xml")
}

func TestReviewCommand_WritesOutputFile(t *testing.T) {
	dir := writeFixtureProject(t, emptyReport)
	out := filepath.Join(t.TempDir(), "report.json")

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"review", dir, "--output", out})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"compliance_percentage"`)
}

// writeFallbackProject lays out a project with no analyzer report, forcing
// the heuristic fallback.
func writeFallbackProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	flow := `<mule>
  <flow name="mainFlow">
    <logger level="INFO" message="request received"/>
  </flow>
  <error-handler name="globalHandler"/>
</mule>
`
	writeFixtureFile(t, dir, "src/main/mule/api.xml", flow)
	writeFixtureFile(t, dir, "src/main/mule/orders.xml", flow)
	return dir
}

func TestReviewCommand_CIGatePasses(t *testing.T) {
	dir := writeFixtureProject(t, emptyReport)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"review", dir, "--ci"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "GATE PASSED")
}

func TestReviewCommand_CIBelowThresholdExitsNumeric(t *testing.T) {
	// 1 of 2 files violating with one HIGH finding scores 62.0, below the
	// default threshold of 75.
	dir := writeFixtureProject(t, singleFindingReport)

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"review", dir, "--ci"})
	err := cmd.Execute()
	require.Error(t, err)

	var exitErr *cli.ExitCodeError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, domain.GateExitNumeric, exitErr.Code)
}

func TestReviewCommand_CIMinOverride(t *testing.T) {
	dir := writeFixtureProject(t, singleFindingReport)

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"review", dir, "--ci", "--min", "50"})
	assert.NoError(t, cmd.Execute())
}

func TestReviewCommand_CIRequirePrimaryRejectsFallback(t *testing.T) {
	dir := writeFallbackProject(t)

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"review", dir, "--ci", "--require-primary"})
	err := cmd.Execute()
	require.Error(t, err)

	var exitErr *cli.ExitCodeError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, domain.GateExitIntegrity, exitErr.Code)
}

func TestReviewCommand_CISkipGate(t *testing.T) {
	dir := writeFixtureProject(t, singleFindingReport)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"review", dir, "--ci", "--skip-gate"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "skipped")
}

func TestReviewCommand_NoHistory(t *testing.T) {
	dir := writeFixtureProject(t, emptyReport)
	historyPath := filepath.Join(dir, ".mulegate", "history", "runs.json")

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"review", dir, "--no-history"})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(historyPath)
	assert.True(t, os.IsNotExist(err), "history should not be recorded")

	cmd = cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"review", dir})
	require.NoError(t, cmd.Execute())

	_, err = os.Stat(historyPath)
	assert.NoError(t, err, "history should be recorded without --no-history")
}

func TestReviewCommand_UpdateBaselinePinsFallbackRun(t *testing.T) {
	dir := writeFallbackProject(t)
	baselinePath := filepath.Join(dir, ".mulegate", "cache", "baseline.json")

	// A fallback run is untrusted, so the baseline is left alone.
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"review", dir})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(baselinePath)
	require.True(t, os.IsNotExist(err), "fallback run should not advance the baseline")

	cmd = cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"review", dir, "--update-baseline"})
	require.NoError(t, cmd.Execute())

	_, err = os.Stat(baselinePath)
	assert.NoError(t, err, "--update-baseline should pin the baseline")
}

func TestReviewCommand_ExplicitConfigFile(t *testing.T) {
	dir := writeFixtureProject(t, singleFindingReport)
	cfgPath := filepath.Join(t.TempDir(), "relaxed.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("gate:\n  threshold: 50\n"), 0644))

	// 62.0 fails the default threshold but passes the relaxed one.
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"review", dir, "--ci", "--config", cfgPath})
	assert.NoError(t, cmd.Execute())
}

func TestReviewCommand_UnknownFilter(t *testing.T) {
	dir := writeFixtureProject(t, emptyReport)

	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"review", dir, "--filter", "bogus"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter")
}

func TestReviewCommand_EmptyProjectFails(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"review", t.TempDir()})
	assert.Error(t, cmd.Execute())
}
