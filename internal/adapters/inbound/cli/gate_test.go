package cli_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mulegate/mulegate/internal/adapters/inbound/cli"
	"github.com/mulegate/mulegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeArtifact puts a report artifact where the gate probes by default.
func writeArtifact(t *testing.T, dir, content string) {
	t.Helper()
	writeFixtureFile(t, dir, ".mulegate/report.json", content)
}

func TestGateCommand_Pass(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, `{"compliance_percentage": 92.5, "total_violations": 2, "analysis_method": "PRIMARY"}`)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"gate", dir})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "GATE PASSED")
}

func TestGateCommand_AfterReview(t *testing.T) {
	dir := writeFixtureProject(t, emptyReport)

	review := cli.NewRootCmdForTest()
	review.SetOut(new(bytes.Buffer))
	review.SetArgs([]string{"review", dir})
	require.NoError(t, review.Execute())

	gate := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	gate.SetOut(buf)
	gate.SetArgs([]string{"gate", dir})
	require.NoError(t, gate.Execute())

	assert.Contains(t, buf.String(), "GATE PASSED")
}

func TestGateCommand_NumericFailureExitCode(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, `{"compliance_percentage": 55.5, "total_violations": 15, "analysis_method": "PRIMARY"}`)

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"gate", dir})
	err := cmd.Execute()
	require.Error(t, err)

	var exitErr *cli.ExitCodeError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, domain.GateExitNumeric, exitErr.Code)
}

func TestGateCommand_IntegrityFailureExitCode(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, `{"compliance_percentage": 95.0, "total_violations": 1, "analysis_method": "FALLBACK"}`)

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"gate", dir, "--require-primary"})
	err := cmd.Execute()
	require.Error(t, err)

	var exitErr *cli.ExitCodeError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, domain.GateExitIntegrity, exitErr.Code)
}

func TestGateCommand_UnextractableArtifactExitsIntegrity(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, `{"status": "ok"}`)

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"gate", dir})
	err := cmd.Execute()
	require.Error(t, err)

	var exitErr *cli.ExitCodeError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, domain.GateExitIntegrity, exitErr.Code)
}

func TestGateCommand_ThresholdOverride(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, `{"compliance_percentage": 55.5, "total_violations": 15}`)

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"gate", dir, "--threshold", "50"})
	assert.NoError(t, cmd.Execute())
}

func TestGateCommand_SkipAlwaysPasses(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, `{"compliance_percentage": 10.0, "total_violations": 99}`)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"gate", dir, "--skip"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "skipped")
}

func TestGateCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, `{"compliance_percentage": 92.5, "total_violations": 2}`)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"gate", dir, "--json"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), `"passed": true`)
	assert.Contains(t, buf.String(), `"extraction"`)
}

func TestGateCommand_MissingArtifact(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"gate", t.TempDir()})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading report artifact")
}
