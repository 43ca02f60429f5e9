package domain

import "fmt"

// Gate exit codes, mapped onto the process exit status by the CLI.
const (
	GateExitPass      = 0
	GateExitNumeric   = 1
	GateExitIntegrity = 2
)

// EvaluateGate compares a report against the configured threshold.
//
// The skip flag disables enforcement, not observability: a skipped gate
// passes unconditionally but still carries the report's warnings. Under
// RequirePrimary a report whose numbers did not come from a consistent
// primary run fails on integrity grounds regardless of the score, and that
// failure stays distinguishable from a numeric shortfall.
func EvaluateGate(report *ComplianceReport, cfg GateConfig) GateVerdict {
	v := GateVerdict{
		Score:       report.CompliancePercentage,
		Threshold:   cfg.Threshold,
		FailureKind: FailureNone,
		Warnings:    report.Warnings,
	}

	if cfg.Skip {
		v.Passed = true
		v.Reason = "gate skipped by configuration"
		return v
	}

	if cfg.RequirePrimary && report.AnalysisMethod != MethodPrimary {
		v.FailureKind = FailureIntegrity
		v.Reason = fmt.Sprintf("analysis method is %s but the gate requires a consistent primary run",
			report.AnalysisMethod)
		return v
	}

	if report.CompliancePercentage >= cfg.Threshold {
		v.Passed = true
		v.Reason = fmt.Sprintf("compliance %.1f%% meets threshold %.1f%%",
			report.CompliancePercentage, cfg.Threshold)
		return v
	}

	v.FailureKind = FailureNumeric
	v.Reason = fmt.Sprintf("compliance %.1f%% below threshold %.1f%%",
		report.CompliancePercentage, cfg.Threshold)
	return v
}

// ExitCode maps a verdict onto the process exit convention: 0 pass,
// 1 numeric failure, 2 integrity failure.
func (v GateVerdict) ExitCode() int {
	switch {
	case v.Passed:
		return GateExitPass
	case v.FailureKind == FailureIntegrity:
		return GateExitIntegrity
	default:
		return GateExitNumeric
	}
}
