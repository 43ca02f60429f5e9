package domain

import "fmt"

// ConsistencyInput carries the two independently sourced violation counts
// plus the signals the auditor needs to classify a run. SelfReported comes
// from the analyzer's own process log; Parsed is what the report parser
// actually produced. Keeping the channels named and separate preserves
// provenance.
type ConsistencyInput struct {
	SelfReported int
	Parsed       int
	FallbackUsed bool
	Baseline     *int
}

// AuditConsistency classifies the agreement between what the analyzer said
// it found and what was parsed from its structured report.
//
// A self-report of zero alongside parsed violations is impossible when the
// report came from the same run, so that combination is a bookkeeping defect
// and fails hard. Equal zero counts while the pinned baseline expects
// violations raise ZERO_SUSPECT, a warning rather than a failure. A run
// whose counts came from the fallback analyzer is always FALLBACK_USED,
// never trust-equivalent to a consistent primary run.
func AuditConsistency(in ConsistencyInput) (ConsistencyState, error) {
	if in.FallbackUsed {
		return ConsistencyFallbackUsed, nil
	}
	if in.SelfReported == 0 && in.Parsed > 0 {
		return "", &MalformedScanResultError{
			Detail: fmt.Sprintf("analyzer self-reported 0 violations but %d were parsed", in.Parsed),
		}
	}
	if in.SelfReported == in.Parsed {
		if in.Parsed == 0 && in.Baseline != nil && *in.Baseline > 0 {
			return ConsistencyZeroSuspect, nil
		}
		return ConsistencyConsistent, nil
	}
	return ConsistencyInconsistent, nil
}

// ConsistencyWarning renders the caution a non-consistent state adds to the
// report. Consistent runs produce no warning.
func ConsistencyWarning(state ConsistencyState, in ConsistencyInput) string {
	switch state {
	case ConsistencyInconsistent:
		return fmt.Sprintf("analyzer reported %d violations but %d were parsed; report parsing defect suspected",
			in.SelfReported, in.Parsed)
	case ConsistencyZeroSuspect:
		baseline := 0
		if in.Baseline != nil {
			baseline = *in.Baseline
		}
		return fmt.Sprintf("analyzer reported zero violations but the pinned baseline has %d; verify the analyzer ran",
			baseline)
	case ConsistencyFallbackUsed:
		return "primary analyzer unavailable; counts come from the lower-fidelity fallback analysis"
	default:
		return ""
	}
}
