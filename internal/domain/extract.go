package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Extraction strategy names, in chain order from canonical to last resort.
const (
	StrategyDirect    = "direct"
	StrategyLenient   = "lenient"
	StrategyRecompute = "recompute"
)

// ExtractionInput is everything the chain may draw on: the raw report
// artifact plus whatever ground-truth counts the caller already holds. When
// the caller has aggregator counts they take precedence over counts salvaged
// from the artifact.
type ExtractionInput struct {
	Artifact       []byte
	Counts         map[Severity]int
	ScannedFiles   int
	ViolatingFiles int
	Config         Config
}

// PartialExtraction is one strategy's contribution. Nil fields mean the
// strategy had no value to offer and the chain moves on for that field.
type PartialExtraction struct {
	Score           *float64
	TotalViolations *int
}

// ExtractionStrategy attempts one way of recovering the score and violation
// total from a structured report artifact.
type ExtractionStrategy interface {
	Name() string
	Extract(in ExtractionInput) PartialExtraction
}

// Extraction is the recovered (score, total) pair, tagged per field with the
// strategy that produced it so the auditor and gate know the provenance of
// the numbers being judged.
type Extraction struct {
	Score           float64 `json:"score"`
	TotalViolations int     `json:"total_violations"`
	ScoreSource     string  `json:"score_source"`
	TotalSource     string  `json:"total_source"`
}

// Degraded reports whether any field needed a non-canonical strategy.
func (e *Extraction) Degraded() bool {
	return e.ScoreSource != StrategyDirect || e.TotalSource != StrategyDirect
}

// Recomputed reports whether any field was rebuilt from raw counts instead
// of read from the artifact.
func (e *Extraction) Recomputed() bool {
	return e.ScoreSource == StrategyRecompute || e.TotalSource == StrategyRecompute
}

type strategyFunc struct {
	name string
	fn   func(ExtractionInput) PartialExtraction
}

func (s strategyFunc) Name() string { return s.name }

func (s strategyFunc) Extract(in ExtractionInput) PartialExtraction { return s.fn(in) }

// ExtractionChain returns the ordered strategies: direct structured read,
// lenient re-parse, recomputation from raw counts.
func ExtractionChain() []ExtractionStrategy {
	return []ExtractionStrategy{
		strategyFunc{StrategyDirect, extractDirect},
		strategyFunc{StrategyLenient, extractLenient},
		strategyFunc{StrategyRecompute, extractRecompute},
	}
}

// ExtractScore walks the chain in order. A later strategy is consulted for a
// field only when every earlier strategy yielded nothing for it. When the
// chain is exhausted with a field still missing the caller gets
// ExtractionFailedError: a missing score is reported, never defaulted to 100
// or to any value that was not actually computed from some count.
func ExtractScore(in ExtractionInput) (*Extraction, error) {
	var (
		out       Extraction
		haveScore bool
		haveTotal bool
		attempted []string
	)
	for _, s := range ExtractionChain() {
		if haveScore && haveTotal {
			break
		}
		attempted = append(attempted, s.Name())
		p := s.Extract(in)
		if !haveScore && p.Score != nil {
			out.Score = *p.Score
			out.ScoreSource = s.Name()
			haveScore = true
		}
		if !haveTotal && p.TotalViolations != nil {
			out.TotalViolations = *p.TotalViolations
			out.TotalSource = s.Name()
			haveTotal = true
		}
	}
	if !haveScore || !haveTotal {
		var missing []string
		if !haveScore {
			missing = append(missing, "compliance_percentage")
		}
		if !haveTotal {
			missing = append(missing, "total_violations")
		}
		return nil, &ExtractionFailedError{Attempted: attempted, Missing: missing}
	}
	return &out, nil
}

// extractDirect is the canonical path: a strict decode that only yields
// fields present with their expected types and ranges.
func extractDirect(in ExtractionInput) PartialExtraction {
	var probe struct {
		Score *float64 `json:"compliance_percentage"`
		Total *int     `json:"total_violations"`
	}
	if err := json.Unmarshal(in.Artifact, &probe); err != nil {
		return PartialExtraction{}
	}
	var out PartialExtraction
	if probe.Score != nil && *probe.Score >= 0 && *probe.Score <= 100 {
		out.Score = probe.Score
	}
	if probe.Total != nil && *probe.Total >= 0 {
		out.TotalViolations = probe.Total
	}
	return out
}

// extractLenient tolerates partial corruption: trailing garbage after the
// JSON document, alternate key spellings, and numbers encoded as strings.
func extractLenient(in ExtractionInput) PartialExtraction {
	raw := decodeLenient(in.Artifact)
	if raw == nil {
		return PartialExtraction{}
	}
	var out PartialExtraction
	if v, ok := lookupNumber(raw, "compliance_percentage", "compliance_score", "compliance", "score"); ok && v >= 0 && v <= 100 {
		out.Score = &v
	}
	if v, ok := lookupNumber(raw, "total_violations", "violation_count", "violations_total", "total"); ok && v >= 0 && v == float64(int(v)) {
		n := int(v)
		out.TotalViolations = &n
	}
	return out
}

// extractRecompute rebuilds both fields from raw per-severity counts using
// the scoring formula itself. Caller-held aggregator counts are ground
// truth; counts salvaged from the artifact are the fallback. Yields nothing
// it cannot actually compute.
func extractRecompute(in ExtractionInput) PartialExtraction {
	counts := in.Counts
	raw := decodeLenient(in.Artifact)
	if len(counts) == 0 {
		counts = severityCountsFrom(raw)
	}
	if len(counts) == 0 {
		return PartialExtraction{}
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	out := PartialExtraction{TotalViolations: &total}

	scanned := in.ScannedFiles
	violating := in.ViolatingFiles
	if scanned == 0 && raw != nil {
		if v, ok := lookupNumber(raw, "files_scanned", "scanned_files"); ok {
			scanned = int(v)
		}
	}
	if violating == 0 && raw != nil {
		if v, ok := lookupNumber(raw, "files_with_violations", "violating_files"); ok {
			violating = int(v)
		} else if byFile, ok := raw["violations_by_file"].(map[string]any); ok {
			violating = len(byFile)
		}
	}
	agg := &Aggregate{
		BySeverity:      counts,
		ScannedFiles:    scanned,
		ViolatingFiles:  violating,
		TotalViolations: total,
	}
	if score, err := ComputeCompliance(agg, in.Config); err == nil {
		out.Score = &score.Final
	}
	return out
}

// ArtifactMethod reads the analysis method an artifact claims for itself,
// tolerating the same corruption the lenient strategy tolerates. An artifact
// with no recognizable claim counts as PRIMARY; extraction degradation is
// judged separately by the caller.
func ArtifactMethod(artifact []byte) AnalysisMethod {
	raw := decodeLenient(artifact)
	if raw == nil {
		return MethodPrimary
	}
	v, ok := raw["analysis_method"].(string)
	if !ok {
		return MethodPrimary
	}
	switch AnalysisMethod(strings.ToUpper(strings.TrimSpace(v))) {
	case MethodFallback:
		return MethodFallback
	case MethodPrimaryInconsistent:
		return MethodPrimaryInconsistent
	default:
		return MethodPrimary
	}
}

// decodeLenient decodes the first JSON object in the artifact, retrying with
// the document truncated at the last closing brace when the initial decode
// fails. Returns nil when no object can be recovered.
func decodeLenient(artifact []byte) map[string]any {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(artifact))
	if err := dec.Decode(&raw); err == nil {
		return raw
	}
	if i := bytes.LastIndexByte(artifact, '}'); i >= 0 {
		if err := json.Unmarshal(artifact[:i+1], &raw); err == nil {
			return raw
		}
	}
	return nil
}

// lookupNumber finds the first of the candidate keys present in the decoded
// object, matching keys case-insensitively and ignoring underscores, and
// coerces its value to a float.
func lookupNumber(raw map[string]any, keys ...string) (float64, bool) {
	normalized := make(map[string]any, len(raw))
	for k, v := range raw {
		normalized[normalizeKey(k)] = v
	}
	for _, key := range keys {
		v, ok := normalized[normalizeKey(key)]
		if !ok {
			continue
		}
		if f, ok := asFloat(v); ok {
			return f, true
		}
	}
	return 0, false
}

func normalizeKey(k string) string {
	k = strings.ToLower(k)
	k = strings.ReplaceAll(k, "_", "")
	return strings.ReplaceAll(k, "-", "")
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// severityCountsFrom salvages a per-severity count map from a decoded
// artifact. Unknown severity spellings are normalized the same way report
// parsing normalizes them.
func severityCountsFrom(raw map[string]any) map[Severity]int {
	if raw == nil {
		return nil
	}
	bySev, ok := raw["violations_by_severity"].(map[string]any)
	if !ok {
		return nil
	}
	counts := make(map[Severity]int, len(bySev))
	for k, v := range bySev {
		f, ok := asFloat(v)
		if !ok || f < 0 {
			continue
		}
		counts[ParseSeverity(k)] += int(f)
	}
	if len(counts) == 0 {
		return nil
	}
	return counts
}
