package domain

// Severity filters restrict which tiers reach aggregation.
const (
	FilterAll      = "all"
	FilterHigh     = "high"
	FilterMediumUp = "medium+"
	FilterLowUp    = "low+"
)

// Analysis modes restrict violations to rule categories.
const (
	ModeComprehensive = "comprehensive"
	ModeSecurity      = "security"
	ModePerformance   = "performance"
	ModeCustom        = "custom"
)

func ValidFilter(f string) bool {
	switch f {
	case FilterAll, FilterHigh, FilterMediumUp, FilterLowUp:
		return true
	}
	return false
}

func ValidMode(m string) bool {
	switch m {
	case ModeComprehensive, ModeSecurity, ModePerformance, ModeCustom:
		return true
	}
	return false
}

// FilterBySeverity keeps the violations whose tier the filter admits. The
// empty filter and FilterAll pass everything through unchanged.
func FilterBySeverity(violations []ViolationRecord, filter string) []ViolationRecord {
	if filter == "" || filter == FilterAll {
		return violations
	}
	admitted := map[Severity]bool{SeverityHigh: true}
	switch filter {
	case FilterMediumUp:
		admitted[SeverityMedium] = true
	case FilterLowUp:
		admitted[SeverityMedium] = true
		admitted[SeverityLow] = true
	}
	out := make([]ViolationRecord, 0, len(violations))
	for _, v := range violations {
		if admitted[v.Severity] {
			out = append(out, v)
		}
	}
	return out
}

// FilterByCategories keeps the violations whose rule falls into one of the
// admitted categories. The categorize func is injected so this package stays
// free of the rule knowledge base. A nil or empty category list admits
// everything.
func FilterByCategories(violations []ViolationRecord, categories []string, categorize func(string) string) []ViolationRecord {
	if len(categories) == 0 || categorize == nil {
		return violations
	}
	admitted := make(map[string]bool, len(categories))
	for _, c := range categories {
		admitted[c] = true
	}
	out := make([]ViolationRecord, 0, len(violations))
	for _, v := range violations {
		if admitted[categorize(v.RuleID)] {
			out = append(out, v)
		}
	}
	return out
}
