package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mulegate/mulegate/internal/domain"
)

func sampleViolations() []domain.ViolationRecord {
	return []domain.ViolationRecord{
		{Severity: domain.SeverityHigh, RuleID: "AvoidSQLInjection", FilePath: "a.xml"},
		{Severity: domain.SeverityMedium, RuleID: "ErrorHandlerExists", FilePath: "b.xml"},
		{Severity: domain.SeverityLow, RuleID: "AvoidEmptyFlows", FilePath: "c.xml"},
		{Severity: domain.SeverityInfo, RuleID: "RequireDocumentationForFlows", FilePath: "d.xml"},
	}
}

func TestFilterBySeverity(t *testing.T) {
	tests := []struct {
		filter string
		want   int
	}{
		{domain.FilterAll, 4},
		{"", 4},
		{domain.FilterHigh, 1},
		{domain.FilterMediumUp, 2},
		{domain.FilterLowUp, 3},
	}
	for _, tt := range tests {
		got := domain.FilterBySeverity(sampleViolations(), tt.filter)
		assert.Len(t, got, tt.want, "filter %q", tt.filter)
	}
}

func TestFilterBySeverity_KeepsOrder(t *testing.T) {
	got := domain.FilterBySeverity(sampleViolations(), domain.FilterMediumUp)
	assert.Equal(t, "AvoidSQLInjection", got[0].RuleID)
	assert.Equal(t, "ErrorHandlerExists", got[1].RuleID)
}

func TestFilterByCategories(t *testing.T) {
	categorize := func(ruleID string) string {
		if ruleID == "AvoidSQLInjection" {
			return "Security"
		}
		return "Code Quality"
	}

	got := domain.FilterByCategories(sampleViolations(), []string{"Security"}, categorize)
	assert.Len(t, got, 1)
	assert.Equal(t, "AvoidSQLInjection", got[0].RuleID)

	// no category restriction admits everything
	got = domain.FilterByCategories(sampleViolations(), nil, categorize)
	assert.Len(t, got, 4)
}

func TestValidFilterAndMode(t *testing.T) {
	assert.True(t, domain.ValidFilter(domain.FilterAll))
	assert.True(t, domain.ValidFilter(domain.FilterMediumUp))
	assert.False(t, domain.ValidFilter("everything"))

	assert.True(t, domain.ValidMode(domain.ModeComprehensive))
	assert.True(t, domain.ValidMode(domain.ModeSecurity))
	assert.False(t, domain.ValidMode("strict"))
}
