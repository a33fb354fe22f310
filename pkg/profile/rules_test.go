package profile

import (
	"strings"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{Severity(99), "unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.expected {
				t.Errorf("Severity.String() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestViolation_String(t *testing.T) {
	tests := []struct {
		name     string
		v        Violation
		contains []string
	}{
		{
			name: "basic violation",
			v: Violation{
				RuleID:   "TEST-001",
				Severity: SeverityError,
				Message:  "test message",
			},
			contains: []string{"TEST-001", "error", "test message"},
		},
		{
			name: "with keys",
			v: Violation{
				RuleID:   "TEST-002",
				Severity: SeverityWarning,
				Message:  "shape problem",
				Keys:     []string{"receives", "transmits"},
			},
			contains: []string{"TEST-002", "warning", "receives", "transmits"},
		},
		{
			name: "with suggestion",
			v: Violation{
				RuleID:     "TEST-003",
				Severity:   SeverityInfo,
				Message:    "consider a name",
				Suggestion: `add "name"`,
			},
			contains: []string{"TEST-003", "info", `add "name"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.v.String()
			for _, substr := range tt.contains {
				if !strings.Contains(s, substr) {
					t.Errorf("Violation.String() = %q, expected to contain %q", s, substr)
				}
			}
		})
	}
}

func TestHasErrors(t *testing.T) {
	tests := []struct {
		name       string
		violations []Violation
		expected   bool
	}{
		{
			name:       "empty",
			violations: nil,
			expected:   false,
		},
		{
			name: "only warnings",
			violations: []Violation{
				{Severity: SeverityWarning},
				{Severity: SeverityInfo},
			},
			expected: false,
		},
		{
			name: "has error",
			violations: []Violation{
				{Severity: SeverityWarning},
				{Severity: SeverityError},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasErrors(tt.violations); got != tt.expected {
				t.Errorf("HasErrors() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFilterBySeverity(t *testing.T) {
	violations := []Violation{
		{RuleID: "A", Severity: SeverityError},
		{RuleID: "B", Severity: SeverityWarning},
		{RuleID: "C", Severity: SeverityInfo},
	}

	errorsOnly := FilterBySeverity(violations, SeverityError)
	if len(errorsOnly) != 1 || errorsOnly[0].RuleID != "A" {
		t.Errorf("FilterBySeverity(error) = %v, want [A]", errorsOnly)
	}

	withWarnings := FilterBySeverity(violations, SeverityWarning)
	if len(withWarnings) != 2 {
		t.Errorf("FilterBySeverity(warning) = %v, want 2 entries", withWarnings)
	}

	all := FilterBySeverity(violations, SeverityInfo)
	if len(all) != 3 {
		t.Errorf("FilterBySeverity(info) = %v, want all 3", all)
	}
}

type stubRule struct {
	*BaseRule
	violations []Violation
}

func (r *stubRule) Check(p *Profile) []Violation {
	return r.violations
}

func TestRuleRegistry(t *testing.T) {
	registry := NewRuleRegistry()

	ruleA := &stubRule{
		BaseRule: NewBaseRule("A-001", "rule a", "alpha", SeverityError),
		violations: []Violation{
			{RuleID: "A-001", Severity: SeverityError, Message: "a failed"},
		},
	}
	ruleB := &stubRule{
		BaseRule: NewBaseRule("B-001", "rule b", "beta", SeverityWarning),
	}
	registry.Register(ruleA)
	registry.Register(ruleB)

	if registry.Count() != 2 || registry.EnabledCount() != 2 {
		t.Errorf("Count() = %d, EnabledCount() = %d, want 2 each", registry.Count(), registry.EnabledCount())
	}

	p := &Profile{Doc: NewDocument()}
	if got := registry.RunRules(p); len(got) != 1 {
		t.Errorf("RunRules() = %v, want 1 violation", got)
	}

	registry.Disable("A-001")
	if got := registry.RunRules(p); len(got) != 0 {
		t.Errorf("RunRules() after disable = %v, want none", got)
	}

	registry.Enable("A-001")
	registry.SetSeverity("A-001", SeverityInfo)
	got := registry.RunRules(p)
	if len(got) != 1 || got[0].Severity != SeverityInfo {
		t.Errorf("RunRules() = %v, want the override severity applied", got)
	}
}

func TestRuleRegistry_Categories(t *testing.T) {
	registry := NewRuleRegistry()
	registry.Register(&stubRule{BaseRule: NewBaseRule("A-001", "a", "alpha", SeverityError)})
	registry.Register(&stubRule{BaseRule: NewBaseRule("A-002", "a2", "alpha", SeverityError)})
	registry.Register(&stubRule{BaseRule: NewBaseRule("B-001", "b", "beta", SeverityError)})

	cats := registry.Categories()
	if len(cats) != 2 || cats[0] != "alpha" || cats[1] != "beta" {
		t.Errorf("Categories() = %v, want [alpha beta]", cats)
	}

	if got := registry.RulesByCategory("alpha"); len(got) != 2 {
		t.Errorf("RulesByCategory(alpha) = %d rules, want 2", len(got))
	}

	registry.DisableCategory("alpha")
	if registry.EnabledCount() != 1 {
		t.Errorf("EnabledCount() = %d after DisableCategory, want 1", registry.EnabledCount())
	}
	registry.EnableCategory("alpha")
	if registry.EnabledCount() != 3 {
		t.Errorf("EnabledCount() = %d after EnableCategory, want 3", registry.EnabledCount())
	}
}
