package rules

import (
	"strings"
	"testing"
)

func TestPC001_MustBeObject(t *testing.T) {
	rule := NewPC001()

	if violations := rule.Check(parse(t, `{"x_pc": {"indexBase": 0}}`)); len(violations) > 0 {
		t.Errorf("expected no violation for object x_pc, got %v", violations)
	}
	if violations := rule.Check(parse(t, `{}`)); len(violations) > 0 {
		t.Errorf("expected no violation without x_pc, got %v", violations)
	}
	if violations := rule.Check(parse(t, `{"x_pc": [1, 2]}`)); len(violations) != 1 {
		t.Errorf("expected violation for array x_pc, got %v", violations)
	}
}

func TestPC002_IndexBase(t *testing.T) {
	rule := NewPC002()

	tests := []struct {
		name          string
		input         string
		expectViolate bool
	}{
		{
			name:          "zero base",
			input:         `{"x_pc": {"indexBase": 0}}`,
			expectViolate: false,
		},
		{
			name:          "one base",
			input:         `{"x_pc": {"indexBase": 1}}`,
			expectViolate: false,
		},
		{
			name:          "absent is not this rule's concern",
			input:         `{"x_pc": {}}`,
			expectViolate: false,
		},
		{
			name:          "out of range",
			input:         `{"x_pc": {"indexBase": 2}}`,
			expectViolate: true,
		},
		{
			name:          "not an integer",
			input:         `{"x_pc": {"indexBase": "one"}}`,
			expectViolate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := rule.Check(parse(t, tt.input))
			if (len(violations) > 0) != tt.expectViolate {
				t.Errorf("Check() violation=%v, want=%v", len(violations) > 0, tt.expectViolate)
			}
		})
	}
}

func TestPC003_RecommendedFields(t *testing.T) {
	rule := NewPC003()

	// Fully specified: nothing to recommend.
	p := parse(t, `{"x_pc": {"indexBase": 0, "count": 128}}`)
	if violations := rule.Check(p); len(violations) > 0 {
		t.Errorf("expected no violations, got %v", violations)
	}

	// Names stand in for count.
	p = parse(t, `{"x_pc": {"indexBase": 1, "names": ["A", "B"]}}`)
	if violations := rule.Check(p); len(violations) > 0 {
		t.Errorf("expected no violations with names, got %v", violations)
	}

	// Empty object: both recommendations fire.
	p = parse(t, `{"x_pc": {}}`)
	violations := rule.Check(p)
	if len(violations) != 2 {
		t.Fatalf("Check() = %v, want 2 violations", violations)
	}
	if !strings.Contains(violations[0].Message, "indexBase") {
		t.Errorf("first violation should mention indexBase, got %q", violations[0].Message)
	}
	if !strings.Contains(violations[1].Message, "count") {
		t.Errorf("second violation should mention count, got %q", violations[1].Message)
	}
}

func TestPC004_BankSelect(t *testing.T) {
	rule := NewPC004()

	tests := []struct {
		name           string
		input          string
		wantViolations int
		wantSuggestion string
	}{
		{
			name:           "valid enum value",
			input:          `{"x_pc": {"bankSelect": "cc0+cc32"}}`,
			wantViolations: 0,
		},
		{
			name:           "absent",
			input:          `{"x_pc": {}}`,
			wantViolations: 0,
		},
		{
			name:           "legacy true suggests cc0",
			input:          `{"x_pc": {"bankSelect": true}}`,
			wantViolations: 1,
			wantSuggestion: `"cc0"`,
		},
		{
			name:           "legacy false suggests none",
			input:          `{"x_pc": {"bankSelect": false}}`,
			wantViolations: 1,
			wantSuggestion: `"none"`,
		},
		{
			name:           "unknown string",
			input:          `{"x_pc": {"bankSelect": "cc1"}}`,
			wantViolations: 1,
		},
		{
			name:           "non-string non-bool",
			input:          `{"x_pc": {"bankSelect": 32}}`,
			wantViolations: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := rule.Check(parse(t, tt.input))
			if len(violations) != tt.wantViolations {
				t.Fatalf("Check() = %v, want %d violations", violations, tt.wantViolations)
			}
			if tt.wantSuggestion != "" && !strings.Contains(violations[0].Suggestion, tt.wantSuggestion) {
				t.Errorf("suggestion %q should contain %q", violations[0].Suggestion, tt.wantSuggestion)
			}
		})
	}
}

func TestPC005_EnumerationShape(t *testing.T) {
	rule := NewPC005()

	tests := []struct {
		name           string
		input          string
		wantViolations int
	}{
		{
			name:           "integer count and array names",
			input:          `{"x_pc": {"count": 128, "names": ["A"]}}`,
			wantViolations: 0,
		},
		{
			name:           "non-integer count",
			input:          `{"x_pc": {"count": "many"}}`,
			wantViolations: 1,
		},
		{
			name:           "non-array names",
			input:          `{"x_pc": {"names": "A,B,C"}}`,
			wantViolations: 1,
		},
		{
			name:           "both wrong",
			input:          `{"x_pc": {"count": 1.5, "names": {}}}`,
			wantViolations: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := rule.Check(parse(t, tt.input))
			if len(violations) != tt.wantViolations {
				t.Errorf("Check() = %v, want %d violations", violations, tt.wantViolations)
			}
		})
	}
}
