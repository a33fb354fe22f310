package rules

import (
	"strings"
	"testing"
)

func TestCC001_AliasKeys(t *testing.T) {
	rule := NewCC001()

	tests := []struct {
		name          string
		input         string
		expectViolate bool
	}{
		{
			name:          "canonical key",
			input:         `{"controlChangeCommands": []}`,
			expectViolate: false,
		},
		{
			name:          "controls alias",
			input:         `{"controls": []}`,
			expectViolate: true,
		},
		{
			name:          "controlChangeMessages alias",
			input:         `{"controlChangeMessages": []}`,
			expectViolate: true,
		},
		{
			name:          "no table at all",
			input:         `{}`,
			expectViolate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := rule.Check(parse(t, tt.input))
			if (len(violations) > 0) != tt.expectViolate {
				t.Errorf("Check() violation=%v, want=%v", len(violations) > 0, tt.expectViolate)
			}
			if tt.expectViolate && !strings.Contains(violations[0].Suggestion, "controlChangeCommands") {
				t.Errorf("suggestion should name the canonical key, got %q", violations[0].Suggestion)
			}
		})
	}
}

func TestCC002_TableShape(t *testing.T) {
	rule := NewCC002()

	tests := []struct {
		name           string
		input          string
		wantViolations int
	}{
		{
			name:           "array of objects",
			input:          `{"controlChangeCommands": [{"controlChangeNumber": 1}]}`,
			wantViolations: 0,
		},
		{
			name:           "table not an array",
			input:          `{"controlChangeCommands": {"controlChangeNumber": 1}}`,
			wantViolations: 1,
		},
		{
			name:           "non-object entries",
			input:          `{"controlChangeCommands": [1, "x", {"controlChangeNumber": 1}]}`,
			wantViolations: 2,
		},
		{
			name:           "alias key checked too",
			input:          `{"controls": "nope"}`,
			wantViolations: 1,
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

func TestCC003_NumberRange(t *testing.T) {
	rule := NewCC003()

	tests := []struct {
		name           string
		input          string
		wantViolations int
		wantContains   string
	}{
		{
			name:           "numbers in range",
			input:          `{"controlChangeCommands": [{"controlChangeNumber": 0}, {"controlChangeNumber": 127}]}`,
			wantViolations: 0,
		},
		{
			name:           "missing number",
			input:          `{"controlChangeCommands": [{"name": "Mix"}]}`,
			wantViolations: 1,
			wantContains:   "missing controlChangeNumber",
		},
		{
			name:           "non-integer number",
			input:          `{"controlChangeCommands": [{"controlChangeNumber": 1.5}]}`,
			wantViolations: 1,
			wantContains:   "must be an integer",
		},
		{
			name:           "above range",
			input:          `{"controlChangeCommands": [{"controlChangeNumber": 128}]}`,
			wantViolations: 1,
			wantContains:   "out of range",
		},
		{
			name:           "below range",
			input:          `{"controlChangeCommands": [{"controlChangeNumber": -1}]}`,
			wantViolations: 1,
			wantContains:   "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := rule.Check(parse(t, tt.input))
			if len(violations) != tt.wantViolations {
				t.Fatalf("Check() = %v, want %d violations", violations, tt.wantViolations)
			}
			if tt.wantContains != "" && !strings.Contains(violations[0].Message, tt.wantContains) {
				t.Errorf("message %q should contain %q", violations[0].Message, tt.wantContains)
			}
		})
	}
}

func TestCC004_NameRecommended(t *testing.T) {
	rule := NewCC004()

	p := parse(t, `{"controlChangeCommands": [{"controlChangeNumber": 1}, {"controlChangeNumber": 2, "name": "Mix"}]}`)
	violations := rule.Check(p)
	if len(violations) != 1 {
		t.Fatalf("Check() = %v, want 1 violation", violations)
	}
	if !strings.Contains(violations[0].Message, "[0]") {
		t.Errorf("message should point at entry 0, got %q", violations[0].Message)
	}
}

func TestCC005_ValueRange(t *testing.T) {
	rule := NewCC005()

	tests := []struct {
		name           string
		input          string
		wantViolations int
	}{
		{
			name:           "consistent range",
			input:          `{"controlChangeCommands": [{"controlChangeNumber": 1, "valueRange": {"min": 0, "max": 127}}]}`,
			wantViolations: 0,
		},
		{
			name:           "min greater than max",
			input:          `{"controlChangeCommands": [{"controlChangeNumber": 1, "valueRange": {"min": 10, "max": 5}}]}`,
			wantViolations: 1,
		},
		{
			name:           "range not an object",
			input:          `{"controlChangeCommands": [{"controlChangeNumber": 1, "valueRange": [0, 127]}]}`,
			wantViolations: 1,
		},
		{
			name:           "non-numeric min",
			input:          `{"controlChangeCommands": [{"controlChangeNumber": 1, "valueRange": {"min": "low", "max": 5}}]}`,
			wantViolations: 1,
		},
		{
			name:           "min only",
			input:          `{"controlChangeCommands": [{"controlChangeNumber": 1, "valueRange": {"min": 0}}]}`,
			wantViolations: 0,
		},
		{
			name:           "no range",
			input:          `{"controlChangeCommands": [{"controlChangeNumber": 1}]}`,
			wantViolations: 0,
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

func TestCC006_DiscreteValues(t *testing.T) {
	rule := NewCC006()

	p := parse(t, `{"controlChangeCommands": [{"controlChangeNumber": 1, "valueRange": {"discreteValues": [0, 64, 127]}}]}`)
	if violations := rule.Check(p); len(violations) > 0 {
		t.Errorf("expected no violation for array discreteValues, got %v", violations)
	}

	p = parse(t, `{"controlChangeCommands": [{"controlChangeNumber": 1, "valueRange": {"discreteValues": 64}}]}`)
	if violations := rule.Check(p); len(violations) != 1 {
		t.Errorf("expected violation for non-array discreteValues, got %v", violations)
	}
}
