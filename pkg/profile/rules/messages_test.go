package rules

import (
	"strings"
	"testing"

	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile"
)

func TestMSG001_DeprecatedTokens(t *testing.T) {
	rule := NewMSG001()

	tests := []struct {
		name           string
		input          string
		wantViolations int
		wantSuggestion string
	}{
		{
			name:           "valid vocabulary only",
			input:          `{"receives": ["PROGRAM_CHANGE", "CLOCK", "SYSEX"], "transmits": []}`,
			wantViolations: 0,
		},
		{
			name:           "replaceable token names its replacement",
			input:          `{"receives": ["NOTE_ON"], "transmits": []}`,
			wantViolations: 1,
			wantSuggestion: `replace "NOTE_ON" with "NOTE_NUMBER"`,
		},
		{
			name:           "short forms",
			input:          `{"receives": ["PC", "CC"], "transmits": ["MIDI_CLOCK"]}`,
			wantViolations: 3,
		},
		{
			name:           "removed combined marker",
			input:          `{"receives": ["CONTROL_CHANGE_SYSEX"], "transmits": []}`,
			wantViolations: 1,
			wantSuggestion: "no single-token equivalent",
		},
		{
			name:           "checked in both directions",
			input:          `{"receives": ["NOTE_ON"], "transmits": ["NOTE_OFF"]}`,
			wantViolations: 2,
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

func TestMSG002_UnknownTokens(t *testing.T) {
	rule := NewMSG002()

	tests := []struct {
		name           string
		input          string
		wantViolations int
	}{
		{
			name:           "all known",
			input:          `{"receives": ["NRPN", "PITCH_BEND"], "transmits": ["TRANSPORT"]}`,
			wantViolations: 0,
		},
		{
			name:           "unknown token",
			input:          `{"receives": ["LASER_HARP"], "transmits": []}`,
			wantViolations: 1,
		},
		{
			name:           "deprecated tokens are not unknown",
			input:          `{"receives": ["NOTE_ON", "CONTROL_CHANGE_SYSEX"], "transmits": []}`,
			wantViolations: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := rule.Check(parse(t, tt.input))
			if len(violations) != tt.wantViolations {
				t.Errorf("Check() = %v, want %d violations", violations, tt.wantViolations)
			}
			for _, v := range violations {
				if v.Severity != profile.SeverityWarning {
					t.Errorf("unknown tokens are warnings, got %v", v.Severity)
				}
			}
		})
	}
}
