package rules

import (
	"fmt"

	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile"
)

// RegisterMessageRules registers the message vocabulary rules with the given registry.
func RegisterMessageRules(registry *profile.RuleRegistry) {
	registry.Register(NewMSG001())
	registry.Register(NewMSG002())
}

// MSG001 flags deprecated message tokens in receives/transmits.
// Replaceable tokens name their canonical equivalent; combined markers must
// be removed.
type MSG001 struct {
	*profile.BaseRule
}

func NewMSG001() *MSG001 {
	return &MSG001{
		BaseRule: profile.NewBaseRule("MSG-001", "deprecated message tokens", "message", profile.SeverityError),
	}
}

func (r *MSG001) Check(p *profile.Profile) []profile.Violation {
	var violations []profile.Violation

	check := func(key string, list profile.MessageList) {
		for _, tok := range list.Tokens {
			if repl, ok := profile.ReplacementFor(tok); ok {
				violations = append(violations, profile.Violation{
					RuleID:     r.ID(),
					Severity:   r.DefaultSeverity(),
					Message:    fmt.Sprintf("%s: deprecated message type %q", key, tok),
					Keys:       []string{key},
					Suggestion: fmt.Sprintf("replace %q with %q", tok, repl),
				})
				continue
			}
			if profile.IsRemovedMessage(tok) {
				violations = append(violations, profile.Violation{
					RuleID:     r.ID(),
					Severity:   r.DefaultSeverity(),
					Message:    fmt.Sprintf("%s: deprecated message type %q", key, tok),
					Keys:       []string{key},
					Suggestion: fmt.Sprintf("remove %q (no single-token equivalent)", tok),
				})
			}
		}
	}

	check(profile.KeyReceives, p.Receives)
	check(profile.KeyTransmits, p.Transmits)

	return violations
}

// MSG002 warns about message tokens outside the known vocabulary.
type MSG002 struct {
	*profile.BaseRule
}

func NewMSG002() *MSG002 {
	return &MSG002{
		BaseRule: profile.NewBaseRule("MSG-002", "unknown message tokens", "message", profile.SeverityWarning),
	}
}

func (r *MSG002) Check(p *profile.Profile) []profile.Violation {
	var violations []profile.Violation

	check := func(key string, list profile.MessageList) {
		for _, tok := range list.Tokens {
			if profile.IsValidMessage(tok) || profile.IsDeprecatedMessage(tok) {
				continue
			}
			violations = append(violations, profile.Violation{
				RuleID:   r.ID(),
				Severity: r.DefaultSeverity(),
				Message:  fmt.Sprintf("%s: unknown message type %q", key, tok),
				Keys:     []string{key},
			})
		}
	}

	check(profile.KeyReceives, p.Receives)
	check(profile.KeyTransmits, p.Transmits)

	return violations
}
