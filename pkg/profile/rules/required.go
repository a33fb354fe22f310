package rules

import (
	"fmt"

	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile"
)

// RegisterRequiredRules registers the required-field rules with the given registry.
func RegisterRequiredRules(registry *profile.RuleRegistry) {
	registry.Register(NewREQ001())
	registry.Register(NewREQ002())
	registry.Register(NewREQ003())
}

// REQ001 checks that the receives key is present.
type REQ001 struct {
	*profile.BaseRule
}

func NewREQ001() *REQ001 {
	return &REQ001{
		BaseRule: profile.NewBaseRule("REQ-001", "receives key required", "required", profile.SeverityError),
	}
}

func (r *REQ001) Check(p *profile.Profile) []profile.Violation {
	if p.Receives.Present {
		return nil
	}
	return []profile.Violation{{
		RuleID:     r.ID(),
		Severity:   r.DefaultSeverity(),
		Message:    "missing required key: receives",
		Keys:       []string{profile.KeyReceives},
		Suggestion: `add "receives": [] (empty array if the device receives nothing)`,
	}}
}

// REQ002 checks that the transmits key is present.
type REQ002 struct {
	*profile.BaseRule
}

func NewREQ002() *REQ002 {
	return &REQ002{
		BaseRule: profile.NewBaseRule("REQ-002", "transmits key required", "required", profile.SeverityError),
	}
}

func (r *REQ002) Check(p *profile.Profile) []profile.Violation {
	if p.Transmits.Present {
		return nil
	}
	return []profile.Violation{{
		RuleID:     r.ID(),
		Severity:   r.DefaultSeverity(),
		Message:    "missing required key: transmits",
		Keys:       []string{profile.KeyTransmits},
		Suggestion: `add "transmits": [] (empty array if the device transmits nothing)`,
	}}
}

// REQ003 checks that receives/transmits, when present, are arrays of strings.
type REQ003 struct {
	*profile.BaseRule
}

func NewREQ003() *REQ003 {
	return &REQ003{
		BaseRule: profile.NewBaseRule("REQ-003", "message lists must be string arrays", "required", profile.SeverityError),
	}
}

func (r *REQ003) Check(p *profile.Profile) []profile.Violation {
	var violations []profile.Violation

	check := func(key string, list profile.MessageList) {
		if !list.Present {
			return
		}
		if !list.IsArray {
			violations = append(violations, profile.Violation{
				RuleID:   r.ID(),
				Severity: r.DefaultSeverity(),
				Message:  fmt.Sprintf("%s must be an array", key),
				Keys:     []string{key},
			})
			return
		}
		if list.NonStringCount > 0 {
			violations = append(violations, profile.Violation{
				RuleID:   r.ID(),
				Severity: r.DefaultSeverity(),
				Message:  fmt.Sprintf("%s contains %d non-string element(s)", key, list.NonStringCount),
				Keys:     []string{key},
			})
		}
	}

	check(profile.KeyReceives, p.Receives)
	check(profile.KeyTransmits, p.Transmits)

	return violations
}
