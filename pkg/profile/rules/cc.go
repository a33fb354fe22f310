package rules

import (
	"fmt"

	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile"
)

// RegisterCCRules registers the control change table rules with the given registry.
func RegisterCCRules(registry *profile.RuleRegistry) {
	registry.Register(NewCC001())
	registry.Register(NewCC002())
	registry.Register(NewCC003())
	registry.Register(NewCC004())
	registry.Register(NewCC005())
	registry.Register(NewCC006())
}

// CC001 checks that the control change table uses the canonical key.
type CC001 struct {
	*profile.BaseRule
}

func NewCC001() *CC001 {
	return &CC001{
		BaseRule: profile.NewBaseRule("CC-001", "canonical control change key", "cc", profile.SeverityError),
	}
}

func (r *CC001) Check(p *profile.Profile) []profile.Violation {
	var violations []profile.Violation
	for _, alias := range profile.AliasCCKeys() {
		if !p.Doc.Has(alias) {
			continue
		}
		violations = append(violations, profile.Violation{
			RuleID:     r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    fmt.Sprintf("deprecated key %q used for control change table", alias),
			Keys:       []string{alias},
			Suggestion: fmt.Sprintf("rename %q to %q", alias, profile.KeyControlChangeCommands),
		})
	}
	return violations
}

// CC002 checks that the control change table is an array of objects.
type CC002 struct {
	*profile.BaseRule
}

func NewCC002() *CC002 {
	return &CC002{
		BaseRule: profile.NewBaseRule("CC-002", "control change table shape", "cc", profile.SeverityError),
	}
}

func (r *CC002) Check(p *profile.Profile) []profile.Violation {
	if p.CCKeyUsed == "" {
		return nil
	}
	if !p.CCIsArray {
		return []profile.Violation{{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  fmt.Sprintf("%s must be an array", p.CCKeyUsed),
			Keys:     []string{p.CCKeyUsed},
		}}
	}
	var violations []profile.Violation
	for _, entry := range p.CC {
		if entry.IsObject {
			continue
		}
		violations = append(violations, profile.Violation{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  fmt.Sprintf("%s[%d] must be an object", p.CCKeyUsed, entry.Index),
			Keys:     []string{p.CCKeyUsed},
		})
	}
	return violations
}

// CC003 checks that each entry carries a controlChangeNumber within range.
type CC003 struct {
	*profile.BaseRule
}

func NewCC003() *CC003 {
	return &CC003{
		BaseRule: profile.NewBaseRule("CC-003", "controlChangeNumber required and in range", "cc", profile.SeverityError),
	}
}

func (r *CC003) Check(p *profile.Profile) []profile.Violation {
	var violations []profile.Violation
	for _, entry := range p.CC {
		if !entry.IsObject {
			continue
		}
		if !entry.HasNumber {
			violations = append(violations, profile.Violation{
				RuleID:   r.ID(),
				Severity: r.DefaultSeverity(),
				Message:  fmt.Sprintf("%s[%d]: missing controlChangeNumber", p.CCKeyUsed, entry.Index),
				Keys:     []string{p.CCKeyUsed},
			})
			continue
		}
		if !entry.NumberIsInt {
			violations = append(violations, profile.Violation{
				RuleID:   r.ID(),
				Severity: r.DefaultSeverity(),
				Message:  fmt.Sprintf("%s[%d]: controlChangeNumber must be an integer", p.CCKeyUsed, entry.Index),
				Keys:     []string{p.CCKeyUsed},
			})
			continue
		}
		if entry.Number < profile.CCNumberMin || entry.Number > profile.CCNumberMax {
			violations = append(violations, profile.Violation{
				RuleID:   r.ID(),
				Severity: r.DefaultSeverity(),
				Message: fmt.Sprintf("%s[%d]: controlChangeNumber %d out of range [%d,%d]",
					p.CCKeyUsed, entry.Index, entry.Number, profile.CCNumberMin, profile.CCNumberMax),
				Keys: []string{p.CCKeyUsed},
			})
		}
	}
	return violations
}

// CC004 warns when an entry has no name.
type CC004 struct {
	*profile.BaseRule
}

func NewCC004() *CC004 {
	return &CC004{
		BaseRule: profile.NewBaseRule("CC-004", "CC entry name recommended", "cc", profile.SeverityWarning),
	}
}

func (r *CC004) Check(p *profile.Profile) []profile.Violation {
	var violations []profile.Violation
	for _, entry := range p.CC {
		if !entry.IsObject || entry.HasName {
			continue
		}
		violations = append(violations, profile.Violation{
			RuleID:     r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    fmt.Sprintf("%s[%d]: missing recommended field name", p.CCKeyUsed, entry.Index),
			Keys:       []string{p.CCKeyUsed},
			Suggestion: "name the parameter this CC controls",
		})
	}
	return violations
}

// CC005 checks valueRange consistency: min <= max when both present.
type CC005 struct {
	*profile.BaseRule
}

func NewCC005() *CC005 {
	return &CC005{
		BaseRule: profile.NewBaseRule("CC-005", "valueRange min/max consistency", "cc", profile.SeverityError),
	}
}

func (r *CC005) Check(p *profile.Profile) []profile.Violation {
	var violations []profile.Violation
	for _, entry := range p.CC {
		vr := entry.Range
		if vr == nil {
			continue
		}
		if !vr.IsObject {
			violations = append(violations, profile.Violation{
				RuleID:   r.ID(),
				Severity: r.DefaultSeverity(),
				Message:  fmt.Sprintf("%s[%d]: valueRange must be an object", p.CCKeyUsed, entry.Index),
				Keys:     []string{p.CCKeyUsed},
			})
			continue
		}
		if (vr.HasMin && !vr.MinOK) || (vr.HasMax && !vr.MaxOK) {
			violations = append(violations, profile.Violation{
				RuleID:   r.ID(),
				Severity: r.DefaultSeverity(),
				Message:  fmt.Sprintf("%s[%d]: valueRange min/max must be numeric", p.CCKeyUsed, entry.Index),
				Keys:     []string{p.CCKeyUsed},
			})
			continue
		}
		if vr.HasMin && vr.HasMax && vr.Min > vr.Max {
			violations = append(violations, profile.Violation{
				RuleID:   r.ID(),
				Severity: r.DefaultSeverity(),
				Message: fmt.Sprintf("%s[%d]: valueRange min %v greater than max %v",
					p.CCKeyUsed, entry.Index, vr.Min, vr.Max),
				Keys: []string{p.CCKeyUsed},
			})
		}
	}
	return violations
}

// CC006 checks that discreteValues, when present, is an array.
type CC006 struct {
	*profile.BaseRule
}

func NewCC006() *CC006 {
	return &CC006{
		BaseRule: profile.NewBaseRule("CC-006", "discreteValues must be an array", "cc", profile.SeverityError),
	}
}

func (r *CC006) Check(p *profile.Profile) []profile.Violation {
	var violations []profile.Violation
	for _, entry := range p.CC {
		vr := entry.Range
		if vr == nil || !vr.IsObject || !vr.HasDiscrete || vr.DiscreteIsArray {
			continue
		}
		violations = append(violations, profile.Violation{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  fmt.Sprintf("%s[%d]: valueRange.discreteValues must be an array", p.CCKeyUsed, entry.Index),
			Keys:     []string{p.CCKeyUsed},
		})
	}
	return violations
}
