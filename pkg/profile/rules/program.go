package rules

import (
	"fmt"
	"strings"

	"github.com/kabaragoya-loves-you/midi-devices/pkg/profile"
)

// RegisterProgramChangeRules registers the x_pc rules with the given registry.
func RegisterProgramChangeRules(registry *profile.RuleRegistry) {
	registry.Register(NewPC001())
	registry.Register(NewPC002())
	registry.Register(NewPC003())
	registry.Register(NewPC004())
	registry.Register(NewPC005())
}

func bankSelectValues() string {
	return strings.Join([]string{
		profile.BankSelectNone,
		profile.BankSelectCC0,
		profile.BankSelectCC32,
		profile.BankSelectCC0CC32,
	}, "|")
}

// PC001 checks that x_pc, when present, is an object.
type PC001 struct {
	*profile.BaseRule
}

func NewPC001() *PC001 {
	return &PC001{
		BaseRule: profile.NewBaseRule("PC-001", "x_pc must be an object", "program", profile.SeverityError),
	}
}

func (r *PC001) Check(p *profile.Profile) []profile.Violation {
	if p.PC == nil || p.PC.IsObject {
		return nil
	}
	return []profile.Violation{{
		RuleID:   r.ID(),
		Severity: r.DefaultSeverity(),
		Message:  "x_pc must be an object",
		Keys:     []string{profile.KeyProgramChange},
	}}
}

// PC002 checks that indexBase, when present, is 0 or 1.
type PC002 struct {
	*profile.BaseRule
}

func NewPC002() *PC002 {
	return &PC002{
		BaseRule: profile.NewBaseRule("PC-002", "x_pc indexBase must be 0 or 1", "program", profile.SeverityError),
	}
}

func (r *PC002) Check(p *profile.Profile) []profile.Violation {
	pc := p.PC
	if pc == nil || !pc.IsObject || !pc.HasIndexBase {
		return nil
	}
	if pc.IndexBaseIsInt && (pc.IndexBase == 0 || pc.IndexBase == 1) {
		return nil
	}
	return []profile.Violation{{
		RuleID:   r.ID(),
		Severity: r.DefaultSeverity(),
		Message:  "x_pc: indexBase must be 0 or 1",
		Keys:     []string{profile.KeyProgramChange},
	}}
}

// PC003 warns when recommended x_pc fields are missing: indexBase, and a
// preset enumeration (count or names).
type PC003 struct {
	*profile.BaseRule
}

func NewPC003() *PC003 {
	return &PC003{
		BaseRule: profile.NewBaseRule("PC-003", "x_pc recommended fields", "program", profile.SeverityWarning),
	}
}

func (r *PC003) Check(p *profile.Profile) []profile.Violation {
	pc := p.PC
	if pc == nil || !pc.IsObject {
		return nil
	}
	var violations []profile.Violation
	if !pc.HasIndexBase {
		violations = append(violations, profile.Violation{
			RuleID:     r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    "x_pc: missing recommended field indexBase",
			Keys:       []string{profile.KeyProgramChange},
			Suggestion: "set indexBase to 0 or 1 depending on how the device numbers presets",
		})
	}
	if !pc.HasCount && !pc.HasNames {
		violations = append(violations, profile.Violation{
			RuleID:     r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    "x_pc: missing recommended field count (or names)",
			Keys:       []string{profile.KeyProgramChange},
			Suggestion: "set count to the number of presets, or list them in names",
		})
	}
	return violations
}

// PC004 checks the bankSelect enum. The boolean form is legacy and must be
// mapped to an enum value.
type PC004 struct {
	*profile.BaseRule
}

func NewPC004() *PC004 {
	return &PC004{
		BaseRule: profile.NewBaseRule("PC-004", "x_pc bankSelect enum", "program", profile.SeverityError),
	}
}

func (r *PC004) Check(p *profile.Profile) []profile.Violation {
	pc := p.PC
	if pc == nil || !pc.IsObject || !pc.HasBankSelect {
		return nil
	}
	if pc.BankSelectIsString && profile.IsValidBankSelect(pc.BankSelect) {
		return nil
	}

	if pc.BankSelectIsBool {
		repl := profile.BankSelectNone
		if pc.BankSelectBool {
			repl = profile.BankSelectCC0
		}
		return []profile.Violation{{
			RuleID:     r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    fmt.Sprintf("x_pc: legacy boolean bankSelect (must be one of %s)", bankSelectValues()),
			Keys:       []string{profile.KeyProgramChange},
			Suggestion: fmt.Sprintf("replace with %q", repl),
		}}
	}

	got := pc.BankSelect
	if !pc.BankSelectIsString {
		got = "(non-string value)"
	}
	return []profile.Violation{{
		RuleID:   r.ID(),
		Severity: r.DefaultSeverity(),
		Message:  fmt.Sprintf("x_pc: invalid bankSelect %q (must be one of %s)", got, bankSelectValues()),
		Keys:     []string{profile.KeyProgramChange},
	}}
}

// PC005 checks the shape of the preset enumeration fields.
type PC005 struct {
	*profile.BaseRule
}

func NewPC005() *PC005 {
	return &PC005{
		BaseRule: profile.NewBaseRule("PC-005", "x_pc enumeration shape", "program", profile.SeverityError),
	}
}

func (r *PC005) Check(p *profile.Profile) []profile.Violation {
	pc := p.PC
	if pc == nil || !pc.IsObject {
		return nil
	}
	var violations []profile.Violation
	if pc.HasCount && !pc.CountIsInt {
		violations = append(violations, profile.Violation{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  "x_pc: count must be an integer",
			Keys:     []string{profile.KeyProgramChange},
		})
	}
	if pc.HasNames && !pc.NamesIsArray {
		violations = append(violations, profile.Violation{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  "x_pc: names must be an array",
			Keys:     []string{profile.KeyProgramChange},
		})
	}
	return violations
}
