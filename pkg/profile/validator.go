package profile

import "fmt"

// Issue codes outside the rule system.
const (
	// CodeInvalidJSON marks a file that failed to parse. No further checks
	// run for that file.
	CodeInvalidJSON = "InvalidJSON"
)

// Issue represents a single validation error or warning.
type Issue struct {
	Code       string
	Message    string
	Keys       []string
	Suggestion string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s", i.Code, i.Message)
}

// ValidationResult contains the results of profile validation.
type ValidationResult struct {
	// Valid is true if the profile passed all validation checks.
	// Warnings never fail validation.
	Valid bool

	// Errors contains all validation errors.
	Errors []Issue

	// Warnings contains non-fatal issues.
	Warnings []Issue
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(issue Issue) {
	r.Errors = append(r.Errors, issue)
	r.Valid = false
}

// AddWarning adds a validation warning.
func (r *ValidationResult) AddWarning(issue Issue) {
	r.Warnings = append(r.Warnings, issue)
}

// ValidateOptions configures validation behavior.
type ValidateOptions struct {
	// Registry is the rule registry to use.
	Registry *RuleRegistry
	// MinSeverity filters violations to only those at or above this severity.
	MinSeverity Severity
	// DisabledRules is a list of rule IDs to disable.
	DisabledRules []string
}

// Validator validates device profiles against schema rules.
type Validator struct{}

// NewValidator creates a new profile validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateFile parses and validates a profile file. A parse failure yields
// a result with a single InvalidJSON error and a nil profile.
func (v *Validator) ValidateFile(path string, opts ValidateOptions) (*Profile, *ValidationResult) {
	prof, err := ParseFile(path)
	if err != nil {
		result := &ValidationResult{Valid: true}
		result.AddError(Issue{Code: CodeInvalidJSON, Message: err.Error()})
		return nil, result
	}
	return prof, v.ValidateWithOptions(prof, opts)
}

// ValidateBytes parses and validates profile data.
func (v *Validator) ValidateBytes(data []byte, opts ValidateOptions) (*Profile, *ValidationResult) {
	prof, err := ParseBytes(data)
	if err != nil {
		result := &ValidationResult{Valid: true}
		result.AddError(Issue{Code: CodeInvalidJSON, Message: err.Error()})
		return nil, result
	}
	return prof, v.ValidateWithOptions(prof, opts)
}

// ValidateWithOptions validates a parsed profile using the rule registry.
func (v *Validator) ValidateWithOptions(p *Profile, opts ValidateOptions) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if opts.Registry == nil {
		return result
	}

	for _, id := range opts.DisabledRules {
		opts.Registry.Disable(id)
	}

	violations := opts.Registry.RunRules(p)

	for _, viol := range violations {
		if viol.Severity > opts.MinSeverity {
			continue
		}
		issue := Issue{
			Code:       viol.RuleID,
			Message:    viol.Message,
			Keys:       viol.Keys,
			Suggestion: viol.Suggestion,
		}
		switch viol.Severity {
		case SeverityError:
			result.AddError(issue)
		default:
			result.AddWarning(issue)
		}
	}

	return result
}

// Validate validates a parsed profile with all rules in the registry.
func Validate(p *Profile, registry *RuleRegistry) *ValidationResult {
	return NewValidator().ValidateWithOptions(p, ValidateOptions{
		Registry:    registry,
		MinSeverity: SeverityInfo,
	})
}
