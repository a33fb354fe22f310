// Package rules implements the schema validation rules for device profiles.
package rules

import "github.com/kabaragoya-loves-you/midi-devices/pkg/profile"

// RegisterAllRules registers all validation rules with the given registry.
func RegisterAllRules(registry *profile.RuleRegistry) {
	RegisterRequiredRules(registry)
	RegisterCCRules(registry)
	RegisterMessageRules(registry)
	RegisterProgramChangeRules(registry)
}

// NewDefaultRegistry creates a new registry with all rules registered.
func NewDefaultRegistry() *profile.RuleRegistry {
	registry := profile.NewRuleRegistry()
	RegisterAllRules(registry)
	return registry
}
