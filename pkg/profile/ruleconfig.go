package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleConfig is the optional per-data-set rule configuration, loaded from a
// YAML file:
//
//	disabled:
//	  - CC-004
//	severity:
//	  MSG-002: error
type RuleConfig struct {
	// Disabled lists rule IDs to turn off.
	Disabled []string `yaml:"disabled"`

	// Severity overrides rule severities by ID (error, warning, info).
	Severity map[string]string `yaml:"severity"`
}

// ParseSeverity parses a severity name.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	}
	return SeverityError, fmt.Errorf("unknown severity %q (want error, warning or info)", name)
}

// LoadRuleConfig reads and parses a rule configuration file.
func LoadRuleConfig(path string) (*RuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule config: %w", err)
	}
	var cfg RuleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rule config: %w", err)
	}
	return &cfg, nil
}

// Apply threads the configuration into a rule registry.
// Unknown rule IDs are rejected so that typos do not silently re-enable a
// rule the author meant to turn off.
func (c *RuleConfig) Apply(registry *RuleRegistry) error {
	for _, id := range c.Disabled {
		if registry.GetRule(id) == nil {
			return fmt.Errorf("rule config disables unknown rule %q", id)
		}
		registry.Disable(id)
	}
	for id, name := range c.Severity {
		if registry.GetRule(id) == nil {
			return fmt.Errorf("rule config overrides unknown rule %q", id)
		}
		sev, err := ParseSeverity(name)
		if err != nil {
			return fmt.Errorf("rule %s: %w", id, err)
		}
		registry.SetSeverity(id, sev)
	}
	return nil
}
