// Package config loads the rule configuration used by the analyzer. An
// empty configuration means every builtin rule runs at its default level;
// entries only override or disable individual rules.
package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-analyzer/pkg/types"
)

// Config represents the rule configuration for an analysis run.
type Config struct {
	ID    string              `yaml:"id" json:"id"`
	Rules []*types.RuleConfig `yaml:"rules" json:"rules"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var cfg Config
	// Try YAML first, then JSON.
	if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
		slog.Debug("YAML unmarshal failed, trying JSON", "error", yamlErr)
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			return nil, jsonErr
		}
	}

	for _, rule := range cfg.Rules {
		switch rule.Level {
		case types.RuleLevelError, types.RuleLevelWarning, types.RuleLevelDisabled:
		default:
			return nil, errors.Errorf("unknown level %q for rule %s", rule.Level, rule.ID)
		}
	}

	slog.Debug("Loaded config", "rules_count", len(cfg.Rules))
	return &cfg, nil
}

// DefaultConfig returns a configuration with no overrides: every builtin
// rule enabled at its default level.
func DefaultConfig(id string) *Config {
	return &Config{
		ID:    id,
		Rules: []*types.RuleConfig{},
	}
}

// Levels returns the configured level overrides keyed by rule id.
func (c *Config) Levels() map[string]types.RuleLevel {
	levels := make(map[string]types.RuleLevel, len(c.Rules))
	for _, rule := range c.Rules {
		levels[rule.ID] = rule.Level
	}
	return levels
}
