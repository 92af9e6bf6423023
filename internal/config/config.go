package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/dyluth/unifiable/pkg/unification"
)

const (
	// DefaultPath is the configuration file looked up in the working directory
	DefaultPath = ".unify.yml"

	// DefaultPattern recognises placeholders by a leading underscore
	DefaultPattern = "^_"

	// DefaultWildcard is the placeholder that matches anything without binding
	DefaultWildcard = "_"

	// DefaultTimeFormat renders time bindings (strftime syntax)
	DefaultTimeFormat = "%Y-%m-%dT%H:%M:%S%z"
)

// Output formats accepted by output.format
const (
	FormatAuto  = "auto"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// UnifyConfig represents the top-level .unify.yml configuration
type UnifyConfig struct {
	Version     string             `yaml:"version"`
	Placeholder *PlaceholderConfig `yaml:"placeholder,omitempty"`
	Output      *OutputConfig      `yaml:"output,omitempty"`

	pattern *regexp.Regexp
}

// PlaceholderConfig controls which symbols are treated as placeholders
type PlaceholderConfig struct {
	Pattern  string `yaml:"pattern,omitempty"`  // Regular expression matched against symbol names
	Wildcard string `yaml:"wildcard,omitempty"` // Placeholder that never binds
}

// OutputConfig controls how bindings are printed
type OutputConfig struct {
	Format     string `yaml:"format,omitempty"`      // auto, table, json or yaml
	TimeFormat string `yaml:"time_format,omitempty"` // strftime layout for time values
}

// Default returns a validated configuration with every default applied.
func Default() *UnifyConfig {
	config := &UnifyConfig{Version: "1.0"}
	if err := config.Validate(); err != nil {
		// The defaults are constants; failing here is a programming error.
		panic(err)
	}
	return config
}

// Validate checks the configuration and fills in defaults for missing sections.
func (c *UnifyConfig) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Placeholder == nil {
		c.Placeholder = &PlaceholderConfig{}
	}
	if c.Placeholder.Pattern == "" {
		c.Placeholder.Pattern = DefaultPattern
	}
	if c.Placeholder.Wildcard == "" {
		c.Placeholder.Wildcard = DefaultWildcard
	}

	pattern, err := regexp.Compile(c.Placeholder.Pattern)
	if err != nil {
		return fmt.Errorf("placeholder.pattern is not a valid regular expression: %w", err)
	}
	c.pattern = pattern

	if c.Output == nil {
		c.Output = &OutputConfig{}
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatAuto
	}
	if c.Output.TimeFormat == "" {
		c.Output.TimeFormat = DefaultTimeFormat
	}

	switch c.Output.Format {
	case FormatAuto, FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid output.format: %s (must be '%s', '%s', '%s', or '%s')",
			c.Output.Format, FormatAuto, FormatTable, FormatJSON, FormatYAML)
	}

	return nil
}

// Override replaces the placeholder settings with non-empty command line values
// and validates the result again.
func (c *UnifyConfig) Override(pattern, wildcard, format string) error {
	if pattern != "" {
		c.Placeholder.Pattern = pattern
	}
	if wildcard != "" {
		c.Placeholder.Wildcard = wildcard
	}
	if format != "" {
		c.Output.Format = format
	}
	return c.Validate()
}

// Pattern returns the compiled placeholder pattern. Only valid after Validate.
func (c *UnifyConfig) Pattern() *regexp.Regexp {
	return c.pattern
}

// Options builds unifier options from the validated configuration.
func (c *UnifyConfig) Options() unification.Options {
	return unification.Options{
		Pattern:  c.pattern,
		Wildcard: unification.Symbol(c.Placeholder.Wildcard),
	}
}

// Load reads and validates a configuration file from the specified path
func Load(path string) (*UnifyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config UnifyConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads path when it exists. A missing file yields Default() unless
// required is set, in which case the read error is returned.
func LoadOrDefault(path string, required bool) (*UnifyConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && !required {
		return Default(), nil
	}
	return Load(path)
}
