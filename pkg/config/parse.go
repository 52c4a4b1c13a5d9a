package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a RunConfig from YAML bytes and validates it.
func ParseYAML(data []byte) (*RunConfig, error) {
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// ParseYAMLString parses a RunConfig from a YAML string and validates it.
func ParseYAMLString(yamlText string) (*RunConfig, error) {
	return ParseYAML([]byte(yamlText))
}
