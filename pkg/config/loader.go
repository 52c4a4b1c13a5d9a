package config

import (
	"fmt"
	"os"
)

// LoadFile reads path and parses it into a validated RunConfig.
func LoadFile(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

var validModes = map[string]bool{"devs": true, "abm": true}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validPriorities = map[string]bool{"high": true, "default": true, "low": true}

// validate performs structural validation on a RunConfig beyond what YAML
// unmarshaling alone catches.
func validate(cfg *RunConfig) error {
	if !validModes[cfg.Mode] {
		return fmt.Errorf("invalid mode: %s (must be devs or abm)", cfg.Mode)
	}
	if cfg.LogLevel != "" && !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}
	if cfg.DefaultPriority != "" && !validPriorities[cfg.DefaultPriority] {
		return fmt.Errorf("invalid default_priority: %s (must be high, default, or low)", cfg.DefaultPriority)
	}
	if cfg.EndTime < cfg.StartTime {
		return fmt.Errorf("end_time %v cannot be before start_time %v", cfg.EndTime, cfg.StartTime)
	}
	if cfg.StartTime < 0 {
		return fmt.Errorf("start_time cannot be negative, got %v", cfg.StartTime)
	}
	if cfg.Mode == "abm" {
		if cfg.StartTime != float64(int64(cfg.StartTime)) {
			return fmt.Errorf("abm mode requires an integer start_time, got %v", cfg.StartTime)
		}
		if cfg.EndTime != float64(int64(cfg.EndTime)) {
			return fmt.Errorf("abm mode requires an integer end_time, got %v", cfg.EndTime)
		}
	}
	return nil
}
