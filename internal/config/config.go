// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the application configuration from YAML with safe
// fallbacks: a missing or unreadable file yields the defaults instead of an
// error surface in the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Default settings
	Defaults struct {
		Level   string `yaml:"level"`
		Format  string `yaml:"format"`
		Verbose bool   `yaml:"verbose"`
		Debug   bool   `yaml:"debug"`
		NoColor bool   `yaml:"no_color"`
	} `yaml:"defaults"`

	// Scoring normalization constants. Tunable, not clinically calibrated.
	Scoring struct {
		TerminologyNorm  int `yaml:"terminology_norm"`
		PatternMatchNorm int `yaml:"pattern_match_norm"`
		CompletenessNorm int `yaml:"completeness_norm"`
	} `yaml:"scoring"`

	// Provider selects the model backend for chat mode. APIKeyEnv names the
	// environment variable holding the key; keys never live in the file.
	Provider struct {
		Name         string `yaml:"name"`
		Model        string `yaml:"model"`
		BaseURL      string `yaml:"base_url"`
		APIKeyEnv    string `yaml:"api_key_env"`
		SystemPrompt string `yaml:"system_prompt"`
	} `yaml:"provider"`

	// Session file locations.
	Session struct {
		TruthsFile string `yaml:"truths_file"`
		AuditDir   string `yaml:"audit_dir"`
	} `yaml:"session"`
}

// DefaultSystemPrompt is used when the config does not override it.
const DefaultSystemPrompt = "You are a medical AI consultant. Provide accurate, ethical " +
	"medical information and always encourage consulting with healthcare professionals."

// LoadConfig loads configuration from the specified file path. An empty
// path returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	// Default values
	config.Defaults.Level = "comprehensive"
	config.Defaults.Format = "text"
	config.Scoring.TerminologyNorm = 10
	config.Scoring.PatternMatchNorm = 5
	config.Scoring.CompletenessNorm = 20
	config.Provider.Name = "openai"
	config.Provider.Model = "gpt-4o-mini"
	config.Provider.APIKeyEnv = "OPENAI_API_KEY"
	config.Provider.SystemPrompt = DefaultSystemPrompt
	config.Session.TruthsFile = ""
	config.Session.AuditDir = ""

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Restore defaults the YAML may have blanked out.
	if config.Defaults.Level == "" {
		config.Defaults.Level = "comprehensive"
	}
	if config.Defaults.Format == "" {
		config.Defaults.Format = "text"
	}
	if config.Provider.SystemPrompt == "" {
		config.Provider.SystemPrompt = DefaultSystemPrompt
	}

	return config, nil
}

// LoadConfigOrDefault loads the config file, falling back to defaults on
// any error. It never fails.
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// FindConfigFile looks for a configuration file in standard locations and
// returns the first that exists, or empty when none do.
func FindConfigFile() string {
	candidates := []string{
		".medgate.yaml",
		".medgate.yml",
		"medgate.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".medgate.yaml"),
			filepath.Join(home, ".config", "medgate", "config.yaml"),
		)
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
