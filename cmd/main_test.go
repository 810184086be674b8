// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"medgate/internal/config"
	"medgate/internal/version"
)

func TestPrintVersion(t *testing.T) {
	var out strings.Builder
	printVersion(&out, false)

	if got := out.String(); !strings.Contains(got, "medgate "+version.Version) {
		t.Errorf("printVersion output = %q, want it to contain %q", got, "medgate "+version.Version)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 1 {
		t.Errorf("non-verbose output has %d lines, want 1", lines)
	}
}

func TestPrintVersion_Verbose(t *testing.T) {
	var out strings.Builder
	printVersion(&out, true)

	got := out.String()
	for _, key := range []string{"version", "commit", "buildDate", "goVersion", "platform"} {
		if !strings.Contains(got, key+": ") {
			t.Errorf("verbose output missing %q field:\n%s", key, got)
		}
	}
	if !strings.Contains(got, "version: "+version.Version) {
		t.Errorf("verbose output = %q, want version %q", got, version.Version)
	}
}

func TestLoadConfiguration_ValidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `defaults:
  level: basic
  format: json
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := loadConfiguration(configPath)
	if cfg.Defaults.Level != "basic" {
		t.Errorf("Level = %s, want basic", cfg.Defaults.Level)
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("Format = %s, want json", cfg.Defaults.Format)
	}
}

func TestLoadConfiguration_UnreadableFileFallsBack(t *testing.T) {
	cfg := loadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	if cfg == nil {
		t.Fatal("expected default configuration, got nil")
	}
	if cfg.Defaults.Level != "comprehensive" {
		t.Errorf("Level = %s, want comprehensive default", cfg.Defaults.Level)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("Format = %s, want text default", cfg.Defaults.Format)
	}
}

func TestResolveConfiguration_FlagsWin(t *testing.T) {
	cfg := config.LoadConfigOrDefault("")
	flags := configFlags{level: "basic", format: "yaml", provider: "ollama", model: "llama3"}

	resolved := resolveConfiguration(flags, cfg)
	if resolved.level != "basic" {
		t.Errorf("level = %s, want basic", resolved.level)
	}
	if resolved.format != "yaml" {
		t.Errorf("format = %s, want yaml", resolved.format)
	}
	if resolved.provider != "ollama" {
		t.Errorf("provider = %s, want ollama", resolved.provider)
	}
	if resolved.model != "llama3" {
		t.Errorf("model = %s, want llama3", resolved.model)
	}
}
