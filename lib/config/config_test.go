// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/bufrjson/lib/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	return testutil.WriteFile(t, "", "bufrjson.yaml", content)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output.Format != "json" {
		t.Errorf("expected output.format=json, got %s", cfg.Output.Format)
	}
	if cfg.Output.Compression != "none" {
		t.Errorf("expected output.compression=none, got %s", cfg.Output.Compression)
	}
	if cfg.Output.Indent {
		t.Error("expected output.indent=false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_RequiresEnvVar(t *testing.T) {
	t.Setenv(EnvVar, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when BUFRJSON_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "BUFRJSON_CONFIG environment variable not set") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_WithEnvVar(t *testing.T) {
	configPath := writeConfig(t, `
output:
  format: cbor
  compression: zstd
log:
  level: debug
`)
	t.Setenv(EnvVar, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Output.Format != "cbor" {
		t.Errorf("expected output.format=cbor, got %s", cfg.Output.Format)
	}
	if cfg.Output.Compression != "zstd" {
		t.Errorf("expected output.compression=zstd, got %s", cfg.Output.Compression)
	}
	level, err := cfg.LogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, %v; want debug", level, err)
	}
}

func TestLoadFile_KeepsDefaultsForUnsetFields(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "output:\n  indent: true\n"))
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if !cfg.Output.Indent {
		t.Error("expected output.indent=true")
	}
	if cfg.Output.Format != "json" || cfg.Log.Level != "info" {
		t.Errorf("defaults lost: format=%s level=%s", cfg.Output.Format, cfg.Log.Level)
	}
}

func TestLoadFile_ExpandsTablePath(t *testing.T) {
	t.Setenv("BUFR_TABLES", "/srv/tables")

	cfg, err := LoadFile(writeConfig(t, "tables:\n  path: ${BUFR_TABLES}/b.yaml\n"))
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Tables.Path != "/srv/tables/b.yaml" {
		t.Errorf("expected tables.path=/srv/tables/b.yaml, got %s", cfg.Tables.Path)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("BUFRJSON_TEST_SET", "value")
	t.Setenv("BUFRJSON_TEST_EMPTY", "")

	tests := []struct {
		input string
		want  string
	}{
		{"${BUFRJSON_TEST_SET}", "value"},
		{"${BUFRJSON_TEST_EMPTY:-fallback}", "fallback"},
		{"${BUFRJSON_TEST_SET:-fallback}/x", "value/x"},
		{"${BUFRJSON_TEST_EMPTY}", ""},
		{"plain/path", "plain/path"},
	}
	for _, tt := range tests {
		if got := expandVars(tt.input); got != tt.want {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadFile(writeConfig(t, "output: [unclosed")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"
	cfg.Output.Compression = "gzip"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"output.format", "output.compression", "log.level"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("validation error should mention %s: %v", field, err)
		}
	}
}
