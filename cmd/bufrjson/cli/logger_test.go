// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger_WritesJSONToNonTerminal(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewLogger(&buffer, slog.LevelWarn).With("command", "flatten")

	logger.Info("dropped below level")
	logger.Warn("table has no sequences", "path", "table.yaml")

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1:\n%s", len(lines), buffer.String())
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, lines[0])
	}
	if record["msg"] != "table has no sequences" || record["command"] != "flatten" || record["path"] != "table.yaml" {
		t.Errorf("unexpected record: %v", record)
	}
}
