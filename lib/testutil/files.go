// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to name inside directory and returns the
// full path. An empty directory means a fresh t.TempDir().
func WriteFile(t testing.TB, directory, name, content string) string {
	t.Helper()
	if directory == "" {
		directory = t.TempDir()
	}
	path := filepath.Join(directory, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
