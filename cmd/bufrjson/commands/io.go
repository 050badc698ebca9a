// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
)

// readInput reads the single optional positional argument: a file
// path, or stdin when absent or "-".
func readInput(args []string, stdin io.Reader) ([]byte, string, error) {
	if len(args) > 1 {
		return nil, "", fmt.Errorf("expected at most one input file, got %d arguments", len(args))
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		if len(data) == 0 {
			return nil, "", fmt.Errorf("empty input on stdin")
		}
		return data, "-", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, args[0], nil
}

// writeOutput writes data to path, or to stdout when path is empty or
// "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
