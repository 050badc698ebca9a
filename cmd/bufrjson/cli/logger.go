// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates a structured logger writing to w. When w is a
// terminal, uses slog.TextHandler for human-readable output; otherwise
// (pipes, files, CI) uses slog.JSONHandler for machine-parseable
// output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewLogger(streams.Err, level).With(
//	    "command", "flatten",
//	    "input", path,
//	)
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}
