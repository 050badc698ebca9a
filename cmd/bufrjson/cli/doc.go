// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the bufrjson
// command.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a flag set built either
// from a [pflag.FlagSet] factory or from a tagged params struct (see
// [BindFlags]), and a Run function. Commands are assembled into a tree
// in cmd/bufrjson/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
//
// [NewLogger] builds the slog logger commands log through, and
// [ExitError] carries an explicit exit code back to main.
package cli
