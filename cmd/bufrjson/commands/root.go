// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/bufrjson/cmd/bufrjson/cli"
	"github.com/bureau-foundation/bufrjson/lib/config"
	"github.com/bureau-foundation/bufrjson/lib/descriptor"
)

// Streams are the standard streams commands read and write.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Root returns the bufrjson command tree bound to streams.
func Root(streams Streams) *cli.Command {
	return &cli.Command{
		Name:    "bufrjson",
		Summary: "Flatten decoded BUFR messages to self-describing JSON and back",
		Description: `Convert decoded BUFR weather-observation messages between their native
form, where every value carries its full descriptor, and a compact
flattened document where values point into a deduplicated descriptor
index.

Documents are JSON by default and may be written as deterministic CBOR
and wrapped in an lz4 or zstd frame. Every reader detects the format.`,
		HelpOutput: streams.Err,
		Subcommands: []*cli.Command{
			flattenCommand(streams),
			expandCommand(streams),
			inspectCommand(streams),
			versionCommand(streams),
		},
	}
}

// commonParams are the flags every data command accepts.
type commonParams struct {
	Config   string `flag:"config"    desc:"configuration file (default: $BUFRJSON_CONFIG)"`
	LogLevel string `flag:"log-level" desc:"log level: debug, info, warn or error (overrides config)"`
}

// setup loads the configuration and builds the command's logger.
// Without --config or BUFRJSON_CONFIG the defaults apply.
func (p *commonParams) setup(streams Streams, command string) (*config.Config, *slog.Logger, error) {
	var cfg *config.Config
	var err error
	switch {
	case p.Config != "":
		cfg, err = config.LoadFile(p.Config)
	case os.Getenv(config.EnvVar) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, nil, err
	}
	if p.LogLevel != "" {
		cfg.Log.Level = p.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	logger := cli.NewLogger(streams.Err, level).With("command", command)
	return cfg, logger, nil
}

// loadTable opens the descriptor table named by path, if any. A nil
// table means inputs must carry full descriptor records.
func loadTable(path string, logger *slog.Logger) (descriptor.Table, error) {
	if path == "" {
		return nil, nil
	}
	table, err := descriptor.LoadTable(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded descriptor table", "path", path, "entries", table.Len())
	return table, nil
}
