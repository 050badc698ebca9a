// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/bureau-foundation/bufrjson/cmd/bufrjson/cli"
	"github.com/bureau-foundation/bufrjson/lib/bufrjson"
	"github.com/bureau-foundation/bufrjson/lib/compress"
	"github.com/bureau-foundation/bufrjson/lib/message"
)

type flattenParams struct {
	commonParams
	Table    string `flag:"table,t"    desc:"descriptor table file, YAML or JSONC (overrides config)"`
	Format   string `flag:"format,f"   desc:"document format: json or cbor (overrides config)"`
	Compress string `flag:"compress,c" desc:"wrap output in a frame: none, lz4 or zstd (overrides config)"`
	Indent   bool   `flag:"indent"     desc:"indent JSON output"`
	Output   string `flag:"output,o"   desc:"output file (default: stdout)"`
}

func flattenCommand(streams Streams) *cli.Command {
	var params flattenParams

	return &cli.Command{
		Name:    "flatten",
		Summary: "Flatten a native message into a document",
		Description: `Read a decoded message in native JSON form and write its flattened
document.

Descriptors in the input may be full records or bare integer codes;
bare codes are resolved through the descriptor table (--table or
tables.path in the config). Sequence descriptors are expanded once, the
element descriptors they reach are deduplicated and sorted by code, and
every value is replaced by its position in that index and its raw
payload.`,
		Usage: "bufrjson flatten [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Flatten a message that carries full descriptor records",
				Command:     "bufrjson flatten message.json",
			},
			{
				Description: "Resolve bare codes through a table and write compressed CBOR",
				Command:     "bufrjson flatten -t tableb.yaml -f cbor -c zstd message.json -o message.bufz",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			cfg, logger, err := params.setup(streams, "flatten")
			if err != nil {
				return err
			}
			if params.Table != "" {
				cfg.Tables.Path = params.Table
			}
			if params.Format != "" {
				cfg.Output.Format = params.Format
			}
			if params.Compress != "" {
				cfg.Output.Compression = params.Compress
			}
			if params.Indent {
				cfg.Output.Indent = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			table, err := loadTable(cfg.Tables.Path, logger)
			if err != nil {
				return err
			}
			data, name, err := readInput(args, streams.In)
			if err != nil {
				return err
			}

			native, err := message.Parse(data, table, nil)
			if err != nil {
				return err
			}
			document, err := native.Document()
			if err != nil {
				return err
			}
			serialized, err := document.Serialize(bufrjson.Format(cfg.Output.Format), cfg.Output.Indent)
			if err != nil {
				return err
			}

			tag, err := compress.ParseTag(cfg.Output.Compression)
			if err != nil {
				return err
			}
			output := serialized
			if tag != compress.None {
				var used compress.Tag
				output, used, err = compress.Compress(serialized, tag)
				if err != nil {
					return err
				}
				if used != tag {
					logger.Info("output did not compress, stored uncompressed", "requested", tag.String())
				}
			}
			if cfg.Output.Format == string(bufrjson.FormatJSON) && tag == compress.None {
				output = append(output, '\n')
			}

			logger.Debug("flattened message",
				"input", name,
				"descriptors", len(document.Descriptors),
				"leaves", document.Data.Leaves(),
				"format", cfg.Output.Format,
				"bytes_in", len(data),
				"bytes_out", len(output),
			)
			return writeOutput(params.Output, output, streams.Out)
		},
	}
}
