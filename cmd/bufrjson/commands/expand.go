// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"

	"github.com/bureau-foundation/bufrjson/cmd/bufrjson/cli"
	"github.com/bureau-foundation/bufrjson/lib/bufrjson"
	"github.com/bureau-foundation/bufrjson/lib/compress"
	"github.com/bureau-foundation/bufrjson/lib/message"
)

type expandParams struct {
	commonParams
	Indent bool   `flag:"indent"   desc:"indent JSON output"`
	Output string `flag:"output,o" desc:"output file (default: stdout)"`
}

func expandCommand(streams Streams) *cli.Command {
	var params expandParams

	return &cli.Command{
		Name:    "expand",
		Summary: "Expand a document back into a native message",
		Description: `Read a flattened document and write the native message it encodes,
with every value carrying its full descriptor record and decoded value.

The input may be JSON or CBOR, optionally wrapped in a compressed
frame; all three are detected automatically. Documents are
self-describing, so no descriptor table is needed.`,
		Usage: "bufrjson expand [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Expand a compressed CBOR document",
				Command:     "bufrjson expand message.bufz",
			},
			{
				Description: "Round trip through the flattened form",
				Command:     "bufrjson flatten message.json | bufrjson expand --indent",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			cfg, logger, err := params.setup(streams, "expand")
			if err != nil {
				return err
			}
			data, name, err := readInput(args, streams.In)
			if err != nil {
				return err
			}

			document, err := parseDocument(data)
			if err != nil {
				return err
			}
			native, err := message.FromDocument(document, nil)
			if err != nil {
				return err
			}

			output, err := native.MarshalJSON()
			if err != nil {
				return err
			}
			if params.Indent || cfg.Output.Indent {
				var indented bytes.Buffer
				if err := json.Indent(&indented, output, "", "  "); err != nil {
					return err
				}
				output = indented.Bytes()
			}
			output = append(output, '\n')

			logger.Debug("expanded document",
				"input", name,
				"descriptors", len(native.Descriptors),
				"leaves", native.Data.Leaves(),
			)
			return writeOutput(params.Output, output, streams.Out)
		},
	}
}

// parseDocument unwraps a compressed frame if present and parses the
// document in whichever format it is in.
func parseDocument(data []byte) (*bufrjson.Document, error) {
	plain, err := compress.Unwrap(data)
	if err != nil {
		return nil, err
	}
	return bufrjson.Parse(plain)
}
