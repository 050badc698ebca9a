// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/bureau-foundation/bufrjson/cmd/bufrjson/cli"
	"github.com/bureau-foundation/bufrjson/lib/bufrjson"
	"github.com/bureau-foundation/bufrjson/lib/codec"
	"github.com/bureau-foundation/bufrjson/lib/compress"
	"github.com/bureau-foundation/bufrjson/lib/descriptor"
	"github.com/bureau-foundation/bufrjson/lib/digest"
)

type inspectParams struct {
	commonParams
	JSON  bool   `flag:"json"  desc:"print the summary as JSON"`
	Diag  bool   `flag:"diag"  desc:"also print CBOR diagnostic notation of CBOR input"`
	Check string `flag:"check" desc:"exit 1 unless the descriptor fingerprint equals this hex digest"`
}

// inspection is the machine-readable summary printed by --json.
type inspection struct {
	Format        string       `json:"format"`
	Compression   string       `json:"compression"`
	Descriptors   int          `json:"descriptors"`
	Leaves        int          `json:"leaves"`
	Depth         int          `json:"depth"`
	DescriptorSet string       `json:"descriptor_set"`
	Document      string       `json:"document"`
	Index         []indexEntry `json:"index"`
}

type indexEntry struct {
	Position     int    `json:"position"`
	Code         string `json:"code"`
	Kind         string `json:"kind"`
	Width        int    `json:"width"`
	Unit         string `json:"unit,omitempty"`
	Significance string `json:"significance,omitempty"`
}

func inspectCommand(streams Streams) *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show a document's descriptor index and fingerprints",
		Description: `Print the flattened descriptor index of a document as a table, with the
leaf count, tree depth, and two BLAKE3 fingerprints: one of the
descriptor set (equal for any two documents built from the same
descriptors, whatever their format) and one of the document bytes.

With --check, the command exits 1 when the descriptor fingerprint does
not match, for use in scripts that verify a stream's layout.`,
		Usage: "bufrjson inspect [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Inspect a document",
				Command:     "bufrjson inspect message.json",
			},
			{
				Description: "Verify the descriptor layout of a document",
				Command:     "bufrjson inspect --check 3f2a... message.bufz",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			_, logger, err := params.setup(streams, "inspect")
			if err != nil {
				return err
			}
			data, name, err := readInput(args, streams.In)
			if err != nil {
				return err
			}

			summary := inspection{Compression: compress.None.String()}
			plain := data
			if compress.IsFramed(data) {
				var tag compress.Tag
				plain, tag, err = compress.Decompress(data)
				if err != nil {
					return err
				}
				summary.Compression = tag.String()
			}
			format := bufrjson.DetectFormat(plain)
			summary.Format = string(format)

			document, err := bufrjson.Parse(plain)
			if err != nil {
				return err
			}
			descriptors, err := descriptor.FromRecords(document.Descriptors)
			if err != nil {
				return err
			}
			flat, err := bufrjson.Flatten(descriptors)
			if err != nil {
				return err
			}
			fingerprint, err := digest.DescriptorSet(document.Descriptors)
			if err != nil {
				return err
			}

			summary.Descriptors = len(descriptors)
			summary.Leaves = document.Data.Leaves()
			summary.Depth = document.Data.Depth()
			summary.DescriptorSet = fingerprint.String()
			summary.Document = digest.Document(plain).String()
			summary.Index = make([]indexEntry, len(flat))
			for i, d := range flat {
				summary.Index[i] = describe(i, d)
			}
			logger.Debug("inspected document", "input", name, "format", summary.Format, "index", len(flat))

			if params.JSON {
				encoded, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintf(streams.Out, "%s\n", encoded)
			} else {
				printInspection(streams.Out, summary)
			}

			if params.Diag && format == bufrjson.FormatCBOR {
				notation, err := codec.Diagnose(plain)
				if err != nil {
					return fmt.Errorf("diagnose CBOR: %w", err)
				}
				fmt.Fprintf(streams.Out, "\n%s\n", notation)
			}

			if params.Check != "" {
				want, err := digest.Parse(params.Check)
				if err != nil {
					return err
				}
				if want != fingerprint {
					fmt.Fprintf(streams.Err, "descriptor fingerprint mismatch: got %s, want %s\n", fingerprint, want)
					return &cli.ExitError{Code: 1}
				}
			}
			return nil
		},
	}
}

func describe(position int, d descriptor.Descriptor) indexEntry {
	entry := indexEntry{Position: position, Code: d.Code().String(), Kind: d.Kind().String()}
	switch typed := d.(type) {
	case *descriptor.Element:
		entry.Width, entry.Unit, entry.Significance = typed.Length, typed.Unit, typed.Significance
	case *descriptor.Replication:
		entry.Width, entry.Significance = typed.Length, typed.Significance
	case *descriptor.Operator:
		entry.Width, entry.Significance = typed.Length, typed.Significance
	}
	return entry
}

func printInspection(w io.Writer, summary inspection) {
	writer := table.NewWriter()
	writer.SetOutputMirror(w)
	writer.SetStyle(table.StyleLight)
	writer.AppendHeader(table.Row{"#", "FXY", "Kind", "Width", "Unit", "Significance"})
	for _, entry := range summary.Index {
		writer.AppendRow(table.Row{entry.Position, entry.Code, entry.Kind, entry.Width, entry.Unit, entry.Significance})
	}
	writer.Render()

	fmt.Fprintf(w, "\nformat:         %s (compression: %s)\n", summary.Format, summary.Compression)
	fmt.Fprintf(w, "descriptors:    %d top-level, %d indexed\n", summary.Descriptors, len(summary.Index))
	fmt.Fprintf(w, "leaves:         %d (depth %d)\n", summary.Leaves, summary.Depth)
	fmt.Fprintf(w, "descriptor set: %s\n", summary.DescriptorSet)
	fmt.Fprintf(w, "document:       %s\n", summary.Document)
}
