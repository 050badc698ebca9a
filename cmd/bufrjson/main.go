// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/bufrjson/cmd/bufrjson/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that report their own outcome (inspect --check)
		// return an error carrying the exit code; don't print it.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	streams := commands.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	return commands.Root(streams).Execute(os.Args[1:])
}
