// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the bufrjson
// command.
//
// Configuration is loaded from a single file specified by either the
// BUFRJSON_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search. Without either,
// the command runs on [Default]; command-line flags override whatever
// was loaded.
//
// ${VAR} and ${VAR:-default} patterns are expanded in path fields
// after loading.
//
// This package depends only on [github.com/bureau-foundation/bufrjson/lib/compress]
// for validating compression names.
package config
