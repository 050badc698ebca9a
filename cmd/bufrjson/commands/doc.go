// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the bufrjson command tree: flatten,
// expand, inspect and version. [Root] binds every command to a set of
// [Streams] so the whole tree can be driven from tests.
package commands
