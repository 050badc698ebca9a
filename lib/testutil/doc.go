// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for bufrjson packages.
//
// [WriteFile] writes a fixture (a descriptor table, a config file, a
// message) into a test's temporary directory and returns its path.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so that concurrent tests do not
// hang forever when a goroutine never reports back.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no bufrjson-internal dependencies.
package testutil
