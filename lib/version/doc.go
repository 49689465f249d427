// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for Tessera
// binaries, injected at build time via -ldflags.
package version
