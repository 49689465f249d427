// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

// Package dispatch owns the process-wide multiversioning state: the
// target list built from the target specification, and the
// negotiation that picks which stored variant of a compiled image the
// executing host should run.
//
// An Engine is initialized exactly once, at process start, by the
// primary image load. Secondary images (separately compiled packages)
// negotiate against the already-committed target list. Every failure
// here is a configuration error; nothing is retried.
package dispatch
