// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the single import point for CBOR serialization.
// Target records embedded in compiled images are encoded with Core
// Deterministic Encoding so that identical target lists produce
// byte-identical blocks across builds — a requirement for
// content-addressed image caching.
package codec
