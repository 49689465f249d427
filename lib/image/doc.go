// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

// Package image reads and writes the target block embedded in
// compiled images: the serialized list of target records a previously
// compiled image was built for. The block is a framed, compressed,
// integrity-hashed CBOR array — negotiation refuses to guess about a
// corrupt block, it rejects it.
package image
