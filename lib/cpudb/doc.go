// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

// Package cpudb holds the static database of known RISC-V 64
// microarchitecture profiles and the scored best-match classifier used
// when the host exposes no exact microarchitecture name. Each profile
// records its baseline feature set as a superset of its "based-on"
// parent, which keeps the persisted form compact as a diff.
package cpudb
