// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

// Package isa defines the RISC-V 64 instruction-set feature universe
// used by the target-dispatch engine: named feature bits with stable
// ordinals, fixed-width feature sets, and the dependency closure
// operations that keep a set self-consistent.
//
// Ordinals are persisted inside compiled images and must never be
// reassigned. The feature and dependency tables are static data,
// constructed once and never mutated at runtime.
package isa
