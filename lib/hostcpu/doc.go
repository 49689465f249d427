// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

// Package hostcpu probes the executing machine's CPU capabilities.
// On linux/riscv64 it parses the kernel's textual ISA description
// from /proc/cpuinfo into a feature set and, when the uarch line
// names a recognizable microarchitecture, an exact profile name.
// Platforms without an exposed probe report an empty feature set and
// the generic profile.
//
// The probe runs at most once per process; every caller observes the
// same memoized result.
package hostcpu
