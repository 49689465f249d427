// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package hostcpu

// probeHost on platforms without an exposed capability description:
// empty feature set, generic profile.
func probeHost() Info {
	return Info{Name: "generic"}
}
