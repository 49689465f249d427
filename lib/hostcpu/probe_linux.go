// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package hostcpu

import (
	"strings"

	"golang.org/x/sys/unix"
)

// probeHost reads the live machine. The /proc parse is only trusted
// when uname(2) reports a riscv64 machine; a foreign-architecture
// kernel (or an emulation layer exposing a borrowed /proc) yields the
// generic profile with no features.
func probeHost() Info {
	if machineArch() != "riscv64" {
		return Info{Name: "generic"}
	}
	return probeFrom("/proc")
}

// machineArch returns the uname machine field, or "" if the syscall
// fails.
func machineArch() string {
	var utsname unix.Utsname
	if err := unix.Uname(&utsname); err != nil {
		return ""
	}
	machine := utsname.Machine[:]
	end := 0
	for end < len(machine) && machine[end] != 0 {
		end++
	}
	return strings.ToLower(string(machine[:end]))
}
