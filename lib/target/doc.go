// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

// Package target turns a target-specification string into the ordered
// list of fully-resolved compilation targets used by the
// multiversioning backend, and defines the serialized record form
// embedded in compiled images.
//
// The specification mini-language is semicolon-separated target
// entries. Each entry is a profile name (or "native"), optionally
// followed by comma-separated +feature/-feature toggles and the
// clone_all marker:
//
//	native;sifive-u74-mc,+v,-zbs,clone_all
//
// Entry 0 is the baseline every machine must be able to execute;
// later entries are full specialized clones.
package target
