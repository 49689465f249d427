// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the dispatch
// tooling.
//
// Configuration is loaded from a single YAML file specified by:
//   - TESSERA_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This keeps the
// compiled-for configuration deterministic and auditable: the target
// specification in the file is exactly what the backend compiles for.
package config
