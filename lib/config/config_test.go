// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tessera.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t,
		"target_spec: \"generic;sifive-u74-mc,clone_all\"\n"+
			"image_dir: /var/lib/tessera/images\n"+
			"backend_features:\n"+
			"  - \"+xtheadba\"\n"+
			"log_level: debug\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.TargetSpec != "generic;sifive-u74-mc,clone_all" {
		t.Errorf("TargetSpec = %q", cfg.TargetSpec)
	}
	if cfg.ImageDir != "/var/lib/tessera/images" {
		t.Errorf("ImageDir = %q", cfg.ImageDir)
	}
	if len(cfg.BackendFeatures) != 1 || cfg.BackendFeatures[0] != "+xtheadba" {
		t.Errorf("BackendFeatures = %v", cfg.BackendFeatures)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.TargetSpec != "native" {
		t.Errorf("TargetSpec default = %q, want native", cfg.TargetSpec)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel default = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFileExpandsVars(t *testing.T) {
	t.Setenv("TESSERA_TEST_ROOT", "/srv/tessera")
	cfg, err := LoadFile(writeConfig(t, "image_dir: ${TESSERA_TEST_ROOT}/images\n"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.ImageDir != "/srv/tessera/images" {
		t.Errorf("ImageDir = %q", cfg.ImageDir)
	}
}

func TestLoadRequiresEnv(t *testing.T) {
	t.Setenv("TESSERA_CONFIG", "")
	if _, err := Load(); err == nil {
		t.Error("Load without TESSERA_CONFIG should fail")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.TargetSpec = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty target_spec should fail validation")
	}

	cfg = Default()
	cfg.LogLevel = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown log_level should fail validation")
	}
}
