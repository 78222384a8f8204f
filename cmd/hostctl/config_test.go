package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServiceConfigDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.toml")
	content := `
component = "nexa-backend"
bind_port = 8100
resource_dir = "/opt/nexa/resources"
dev_root_hops = 6
status_addr = ""
	`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Component != "nexa-backend" {
		t.Fatalf("unexpected component: %q", cfg.Component)
	}
	if cfg.BindHost != "127.0.0.1" {
		t.Fatalf("unexpected bind host default: %q", cfg.BindHost)
	}
	if cfg.BindPort != 8100 {
		t.Fatalf("unexpected bind port: %d", cfg.BindPort)
	}
	if cfg.ResourceDir != "/opt/nexa/resources" {
		t.Fatalf("unexpected resource dir: %q", cfg.ResourceDir)
	}
	if cfg.AppDataDir != "" {
		t.Fatalf("unexpected app data dir: %q", cfg.AppDataDir)
	}
	if cfg.DevRootHops != 6 {
		t.Fatalf("unexpected hops: %d", cfg.DevRootHops)
	}
	if cfg.DumpDepth != 3 {
		t.Fatalf("unexpected dump depth default: %d", cfg.DumpDepth)
	}
	if cfg.StatusAddr != "" {
		t.Fatalf("status endpoint should be disabled, got %q", cfg.StatusAddr)
	}
}

func TestLoadServiceConfigRejectsBadPort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("bind_port = 70000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadServiceConfigMissingFileFails(t *testing.T) {
	if _, err := loadServiceConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected load error")
	}
}
