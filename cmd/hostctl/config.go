package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nexadesk/hostctl/internal/host"
)

// hostctl config.toml key mapping to host shell runtime settings.
type fileConfig struct {
	Component   string `toml:"component"`
	BindHost    string `toml:"bind_host"`
	BindPort    int    `toml:"bind_port"`
	ResourceDir string `toml:"resource_dir"`
	AppDataDir  string `toml:"app_data_dir"`
	DevRootHops int    `toml:"dev_root_hops"`
	DumpDepth   int    `toml:"dump_depth"`
	StatusAddr  string `toml:"status_addr"`
}

// hostctl loader for TOML config with default overlay.
func loadServiceConfig(path string) (host.ServiceConfig, error) {
	cfg := host.DefaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return host.ServiceConfig{}, fmt.Errorf("load hostctl config: %w", err)
	}

	if meta.IsDefined("component") {
		cfg.Component = strings.TrimSpace(raw.Component)
	}
	if meta.IsDefined("bind_host") {
		cfg.BindHost = strings.TrimSpace(raw.BindHost)
	}
	if meta.IsDefined("bind_port") {
		cfg.BindPort = raw.BindPort
	}
	if meta.IsDefined("resource_dir") {
		cfg.ResourceDir = strings.TrimSpace(raw.ResourceDir)
	}
	if meta.IsDefined("app_data_dir") {
		cfg.AppDataDir = strings.TrimSpace(raw.AppDataDir)
	}
	if meta.IsDefined("dev_root_hops") {
		cfg.DevRootHops = raw.DevRootHops
	}
	if meta.IsDefined("dump_depth") {
		cfg.DumpDepth = raw.DumpDepth
	}
	if meta.IsDefined("status_addr") {
		cfg.StatusAddr = strings.TrimSpace(raw.StatusAddr)
	}

	if err := cfg.Validate(); err != nil {
		return host.ServiceConfig{}, fmt.Errorf("hostctl config invalid: %w", err)
	}
	return cfg, nil
}
