// Package host is the desktop-shell integration boundary: it stands in for
// the host framework's event loop and feeds exactly two signals to the
// supervisor, a startup hook and a terminal exit hook.
package host

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/nexadesk/hostctl/internal/locator"
	"github.com/nexadesk/hostctl/internal/supervisor"
)

// Host shell runtime settings.
type ServiceConfig struct {
	Component   string
	BindHost    string
	BindPort    int
	ResourceDir string
	AppDataDir  string
	DevRootHops int
	DumpDepth   int
	StatusAddr  string
}

// Host shell defaults: loopback backend bind and the packaged component
// name. The status endpoint is local-only.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Component:   locator.Component,
		BindHost:    supervisor.DefaultBindHost,
		BindPort:    supervisor.DefaultBindPort,
		DevRootHops: supervisor.DefaultDevRootHops,
		DumpDepth:   locator.DefaultDumpDepth,
		StatusAddr:  "127.0.0.1:9010",
	}
}

// WithDefaults fills unset fields from the default config.
func (c ServiceConfig) WithDefaults() ServiceConfig {
	def := DefaultServiceConfig()
	if strings.TrimSpace(c.Component) == "" {
		c.Component = def.Component
	}
	if strings.TrimSpace(c.BindHost) == "" {
		c.BindHost = def.BindHost
	}
	if c.BindPort == 0 {
		c.BindPort = def.BindPort
	}
	if c.DevRootHops == 0 {
		c.DevRootHops = def.DevRootHops
	}
	if c.DumpDepth == 0 {
		c.DumpDepth = def.DumpDepth
	}
	return c
}

// Validate ensures the config is usable.
func (c ServiceConfig) Validate() error {
	if strings.TrimSpace(c.Component) == "" {
		return fmt.Errorf("component name required")
	}
	if strings.ContainsAny(c.Component, `/\`) {
		return fmt.Errorf("component name must not contain path separators: %q", c.Component)
	}
	if c.BindPort < 1 || c.BindPort > 65535 {
		return fmt.Errorf("bind port out of range: %d", c.BindPort)
	}
	if c.DevRootHops < 1 {
		return fmt.Errorf("dev root hops must be >= 1")
	}
	if c.DumpDepth < 0 {
		return fmt.Errorf("dump depth must be >= 0")
	}
	return nil
}

// Host shell service owning one locator and one supervisor per session.
type Service struct {
	cfg        ServiceConfig
	locator    *locator.Locator
	supervisor *supervisor.Supervisor
	log        zerolog.Logger
}

// Host shell constructor using default configuration.
func NewService(log zerolog.Logger) *Service {
	return NewServiceWithConfig(DefaultServiceConfig(), log)
}

// Host shell constructor using explicit configuration.
func NewServiceWithConfig(cfg ServiceConfig, log zerolog.Logger) *Service {
	cfg = cfg.WithDefaults()
	loc := locator.New(log)
	loc.Component = cfg.Component
	loc.DumpDepth = cfg.DumpDepth
	return &Service{
		cfg:        cfg,
		locator:    loc,
		supervisor: supervisor.New(log),
		log:        log,
	}
}

// Run is the host entrypoint: it performs the single launch attempt, then
// blocks until process signal shutdown and reaps the backend before
// returning.
func (s *Service) Run() error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.bootstrap()
	return s.serve(ctx)
}

// bootstrap performs discovery and the one launch attempt. Failing to
// produce a backend is logged, never fatal: the host keeps running without
// one.
func (s *Service) bootstrap() {
	anchors := s.resolveAnchors()
	plan, ok := s.selectPlan(anchors)
	if !ok {
		s.log.Warn().Msg("host.Service.bootstrap failed to start backend - ensure it's running separately")
		return
	}
	if _, err := s.supervisor.Launch(plan); err != nil {
		s.log.Warn().Err(err).
			Str("mode", string(plan.Mode)).
			Msg("host.Service.bootstrap failed to start backend - ensure it's running separately")
		return
	}
	s.log.Info().Msg("host.Service.bootstrap backend process started successfully")
}

// resolveAnchors gathers the discovery starting points. Any anchor the
// host cannot resolve is left empty and skipped downstream.
func (s *Service) resolveAnchors() locator.Anchors {
	anchors := locator.Anchors{
		ResourceDir: s.cfg.ResourceDir,
		AppDataDir:  s.cfg.AppDataDir,
	}
	exe, err := os.Executable()
	if err != nil {
		s.log.Warn().Err(err).Msg("host.Service.resolveAnchors executable path unavailable")
		return anchors
	}
	anchors.ExeDir = filepath.Dir(exe)
	return anchors
}

// selectPlan chooses the launch mode exactly once: bundled iff discovery
// found a binary, otherwise the dev fallback. Never both.
func (s *Service) selectPlan(anchors locator.Anchors) (supervisor.Plan, bool) {
	if path, found := s.locator.Find(anchors); found {
		return supervisor.BundledPlan(path, s.cfg.BindHost, s.cfg.BindPort), true
	}
	s.log.Info().Msg("host.Service.selectPlan no bundled backend found, trying dev mode")
	if anchors.ExeDir == "" {
		return supervisor.Plan{}, false
	}
	plan, err := supervisor.DevPlan(anchors.ExeDir, s.cfg.DevRootHops, s.cfg.BindHost, s.cfg.BindPort, s.locator.Prober)
	if err != nil {
		s.log.Warn().Err(err).Msg("host.Service.selectPlan dev fallback unavailable")
		return supervisor.Plan{}, false
	}
	return plan, true
}

// serve blocks on the host's exit signal, then runs the terminal exit
// hook: backend shutdown first, status server teardown after.
func (s *Service) serve(ctx context.Context) error {
	srv := s.startStatusServer()

	<-ctx.Done()
	s.log.Info().Msg("host.Service.serve exit signal received")
	s.supervisor.Shutdown()
	s.stopStatusServer(srv)
	return nil
}

// Supervisor exposes the session's process owner, for the status surface
// and diagnostics.
func (s *Service) Supervisor() *supervisor.Supervisor {
	return s.supervisor
}
