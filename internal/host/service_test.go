package host

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nexadesk/hostctl/internal/locator"
	"github.com/nexadesk/hostctl/internal/supervisor"
)

type fakeProber map[string]bool

func (f fakeProber) Exists(path string) bool { return f[path] }

type idleProc struct{}

func (idleProc) Kill() error { return nil }
func (idleProc) Wait() error { return nil }

type recordingStarter struct {
	plans []supervisor.Plan
	err   error
}

func (r *recordingStarter) Start(plan supervisor.Plan) (*supervisor.Handle, error) {
	r.plans = append(r.plans, plan)
	if r.err != nil {
		return nil, r.err
	}
	return supervisor.NewHandle("test-launch", 4242, plan.Mode, idleProc{}), nil
}

func newTestService(prober locator.Prober, starter supervisor.Starter) *Service {
	svc := NewServiceWithConfig(DefaultServiceConfig(), zerolog.Nop())
	svc.locator.Prober = prober
	svc.supervisor = supervisor.NewWithStarter(starter, zerolog.Nop())
	return svc
}

func TestSelectPlanBundledWhenLocatorHits(t *testing.T) {
	anchors := locator.Anchors{ResourceDir: "r"}
	name := locator.ExecutableName(locator.Component)
	bundled := filepath.Join("r", "binaries", locator.Component, name)
	svc := newTestService(fakeProber{bundled: true}, &recordingStarter{})

	plan, ok := svc.selectPlan(anchors)
	if !ok {
		t.Fatalf("expected a plan")
	}
	if plan.Mode != supervisor.ModeBundled {
		t.Fatalf("unexpected mode: %q", plan.Mode)
	}
	if plan.Path != bundled {
		t.Fatalf("unexpected path: %q", plan.Path)
	}
}

func TestSelectPlanDevFallbackWhenLocatorMisses(t *testing.T) {
	exeDir := filepath.Join("root", "frontend", "src-tauri", "target", "debug")
	backendDir := filepath.Join("root", "backend")
	prober := fakeProber{backendDir: true}
	prober[filepath.Join(backendDir, ".venv", "bin", "python")] = true
	prober[filepath.Join(backendDir, ".venv", "Scripts", "python.exe")] = true
	svc := newTestService(prober, &recordingStarter{})

	plan, ok := svc.selectPlan(locator.Anchors{ExeDir: exeDir})
	if !ok {
		t.Fatalf("expected dev fallback plan")
	}
	if plan.Mode != supervisor.ModeDev {
		t.Fatalf("unexpected mode: %q", plan.Mode)
	}
	if plan.Dir != backendDir {
		t.Fatalf("unexpected workdir: %q", plan.Dir)
	}
}

func TestSelectPlanNeitherModeAvailable(t *testing.T) {
	svc := newTestService(fakeProber{}, &recordingStarter{})

	if _, ok := svc.selectPlan(locator.Anchors{ExeDir: filepath.Join("a", "b", "c", "d", "e")}); ok {
		t.Fatalf("expected no plan")
	}
}

func TestLaunchFailureIsNonFatalToTheHost(t *testing.T) {
	anchors := locator.Anchors{ResourceDir: "r"}
	name := locator.ExecutableName(locator.Component)
	bundled := filepath.Join("r", "binaries", locator.Component, name)
	starter := &recordingStarter{err: errors.New("spawn refused")}
	svc := newTestService(fakeProber{bundled: true}, starter)

	plan, ok := svc.selectPlan(anchors)
	if !ok {
		t.Fatalf("expected a plan")
	}
	if _, err := svc.supervisor.Launch(plan); err == nil {
		t.Fatalf("expected launch error")
	}
	if svc.supervisor.Status().Running {
		t.Fatalf("host must continue without a backend handle")
	}
	if len(starter.plans) != 1 || starter.plans[0].Mode != supervisor.ModeBundled {
		t.Fatalf("expected exactly one bundled attempt, saw %v", starter.plans)
	}
}

func TestServiceConfigValidation(t *testing.T) {
	cfg := DefaultServiceConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}

	bad := cfg
	bad.BindPort = 0
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected port validation error")
	}

	bad = cfg
	bad.Component = "a/b"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected component validation error")
	}

	bad = cfg
	bad.DevRootHops = 0
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected hops validation error")
	}
}

func TestWithDefaultsFillsZeroFields(t *testing.T) {
	cfg := ServiceConfig{}.WithDefaults()
	if cfg.Component != locator.Component {
		t.Fatalf("unexpected component: %q", cfg.Component)
	}
	if cfg.BindHost != "127.0.0.1" || cfg.BindPort != 8000 {
		t.Fatalf("unexpected bind defaults: %s:%d", cfg.BindHost, cfg.BindPort)
	}
	if cfg.DevRootHops != 4 {
		t.Fatalf("unexpected hops default: %d", cfg.DevRootHops)
	}
}
