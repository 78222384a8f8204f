package supervisor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/nexadesk/hostctl/internal/locator"
)

// Mode tags the launch variant. Exactly one mode is chosen per host
// session, never re-evaluated.
type Mode string

const (
	ModeBundled Mode = "bundled"
	ModeDev     Mode = "dev"
)

// Fixed network contract with the backend: loopback bind, fixed port.
const (
	DefaultBindHost = "127.0.0.1"
	DefaultBindPort = 8000
)

// DefaultDevRootHops is the number of parent-directory steps from the exe
// dir up to the development tree root. Packaging-layout dependent, so it
// stays overridable through config.
const DefaultDevRootHops = 4

var (
	ErrNoBackendDir  = errors.New("backend directory not found")
	ErrNoInterpreter = errors.New("venv interpreter not found")
)

// Plan is a fully resolved launch recipe: what to exec, where, and with
// which environment. Built once, consumed once.
type Plan struct {
	Mode Mode
	Path string
	Args []string
	Dir  string
	Env  []string
}

// BundledPlan launches a packaged backend binary directly. The working
// directory is the binary's own directory so the backend's relative
// resource loads resolve next to it. No arguments; the bind address is
// carried through the environment.
func BundledPlan(binaryPath, host string, port int) Plan {
	return Plan{
		Mode: ModeBundled,
		Path: binaryPath,
		Dir:  filepath.Dir(binaryPath),
		Env:  bindEnv(host, port),
	}
}

// DevPlan is the interpreted fallback from a local development tree:
// <root>/backend served by the venv interpreter through uvicorn, with root
// resolved hops parent steps above exeDir. There is no further fallback
// behind this one; a missing tree or interpreter fails the plan.
func DevPlan(exeDir string, hops int, host string, port int, prober locator.Prober) (Plan, error) {
	if hops <= 0 {
		hops = DefaultDevRootHops
	}
	root := exeDir
	for i := 0; i < hops; i++ {
		root = filepath.Dir(root)
	}
	backendDir := filepath.Join(root, "backend")
	if !prober.Exists(backendDir) {
		return Plan{}, fmt.Errorf("%w: %s", ErrNoBackendDir, backendDir)
	}
	python := venvPython(backendDir)
	if !prober.Exists(python) {
		return Plan{}, fmt.Errorf("%w: %s", ErrNoInterpreter, python)
	}
	return Plan{
		Mode: ModeDev,
		Path: python,
		Args: []string{
			"-m", "uvicorn", "main:app",
			"--host", host,
			"--port", strconv.Itoa(port),
		},
		Dir: backendDir,
	}, nil
}

func venvPython(backendDir string) string {
	return venvPythonFor(runtime.GOOS, backendDir)
}

func venvPythonFor(goos, backendDir string) string {
	if goos == "windows" {
		return filepath.Join(backendDir, ".venv", "Scripts", "python.exe")
	}
	return filepath.Join(backendDir, ".venv", "bin", "python")
}

// bindEnv layers the fixed bind address over the inherited environment.
// The child's own configuration loading is out of scope.
func bindEnv(host string, port int) []string {
	return append(os.Environ(),
		"HOST="+host,
		"PORT="+strconv.Itoa(port),
	)
}
