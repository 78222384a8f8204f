package locator

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/nexadesk/hostctl/internal/observability"
)

// Component is the backend executable base name produced by packaging.
const Component = "nexa-backend"

// Anchors are the host-supplied starting points for binary discovery.
// An empty field means the host could not resolve that directory; the
// anchor is skipped, never treated as an error.
type Anchors struct {
	ResourceDir string
	ExeDir      string
	AppDataDir  string
}

// Prober answers existence checks so discovery can run against a fake
// filesystem layout in tests.
type Prober interface {
	Exists(path string) bool
}

// OSProber stats the path directly; no symlink resolution, no permission
// check beyond existence.
type OSProber struct{}

func (OSProber) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ExecutableName applies the platform executable suffix convention.
func ExecutableName(component string) string {
	return executableNameFor(runtime.GOOS, component)
}

func executableNameFor(goos, component string) string {
	if goos == "windows" {
		return component + ".exe"
	}
	return component
}

// Candidates builds the ordered hypothesis list for one executable name.
// Order encodes priority: bundled layouts under the resource dir first,
// then the exe dir with installer-relocated variants, then the exe parent
// dir, then user-data locations. Candidates are not deduplicated; the
// first existing one wins.
func Candidates(anchors Anchors, component, name string) []string {
	paths := make([]string, 0, 14)

	if anchors.ResourceDir != "" {
		paths = append(paths,
			filepath.Join(anchors.ResourceDir, "binaries", component, name),
			filepath.Join(anchors.ResourceDir, component, name),
			filepath.Join(anchors.ResourceDir, name),
		)
	}

	if anchors.ExeDir != "" {
		paths = append(paths,
			filepath.Join(anchors.ExeDir, "binaries", component, name),
			filepath.Join(anchors.ExeDir, component, name),
			filepath.Join(anchors.ExeDir, name),
			filepath.Join(anchors.ExeDir, "resources", "binaries", component, name),
			filepath.Join(anchors.ExeDir, "resources", component, name),
			filepath.Join(anchors.ExeDir, "_up_", "resources", "binaries", component, name),
		)
		parent := filepath.Dir(anchors.ExeDir)
		if parent != anchors.ExeDir {
			paths = append(paths,
				filepath.Join(parent, "resources", "binaries", component, name),
				filepath.Join(parent, "resources", component, name),
				filepath.Join(parent, "binaries", component, name),
			)
		}
	}

	if anchors.AppDataDir != "" {
		paths = append(paths,
			filepath.Join(anchors.AppDataDir, "binaries", component, name),
			filepath.Join(anchors.AppDataDir, component, name),
		)
	}

	return paths
}

// Locator runs the priority search and the diagnostic dumps on a miss.
type Locator struct {
	Component string
	Prober    Prober
	DumpDepth int
	Log       zerolog.Logger
}

func New(log zerolog.Logger) *Locator {
	return &Locator{
		Component: Component,
		Prober:    OSProber{},
		DumpDepth: DefaultDumpDepth,
		Log:       log,
	}
}

// Find returns the first existing candidate, in construction order. A total
// miss is reported as ("", false) after dumping the resource and exe anchor
// trees for postmortem inspection; it is never an error. The caller decides
// the fallback.
func (l *Locator) Find(anchors Anchors) (string, bool) {
	name := ExecutableName(l.Component)
	for _, candidate := range Candidates(anchors, l.Component, name) {
		exists := l.Prober.Exists(candidate)
		observability.RecordCandidateProbe(exists)
		l.Log.Info().Str("path", candidate).Bool("exists", exists).Msg("locator.Find probe")
		if !exists {
			continue
		}
		l.logHitDir(candidate)
		return candidate, true
	}

	l.Log.Warn().Str("component", l.Component).Msg("locator.Find backend binary not found in any search path")
	if anchors.ResourceDir != "" {
		l.Log.Warn().Str("dir", anchors.ResourceDir).Msg("locator.Find listing resource dir contents")
		DumpTree(l.Log, anchors.ResourceDir, l.DumpDepth)
	}
	if anchors.ExeDir != "" {
		l.Log.Warn().Str("dir", anchors.ExeDir).Msg("locator.Find listing exe dir contents")
		DumpTree(l.Log, anchors.ExeDir, l.DumpDepth)
	}
	return "", false
}

// logHitDir records the directory the backend will run from, with its
// entries, so packaging mistakes next to the binary show up in the log.
func (l *Locator) logHitDir(candidate string) {
	dir := filepath.Dir(candidate)
	l.Log.Info().Str("dir", dir).Msg("locator.Find working dir will be")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		l.Log.Info().Str("entry", filepath.Join(dir, entry.Name())).Msg("locator.Find sibling")
	}
}
