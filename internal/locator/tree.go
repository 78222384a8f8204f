package locator

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// DefaultDumpDepth bounds diagnostic traversal so a miss never walks an
// unbounded or symlink-cycled tree.
const DefaultDumpDepth = 3

// DumpTree logs the contents of dir recursively, down to maxDepth levels
// below it. Diagnostic only; it has no effect on discovery.
func DumpTree(log zerolog.Logger, dir string, maxDepth int) {
	dumpTree(log, dir, 0, maxDepth)
}

func dumpTree(log zerolog.Logger, dir string, depth, maxDepth int) {
	if depth > maxDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn().Str("dir", dir).Err(err).Msg("locator.DumpTree read failed")
		return
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		log.Info().Int("depth", depth).Str("path", path).Msg("locator.DumpTree entry")
		if entry.IsDir() {
			dumpTree(log, path, depth+1, maxDepth)
		}
	}
}
