// probectl runs backend binary discovery against explicit or auto-resolved
// anchors and reports every candidate, for debugging packaging layouts.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nexadesk/hostctl/internal/locator"
	"github.com/nexadesk/hostctl/internal/observability"
)

func main() {
	component := flag.String("component", locator.Component, "backend component name")
	resourceDir := flag.String("resource-dir", "", "resource anchor directory")
	appDataDir := flag.String("app-data-dir", "", "per-user app data anchor directory")
	exeDir := flag.String("exe-dir", "", "executable anchor directory (default: this binary's dir)")
	dumpDepth := flag.Int("dump-depth", locator.DefaultDumpDepth, "tree dump depth on a miss")
	logLevel := flag.String("log-level", "info", "log level (trace|debug|info|warn|error)")
	flag.Parse()

	logger := observability.InitLogger("probectl", *logLevel)

	anchors := locator.Anchors{
		ResourceDir: *resourceDir,
		ExeDir:      *exeDir,
		AppDataDir:  *appDataDir,
	}
	if anchors.ExeDir == "" {
		if exe, err := os.Executable(); err == nil {
			anchors.ExeDir = filepath.Dir(exe)
		}
	}

	name := locator.ExecutableName(*component)
	prober := locator.OSProber{}
	found := ""
	for _, candidate := range locator.Candidates(anchors, *component, name) {
		mark := " "
		if prober.Exists(candidate) {
			mark = "x"
			if found == "" {
				found = candidate
			}
		}
		fmt.Printf("[%s] %s\n", mark, candidate)
	}

	if found != "" {
		fmt.Printf("selected: %s\n", found)
		return
	}

	fmt.Println("no candidate exists")
	if anchors.ResourceDir != "" {
		locator.DumpTree(logger, anchors.ResourceDir, *dumpDepth)
	}
	if anchors.ExeDir != "" {
		locator.DumpTree(logger, anchors.ExeDir, *dumpDepth)
	}
	os.Exit(1)
}
