package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nexadesk/hostctl/internal/host"
	"github.com/nexadesk/hostctl/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to hostctl config.toml")
	logLevel := flag.String("log-level", "info", "log level (trace|debug|info|warn|error)")
	flag.Parse()

	logger := observability.InitLogger("hostctl", *logLevel)

	cfg := host.DefaultServiceConfig()
	if *configPath != "" {
		loaded, err := loadServiceConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hostctl: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	svc := host.NewServiceWithConfig(cfg, logger)
	if err := svc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "hostctl: %v\n", err)
		os.Exit(1)
	}
}
