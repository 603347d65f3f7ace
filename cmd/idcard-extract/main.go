package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/cardsnap/idcard-extract/internal/config"
	"github.com/cardsnap/idcard-extract/internal/mcp"
	"github.com/cardsnap/idcard-extract/internal/service"
)

// Populated through -ldflags at release build time.
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	if hasVersionFlag(os.Args[1:]) {
		printVersion()
		return
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if version != "dev" {
		cfg.Version = version
	}
	configureLogging(cfg)

	docService, err := service.NewService(cfg)
	if err != nil {
		log.Fatalf("Failed to create extraction service: %v", err)
	}
	srv, err := mcp.NewServer(cfg, docService)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	if err := run(srv, cfg); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}

// hasVersionFlag scans the raw arguments before pflag gets a chance to
// reject them as unknown flags.
func hasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version", "-v":
			return true
		}
	}
	return false
}

// configureLogging routes log output by mode. Stdio mode must keep the
// streams clean for the MCP protocol, so logs go to stderr, and nowhere at
// all unless debug logging is on.
func configureLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
		return
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}
}

// run drives the server until it stops on its own or, in server mode, a
// shutdown signal arrives. In stdio mode the parent process owns the
// lifecycle and signal handling stays out of the way.
func run(srv *mcp.Server, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsStdioMode() {
		return srv.Run(ctx)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	select {
	case sig := <-signals:
		log.Printf("Received %s, shutting down", sig)
		cancel()
		return <-errCh
	case err := <-errCh:
		return err
	}
}

func printVersion() {
	fmt.Printf("ID Card Extract\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
