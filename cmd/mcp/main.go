package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/porcus-tools/internal/config"
	"github.com/JaimeStill/porcus-tools/internal/infrastructure"
	"github.com/JaimeStill/porcus-tools/internal/mcp"
)

const name = "porcus-tools-mcp"

// Set by ldflags during build.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("%s %s\n", name, Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	// stdout carries the protocol.
	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	infra, err := infrastructure.New(cfg, os.Stderr)
	if err != nil {
		log.Fatal("infrastructure init failed:", err)
	}

	if err := infra.Start(); err != nil {
		log.Fatal("infrastructure start failed:", err)
	}
	infra.Lifecycle.WaitForStartup()

	ctx, stop := signal.NotifyContext(infra.Lifecycle.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	version := Version
	if version == "dev" {
		version = cfg.Version
	}

	// A signal closes stdin so the read loop drains and returns.
	go func() {
		<-ctx.Done()
		os.Stdin.Close()
	}()

	srv := mcp.New(infra.Tools, mcp.Info{Name: name, Version: version}, infra.Logger)
	runErr := srv.Run(ctx, os.Stdin, os.Stdout)

	if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		infra.Logger.Error("shutdown failed", "error", err)
	}

	if runErr != nil {
		log.Fatal("server error:", runErr)
	}
}

func printHelp() {
	fmt.Printf("%s - MCP server for the Porcus Lardum image transformation API\n", name)
	fmt.Println()
	fmt.Printf("Usage: %s [options]\n", name)
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  PORCUS_LARDUM_API_KEY     API key for the transformation service (required for most tools)")
	fmt.Println("  PORCUS_LARDUM_BASE_URL    Transformation service base URL")
	fmt.Println("  PRODIGI_API_KEY           API key for product specifications")
	fmt.Println("  LOGGING_LEVEL=debug       Enable debug logging (written to stderr)")
	fmt.Println("  STORAGE_BASE_PATH         Directory for binary transform results")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
}

