package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/blurred-segments/internal/detection"
	"github.com/ironsheep/blurred-segments/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("bsd-mcp %s\n", Version)
			fmt.Printf("  Detector:   %s\n", detection.Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("bsd-mcp - MCP server for blurred segment detection")
			fmt.Println()
			fmt.Println("Usage: bsd-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  BSD_MCP_LOG_LEVEL=debug      Log level (trace, debug, info, warn, error). Default info")
			fmt.Println("  BSD_MCP_LOG_FORMAT=json      Log JSON lines instead of console output")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	logger := newLogger()
	logger.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("blurred segment MCP server starting")

	srv := server.New(logger)
	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

// newLogger logs to stderr, stdout being reserved for the MCP protocol.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if s := os.Getenv("BSD_MCP_LOG_LEVEL"); s != "" {
		if l, err := zerolog.ParseLevel(s); err == nil {
			level = l
		}
	}

	var logger zerolog.Logger
	if os.Getenv("BSD_MCP_LOG_FORMAT") == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
