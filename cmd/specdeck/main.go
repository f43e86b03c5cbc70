// specdeck: session tracking MCP server for checklist-driven work.
//
// It turns a markdown checklist (deck/tasks.md) into a state machine:
// start a task, mark items as you work them, tick them done. Guards
// against instant completions, queues mid-flow requests, and persists
// handover notes across sessions.
//
// Usage:
//
//	specdeck serve    # Start MCP server (stdio transport)
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/specdeck/specdeck/internal/logging"
	sdserver "github.com/specdeck/specdeck/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("specdeck v%s\n", sdserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	// Logs go to a file (or stderr as fallback) — never stdout, which
	// belongs to the MCP stdio transport.
	logPath, err := logging.DefaultLogPath()
	if err == nil {
		err = logging.Init(logPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging unavailable: %v\n", err)
	}
	defer logging.Close()

	s, cleanup, err := sdserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `specdeck v%s — checklist session tracker (MCP server)

Usage:
  specdeck serve    Start the MCP server (stdio transport)

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "specdeck": {
        "command": "specdeck",
        "args": ["serve"]
      }
    }
  }
`, sdserver.Version)
}
