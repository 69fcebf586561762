package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/erraggy/jolt/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: jolt mcp\n\n")
		Writef(fs.Output(), "Start a Model Context Protocol server on stdin/stdout exposing the\n")
		Writef(fs.Output(), "transform, validate_spec, and list_functions tools.\n\n")
		Writef(fs.Output(), "Configuration is read from JOLT_* environment variables:\n")
		Writef(fs.Output(), "  JOLT_MAX_INPUT_SIZE     maximum bytes read for any document (default 10485760)\n")
		Writef(fs.Output(), "  JOLT_OUTPUT_FORMAT      default transform output format: json or yaml\n")
		Writef(fs.Output(), "  JOLT_STEP_TIMEOUT       per-step time limit, e.g. 2s (default: none)\n")
		Writef(fs.Output(), "  JOLT_LOG_LEVEL          debug, info, warn, or error (default info)\n")
		Writef(fs.Output(), "  JOLT_CACHE_ENABLED      cache built chains between calls (default true)\n")
		Writef(fs.Output(), "  JOLT_ALLOW_PRIVATE_IPS  allow url inputs on private networks (default false)\n")
	}
	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return mcpserver.Run(ctx)
}
