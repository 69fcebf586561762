package main

import (
	"fmt"
	"os"

	"github.com/agext/levenshtein"

	"github.com/erraggy/jolt"
	"github.com/erraggy/jolt/cmd/jolt/commands"
)

// commandNames lists the commands suggestCommand can propose.
var commandNames = []string{"transform", "validate", "functions", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	var err error

	switch command {
	case "version", "-v", "--version":
		fmt.Println(jolt.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "transform":
		err = commands.HandleTransform(os.Args[2:])
	case "validate":
		err = commands.HandleValidate(os.Args[2:])
	case "functions":
		err = commands.HandleFunctions(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		commands.Writef(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			commands.Writef(os.Stderr, "Did you mean: %s?\n", s)
		}
		commands.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		commands.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when none is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein.Distance(input, name, nil); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func printUsage() {
	usage := `jolt - JSON to JSON transforms

Usage:
  jolt <command> [options]

Commands:
  transform   Run a chain (or a single spec) against a JSON or YAML document
  validate    Check that a chain document parses and builds
  functions   List the functions available to modify-* specs
  mcp         Start the MCP server on stdio
  version     Show version information
  help        Show this help message

Examples:
  jolt transform --chain chain.json input.json
  jolt transform --spec spec.json --op shift -o out.json input.yaml
  jolt validate chain.yaml
  jolt functions --format json

Run 'jolt <command> --help' for more information on a command.`

	fmt.Println(usage)
}
