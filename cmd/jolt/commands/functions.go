package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/jolt/chainr"
	"github.com/erraggy/jolt/function"
	"github.com/erraggy/jolt/node"
)

// FunctionsFlags contains flags for the functions command
type FunctionsFlags struct {
	Format string
}

// SetupFunctionsFlags creates and configures a FlagSet for the functions command.
func SetupFunctionsFlags() (*flag.FlagSet, *FunctionsFlags) {
	fs := flag.NewFlagSet("functions", flag.ContinueOnError)
	flags := &FunctionsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: jolt functions [flags]\n\n")
		Writef(fs.Output(), "List the functions available to modify-* specs (as \"=name(args)\" values)\n")
		Writef(fs.Output(), "and the operations accepted in chain documents.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

// HandleFunctions executes the functions command
func HandleFunctions(args []string) error {
	fs, flags := SetupFunctionsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("functions command takes no arguments")
	}
	if err := ValidateOutputFormat(flags.Format, FormatText, FormatJSON, FormatYAML); err != nil {
		return err
	}

	names := function.Default().Names()
	ops := chainr.Operations()

	if flags.Format != FormatText {
		fnList := node.NewArray()
		for _, n := range names {
			fnList.Append(n)
		}
		opList := node.NewArray()
		for _, op := range ops {
			opList.Append(op)
		}
		return OutputStructured(node.ObjectOf("functions", fnList, "operations", opList), flags.Format)
	}

	Writef(os.Stdout, "Operations:\n")
	for _, op := range ops {
		Writef(os.Stdout, "  %s\n", op)
	}
	Writef(os.Stdout, "\nFunctions (%d):\n", len(names))
	for _, n := range names {
		Writef(os.Stdout, "  %s\n", n)
	}
	return nil
}
