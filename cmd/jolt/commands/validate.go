package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/jolt/chainr"
	"github.com/erraggy/jolt/internal/cliutil"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/erraggy/jolt/node"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Quiet  bool
	Format string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only report failures")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only report failures")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: jolt validate [flags] <chain|->\n\n")
		Writef(fs.Output(), "Parse and build a chain document without running it.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  jolt validate chain.json\n")
		Writef(fs.Output(), "  cat chain.yaml | jolt validate -q -\n")
		Writef(fs.Output(), "  jolt validate --format json chain.json | jq '.valid'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Chain is valid\n")
		Writef(fs.Output(), "  1    Chain is invalid or could not be read\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one chain file path or '-' for stdin")
	}
	chainPath := fs.Arg(0)

	if err := ValidateOutputFormat(flags.Format, FormatText, FormatJSON, FormatYAML); err != nil {
		return err
	}

	data, err := readSource(chainPath)
	if err != nil {
		return err
	}
	c, chainErr := chainr.Parse(data)

	if flags.Format != FormatText {
		if err := OutputStructured(validationReport(c, chainErr), flags.Format); err != nil {
			return err
		}
		if chainErr != nil {
			return fmt.Errorf("chain %s is invalid", FormatInputPath(chainPath))
		}
		return nil
	}

	if chainErr != nil {
		return fmt.Errorf("chain %s is invalid: %w", FormatInputPath(chainPath), chainErr)
	}
	status := cliutil.NewStatus(os.Stderr, flags.Quiet)
	status.Printf("Chain: %s\n", FormatInputPath(chainPath))
	for i, st := range c.Steps() {
		status.Printf("  [%d] %s\n", i, st.Operation)
	}
	status.Printf("\n✓ Chain is valid (%d step(s))\n", c.Len())
	return nil
}

// validationReport builds the structured validate output.
func validationReport(c *chainr.Chain, chainErr error) *node.Object {
	report := node.NewObject()
	if chainErr != nil {
		report.Set("valid", false)
		report.Set("error", chainErr.Error())
		var se *jolterrors.SpecError
		if errors.As(chainErr, &se) && se.Path != "" {
			report.Set("path", se.Path)
		}
		var pe *jolterrors.ParseError
		if errors.As(chainErr, &pe) && pe.Line > 0 {
			report.Set("line", int64(pe.Line))
			report.Set("column", int64(pe.Column))
		}
		return report
	}
	steps := node.NewArray()
	for i, st := range c.Steps() {
		steps.Append(node.ObjectOf("index", int64(i), "operation", st.Operation))
	}
	report.Set("valid", true)
	report.Set("step_count", int64(c.Len()))
	report.Set("steps", steps)
	return report
}
