package core

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	getopt "github.com/pborman/getopt/v2"
)

// SimpleCommand parses the arguments of a builtin and renders its help.
type SimpleCommand struct {
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool
	// NoFlags hands every argument to the callback without option parsing,
	// for builtins whose operands may look like flags.
	NoFlags bool

	flags *getopt.Set
}

// newSimpleCommand creates a SimpleCommand from the registry entry of name.
func newSimpleCommand(name string) *SimpleCommand {
	entry := allBuiltins[name]
	return &SimpleCommand{Use: entry.Use, Short: entry.Short}
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	if s.NoFlags {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run parses ec.Args and, if successful, calls the callback with the
// remaining operands.
func (s *SimpleCommand) Run(ec *ExecContext, callback func(args []string) int) int {
	if s.NoFlags {
		return callback(ec.Args[1:])
	}

	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(ec.Args, nil); err != nil {
		ec.PrintError("%v", err)
		s.PrintHelp(ec.Stderr())
		return ExitUsage
	}

	if *s.ShowHelp {
		s.PrintHelp(ec.Stdout())
		return ExitSuccess
	}

	return callback(opts.Args())
}

const (
	colorAlways = "always"
	colorAuto   = "auto"
	colorNever  = "never"
)

var (
	ColorBold      = color.New(color.Bold)
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
)

// ColorPrinter decides whether a builtin colors its output.
type ColorPrinter struct {
	value *string
	ec    *ExecContext
}

// Init sets up the flag and context used to determine the color output.
func (c *ColorPrinter) Init(flags *getopt.Set, ec *ExecContext) {
	c.ec = ec
	c.value = flags.EnumLong(
		"color",
		rune(0), // No short flag.
		[]string{colorAlways, colorAuto, colorNever},
		colorAuto,
		"colorize the output (always|auto|never)")
}

// ShouldColor reports whether output should be colored. Auto colors
// interactive sessions only.
func (c *ColorPrinter) ShouldColor() bool {
	switch {
	case *c.value == colorNever:
		return false
	case *c.value == colorAlways:
		return true
	default:
		return c.ec.Interactive
	}
}

// Fprintf writes to w with col when coloring is enabled.
func (c *ColorPrinter) Fprintf(w io.Writer, col *color.Color, format string, a ...interface{}) {
	if !c.ShouldColor() {
		fmt.Fprintf(w, format, a...)
		return
	}

	// Copy so the shared color's global NoColor detection can be overridden.
	forced := *col
	forced.EnableColor()
	forced.Fprintf(w, format, a...)
}
