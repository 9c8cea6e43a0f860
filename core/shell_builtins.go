package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/anmitsu/go-shlex"
	"github.com/josephlewis42/hsh/core/history"
	"github.com/josephlewis42/hsh/core/shell"
	"github.com/josephlewis42/hsh/core/vos"
)

// Builtin is a command the interpreter runs in-process. Main returns the
// command's status, or StatusTerminate to end the session.
type Builtin interface {
	Main(ec *ExecContext) int
}

// BuiltinFunc adapts a function to the Builtin interface.
type BuiltinFunc func(ec *ExecContext) int

// Main implements Builtin.Main.
func (f BuiltinFunc) Main(ec *ExecContext) int {
	return f(ec)
}

var _ Builtin = (BuiltinFunc)(nil)

type builtinEntry struct {
	Builtin

	Use   string
	Short string
}

// allBuiltins is filled once during package initialization and only read
// afterwards.
var allBuiltins = make(map[string]builtinEntry)

func addBuiltin(name, use, short string, fn BuiltinFunc) {
	allBuiltins[name] = builtinEntry{Builtin: fn, Use: use, Short: short}
}

// LookupBuiltin finds a builtin by exact, case-sensitive name.
func LookupBuiltin(name string) (Builtin, bool) {
	entry, ok := allBuiltins[name]
	if !ok {
		return nil, false
	}
	return entry.Builtin, true
}

// BuiltinNames lists the builtins in alphabetical order.
func BuiltinNames() []string {
	var names []string
	for name := range allBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltinUsage returns the usage line and description of a builtin.
func BuiltinUsage(name string) (use, short string, ok bool) {
	entry, ok := allBuiltins[name]
	return entry.Use, entry.Short, ok
}

// Cd is the cd shell builtin
func Cd(ec *ExecContext) int {
	cmd := newSimpleCommand("cd")
	cmd.NoFlags = true

	return cmd.Run(ec, func(args []string) int {
		var target string
		printDir := false

		switch len(args) {
		case 0:
			target = ec.Env.Getenv(EnvHome)
			if target == "" {
				target = "/"
			}
		case 1:
			target = args[0]
			if target == "-" {
				target = ec.Dir
				if old, ok := ec.Env.LookupEnv(EnvOldPWD); ok && old != "" {
					target = old
				}
				printDir = true
			}
		default:
			ec.PrintError("too many arguments")
			return ExitFailure
		}

		dir, err := vos.Chdir(ec.FS, ec.Dir, target)
		if err != nil {
			ec.PrintError("can't cd to %s", target)
			return ExitUsage
		}

		_ = ec.Env.Setenv(EnvOldPWD, ec.Dir)
		_ = ec.Env.Setenv(EnvPWD, dir)
		ec.Dir = dir

		if printDir {
			fmt.Fprintln(ec.Stdout(), dir)
		}
		return ExitSuccess
	})
}

// Env prints the environment. Operands are ignored.
func Env(ec *ExecContext) int {
	cmd := newSimpleCommand("env")
	cmd.NoFlags = true

	return cmd.Run(ec, func([]string) int {
		w := ec.Stdout()
		for _, kv := range ec.Env.Environ() {
			fmt.Fprintln(w, kv)
		}
		return ExitSuccess
	})
}

// Setenv sets a single environment variable.
func Setenv(ec *ExecContext) int {
	return newSimpleCommand("setenv").Run(ec, func(args []string) int {
		if len(args) != 2 {
			ec.PrintError("Incorrect number of arguments")
			return ExitFailure
		}

		if err := ec.Env.Setenv(args[0], args[1]); err != nil {
			ec.PrintError("%s: %v", args[0], err)
			return ExitFailure
		}
		return ExitSuccess
	})
}

// Unsetenv removes environment variables.
func Unsetenv(ec *ExecContext) int {
	return newSimpleCommand("unsetenv").Run(ec, func(args []string) int {
		if len(args) == 0 {
			ec.PrintError("Incorrect number of arguments")
			return ExitFailure
		}

		for _, name := range args {
			if err := ec.Env.Unsetenv(name); err != nil {
				ec.PrintError("%s: %v", name, err)
				return ExitFailure
			}
		}
		return ExitSuccess
	})
}

// Alias lists, defines and shows aliases.
func Alias(ec *ExecContext) int {
	return newSimpleCommand("alias").Run(ec, func(args []string) int {
		w := ec.Stdout()

		if len(args) == 0 {
			for _, name := range ec.Aliases.Names() {
				value, _ := ec.Aliases.Resolve(name)
				fmt.Fprintln(w, history.Format(name, value))
			}
			return ExitSuccess
		}

		// Words were split on whitespace only, rejoin them so quoted values
		// survive.
		operands, err := shlex.Split(strings.Join(args, " "), true)
		if err != nil {
			ec.PrintError("%v", err)
			return ExitFailure
		}

		status := ExitSuccess
		for _, operand := range operands {
			if name, value, ok := strings.Cut(operand, "="); ok {
				if name == "" || strings.ContainsAny(name, shell.Delimiters) {
					ec.PrintError("%s: invalid alias name", operand)
					status = ExitFailure
					continue
				}
				ec.Aliases.Set(name, value)
				continue
			}

			value, ok := ec.Aliases.Resolve(operand)
			if !ok {
				ec.PrintError("%s not found", operand)
				status = ExitFailure
				continue
			}
			fmt.Fprintln(w, history.Format(operand, value))
		}
		return status
	})
}

// History shows or clears the session history.
func History(ec *ExecContext) int {
	cmd := newSimpleCommand("history")
	clearAll := cmd.Flags().Bool('c', "clear the history by deleting all entries")

	return cmd.Run(ec, func(args []string) int {
		if *clearAll {
			ec.History.Clear()
			if ec.lineEditor != nil {
				ec.lineEditor.ResetHistory()
			}
			return ExitSuccess
		}

		w := ec.Stdout()
		for i, line := range ec.History.Entries() {
			fmt.Fprintf(w, "% 5d  %s\n", i, line)
		}
		return ExitSuccess
	})
}

// Help lists the builtins or describes one of them.
func Help(ec *ExecContext) int {
	cmd := newSimpleCommand("help")
	var printer ColorPrinter
	printer.Init(cmd.Flags(), ec)

	return cmd.Run(ec, func(args []string) int {
		w := ec.Stdout()

		if len(args) == 0 {
			printer.Fprintf(w, ColorBold, "%s, a minimal command interpreter\n", ec.ProgName)
			fmt.Fprintln(w, "These shell commands are defined internally.  Type `help' to see this list.")
			fmt.Fprintln(w, "Type `help name' to find out more about the function `name'.")
			fmt.Fprintln(w)

			tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
			for _, name := range BuiltinNames() {
				use, short, _ := BuiltinUsage(name)
				fmt.Fprintf(tw, " %s\t%s\n", use, short)
			}
			tw.Flush()
			return ExitSuccess
		}

		status := ExitSuccess
		for _, topic := range args {
			use, short, ok := BuiltinUsage(topic)
			if !ok {
				ec.PrintError("no help topics match `%s'", topic)
				status = ExitFailure
				continue
			}
			printer.Fprintf(w, ColorBoldGreen, "%s", topic)
			fmt.Fprintf(w, ": %s\n    %s\n", use, short)
		}
		return status
	})
}

// Exit ends the session, with status N if given.
func Exit(ec *ExecContext) int {
	cmd := newSimpleCommand("exit")
	cmd.NoFlags = true

	return cmd.Run(ec, func(args []string) int {
		ec.ErrorCode = ErrorCodeUnset
		if len(args) == 0 {
			return StatusTerminate
		}

		code, err := strconv.ParseUint(args[0], 10, 31)
		if err != nil {
			ec.PrintError("Illegal number: %s", args[0])
			return ExitUsage
		}
		ec.ErrorCode = int(code)
		return StatusTerminate
	})
}

func init() {
	addBuiltin("alias", "alias [NAME[=VALUE] ...]", "Define or display aliases.", Alias)
	addBuiltin("cd", "cd [-|DIR]", "Change the shell working directory.", Cd)
	addBuiltin("env", "env", "Print the environment.", Env)
	addBuiltin("exit", "exit [N]", "Exit the shell with status N.", Exit)
	addBuiltin("help", "help [--color=WHEN] [NAME ...]", "Display information about builtin commands.", Help)
	addBuiltin("history", "history [-c]", "Display or clear the history list.", History)
	addBuiltin("setenv", "setenv NAME VALUE", "Set an environment variable.", Setenv)
	addBuiltin("unsetenv", "unsetenv NAME ...", "Remove environment variables.", Unsetenv)
}
