package core

import (
	"fmt"
	"io"

	"github.com/josephlewis42/hsh/core/history"
	"github.com/josephlewis42/hsh/core/vos"
)

const (
	// StatusTerminate is returned by a builtin to stop the interpreter after
	// the current segment. It is never used as a process exit code.
	StatusTerminate = -2

	// ErrorCodeUnset marks ExecContext.ErrorCode as not set.
	ErrorCodeUnset = -1

	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

const (
	EnvHome   = "HOME"
	EnvPWD    = "PWD"
	EnvOldPWD = "OLDPWD"
)

// ExecContext is the state shared by the coordinator and the builtins. It
// lives for the whole session; only Args is reset between segments.
type ExecContext struct {
	// ProgName prefixes every error message.
	ProgName string
	// Interactive is set when input comes from a terminal.
	Interactive bool

	// Args holds the words of the segment being executed, Args[0] is the
	// command name.
	Args []string
	// Lines counts attempted command executions.
	Lines int
	// Status is the status of the last executed segment.
	Status int
	// ErrorCode overrides Status as the exit code when the interpreter
	// terminates, unless it is ErrorCodeUnset.
	ErrorCode int
	// Dir is the working directory.
	Dir string

	Env     vos.VEnv
	History *history.History
	Aliases *history.Aliases
	FS      vos.VFS
	IO      vos.VIO

	// lineEditor, when set, keeps a recall buffer that must follow History.
	lineEditor historyResetter
}

// Stdout returns the writer for normal output.
func (ec *ExecContext) Stdout() io.Writer {
	return ec.IO.Stdout()
}

// Stderr returns the writer for diagnostics.
func (ec *ExecContext) Stderr() io.Writer {
	return ec.IO.Stderr()
}

// PrintError reports a problem with the current command on the error stream
// as "<prog>: <line count>: <command>: <message>".
func (ec *ExecContext) PrintError(format string, a ...interface{}) {
	name := ""
	if len(ec.Args) > 0 {
		name = ec.Args[0]
	}
	fmt.Fprintf(ec.Stderr(), "%s: %d: %s: %s\n", ec.ProgName, ec.Lines, name, fmt.Sprintf(format, a...))
}

func (ec *ExecContext) clear() {
	ec.Args = nil
}
