package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/josephlewis42/hsh/core/history"
	"github.com/josephlewis42/hsh/core/logger"
	"github.com/josephlewis42/hsh/core/shell"
	"github.com/josephlewis42/hsh/core/vos"
)

const DefaultPrompt = "$ "

// Options configures a new Shell. Zero values get working defaults.
type Options struct {
	ProgName    string
	Interactive bool
	Prompt      string
	// Dir is the initial working directory, defaults to the process's.
	Dir string

	Env      vos.VEnv
	FS       vos.VFS
	IO       vos.VIO
	Launcher vos.Launcher
	History  *history.History
	Aliases  *history.Aliases
	Events   *logger.SessionLogger
}

// Shell runs input lines: it splits them into chain segments, dispatches each
// segment to a builtin or an external program and tracks the resulting
// status.
type Shell struct {
	ExecContext

	Prompt   string
	Launcher vos.Launcher
	Events   *logger.SessionLogger

	pid int
}

// NewShell creates an interpreter from opts.
func NewShell(opts Options) *Shell {
	s := &Shell{
		ExecContext: ExecContext{
			ProgName:    opts.ProgName,
			Interactive: opts.Interactive,
			ErrorCode:   ErrorCodeUnset,
			Dir:         opts.Dir,
			Env:         opts.Env,
			History:     opts.History,
			Aliases:     opts.Aliases,
			FS:          opts.FS,
			IO:          opts.IO,
		},
		Prompt:   opts.Prompt,
		Launcher: opts.Launcher,
		Events:   opts.Events,
		pid:      os.Getpid(),
	}

	if s.ProgName == "" {
		s.ProgName = "hsh"
	}
	if s.Prompt == "" {
		s.Prompt = DefaultPrompt
	}
	if s.Env == nil {
		s.Env = vos.NewMapEnvFromEnvList(os.Environ())
	}
	if s.FS == nil {
		s.FS = vos.NewOsFs()
	}
	if s.IO == nil {
		s.IO = vos.NewOSIO()
	}
	if s.Launcher == nil {
		s.Launcher = vos.OSLauncher{}
	}
	if s.History == nil {
		s.History = history.New(nil, 0)
	}
	if s.Aliases == nil {
		s.Aliases = history.NewAliases()
	}
	if s.Dir == "" {
		if wd, err := os.Getwd(); err == nil {
			s.Dir = wd
		} else {
			s.Dir = "/"
		}
	}

	return s
}

// Run reads and executes lines from src until the input ends or the exit
// builtin runs. It persists the history and returns the interpreter's exit
// code.
func (s *Shell) Run(src LineSource) int {
	if editor, ok := src.(historyResetter); ok {
		s.lineEditor = editor
	}

	for {
		line, err := src.ReadLine()

		switch {
		case errors.Is(err, io.EOF):
			if s.Interactive {
				fmt.Fprintln(s.Stdout())
			}
			return s.terminate()

		case errors.Is(err, ErrInterrupt):
			// Interrupt discards the line and starts a new prompt.
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			return s.terminate()
		}

		if s.RunLine(line) {
			return s.terminate()
		}
	}
}

// RunLine executes every chain segment of line in order. It returns true if
// the interpreter must terminate.
func (s *Shell) RunLine(line string) bool {
	defer s.clear()

	if strings.TrimSpace(line) == "" {
		return false
	}
	s.History.Record(line)

	line = shell.ExpandAlias(line, s.Aliases.Resolve)
	segments := shell.SplitChain(line)
	if len(segments) == 1 && segments[0].Empty() {
		// Comment-only lines leave the status alone.
		return false
	}

	for i, segment := range segments {
		if !segment.Condition.Met(s.Status) {
			continue
		}

		s.clear()
		words := shell.ReplaceVars(shell.Words(segment.Text), shell.Vars{
			Status: s.Status,
			Pid:    s.pid,
			Lookup: s.Env.LookupEnv,
		})
		if len(words) == 0 {
			if i > 0 && i == len(segments)-1 && segment.Empty() {
				// Trailing operator with nothing after it.
				break
			}
			s.Status = ExitSuccess
			continue
		}
		s.Args = words

		status, abandon := s.dispatch()
		if status == StatusTerminate {
			return true
		}
		s.Status = status
		if abandon {
			break
		}
	}
	return false
}

// dispatch runs s.Args as a builtin or an external program. abandon is set
// when the rest of the line must be skipped.
func (s *Shell) dispatch() (status int, abandon bool) {
	s.Lines++

	if builtin, ok := LookupBuiltin(s.Args[0]); ok {
		status = builtin.Main(&s.ExecContext)
		s.record(logger.Event{Type: logger.TypeBuiltin, Status: status})
		return status, false
	}

	return s.runExternal()
}

func (s *Shell) runExternal() (int, bool) {
	name := s.Args[0]

	path, err := vos.LookPath(s.FS, s.Dir, s.Env, name)
	switch {
	case errors.Is(err, fs.ErrPermission):
		s.PrintError("Permission denied")
		s.record(logger.Event{Type: logger.TypeExecFailure, ResolvedPath: name, Status: vos.StatusPermissionDenied, Error: err.Error()})
		return vos.StatusPermissionDenied, false

	case err != nil:
		if !s.suppressNotFound(name) {
			s.PrintError("not found")
		}
		s.record(logger.Event{Type: logger.TypeUnknownCommand, Status: vos.StatusNotFound})
		return vos.StatusNotFound, false
	}

	status, err := s.Launcher.Launch(path, s.Args, &vos.ProcAttr{
		Dir:   s.Dir,
		Env:   s.Env.Environ(),
		Files: s.IO,
	})
	switch {
	case errors.Is(err, vos.ErrSpawn):
		s.PrintError("%v", err)
		s.record(logger.Event{Type: logger.TypeExecFailure, ResolvedPath: path, Status: status, Error: err.Error()})
		return status, true

	case err != nil:
		s.PrintError("%v", err)
		s.record(logger.Event{Type: logger.TypeExecFailure, ResolvedPath: path, Status: status, Error: err.Error()})
		return status, false

	case status == vos.StatusPermissionDenied:
		s.PrintError("Permission denied")
	}

	s.record(logger.Event{Type: logger.TypeRunCommand, ResolvedPath: path, Status: status})
	return status, false
}

// suppressNotFound keeps a batch session without PATH quiet about bare
// command names that don't exist.
func (s *Shell) suppressNotFound(name string) bool {
	_, hasPath := s.Env.LookupEnv(vos.EnvPath)
	return !s.Interactive && !hasPath && !strings.Contains(name, "/")
}

func (s *Shell) record(event logger.Event) {
	event.Command = s.Args
	event.Line = s.Lines
	if err := s.Events.Record(event); err != nil {
		log.Printf("Error recording event: %v", err)
	}
}

// terminate persists the history and computes the exit code.
func (s *Shell) terminate() int {
	if err := s.History.Save(); err != nil {
		log.Printf("Error saving history: %v", err)
	}
	if err := s.History.Close(); err != nil {
		log.Printf("Error closing history: %v", err)
	}

	if s.ErrorCode != ErrorCodeUnset {
		return s.ErrorCode
	}
	return s.Status
}
