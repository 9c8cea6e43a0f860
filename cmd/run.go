package cmd

import (
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/josephlewis42/hsh/core"
	"github.com/josephlewis42/hsh/core/config"
	"github.com/josephlewis42/hsh/core/history"
	"github.com/josephlewis42/hsh/core/logger"
	"github.com/josephlewis42/hsh/core/vos"
)

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// openHistory creates the session history from the configured backend. A
// backend that can't be opened leaves the session with an in-memory history.
func openHistory(fsys afero.Fs, configuration *config.Configuration, env vos.VEnv) *history.History {
	maxEntries := configuration.History.MaxEntries
	if noHistory {
		return history.New(nil, maxEntries)
	}

	path := configuration.HistoryPath(env.Getenv(core.EnvHome))

	var backend history.Backend
	switch configuration.History.Backend {
	case config.HistoryBackendSQLite:
		sqliteBackend, err := history.OpenSQLiteBackend(path)
		if err != nil {
			log.Printf("Error opening history %s: %v", path, err)
			return history.New(nil, maxEntries)
		}
		backend = sqliteBackend
	default:
		backend = history.NewFileBackend(fsys, path)
	}

	hist := history.New(backend, maxEntries)
	if err := hist.Load(); err != nil {
		log.Printf("Error loading history: %v", err)
	}
	return hist
}

// openEventLog starts an event log session, or returns nil if event logging
// is off.
func openEventLog(configuration *config.Configuration) (*logger.SessionLogger, io.Closer, error) {
	path := eventLogPath
	if path == "" {
		path = configuration.EventLog
	}
	if path == "" {
		return nil, io.NopCloser(nil), nil
	}

	fd, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, err
	}
	return logger.NewJSONLinesLogRecorder(fd).NewSession(), fd, nil
}

// runInterpreter runs a session and returns its exit code.
func runInterpreter(cmd *cobra.Command, args []string) (int, error) {
	fsys := vos.NewOsFs()

	configuration, err := loadConfig(fsys)
	if err != nil {
		return 0, err
	}

	// Lines come from source, children always inherit the interpreter's stdin.
	stdin := cmd.InOrStdin()
	source := stdin
	interactive := false
	switch {
	case cmd.Flags().Changed("command"):
		source = strings.NewReader(commandStr)
	case len(args) == 1:
		fd, err := os.Open(args[0])
		if err != nil {
			return 0, err
		}
		defer fd.Close()
		source = fd
	default:
		interactive = isTerminal(stdin)
	}

	env := vos.NewMapEnvFromEnvList(os.Environ())

	hist := openHistory(fsys, configuration, env)

	events, closer, err := openEventLog(configuration)
	if err != nil {
		hist.Close()
		return 0, err
	}
	defer closer.Close()

	vio := vos.NewVIOAdapter(stdin, cmd.OutOrStdout(), cmd.ErrOrStderr())
	shell := core.NewShell(core.Options{
		ProgName:    filepath.Base(os.Args[0]),
		Interactive: interactive,
		Prompt:      configuration.Prompt,
		Env:         env,
		FS:          fsys,
		IO:          vio,
		History:     hist,
		Events:      events,
	})

	if !interactive {
		return shell.Run(core.NewReaderSource(source)), nil
	}

	// ^C interrupts the line being edited, the interpreter keeps running.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer func() {
		signal.Stop(sigs)
		close(sigs)
	}()
	go func() {
		for range sigs {
		}
	}()

	src, err := core.NewReadlineSource(shell.Prompt, vio, func() bool { return true }, hist.Entries())
	if err != nil {
		hist.Close()
		return 0, err
	}
	defer src.Close()

	return shell.Run(src), nil
}
