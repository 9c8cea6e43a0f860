package core

import (
	"bufio"
	"io"
	"strings"

	"github.com/abiosoft/readline"

	"github.com/josephlewis42/hsh/core/history"
	"github.com/josephlewis42/hsh/core/vos"
)

// ErrInterrupt is returned by interactive sources when the user pressed ^C.
var ErrInterrupt = readline.ErrInterrupt

// LineSource produces input lines without their line terminator. It returns
// io.EOF once the input is exhausted.
type LineSource interface {
	ReadLine() (string, error)
}

// historyResetter is implemented by sources that keep their own recall
// buffer.
type historyResetter interface {
	ResetHistory()
}

// ReaderSource reads newline separated lines from a stream, used for scripts
// and piped input.
type ReaderSource struct {
	r *bufio.Reader
}

var _ LineSource = (*ReaderSource)(nil)

// NewReaderSource creates a LineSource reading from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: bufio.NewReader(r)}
}

// ReadLine implements LineSource.ReadLine. A final line without a newline is
// still returned.
func (s *ReaderSource) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// ReadlineSource reads lines from a terminal with line editing.
type ReadlineSource struct {
	Readline *readline.Instance
}

var _ LineSource = (*ReadlineSource)(nil)

// NewReadlineSource creates an editing line source that shows prompt and
// offers the entries of hist for recall.
func NewReadlineSource(prompt string, vio vos.VIO, isTerminal func() bool, hist []string) (*ReadlineSource, error) {
	cfg := &readline.Config{
		Prompt:         prompt,
		Stdin:          readline.NewCancelableStdin(vio.Stdin()),
		Stdout:         vio.Stdout(),
		Stderr:         vio.Stderr(),
		HistoryLimit:   history.DefaultMaxEntries,
		FuncIsTerminal: isTerminal,
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	for _, line := range hist {
		_ = rl.SaveHistory(line)
	}

	return &ReadlineSource{Readline: rl}, nil
}

// ReadLine implements LineSource.ReadLine.
func (s *ReadlineSource) ReadLine() (string, error) {
	return s.Readline.Readline()
}

// ResetHistory drops the recall buffer.
func (s *ReadlineSource) ResetHistory() {
	s.Readline.ResetHistory()
}

// Close restores the terminal.
func (s *ReadlineSource) Close() error {
	return s.Readline.Close()
}
