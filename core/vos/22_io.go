package vos

import (
	"io"
	"os"
)

// VIO holds the standard streams handed to builtins and child processes.
type VIO interface {
	Stdin() io.Reader
	Stdout() io.Writer
	Stderr() io.Writer
}

// NewVIOAdapter creates a VIO from individual streams. A nil stream is
// replaced with a closed reader or a discarding writer.
func NewVIOAdapter(stdin io.Reader, stdout, stderr io.Writer) *VIOAdapter {
	if stdin == nil {
		stdin = &ClosedReader{}
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	return &VIOAdapter{
		IStdin:  stdin,
		IStdout: stdout,
		IStderr: stderr,
	}
}

// NewOSIO returns a VIO bound to the process's standard streams.
func NewOSIO() VIO {
	return NewVIOAdapter(os.Stdin, os.Stdout, os.Stderr)
}

// NewNullIO returns a VIO that reads nothing and discards all output.
func NewNullIO() VIO {
	return NewVIOAdapter(nil, nil, nil)
}

type VIOAdapter struct {
	IStdin  io.Reader
	IStdout io.Writer
	IStderr io.Writer
}

var _ VIO = (*VIOAdapter)(nil)

func (pr *VIOAdapter) Stdin() io.Reader {
	return pr.IStdin
}

func (pr *VIOAdapter) Stdout() io.Writer {
	return pr.IStdout
}

func (pr *VIOAdapter) Stderr() io.Writer {
	return pr.IStderr
}

// ClosedReader implements io.Reader and always returns io.EOF on Read.
type ClosedReader struct{}

var _ io.Reader = (*ClosedReader)(nil)

func (*ClosedReader) Read([]byte) (int, error) {
	return 0, io.EOF
}
