package history

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// FileBackend keeps history in a text file, one entry per line.
type FileBackend struct {
	fs   afero.Fs
	path string
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend creates a backend for the file at path.
func NewFileBackend(fsys afero.Fs, path string) *FileBackend {
	return &FileBackend{fs: fsys, path: path}
}

// Load implements Backend.Load.
func (f *FileBackend) Load() ([]string, error) {
	fd, err := f.fs.Open(f.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, err
	}
	defer fd.Close()

	var entries []string
	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			entries = append(entries, line)
		}
	}
	return entries, scanner.Err()
}

// Save implements Backend.Save.
func (f *FileBackend) Save(entries []string) error {
	fd, err := f.fs.OpenFile(f.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(fd)
	for _, entry := range entries {
		// Multi-line entries would be split on reload.
		entry = strings.ReplaceAll(entry, "\n", " ")
		if _, err := w.WriteString(entry + "\n"); err != nil {
			fd.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// Close implements Backend.Close.
func (f *FileBackend) Close() error {
	return nil
}
