package vos

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// VFS is the filesystem commands and directories are resolved against.
type VFS = afero.Fs

// NewOsFs returns a VFS backed by the real filesystem.
func NewOsFs() VFS {
	return afero.NewOsFs()
}

// Abs resolves name against the working directory wd.
func Abs(wd, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(wd, name)
}

// Chdir resolves dir against the working directory wd and checks that it
// names a directory. It returns the new, cleaned working directory.
func Chdir(fsys VFS, wd, dir string) (string, error) {
	dir = Abs(wd, dir)

	stat, err := fsys.Stat(dir)
	switch {
	case err != nil:
		return "", fmt.Errorf("%s: %w", dir, err)
	case !stat.IsDir():
		return "", fmt.Errorf("%s: Not a directory", dir)
	default:
		return dir, nil
	}
}
