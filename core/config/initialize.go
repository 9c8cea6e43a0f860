package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into dir, creating it if
// needed. An existing configuration is never overwritten.
func Initialize(fsys afero.Fs, dir string, logger *log.Logger) (string, error) {
	if err := fsys.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	path := filepath.Join(dir, ConfigurationName)
	exists, err := afero.Exists(fsys, path)
	switch {
	case err != nil:
		return "", err
	case exists:
		logger.Printf("%s already exists, skipping", path)
		return path, nil
	}

	fd, err := fsys.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return "", err
	}
	if _, err := fd.Write(defaultConfigData); err != nil {
		fd.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := fd.Close(); err != nil {
		return "", err
	}

	logger.Printf("Wrote %s", path)
	return path, nil
}
