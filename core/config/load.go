package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory. Values missing from the
// file keep their defaults.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := afero.ReadFile(fsys, filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}

	out := Default()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigurationName, err)
	}
	return out, nil
}

// LoadOrDefault behaves like Load but returns the default configuration if
// the directory has no configuration file.
func LoadOrDefault(fsys afero.Fs, path string) (*Configuration, error) {
	if path == "" {
		return Default(), nil
	}

	cfg, err := Load(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}
