package config

import (
	_ "embed"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	HistoryBackendFile   = "file"
	HistoryBackendSQLite = "sqlite"

	// Default history locations per backend, relative to $HOME.
	DefaultHistoryFile   = ".ss_history"
	DefaultHistorySQLite = ".ss_history.db"
)

// Configuration holds the interpreter's user settings.
type Configuration struct {
	Prompt   string  `json:"prompt"`
	History  History `json:"history"`
	EventLog string  `json:"event_log"`
}

// History configures command history persistence.
type History struct {
	Backend    string `json:"backend" validate:"required,oneof=file sqlite"`
	File       string `json:"file"`
	MaxEntries int    `json:"max_entries" validate:"gte=1"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// HistoryPath returns the history location, resolving relative paths against
// home. An empty file picks the backend's default so the sqlite backend never
// opens a plain text history.
func (c *Configuration) HistoryPath(home string) string {
	file := c.History.File
	if file == "" {
		file = DefaultHistoryFile
		if c.History.Backend == HistoryBackendSQLite {
			file = DefaultHistorySQLite
		}
	}

	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(home, file)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
