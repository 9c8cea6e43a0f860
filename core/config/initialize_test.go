package config

import (
	"io"
	"io/fs"
	"log"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	fsys := afero.NewMemMapFs()
	logger := log.New(io.Discard, "", 0)

	path, err := Initialize(fsys, "/etc/hsh", logger)
	require.NoError(t, err)
	assert.Equal(t, "/etc/hsh/config.yaml", path)

	// Check that the config is valid
	cfg, err := Load(fsys, "/etc/hsh")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	t.Run("does-not-overwrite", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fsys, path, []byte("prompt: '> '\n"), 0600))

		_, err := Initialize(fsys, "/etc/hsh", logger)
		require.NoError(t, err)

		cfg, err := Load(fsys, path)
		require.NoError(t, err)
		assert.Equal(t, "> ", cfg.Prompt)
		assert.Equal(t, 4096, cfg.History.MaxEntries)
	})
}

func TestLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/cfg", 0700))

	t.Run("missing", func(t *testing.T) {
		_, err := Load(fsys, "/nothing")
		assert.ErrorIs(t, err, fs.ErrNotExist)

		cfg, err := LoadOrDefault(fsys, "/nothing")
		assert.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("unknown-field", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fsys, "/cfg/config.yaml", []byte("colour: true\n"), 0600))

		_, err := Load(fsys, "/cfg")
		assert.Error(t, err)
	})

	t.Run("invalid-value", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fsys, "/cfg/config.yaml", []byte("history:\n  backend: tape\n"), 0600))

		_, err := Load(fsys, "/cfg")
		assert.ErrorContains(t, err, "backend")
	})

	t.Run("sqlite", func(t *testing.T) {
		contents := "history:\n  backend: sqlite\n  file: hist.db\nevent_log: /tmp/events.log\n"
		require.NoError(t, afero.WriteFile(fsys, "/cfg/config.yaml", []byte(contents), 0600))

		cfg, err := LoadOrDefault(fsys, "/cfg")
		require.NoError(t, err)
		assert.Equal(t, HistoryBackendSQLite, cfg.History.Backend)
		assert.Equal(t, "hist.db", cfg.History.File)
		assert.Equal(t, 4096, cfg.History.MaxEntries)
		assert.Equal(t, "/tmp/events.log", cfg.EventLog)
	})
}
