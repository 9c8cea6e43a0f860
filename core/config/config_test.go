package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefault(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "$ ", cfg.Prompt)
	assert.Equal(t, HistoryBackendFile, cfg.History.Backend)
	assert.Empty(t, cfg.History.File)
	assert.Equal(t, 4096, cfg.History.MaxEntries)
	assert.Empty(t, cfg.EventLog)
}

func TestConfiguration_Validate(t *testing.T) {
	cfg := Default()
	cfg.History.Backend = "redis"
	assert.ErrorContains(t, cfg.Validate(), "backend")

	cfg = Default()
	cfg.History.MaxEntries = 0
	assert.ErrorContains(t, cfg.Validate(), "max_entries")
}

func TestConfiguration_HistoryPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "/home/user/.ss_history", cfg.HistoryPath("/home/user"))

	cfg.History.Backend = HistoryBackendSQLite
	assert.Equal(t, "/home/user/.ss_history.db", cfg.HistoryPath("/home/user"))

	cfg.History.File = "/var/lib/hsh/history"
	assert.Equal(t, "/var/lib/hsh/history", cfg.HistoryPath("/home/user"))
}
