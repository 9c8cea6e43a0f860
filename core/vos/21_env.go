package vos

import (
	"errors"
	"strings"
	"sync"
)

// ErrInvalidKey is returned when setting a variable whose name is empty or
// contains '='.
var ErrInvalidKey = errors.New("invalid variable name")

// VEnv represents a virtual environment.
type VEnv interface {
	// Environ returns a copy of strings representing the environment, in the
	// form "key=value".
	Environ() []string

	// Unsetenv unsets a single environment variable.
	Unsetenv(key string) error

	// Setenv sets the value of the environment variable named by the key.
	// It returns an error, if any.
	Setenv(key, value string) error

	// LookupEnv retrieves the value of the environment variable named by the key.
	// If the variable is present in the environment the value (which may be
	// empty) is returned and the boolean is true. Otherwise the returned value
	// will be empty and the boolean will be false.
	LookupEnv(key string) (string, bool)

	// Getenv retrieves the value of the environment variable named by the key.
	// It returns the value, which will be empty if the variable is not present.
	// To distinguish between an empty value and an unset value, use LookupEnv.
	Getenv(key string) string
}

func splitEnv(e string) (key, value string) {
	split := strings.SplitN(e, "=", 2)
	key = split[0]
	if len(split) > 1 {
		value = split[1]
	}
	return key, value
}

// NewMapEnv creates a new, empty environment.
func NewMapEnv() *MapEnv {
	return &MapEnv{}
}

// NewMapEnvFromEnvList creates an environment from "key=value" strings.
// Entries without a key are dropped.
func NewMapEnvFromEnvList(environ []string) *MapEnv {
	out := NewMapEnv()

	for _, e := range environ {
		key, value := splitEnv(e)
		// Only invalid keys fail, skip them like the libc startup code does.
		_ = out.Setenv(key, value)
	}

	return out
}

// MapEnv implements an in-memory VEnv. Variables keep the order in which they
// were first set.
type MapEnv struct {
	rw   sync.RWMutex
	keys []string
	env  map[string]string
}

var _ VEnv = (*MapEnv)(nil)

// Unsetenv implements VEnv.Unsetenv.
func (m *MapEnv) Unsetenv(key string) error {
	m.rw.Lock()
	defer m.rw.Unlock()

	if _, ok := m.env[key]; !ok {
		return nil
	}
	delete(m.env, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return nil
}

// Setenv implements VEnv.Setenv.
func (m *MapEnv) Setenv(key, value string) error {
	if key == "" || strings.Contains(key, "=") {
		return ErrInvalidKey
	}

	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	if _, ok := m.env[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.env[key] = value
	return nil
}

// LookupEnv implements VEnv.LookupEnv.
func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Getenv implements VEnv.Getenv.
func (m *MapEnv) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// Environ implements VEnv.Environ. The returned slice is a snapshot, later
// changes to the environment don't affect it.
func (m *MapEnv) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	env := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		env = append(env, k+"="+m.env[k])
	}

	return env
}
