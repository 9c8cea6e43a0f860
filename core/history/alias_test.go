package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAliases(t *testing.T) {
	a := NewAliases()
	a.Set("ll", "ls -l")
	a.Set("la", "ls -a")
	a.Set("ll", "ls -la")

	val, ok := a.Resolve("ll")
	assert.True(t, ok)
	assert.Equal(t, "ls -la", val)
	assert.Equal(t, []string{"ll", "la"}, a.Names())

	_, ok = a.Resolve("missing")
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "ll='ls -l'", Format("ll", "ls -l"))
}
