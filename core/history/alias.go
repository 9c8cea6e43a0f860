package history

import (
	"fmt"
	"sync"
)

// Aliases maps command names to replacement text. Aliases keep the order in
// which they were first defined.
type Aliases struct {
	mu     sync.RWMutex
	names  []string
	values map[string]string
}

// NewAliases creates an empty alias table.
func NewAliases() *Aliases {
	return &Aliases{values: make(map[string]string)}
}

// Set defines or redefines an alias.
func (a *Aliases) Set(name, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Resolve returns the replacement text for name.
func (a *Aliases) Resolve(name string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	val, ok := a.values[name]
	return val, ok
}

// Names returns the defined alias names in definition order.
func (a *Aliases) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.names...)
}

// Format renders an alias the way the alias builtin prints it.
func Format(name, value string) string {
	return fmt.Sprintf("%s='%s'", name, value)
}
