// Package history stores the interpreter's command history and aliases.
package history

import (
	"sync"
)

// DefaultMaxEntries is the number of entries kept when persisting history.
const DefaultMaxEntries = 4096

// Backend persists history entries between sessions.
type Backend interface {
	// Load returns the saved entries, oldest first. A backend with nothing
	// saved returns no entries and no error.
	Load() ([]string, error)
	// Save replaces the saved entries.
	Save(entries []string) error
	// Close releases any resources held by the backend.
	Close() error
}

// History is an ordered list of input lines.
type History struct {
	mu         sync.Mutex
	entries    []string
	maxEntries int
	backend    Backend
}

// New creates a history that persists through backend, which may be nil for
// an in-memory history. maxEntries bounds the number of entries saved, values
// below one use DefaultMaxEntries.
func New(backend Backend, maxEntries int) *History {
	if maxEntries < 1 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
		backend:    backend,
	}
}

// Load replaces the in-memory entries with the ones from the backend.
func (h *History) Load() error {
	if h.backend == nil {
		return nil
	}

	entries, err := h.backend.Load()
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = h.trim(entries)
	return nil
}

// Record appends a line to the history.
func (h *History) Record(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, line)
}

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// Clear removes all entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// Save writes the newest entries to the backend.
func (h *History) Save() error {
	if h.backend == nil {
		return nil
	}

	h.mu.Lock()
	entries := h.trim(h.entries)
	h.mu.Unlock()

	return h.backend.Save(entries)
}

// Close closes the backend.
func (h *History) Close() error {
	if h.backend == nil {
		return nil
	}
	return h.backend.Close()
}

func (h *History) trim(entries []string) []string {
	if over := len(entries) - h.maxEntries; over > 0 {
		entries = entries[over:]
	}
	return append([]string(nil), entries...)
}
