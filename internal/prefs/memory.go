package prefs

import "context"

// Memory is an in-memory Store for tests and for running without a
// writable data directory. Toggles are not persisted across sessions.
type Memory struct {
	values map[string]bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]bool)}
}

// Bool returns the stored value for key, or def when absent.
func (m *Memory) Bool(_ context.Context, key string, def bool) (bool, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return def, nil
}

// SetBool stores the value for key.
func (m *Memory) SetBool(_ context.Context, key string, value bool) error {
	m.values[key] = value
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
