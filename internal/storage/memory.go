package storage

// MemoryStore keeps documents in a plain map. It is the default backend and
// the one the tests run against.
type MemoryStore struct {
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryStore) Set(key string, value string) error {
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
