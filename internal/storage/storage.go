package storage

// Store is a string-keyed slot store.
type Store interface {
	// Get returns the value stored at key. ok is false when the slot is empty.
	Get(key string) (value string, ok bool, err error)
	// Set writes value to key, replacing any previous value.
	Set(key, value string) error
	// Delete clears the slot at key. Deleting an empty slot is not an error.
	Delete(key string) error
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
