package shared

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// SessionLock guards a database file against concurrent tracker processes.
//
// Each process holds whole state slices in memory, so two writers would overwrite each other.
type SessionLock struct {
	lock *flock.Flock
}

// AcquireSessionLock takes a non-blocking exclusive lock on dbPath + ".lock".
//
// In-memory databases need no lock and return a no-op [SessionLock].
func AcquireSessionLock(dbPath string) (*SessionLock, error) {
	if dbPath == "" || dbPath == ":memory:" {
		return &SessionLock{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	l := flock.New(dbPath + ".lock")
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to lock %s: %v", ErrStorage, l.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, dbPath)
	}
	return &SessionLock{lock: l}, nil
}

// Release drops the lock. Safe to call on a nil or no-op lock.
func (s *SessionLock) Release() error {
	if s == nil || s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}
