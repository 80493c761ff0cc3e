package csvstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// tableLocks hands out one mutex per table name
type tableLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *tableLocks) get(name string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[name]
	if !ok {
		m = &sync.Mutex{}
		l.locks[name] = m
	}
	return m
}

// acquireFileLock takes the cross-process lock guarding a table file.
// The lock lives in a sibling file so the table itself can be replaced by rename.
func acquireFileLock(tablePath string) (func(), error) {
	lockPath := filepath.Join(filepath.Dir(tablePath), "."+filepath.Base(tablePath)+".lock")

	file, err := os.OpenFile(lockPath, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := lockFile(file); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	return func() {
		unlockFile(file)
		file.Close()
	}, nil
}
