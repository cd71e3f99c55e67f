// Package session holds an in-process SessionStore for single-node runs and tests.
package session

import (
	"context"
	"fmt"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/port"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	version   int64
	updatedAt time.Time
}

type memoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]entry
	now  func() time.Time
}

func NewMemoryStore() port.SessionStore {
	return &memoryStore{data: make(map[string]map[string]entry), now: time.Now}
}

func (s *memoryStore) Load(_ context.Context, sessionID, key string) ([]byte, int64, error) {
	if sessionID == "" {
		return nil, 0, fmt.Errorf("sessionID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[sessionID][key]
	if !ok {
		return nil, 0, domain.ErrNotFound
	}

	value := make([]byte, len(e.value))
	copy(value, e.value)

	return value, e.version, nil
}

func (s *memoryStore) Save(_ context.Context, sessionID, key string, value []byte, version int64) (int64, error) {
	if sessionID == "" {
		return 0, fmt.Errorf("sessionID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keys, ok := s.data[sessionID]
	if !ok {
		keys = make(map[string]entry)
		s.data[sessionID] = keys
	}

	if keys[key].version != version {
		return 0, fmt.Errorf("key[%s] at version %d: %w", key, version, domain.ErrVersionConflict)
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	keys[key] = entry{value: stored, version: version + 1, updatedAt: s.now()}

	return version + 1, nil
}

func (s *memoryStore) Delete(_ context.Context, sessionID, key string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[sessionID], key)

	return nil
}

func (s *memoryStore) Purge(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var purged int64
	for sessionID, keys := range s.data {
		for key, e := range keys {
			if e.updatedAt.Before(before) {
				delete(keys, key)
				purged++
			}
		}
		if len(keys) == 0 {
			delete(s.data, sessionID)
		}
	}

	return purged, nil
}
