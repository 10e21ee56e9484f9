package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const memoryCleanupInterval = 5 * time.Minute

// MemoryStore keeps entries in a map with TTL. Values are stored encoded so
// callers never share memory with the cache.
type MemoryStore struct {
	entries map[string]*memoryEntry
	mu      sync.RWMutex
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates a store and starts its background cleanup.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}

	go s.cleanupLoop()

	return s
}

func (s *MemoryStore) Get(_ context.Context, key string, dest interface{}) error {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return ErrMiss
	}
	return json.Unmarshal(entry.data, dest)
}

func (s *MemoryStore) Set(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &memoryEntry{
		data:      data,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

// Size returns the number of entries, expired ones included until cleanup.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(memoryCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
