package watermark

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps watermarks in process memory. Suitable for a single
// instance and for tests.
type MemoryStore struct {
	mu    sync.RWMutex
	marks map[Key]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{marks: make(map[Key]time.Time)}
}

func (s *MemoryStore) IsFresh(_ context.Context, key Key, modified time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cur, ok := s.marks[key]
	return !ok || modified.After(cur), nil
}

func (s *MemoryStore) Commit(_ context.Context, key Key, modified time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.marks[key]; ok && !modified.After(cur) {
		return nil
	}
	s.marks[key] = modified
	return nil
}
