package blob

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

type memoryEntry struct {
	obj  Object
	data []byte
}

// MemoryStore keeps objects in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	objs    map[string]memoryEntry
}

func NewMemory(baseURL string) *MemoryStore {
	return &MemoryStore{baseURL: baseURL, objs: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Put(_ context.Context, key string, r io.Reader, opts PutOptions) (Object, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Object{}, err
	}
	obj := Object{
		Key:         key,
		Size:        int64(len(b)),
		ContentType: opts.ContentType,
		URL:         s.baseURL + "/" + key,
		StoredAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objs[key] = memoryEntry{obj: obj, data: b}
	return obj, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objs, key)
	return nil
}

func (s *MemoryStore) URL(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objs[key]; !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return s.baseURL + "/" + key, nil
}

// Bytes returns a copy of the stored content of key.
func (s *MemoryStore) Bytes(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.objs[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, true
}
