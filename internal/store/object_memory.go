package store

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryObjectStore keeps objects in process memory. The API serves them
// under /files/ so the URLs it hands out resolve in development.
type MemoryObjectStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]memoryObject
}

func NewMemoryObjectStore(publicURL string) *MemoryObjectStore {
	return &MemoryObjectStore{
		baseURL: strings.TrimRight(publicURL, "/"),
		objects: make(map[string]memoryObject),
	}
}

func (s *MemoryObjectStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read object %s: %w", key, err)
	}
	s.mu.Lock()
	s.objects[key] = memoryObject{data: data, contentType: contentType}
	s.mu.Unlock()
	return nil
}

func (s *MemoryObjectStore) URL(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return "", ErrObjectNotFound
	}
	return s.baseURL + "/files/" + (&url.URL{Path: key}).EscapedPath(), nil
}

// Get returns the object stored under key and its content type.
func (s *MemoryObjectStore) Get(key string) ([]byte, string, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, "", ErrObjectNotFound
	}
	return obj.data, obj.contentType, nil
}
