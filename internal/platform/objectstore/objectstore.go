// Package objectstore persists report PDFs in an external blob store. A
// report record keeps only the object key and the public retrieval URL; the
// bytes live here. The URL itself is the access credential: anyone holding it
// can fetch the PDF, which matches the unauthenticated (mobile, dob) lookup
// the API exposes anyway.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var ErrObjectNotFound = errors.New("object not found")

// Store is the contract for blob storage backends.
type Store interface {
	// Put uploads an object and returns its public retrieval URL.
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

type storedObject struct {
	contentType string
	data        []byte
}

// MemoryStore is a thread-safe, in-memory Store for testing and development.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]*storedObject
}

// NewMemoryStore returns a ready-to-use MemoryStore. Retrieval URLs are built
// from baseURL, which may be empty.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]*storedObject),
	}
}

func (s *MemoryStore) Put(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}

	s.mu.Lock()
	s.objects[key] = &storedObject{contentType: contentType, data: data}
	s.mu.Unlock()

	return s.baseURL + "/" + key, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return ErrObjectNotFound
	}
	delete(s.objects, key)
	return nil
}

// Get returns the stored content and content type for a key. Used by tests to
// verify uploaded bytes round-trip unchanged.
func (s *MemoryStore) Get(key string) (io.Reader, string, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()

	if !ok {
		return nil, "", ErrObjectNotFound
	}
	return bytes.NewReader(obj.data), obj.contentType, nil
}

// Len reports how many objects are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
