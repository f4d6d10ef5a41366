// Package blob keeps in-memory preview handles for uploaded files.
//
// A handle has the form "blob:<uuid>" and stays valid until it is released.
// Owners release handles as soon as nothing displays them any more, so
// repeated start-over cycles do not accumulate memory.
package blob

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

const prefix = "blob:"

// Entry is one stored file.
type Entry struct {
	Data        []byte
	ContentType string
	Name        string
}

// Store maps handles to file contents.
type Store struct {
	mu      sync.Mutex
	entries map[string]Entry
	limit   int
}

// NewStore returns a store that refuses new entries once limit bytes are
// held. A limit <= 0 means unbounded.
func NewStore(limit int) *Store {
	return &Store{entries: map[string]Entry{}, limit: limit}
}

// IsHandle reports whether ref names a blob handle.
func IsHandle(ref string) bool { return strings.HasPrefix(ref, prefix) }

// Put stores a copy of data and returns its handle.
func (s *Store) Put(data []byte, contentType, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limit > 0 && s.size()+len(data) > s.limit {
		return "", ErrFull
	}
	h := prefix + uuid.NewString()
	s.entries[h] = Entry{
		Data:        append([]byte(nil), data...),
		ContentType: contentType,
		Name:        name,
	}
	return h, nil
}

// Get returns the entry behind h.
func (s *Store) Get(h string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[h]
	return e, ok
}

// Bytes returns the raw contents behind h.
func (s *Store) Bytes(h string) ([]byte, bool) {
	e, ok := s.Get(h)
	return e.Data, ok
}

// Release drops the given handles. Unknown handles are ignored.
func (s *Store) Release(handles ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range handles {
		delete(s.entries, h)
	}
}

// Len is the number of live handles.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) size() int {
	n := 0
	for _, e := range s.entries {
		n += len(e.Data)
	}
	return n
}
