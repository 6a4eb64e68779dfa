package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs hands out predictable IDs ("rev-0001", "rev-0002", ...).
//
// Inject Next wherever production code would mint a UUID so that revision
// listings and golden output stay byte-identical across runs.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int64
}

// NewSequentialIDs creates a sequence. An empty prefix defaults to "rev".
// The first call to Next() returns prefix + "-0001".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "rev"
	}
	return &SequentialIDs{prefix: prefix}
}

// Next returns the next ID.
func (s *SequentialIDs) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%04d", s.prefix, s.n)
}

// Count returns how many IDs have been handed out.
func (s *SequentialIDs) Count() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

// Reset restarts the sequence. The next call to Next() returns prefix + "-0001".
func (s *SequentialIDs) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n = 0
}
