package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/backupviewer/internal/export"
)

// Snapshot is one loaded conversation. It is never modified after it is
// published to the store.
type Snapshot struct {
	ID           uuid.UUID
	Source       string // file name, upload name, or "api"
	LoadedAt     time.Time
	Conversation *export.Conversation
}

// Store holds the current conversation. Each successful load replaces it
// wholesale.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
	now     func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// Replace publishes conv as the current conversation and returns its snapshot.
func (s *Store) Replace(source string, conv *export.Conversation) *Snapshot {
	snap := &Snapshot{
		ID:           uuid.New(),
		Source:       source,
		LoadedAt:     s.now().UTC(),
		Conversation: conv,
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
	return snap
}

// Current returns the loaded snapshot, if any.
func (s *Store) Current() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// Clear drops the current conversation.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}
