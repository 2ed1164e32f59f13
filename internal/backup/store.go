// Package backup persists submissions that could not be confirmed as
// delivered to the CRM, for manual reconciliation later.
package backup

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/purelife/compass/internal/lead"
)

// Record is one unconfirmed submission. Records are never mutated; they are
// retained until purged.
type Record struct {
	ID        string                 `json:"id"`
	RequestID string                 `json:"request_id"`
	Payload   lead.SubmissionRequest `json:"payload"`
	Timestamp time.Time              `json:"timestamp"`
}

// Store is an append-only log of backup records. Implementations must be
// safe for concurrent use.
type Store interface {
	// Add appends a record. A missing ID or Timestamp is filled in.
	Add(rec Record) (Record, error)
	// List returns a read-only snapshot of all records.
	List() ([]Record, error)
	// Purge removes records older than maxAge and reports how many went.
	Purge(maxAge time.Duration) (int, error)
}

// MemoryStore keeps records in process memory. It is the default when no
// backup database is configured, and the test double everywhere else.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: func() time.Time { return time.Now().UTC() }}
}

func (s *MemoryStore) Add(rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now()
	}
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *MemoryStore) List() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) Purge(maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-maxAge)
	kept := s.records[:0]
	removed := 0
	for _, r := range s.records {
		if r.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	return removed, nil
}

var _ Store = (*MemoryStore)(nil)
