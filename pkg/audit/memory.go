package audit

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore implements the Store interface with an in-memory slice.
// It is intended for tests and for running the gateway without persistence.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*Record
}

// NewMemoryStore creates a new in-memory audit store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save persists a record to memory.
func (s *MemoryStore) Save(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy to guard against caller mutation.
	recordCopy := *record
	s.records = append(s.records, &recordCopy)
	return nil
}

// List retrieves records matching the query, newest first.
func (s *MemoryStore) List(ctx context.Context, query *Query) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*Record, 0)
	for _, record := range s.records {
		if matchesQuery(record, query) {
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ReceivedAt.After(results[j].ReceivedAt)
	})

	return paginate(results, query), nil
}

// Count returns the number of records matching the query.
func (s *MemoryStore) Count(ctx context.Context, query *Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, record := range s.records {
		if matchesQuery(record, query) {
			n++
		}
	}
	return n, nil
}

// Purge removes records received before the cutoff.
func (s *MemoryStore) Purge(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	var removed int64
	for _, record := range s.records {
		if record.ReceivedAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, record)
	}
	s.records = kept
	return removed, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func matchesQuery(record *Record, query *Query) bool {
	if query == nil {
		return true
	}
	if query.StartTime != nil && record.ReceivedAt.Before(*query.StartTime) {
		return false
	}
	if query.EndTime != nil && record.ReceivedAt.After(*query.EndTime) {
		return false
	}
	if query.SessionID != "" && record.SessionID != query.SessionID {
		return false
	}
	if query.ClientAddr != "" && record.ClientAddr != query.ClientAddr {
		return false
	}
	if query.Outcome != "" && record.Outcome != query.Outcome {
		return false
	}
	return true
}

func paginate(results []*Record, query *Query) []*Record {
	if query == nil {
		return results
	}
	start := query.Offset
	if start > len(results) {
		return []*Record{}
	}
	results = results[start:]
	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}
	return results
}
