// Package modules holds the placeholder domain modules (jobs, finance,
// energy, carbon, policy). They exist to demonstrate the auth and role
// middleware contract; storage is a trivial keyed lookup with linear
// filter+sort+slice listing, by design.
package modules

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is an untyped module row. Fields carry the module-specific payload.
type Record struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	OwnerID   string         `json:"ownerId,omitempty"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Store is a mutex-guarded in-memory record store shared by the placeholder
// modules.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewStore initializes an empty store.
func NewStore() *Store {
	return &Store{records: make(map[string]*Record)}
}

// Put inserts a record and returns it with its generated id.
func (s *Store) Put(kind, ownerID string, fields map[string]any) *Record {
	record := &Record{
		ID:        uuid.NewString(),
		Kind:      kind,
		OwnerID:   ownerID,
		Fields:    fields,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.records[record.ID] = record
	s.mu.Unlock()
	return record
}

// Get returns the record with the given id, if present.
func (s *Store) Get(id string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	return record, ok
}

// List returns records of one kind matching the filter, newest first,
// sliced by offset/limit. A nil filter matches everything.
func (s *Store) List(kind string, filter func(*Record) bool, offset, limit int) []*Record {
	s.mu.RLock()
	matched := make([]*Record, 0)
	for _, record := range s.records {
		if record.Kind != kind {
			continue
		}
		if filter != nil && !filter(record) {
			continue
		}
		matched = append(matched, record)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []*Record{}
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end]
}

// Count returns the number of records of one kind matching the filter.
func (s *Store) Count(kind string, filter func(*Record) bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, record := range s.records {
		if record.Kind != kind {
			continue
		}
		if filter != nil && !filter(record) {
			continue
		}
		count++
	}
	return count
}
