package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ugaemi/divecatch-server/internal/record"
)

// MemoryStore implements RecordStore in process memory. Used when no
// database is configured.
type MemoryStore struct {
	records   map[string]*record.Record // id -> record
	bySession map[string]*record.Record // session id -> record
	mu        sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:   make(map[string]*record.Record),
		bySession: make(map[string]*record.Record),
	}
}

func (m *MemoryStore) Save(_ context.Context, rec *record.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bySession[rec.SessionID]; ok {
		return fmt.Errorf("session %s already recorded", rec.SessionID)
	}
	cp := *rec
	m.records[rec.ID] = &cp
	m.bySession[rec.SessionID] = &cp
	return nil
}

func (m *MemoryStore) FindByID(_ context.Context, id string) (*record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records[id], nil
}

func (m *MemoryStore) FindBySession(_ context.Context, sessionID string) (*record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bySession[sessionID], nil
}

func (m *MemoryStore) Recent(_ context.Context, limit int) ([]*record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]*record.Record, 0, len(m.records))
	for _, r := range m.records {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].EndedAt.After(recs[j].EndedAt)
	})
	if limit >= 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (m *MemoryStore) Close() error { return nil }
