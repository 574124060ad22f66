// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/autolearn/kotoba/internal/models"
)

// MemStore is an in-memory catalog.Store for tests. Safe for concurrent use.
type MemStore struct {
	mu      sync.Mutex
	records []models.WordRecord

	// FailInsert, when set, makes Insert return the given error once per call.
	FailInsert error
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Insert appends a copy of rec.
func (m *MemStore) Insert(_ context.Context, rec *models.WordRecord) error {
	if m.FailInsert != nil {
		return m.FailInsert
	}
	m.mu.Lock()
	m.records = append(m.records, *rec)
	m.mu.Unlock()
	return nil
}

// DeleteAll clears the store.
func (m *MemStore) DeleteAll(context.Context) error {
	m.mu.Lock()
	m.records = nil
	m.mu.Unlock()
	return nil
}

// ListAll returns stored records sorted by createdAt descending.
func (m *MemStore) ListAll(context.Context) ([]models.WordRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.WordRecord, len(m.records))
	copy(out, m.records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Len reports the number of stored records.
func (m *MemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
