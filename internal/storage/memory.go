// Package storage provides catalog store implementations: an in-memory store
// for tests and ephemeral runs, and a sqlite-backed key-value store for
// durable local data.
package storage

import (
	"context"
	"sync"

	"github.com/nappingtoad/Cucina/internal/domain"
	"github.com/nappingtoad/Cucina/internal/logger"
	"github.com/nappingtoad/Cucina/internal/seed"
)

// Compile-time interface check.
var _ domain.CatalogStore = (*MemoryStore)(nil)

// MemoryStore keeps the aggregate in memory. Safe for concurrent access.
type MemoryStore struct {
	mu   sync.Mutex
	data *domain.AppData
	log  *logger.Logger
}

// NewMemoryStore creates an empty in-memory store. The first Load seeds it
// with the default catalog.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{log: log}
}

// Load returns the current aggregate, bootstrapping defaults on first use
// and merging newer seed data into aggregates from older schema versions.
func (s *MemoryStore) Load(ctx context.Context) (*domain.AppData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.log.Debug("bootstrapping in-memory catalog from defaults")
		s.data = seed.DefaultAppData()
	}
	migrate(s.data, s.log)
	return s.data, nil
}

// Save replaces the aggregate snapshot.
func (s *MemoryStore) Save(ctx context.Context, data *domain.AppData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data
	return nil
}
