package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nappingtoad/Cucina/internal/domain"
	"github.com/nappingtoad/Cucina/internal/logger"
	"github.com/nappingtoad/Cucina/internal/seed"
)

// Compile-time interface check.
var _ domain.CatalogStore = (*SQLiteStore)(nil)

// catalogKey is the key the aggregate snapshot lives under.
const catalogKey = "catalog"

// SQLiteStore persists the aggregate as a msgpack blob in a single-table
// key-value schema inside a local sqlite file. A corrupt or missing snapshot
// is replaced by freshly generated defaults; loading never fails the caller
// over bad on-disk data.
type SQLiteStore struct {
	mu  sync.Mutex
	db  *sql.DB
	log *logger.Logger
}

// OpenSQLite opens (and if needed creates) the store file at path.
func OpenSQLite(path string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &SQLiteStore{db: db, log: log}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the aggregate snapshot. A fresh file gets the default catalog;
// an undecodable snapshot is logged and replaced by defaults; a snapshot from
// an older schema version gets newer seed data merged in and is persisted
// before being returned.
func (s *SQLiteStore) Load(ctx context.Context) (*domain.AppData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, catalogKey).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.log.Info("no catalog on disk, bootstrapping defaults")
		data := seed.DefaultAppData()
		if err := s.save(ctx, data); err != nil {
			return nil, err
		}
		return data, nil
	case err != nil:
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	data, err := decodeCatalog(raw)
	if err != nil {
		s.log.Error("catalog snapshot is corrupt, falling back to defaults: %v", err)
		data = seed.DefaultAppData()
		if err := s.save(ctx, data); err != nil {
			return nil, err
		}
		return data, nil
	}

	if migrate(data, s.log) {
		if err := s.save(ctx, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// Save replaces the aggregate snapshot.
func (s *SQLiteStore) Save(ctx context.Context, data *domain.AppData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, data)
}

func (s *SQLiteStore) save(ctx context.Context, data *domain.AppData) error {
	raw, err := encodeCatalog(data)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		catalogKey, raw)
	if err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}
