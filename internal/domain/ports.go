package domain

import "context"

// CatalogStore persists the whole aggregate. Implementations can be
// in-memory or disk-backed; Load is expected to bootstrap or migrate seed
// data before returning, and Save replaces the previous snapshot.
type CatalogStore interface {
	Load(ctx context.Context) (*AppData, error)
	Save(ctx context.Context, data *AppData) error
}
