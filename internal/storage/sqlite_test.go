package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nappingtoad/Cucina/internal/domain"
	"github.com/nappingtoad/Cucina/internal/logger"
	"github.com/nappingtoad/Cucina/internal/seed"
)

func openTestStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(path, logger.New(logger.LevelOff, nil))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteBootstrapsFreshFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cucina.db")
	ctx := context.Background()

	store := openTestStore(t, path)
	data, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data.Version != seed.SchemaVersion {
		t.Fatalf("expected schema version %d, got %d", seed.SchemaVersion, data.Version)
	}
	if data.UserByName(seed.DefaultUsername) == nil {
		t.Fatal("expected seeded default user")
	}
	firstUserID := data.CurrentUserID
	store.Close()

	// The bootstrap was persisted: a reopen sees the same catalog, not a
	// second freshly generated one.
	reopened := openTestStore(t, path)
	data, err = reopened.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if data.CurrentUserID != firstUserID {
		t.Fatalf("expected persisted user %s, got %s", firstUserID, data.CurrentUserID)
	}
}

func TestSQLiteSaveSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cucina.db")
	ctx := context.Background()

	store := openTestStore(t, path)
	data, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	data.Inventory = append(data.Inventory, domain.InventoryItem{
		UserID: data.CurrentUserID, IngredientID: "flour", MeasurementID: "cup", Quantity: 2,
	})
	if err := store.Save(ctx, data); err != nil {
		t.Fatalf("save: %v", err)
	}
	store.Close()

	reopened := openTestStore(t, path)
	data, err = reopened.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(data.Inventory) != 1 || data.Inventory[0].Quantity != 2 {
		t.Fatalf("expected the stocked lot back, got %+v", data.Inventory)
	}
}

func TestSQLiteRecoversFromCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cucina.db")
	ctx := context.Background()

	store := openTestStore(t, path)
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := store.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		catalogKey, []byte("definitely not msgpack")); err != nil {
		t.Fatalf("planting corrupt blob: %v", err)
	}

	data, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load over corrupt blob must not fail: %v", err)
	}
	if data.Version != seed.SchemaVersion {
		t.Fatalf("expected seeded defaults, got version %d", data.Version)
	}
	if data.UserByName(seed.DefaultUsername) == nil {
		t.Fatal("expected seeded default user after recovery")
	}
	store.Close()

	// The repaired snapshot was written back, so a reopen decodes cleanly.
	reopened := openTestStore(t, path)
	data, err = reopened.Load(ctx)
	if err != nil {
		t.Fatalf("reload after repair: %v", err)
	}
	if len(data.Measurements) == 0 || len(data.Recipes) == 0 {
		t.Fatal("expected a full catalog after repair")
	}
}

func TestSQLiteMigratesAndPersistsOldSnapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cucina.db")
	ctx := context.Background()

	store := openTestStore(t, path)
	old := &domain.AppData{
		Version:       1,
		CurrentUserID: "u1",
		Users:         []domain.User{{ID: "u1", Username: "chef"}},
		Ingredients: []domain.Ingredient{
			{ID: "sumac", Name: "sumac", IsCustom: true},
		},
		Measurements: []domain.Measurement{
			{ID: "cup", Name: "my cup"},
		},
	}
	if err := store.Save(ctx, old); err != nil {
		t.Fatalf("save old snapshot: %v", err)
	}

	data, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data.Version != seed.SchemaVersion {
		t.Fatalf("expected migrated version %d, got %d", seed.SchemaVersion, data.Version)
	}
	if data.MeasurementByID("tablespoon") == nil {
		t.Fatal("expected missing defaults backfilled")
	}
	if got := data.MeasurementByID("cup").Name; got != "my cup" {
		t.Fatalf("user's renamed unit must survive migration, got %q", got)
	}

	// The migrated aggregate was re-persisted during the Load, not only
	// returned: the on-disk blob already carries the new version.
	var raw []byte
	if err := store.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, catalogKey).Scan(&raw); err != nil {
		t.Fatalf("reading raw blob: %v", err)
	}
	onDisk, err := decodeCatalog(raw)
	if err != nil {
		t.Fatalf("decoding raw blob: %v", err)
	}
	if onDisk.Version != seed.SchemaVersion {
		t.Fatalf("expected migration persisted to disk, on-disk version is %d", onDisk.Version)
	}
	if onDisk.IngredientByID("sumac") == nil {
		t.Fatal("custom ingredient must survive the persisted migration")
	}
}
