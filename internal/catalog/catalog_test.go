package catalog

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/nappingtoad/Cucina/internal/domain"
	"github.com/nappingtoad/Cucina/internal/logger"
	"github.com/nappingtoad/Cucina/internal/storage"
)

func setup(t *testing.T) (*Service, domain.CatalogStore, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemoryStore(log)
	return New(store, log), store, context.Background()
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, ctx := setup(t)

	user, err := svc.Register(ctx, "alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Registering switches the current user.
	current, err := svc.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if current.ID != user.ID {
		t.Fatalf("expected current user %s, got %s", user.ID, current.ID)
	}

	// Duplicate usernames are rejected at the boundary.
	var vErr *domain.ValidationError
	if _, err := svc.Register(ctx, "alice"); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for duplicate username, got %v", err)
	}

	// The shipped default user still exists and can log back in.
	if _, err := svc.Login(ctx, "chef"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Login(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	svc, _, ctx := setup(t)
	user, _ := svc.Register(ctx, "alice")

	tests := []struct {
		name   string
		recipe domain.Recipe
	}{
		{"empty name", domain.Recipe{UserID: user.ID, Servings: 2}},
		{"zero servings", domain.Recipe{UserID: user.ID, Name: "Toast", Servings: 0}},
		{"non-positive ingredient quantity", domain.Recipe{
			UserID: user.ID, Name: "Toast", Servings: 1,
			Ingredients: []domain.RecipeIngredient{{IngredientID: "flour", Quantity: 0, MeasurementID: "cup"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vErr *domain.ValidationError
			if _, err := svc.CreateRecipe(ctx, &tt.recipe); !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestGetRecipeCountsViews(t *testing.T) {
	svc, _, ctx := setup(t)
	user, _ := svc.Register(ctx, "alice")

	created, err := svc.CreateRecipe(ctx, &domain.Recipe{UserID: user.ID, Name: "Toast", Servings: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.GetRecipe(ctx, created.ID); err != nil {
			t.Fatalf("get: %v", err)
		}
	}
	got, _ := svc.GetRecipe(ctx, created.ID)
	if got.ViewCount != 4 {
		t.Fatalf("expected view count 4, got %d", got.ViewCount)
	}
}

func TestUpdateRecipePreservesCounters(t *testing.T) {
	svc, store, ctx := setup(t)
	user, _ := svc.Register(ctx, "alice")

	created, err := svc.CreateRecipe(ctx, &domain.Recipe{UserID: user.ID, Name: "Toast", Servings: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.GetRecipe(ctx, created.ID); err != nil {
		t.Fatalf("get: %v", err)
	}

	update := *created
	update.Name = "Cinnamon Toast"
	update.Servings = 2
	update.ViewCount = 99
	if err := svc.UpdateRecipe(ctx, &update); err != nil {
		t.Fatalf("update: %v", err)
	}

	data, _ := store.Load(ctx)
	got := data.RecipeByID(created.ID)
	if got.Name != "Cinnamon Toast" || got.Servings != 2 {
		t.Fatalf("authored fields not applied: %+v", got)
	}
	if got.ViewCount != 1 {
		t.Fatalf("counters must survive updates untouched, got view count %d", got.ViewCount)
	}

	update.ID = "missing"
	if err := svc.UpdateRecipe(ctx, &update); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRecipeCascadesToSessions(t *testing.T) {
	svc, store, ctx := setup(t)
	user, _ := svc.Register(ctx, "alice")

	created, err := svc.CreateRecipe(ctx, &domain.Recipe{UserID: user.ID, Name: "Toast", Servings: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	data, _ := store.Load(ctx)
	data.Sessions[domain.SessionKey(created.ID, user.ID)] = &domain.CookingSession{
		ID: "s1", RecipeID: created.ID, UserID: user.ID, Status: domain.SessionActive,
	}
	data.SessionLog = append(data.SessionLog, &domain.CookingSession{
		ID: "s0", RecipeID: created.ID, UserID: user.ID, Status: domain.SessionCancelled,
	})
	data.Inventory = append(data.Inventory, domain.InventoryItem{
		UserID: user.ID, IngredientID: "flour", MeasurementID: "cup", Quantity: 2,
	})
	store.Save(ctx, data)

	if err := svc.DeleteRecipe(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	data, _ = store.Load(ctx)
	if data.RecipeByID(created.ID) != nil {
		t.Fatal("recipe should be gone")
	}
	if len(data.Sessions) != 0 || len(data.SessionLog) != 0 {
		t.Fatal("sessions must cascade with the recipe")
	}
	if len(data.Inventory) != 1 {
		t.Fatal("inventory must survive recipe deletion")
	}
}

func TestStockInventoryMergesLots(t *testing.T) {
	svc, store, ctx := setup(t)
	user, _ := svc.Register(ctx, "alice")

	if err := svc.StockInventory(ctx, user.ID, "flour", "cup", 2); err != nil {
		t.Fatalf("stock: %v", err)
	}
	// Same key again: quantities sum in one lot.
	if err := svc.StockInventory(ctx, user.ID, "flour", "cup", 1.5); err != nil {
		t.Fatalf("stock: %v", err)
	}
	// Different unit: separate lot for the same ingredient.
	if err := svc.StockInventory(ctx, user.ID, "flour", "gram", 500); err != nil {
		t.Fatalf("stock: %v", err)
	}

	data, _ := store.Load(ctx)
	var lots []domain.InventoryItem
	for _, lot := range data.Inventory {
		if lot.UserID == user.ID {
			lots = append(lots, lot)
		}
	}
	if len(lots) != 2 {
		t.Fatalf("expected 2 lots, got %d", len(lots))
	}
	if math.Abs(lots[0].Quantity-3.5) > 1e-9 {
		t.Fatalf("expected merged cup lot of 3.5, got %g", lots[0].Quantity)
	}

	var vErr *domain.ValidationError
	if err := svc.StockInventory(ctx, user.ID, "flour", "cup", -1); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for negative quantity, got %v", err)
	}
	if err := svc.StockInventory(ctx, user.ID, "plutonium", "cup", 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown ingredient, got %v", err)
	}

	// Removing a lot deletes it outright, leaving other units alone.
	if err := svc.RemoveInventory(ctx, user.ID, "flour", "cup"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	data, _ = store.Load(ctx)
	lots = lots[:0]
	for _, lot := range data.Inventory {
		if lot.UserID == user.ID {
			lots = append(lots, lot)
		}
	}
	if len(lots) != 1 || lots[0].MeasurementID != "gram" {
		t.Fatalf("expected only the gram lot to remain, got %+v", lots)
	}
	if err := svc.RemoveInventory(ctx, user.ID, "flour", "cup"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double remove, got %v", err)
	}
}

func TestDeleteMeasurementInUse(t *testing.T) {
	svc, _, ctx := setup(t)
	user, _ := svc.Register(ctx, "alice")

	if err := svc.StockInventory(ctx, user.ID, "flour", "cup", 1); err != nil {
		t.Fatalf("stock: %v", err)
	}

	var vErr *domain.ValidationError
	if err := svc.DeleteMeasurement(ctx, "cup"); !errors.As(err, &vErr) {
		t.Fatalf("expected in-use rejection, got %v", err)
	}
	// A countable nothing refers to can go.
	if err := svc.DeleteMeasurement(ctx, "slice"); err != nil {
		t.Fatalf("delete unused measurement: %v", err)
	}
}

func TestRenameIngredient(t *testing.T) {
	svc, store, ctx := setup(t)
	if _, err := svc.Register(ctx, "alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.RenameIngredient(ctx, "flour", "bread flour"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	data, _ := store.Load(ctx)
	if got := data.IngredientByID("flour").Name; got != "bread flour" {
		t.Fatalf("expected renamed ingredient, got %q", got)
	}

	// Renaming onto another entry's name is rejected.
	if err := svc.RenameIngredient(ctx, "flour", "Sugar"); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	// Keeping your own name (case change only) is fine.
	if err := svc.RenameIngredient(ctx, "flour", "Bread Flour"); err != nil {
		t.Fatalf("case-only rename: %v", err)
	}
}

func TestDeleteIngredientInUse(t *testing.T) {
	svc, _, ctx := setup(t)
	user, _ := svc.Register(ctx, "alice")

	// Referenced by a shipped recipe.
	var vErr *domain.ValidationError
	if err := svc.DeleteIngredient(ctx, "flour"); !errors.As(err, &vErr) {
		t.Fatalf("expected in-use rejection for recipe reference, got %v", err)
	}

	// Referenced only by a pantry lot.
	if err := svc.StockInventory(ctx, user.ID, "rice", "gram", 500); err != nil {
		t.Fatalf("stock: %v", err)
	}
	if err := svc.DeleteIngredient(ctx, "rice"); !errors.As(err, &vErr) {
		t.Fatalf("expected in-use rejection for inventory reference, got %v", err)
	}

	// Unreferenced entries can go.
	if err := svc.DeleteIngredient(ctx, "tomato"); err != nil {
		t.Fatalf("delete unused ingredient: %v", err)
	}
	if err := svc.DeleteIngredient(ctx, "tomato"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestAddMeasurement(t *testing.T) {
	svc, store, ctx := setup(t)
	if _, err := svc.Register(ctx, "alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.AddMeasurement(ctx, domain.Measurement{
		ID:   "stick",
		Name: "stick of butter",
		Conversions: []domain.Conversion{
			{ToMeasurementID: "tablespoon", Factor: 8},
		},
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.AddMeasurement(ctx, domain.Measurement{ID: "stick", Name: "stick"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// Edges are taken as authored: stick -> tablespoon exists, the inverse
	// does not appear anywhere.
	data, _ := store.Load(ctx)
	tbsp := data.MeasurementByID("tablespoon")
	for _, c := range tbsp.Conversions {
		if c.ToMeasurementID == "stick" {
			t.Fatal("no inverse edge may be derived")
		}
	}
}

func TestUpdateMeasurementReplacesEdges(t *testing.T) {
	svc, store, ctx := setup(t)
	if _, err := svc.Register(ctx, "alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.UpdateMeasurement(ctx, domain.Measurement{
		ID:   "pinch",
		Name: "pinch",
		Conversions: []domain.Conversion{
			{ToMeasurementID: "teaspoon", Factor: 0.0625},
		},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	data, _ := store.Load(ctx)
	m := data.MeasurementByID("pinch")
	if len(m.Conversions) != 1 || m.Conversions[0].ToMeasurementID != "teaspoon" {
		t.Fatalf("expected replaced edges, got %+v", m.Conversions)
	}

	if err := svc.UpdateMeasurement(ctx, domain.Measurement{ID: "fathom", Name: "fathom"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFilter(t *testing.T) {
	candidates := []string{"Buttermilk Pancakes", "Spaghetti Aglio e Olio", "Pancake Syrup"}
	text := func(s string) string { return s }

	tests := []struct {
		query string
		want  int
	}{
		{"pancake", 2},
		{"SPAGHETTI", 1},
		{"", 3},
		{"  ", 3},
		{"tiramisu", 0},
	}

	for _, tt := range tests {
		if got := Filter(tt.query, candidates, text); len(got) != tt.want {
			t.Fatalf("Filter(%q): expected %d matches, got %d", tt.query, tt.want, len(got))
		}
	}
}

func TestAddIngredientDeduplicates(t *testing.T) {
	svc, _, ctx := setup(t)
	if _, err := svc.Register(ctx, "alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	ing, err := svc.AddIngredient(ctx, "sumac")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !ing.IsCustom {
		t.Fatal("user-added ingredients must be marked custom")
	}
	if _, err := svc.AddIngredient(ctx, "Sumac"); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	// Shipped names are protected too.
	if _, err := svc.AddIngredient(ctx, "salt"); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for shipped name, got %v", err)
	}
}
