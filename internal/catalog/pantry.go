package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/nappingtoad/Cucina/internal/domain"
)

// AddIngredient creates a custom catalog ingredient. Names are unique across
// shipped and custom entries.
func (s *Service) AddIngredient(ctx context.Context, name string) (*domain.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("ingredient name", "must not be empty")
	}

	data, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	for _, ing := range data.Ingredients {
		if strings.EqualFold(ing.Name, name) {
			return nil, fmt.Errorf("ingredient %q: %w", name, domain.ErrAlreadyExists)
		}
	}

	ing := domain.Ingredient{ID: domain.NewID(), Name: name, IsCustom: true}
	data.Ingredients = append(data.Ingredients, ing)

	if err := s.store.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("saving ingredient: %w", err)
	}
	s.log.Info("added ingredient %q", name)
	return &ing, nil
}

// RenameIngredient changes an ingredient's display name. The new name must
// stay unique across the catalog.
func (s *Service) RenameIngredient(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Validationf("ingredient name", "must not be empty")
	}

	data, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	ing := data.IngredientByID(id)
	if ing == nil {
		return fmt.Errorf("ingredient %s: %w", id, domain.ErrNotFound)
	}
	for _, cur := range data.Ingredients {
		if cur.ID != id && strings.EqualFold(cur.Name, name) {
			return fmt.Errorf("ingredient %q: %w", name, domain.ErrAlreadyExists)
		}
	}
	ing.Name = name

	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving ingredient: %w", err)
	}
	return nil
}

// DeleteIngredient removes a catalog ingredient unless a recipe or inventory
// lot still refers to it.
func (s *Service) DeleteIngredient(ctx context.Context, id string) error {
	data, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	for _, r := range data.Recipes {
		for _, ing := range r.Ingredients {
			if ing.IngredientID == id {
				return domain.Validationf("ingredient", "%s is used by recipe %q", id, r.Name)
			}
		}
	}
	for _, lot := range data.Inventory {
		if lot.IngredientID == id {
			return domain.Validationf("ingredient", "%s is stocked in an inventory lot", id)
		}
	}

	idx := -1
	for i := range data.Ingredients {
		if data.Ingredients[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("ingredient %s: %w", id, domain.ErrNotFound)
	}
	data.Ingredients = append(data.Ingredients[:idx], data.Ingredients[idx+1:]...)

	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving deletion: %w", err)
	}
	return nil
}

// SearchIngredients matches catalog ingredients by name, case-insensitively.
func (s *Service) SearchIngredients(ctx context.Context, query string) ([]domain.Ingredient, error) {
	data, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return Filter(query, data.Ingredients, func(i domain.Ingredient) string {
		return i.Name
	}), nil
}

// AddMeasurement creates a unit, optionally with conversion edges. Edges are
// taken as authored; no inverse edges are derived.
func (s *Service) AddMeasurement(ctx context.Context, m domain.Measurement) error {
	if strings.TrimSpace(m.Name) == "" {
		return domain.Validationf("measurement name", "must not be empty")
	}
	if m.ID == "" {
		m.ID = domain.NewID()
	}

	data, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	if data.MeasurementByID(m.ID) != nil {
		return fmt.Errorf("measurement %s: %w", m.ID, domain.ErrAlreadyExists)
	}
	data.Measurements = append(data.Measurements, m)

	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving measurement: %w", err)
	}
	s.log.Info("added measurement %q", m.Name)
	return nil
}

// UpdateMeasurement replaces a unit's name and conversion edges wholesale.
func (s *Service) UpdateMeasurement(ctx context.Context, m domain.Measurement) error {
	if strings.TrimSpace(m.Name) == "" {
		return domain.Validationf("measurement name", "must not be empty")
	}

	data, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	current := data.MeasurementByID(m.ID)
	if current == nil {
		return fmt.Errorf("measurement %s: %w", m.ID, domain.ErrNotFound)
	}
	current.Name = m.Name
	current.Conversions = m.Conversions

	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving measurement: %w", err)
	}
	return nil
}

// DeleteMeasurement removes a unit unless a recipe or inventory lot still
// refers to it.
func (s *Service) DeleteMeasurement(ctx context.Context, id string) error {
	data, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	for _, r := range data.Recipes {
		for _, ing := range r.Ingredients {
			if ing.MeasurementID == id {
				return domain.Validationf("measurement", "%s is used by recipe %q", id, r.Name)
			}
		}
	}
	for _, lot := range data.Inventory {
		if lot.MeasurementID == id {
			return domain.Validationf("measurement", "%s is used by an inventory lot", id)
		}
	}

	idx := -1
	for i := range data.Measurements {
		if data.Measurements[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("measurement %s: %w", id, domain.ErrNotFound)
	}
	data.Measurements = append(data.Measurements[:idx], data.Measurements[idx+1:]...)

	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving deletion: %w", err)
	}
	return nil
}

// StockInventory adds quantity to the lot keyed by (user, ingredient, unit),
// creating the lot if it does not exist yet.
func (s *Service) StockInventory(ctx context.Context, userID, ingredientID, measurementID string, quantity float64) error {
	if quantity <= 0 {
		return domain.Validationf("quantity", "must be positive, got %g", quantity)
	}

	data, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	if data.IngredientByID(ingredientID) == nil {
		return fmt.Errorf("ingredient %s: %w", ingredientID, domain.ErrNotFound)
	}
	if data.MeasurementByID(measurementID) == nil {
		return fmt.Errorf("measurement %s: %w", measurementID, domain.ErrNotFound)
	}

	found := false
	for i := range data.Inventory {
		lot := &data.Inventory[i]
		if lot.UserID == userID && lot.IngredientID == ingredientID && lot.MeasurementID == measurementID {
			lot.Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		data.Inventory = append(data.Inventory, domain.InventoryItem{
			UserID:        userID,
			IngredientID:  ingredientID,
			MeasurementID: measurementID,
			Quantity:      quantity,
		})
	}

	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving inventory: %w", err)
	}
	s.log.Debug("stocked %g %s of %s for %s", quantity, measurementID, ingredientID, userID)
	return nil
}

// RemoveInventory deletes one lot outright.
func (s *Service) RemoveInventory(ctx context.Context, userID, ingredientID, measurementID string) error {
	data, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	idx := -1
	for i, lot := range data.Inventory {
		if lot.UserID == userID && lot.IngredientID == ingredientID && lot.MeasurementID == measurementID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("inventory lot: %w", domain.ErrNotFound)
	}
	data.Inventory = append(data.Inventory[:idx], data.Inventory[idx+1:]...)

	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving inventory: %w", err)
	}
	return nil
}

// UserInventory returns a user's lots in storage order.
func (s *Service) UserInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	data, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	var out []domain.InventoryItem
	for _, lot := range data.Inventory {
		if lot.UserID == userID {
			out = append(out, lot)
		}
	}
	return out, nil
}

// Measurements returns the full unit catalog.
func (s *Service) Measurements(ctx context.Context) ([]domain.Measurement, error) {
	data, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return data.Measurements, nil
}
