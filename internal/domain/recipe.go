package domain

import "time"

// Recipe is a user-owned recipe. Servings is the baseline the cooking
// session scaling factor is computed against and must be positive.
type Recipe struct {
	ID           string
	UserID       string
	Name         string
	Description  string
	Servings     float64
	Ingredients  []RecipeIngredient
	Instructions []string
	ViewCount    int
	CookCount    int
	CreatedAt    time.Time
}

// RecipeIngredient references an ingredient with the quantity and unit the
// recipe calls for at baseline servings.
type RecipeIngredient struct {
	IngredientID  string
	Quantity      float64
	MeasurementID string
}

// InventoryItem is one pantry lot, uniquely keyed by
// (UserID, IngredientID, MeasurementID). The same ingredient may be stocked
// in several lots with different units at the same time. Quantity is always
// non-negative; a lot depleted to roughly zero is removed rather than kept.
type InventoryItem struct {
	UserID        string
	IngredientID  string
	MeasurementID string
	Quantity      float64
}

// User is an account in the local store. There is no password handling here;
// identity is a local single-writer concern.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}
