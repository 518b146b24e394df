// Package seed ships the default catalog a fresh store is bootstrapped with
// and migrations backfill from: the measurement graph, the base ingredient
// set, and a couple of starter recipes.
package seed

import (
	"time"

	"github.com/nappingtoad/Cucina/internal/domain"
)

// SchemaVersion is the current aggregate schema. Stores holding an older
// version get the newer defaults merged in on load.
const SchemaVersion = 3

// DefaultUsername owns the starter recipes and is the initial current user.
const DefaultUsername = "chef"

// DefaultAppData builds a complete fresh aggregate.
func DefaultAppData() *domain.AppData {
	user := domain.User{
		ID:        domain.NewID(),
		Username:  DefaultUsername,
		CreatedAt: time.Now(),
	}
	return &domain.AppData{
		Version:       SchemaVersion,
		CurrentUserID: user.ID,
		Users:         []domain.User{user},
		Recipes:       defaultRecipes(user.ID),
		Ingredients:   DefaultIngredients(),
		Measurements:  DefaultMeasurements(),
		Sessions:      make(map[string]*domain.CookingSession),
	}
}

func edge(to string, factor float64) domain.Conversion {
	return domain.Conversion{ToMeasurementID: to, Factor: factor}
}

// DefaultMeasurements returns the shipped unit set. Every conversion edge is
// authored explicitly per direction; lookups never invert or chain edges, so
// both directions appear here as independent entries. Countable units carry
// no conversions at all.
func DefaultMeasurements() []domain.Measurement {
	return []domain.Measurement{
		// Volume. Factors are US customary against the milliliter.
		{ID: "cup", Name: "cup", Conversions: []domain.Conversion{
			edge("tablespoon", 16),
			edge("teaspoon", 48),
			edge("fluid-ounce", 8),
			edge("pint", 0.5),
			edge("milliliter", 236.588),
			edge("liter", 0.236588),
		}},
		{ID: "tablespoon", Name: "tablespoon", Conversions: []domain.Conversion{
			edge("cup", 0.0625),
			edge("teaspoon", 3),
			edge("fluid-ounce", 0.5),
			edge("milliliter", 14.787),
		}},
		{ID: "teaspoon", Name: "teaspoon", Conversions: []domain.Conversion{
			edge("cup", 0.0208333),
			edge("tablespoon", 0.333333),
			edge("milliliter", 4.929),
		}},
		{ID: "fluid-ounce", Name: "fluid ounce", Conversions: []domain.Conversion{
			edge("cup", 0.125),
			edge("tablespoon", 2),
			edge("milliliter", 29.574),
		}},
		{ID: "pint", Name: "pint", Conversions: []domain.Conversion{
			edge("cup", 2),
			edge("quart", 0.5),
			edge("milliliter", 473.176),
		}},
		{ID: "quart", Name: "quart", Conversions: []domain.Conversion{
			edge("pint", 2),
			edge("cup", 4),
			edge("gallon", 0.25),
			edge("liter", 0.946353),
			edge("milliliter", 946.353),
		}},
		{ID: "gallon", Name: "gallon", Conversions: []domain.Conversion{
			edge("quart", 4),
			edge("liter", 3.78541),
			edge("milliliter", 3785.41),
		}},
		{ID: "liter", Name: "liter", Conversions: []domain.Conversion{
			edge("milliliter", 1000),
			edge("cup", 4.22675),
			edge("quart", 1.05669),
			edge("gallon", 0.264172),
		}},
		{ID: "milliliter", Name: "milliliter", Conversions: []domain.Conversion{
			edge("liter", 0.001),
			edge("cup", 0.00422675),
			edge("tablespoon", 0.067628),
			edge("teaspoon", 0.202884),
			edge("fluid-ounce", 0.033814),
			edge("pint", 0.00211338),
			edge("quart", 0.00105669),
			edge("gallon", 0.000264172),
		}},

		// Weight. Factors against the gram.
		{ID: "ounce", Name: "ounce", Conversions: []domain.Conversion{
			edge("pound", 0.0625),
			edge("gram", 28.3495),
		}},
		{ID: "pound", Name: "pound", Conversions: []domain.Conversion{
			edge("ounce", 16),
			edge("gram", 453.592),
			edge("kilogram", 0.453592),
		}},
		{ID: "gram", Name: "gram", Conversions: []domain.Conversion{
			edge("ounce", 0.035274),
			edge("pound", 0.00220462),
			edge("kilogram", 0.001),
			edge("milligram", 1000),
		}},
		{ID: "kilogram", Name: "kilogram", Conversions: []domain.Conversion{
			edge("gram", 1000),
			edge("pound", 2.20462),
		}},
		{ID: "milligram", Name: "milligram", Conversions: []domain.Conversion{
			edge("gram", 0.001),
		}},

		// Countable units: no conversions, no path to anything else.
		{ID: "piece", Name: "piece"},
		{ID: "slice", Name: "slice"},
		{ID: "clove", Name: "clove"},
		{ID: "pinch", Name: "pinch"},
	}
}

// DefaultIngredients returns the shipped ingredient catalog.
func DefaultIngredients() []domain.Ingredient {
	names := []struct{ id, name string }{
		{"flour", "all-purpose flour"},
		{"sugar", "sugar"},
		{"brown-sugar", "brown sugar"},
		{"salt", "salt"},
		{"butter", "butter"},
		{"milk", "milk"},
		{"egg", "egg"},
		{"olive-oil", "olive oil"},
		{"vegetable-oil", "vegetable oil"},
		{"garlic", "garlic"},
		{"onion", "onion"},
		{"tomato", "tomato"},
		{"rice", "rice"},
		{"spaghetti", "spaghetti"},
		{"chicken-breast", "chicken breast"},
		{"black-pepper", "black pepper"},
		{"baking-powder", "baking powder"},
		{"parmesan", "parmesan"},
	}
	out := make([]domain.Ingredient, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Ingredient{ID: n.id, Name: n.name})
	}
	return out
}

// defaultRecipes returns the starter recipes, owned by the given user.
func defaultRecipes(userID string) []*domain.Recipe {
	now := time.Now()
	return []*domain.Recipe{
		{
			ID:          "buttermilk-pancakes",
			UserID:      userID,
			Name:        "Buttermilk Pancakes",
			Description: "Fluffy weekend pancakes. The batter should still have small lumps when it hits the pan.",
			Servings:    4,
			Ingredients: []domain.RecipeIngredient{
				{IngredientID: "flour", Quantity: 2, MeasurementID: "cup"},
				{IngredientID: "sugar", Quantity: 3, MeasurementID: "tablespoon"},
				{IngredientID: "baking-powder", Quantity: 2, MeasurementID: "teaspoon"},
				{IngredientID: "salt", Quantity: 0.5, MeasurementID: "teaspoon"},
				{IngredientID: "milk", Quantity: 2, MeasurementID: "cup"},
				{IngredientID: "egg", Quantity: 2, MeasurementID: "piece"},
				{IngredientID: "butter", Quantity: 4, MeasurementID: "tablespoon"},
			},
			Instructions: []string{
				"Whisk flour, sugar, baking powder, and salt in a large bowl.",
				"Whisk milk, eggs, and melted butter in a second bowl.",
				"Pour the wet into the dry and fold until just combined. Lumps are fine.",
				"Cook on a buttered griddle over medium heat until bubbles form, then flip.",
				"Hold finished pancakes in a warm oven until the batch is done.",
			},
			CreatedAt: now,
		},
		{
			ID:          "spaghetti-aglio-e-olio",
			UserID:      userID,
			Name:        "Spaghetti Aglio e Olio",
			Description: "Pantry pasta: garlic gently toasted in olive oil, emulsified with pasta water.",
			Servings:    2,
			Ingredients: []domain.RecipeIngredient{
				{IngredientID: "spaghetti", Quantity: 200, MeasurementID: "gram"},
				{IngredientID: "olive-oil", Quantity: 0.25, MeasurementID: "cup"},
				{IngredientID: "garlic", Quantity: 4, MeasurementID: "clove"},
				{IngredientID: "salt", Quantity: 1, MeasurementID: "tablespoon"},
				{IngredientID: "black-pepper", Quantity: 1, MeasurementID: "pinch"},
				{IngredientID: "parmesan", Quantity: 0.5, MeasurementID: "cup"},
			},
			Instructions: []string{
				"Boil the spaghetti in well-salted water until just under al dente.",
				"Meanwhile warm the olive oil with sliced garlic over low heat until pale gold.",
				"Drag the pasta into the pan with a cup of its cooking water.",
				"Toss over high heat until the sauce clings, then finish with pepper and parmesan.",
			},
			CreatedAt: now,
		},
	}
}
