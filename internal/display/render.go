package display

import (
	"fmt"
	"strings"

	"github.com/nappingtoad/Cucina/internal/domain"
	"github.com/nappingtoad/Cucina/internal/engine"
)

// RecipeList renders recipe summaries as one line per recipe.
func RecipeList(recipes []*domain.Recipe) string {
	if len(recipes) == 0 {
		return dimStyle.Render("no recipes yet")
	}
	var b strings.Builder
	for _, r := range recipes {
		fmt.Fprintf(&b, "%s  %s\n",
			titleStyle.Render(r.Name),
			dimStyle.Render(fmt.Sprintf("(%s, %g servings, cooked %dx)", r.ID, r.Servings, r.CookCount)))
		if r.Description != "" {
			fmt.Fprintf(&b, "  %s\n", r.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Recipe renders one full recipe with resolved ingredient and unit names.
func Recipe(r *domain.Recipe, data *domain.AppData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", titleStyle.Render(r.Name), dimStyle.Render(fmt.Sprintf("%g servings", r.Servings)))
	if r.Description != "" {
		fmt.Fprintf(&b, "%s\n", r.Description)
	}
	b.WriteString(headerStyle.Render("\nIngredients") + "\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "  %s\n", ingredientLine(ing.Quantity, ing.MeasurementID, ing.IngredientID, data))
	}
	b.WriteString(headerStyle.Render("\nInstructions") + "\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Pantry renders a user's inventory lots.
func Pantry(lots []domain.InventoryItem, data *domain.AppData) string {
	if len(lots) == 0 {
		return dimStyle.Render("pantry is empty")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("Pantry") + "\n")
	for _, lot := range lots {
		fmt.Fprintf(&b, "  %s\n", ingredientLine(lot.Quantity, lot.MeasurementID, lot.IngredientID, data))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Sufficiency renders a per-ingredient availability report for a scaled
// session.
func Sufficiency(report []engine.IngredientStatus) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Ingredient check") + "\n")
	for _, row := range report {
		mark := okStyle.Render("✓")
		note := ""
		if !row.HasEnough {
			mark = shortStyle.Render("✗")
			note = shortStyle.Render(fmt.Sprintf("  (have %.3g)", row.Available))
		}
		fmt.Fprintf(&b, "  %s %.3g %s %s%s\n", mark, row.Required, row.MeasurementName, row.IngredientName, note)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Ledger renders what a completed session actually took from the pantry.
func Ledger(entries []engine.LedgerEntry, data *domain.AppData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Deducted from pantry") + "\n")
	for _, entry := range entries {
		for _, d := range entry.Applied {
			fmt.Fprintf(&b, "  %s\n", ingredientLine(d.Quantity, d.MeasurementID, entry.IngredientID, data))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func ingredientLine(qty float64, measurementID, ingredientID string, data *domain.AppData) string {
	unit := measurementID
	if m := data.MeasurementByID(measurementID); m != nil {
		unit = m.Name
	}
	name := ingredientID
	if i := data.IngredientByID(ingredientID); i != nil {
		name = i.Name
	}
	return fmt.Sprintf("%.4g %s %s", qty, unit, name)
}
