// Package inventory implements the lot deduction engine: given a required
// quantity of an ingredient, it depletes a user's pantry lots in preference
// order, converting units along the way.
package inventory

import (
	"math"

	"github.com/nappingtoad/Cucina/internal/convert"
	"github.com/nappingtoad/Cucina/internal/domain"
)

// Epsilon is the quantity below which a lot counts as empty. Depleting a lot
// leaves floating point dust behind; anything under this threshold is removed
// from the inventory instead of surfacing as a visible near-zero row.
const Epsilon = 1e-3

// Deduction is one ledger entry: how much was actually taken from a lot,
// expressed in that lot's own unit.
type Deduction struct {
	MeasurementID string
	Quantity      float64
}

// Deduct consumes requiredQty (expressed in requiredUnit) of an ingredient
// from the user's lots and returns the updated lot collection together with
// the ledger of applied deductions.
//
// Lots in the required unit are depleted first; remaining candidates follow
// in their original relative order. A lot whose unit has no direct conversion
// path from the required unit is skipped untouched. A lot depleted below
// Epsilon is dropped from the collection.
//
// Inputs are never mutated; untouched lots pass through unchanged and the
// collection keeps its original order. No error is raised when the
// requirement cannot be fully met: the caller verifies sufficiency up front,
// and an asymmetric conversion graph can leave the remainder under-deducted
// (the lot is depleted but the back-conversion to the required unit has no
// path, so the remainder cannot be reduced).
func Deduct(g *convert.Graph, lots []domain.InventoryItem, userID, ingredientID, requiredUnit string, requiredQty float64) ([]domain.InventoryItem, []Deduction) {
	// Stable boolean partition: exact-unit lots first, everything else in
	// original order behind them.
	var candidates []int
	for i, lot := range lots {
		if lot.UserID == userID && lot.IngredientID == ingredientID && lot.MeasurementID == requiredUnit {
			candidates = append(candidates, i)
		}
	}
	for i, lot := range lots {
		if lot.UserID == userID && lot.IngredientID == ingredientID && lot.MeasurementID != requiredUnit {
			candidates = append(candidates, i)
		}
	}

	var ledger []Deduction
	reduced := make(map[int]float64)
	removed := make(map[int]bool)

	remaining := requiredQty
	for _, idx := range candidates {
		if remaining <= 0 {
			break
		}
		lot := lots[idx]

		inLotUnit, err := g.Convert(requiredUnit, lot.MeasurementID, remaining)
		if err != nil {
			continue // no path into this lot's unit, leave it alone
		}

		toDeduct := math.Min(lot.Quantity, inLotUnit)
		if left := lot.Quantity - toDeduct; left < Epsilon {
			removed[idx] = true
		} else {
			reduced[idx] = left
		}
		ledger = append(ledger, Deduction{MeasurementID: lot.MeasurementID, Quantity: toDeduct})

		// The reverse edge may be missing even though the forward one
		// existed; in that case the remainder stays as-is and the loop
		// moves on under-deducted.
		if back, err := g.Convert(lot.MeasurementID, requiredUnit, toDeduct); err == nil {
			remaining -= back
		}
	}

	updated := make([]domain.InventoryItem, 0, len(lots))
	for i, lot := range lots {
		if removed[i] {
			continue
		}
		if qty, ok := reduced[i]; ok {
			lot.Quantity = qty
		}
		updated = append(updated, lot)
	}
	return updated, ledger
}

// LotsFor filters the lots belonging to one user, keeping their order.
func LotsFor(lots []domain.InventoryItem, userID string) []domain.InventoryItem {
	var out []domain.InventoryItem
	for _, lot := range lots {
		if lot.UserID == userID {
			out = append(out, lot)
		}
	}
	return out
}
