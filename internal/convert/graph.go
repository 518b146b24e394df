// Package convert implements the measurement graph and the pure unit
// conversion layer on top of it.
package convert

import (
	"github.com/nappingtoad/Cucina/internal/domain"
)

// Graph indexes directed conversion edges for direct lookup. It is built once
// from the measurement catalog and never mutated afterwards.
//
// The graph is deliberately neither symmetric nor transitive: an edge is used
// only if it was authored for exactly the requested (from, to) pair. The
// inverse edge existing elsewhere does not make a pair convertible.
type Graph struct {
	edges map[string]map[string]float64
}

// NewGraph builds a lookup graph from the measurement catalog.
func NewGraph(measurements []domain.Measurement) *Graph {
	g := &Graph{edges: make(map[string]map[string]float64, len(measurements))}
	for _, m := range measurements {
		if len(m.Conversions) == 0 {
			continue
		}
		out := make(map[string]float64, len(m.Conversions))
		for _, c := range m.Conversions {
			out[c.ToMeasurementID] = c.Factor
		}
		g.edges[m.ID] = out
	}
	return g
}

// Convert converts qty from one unit to another. Identical units convert to
// themselves; otherwise a direct edge must exist or ErrNoConversionPath is
// returned. There is no transitive search.
func (g *Graph) Convert(fromID, toID string, qty float64) (float64, error) {
	if fromID == toID {
		return qty, nil
	}
	if factor, ok := g.edges[fromID][toID]; ok {
		return qty * factor, nil
	}
	return 0, domain.ErrNoConversionPath
}

// TotalInUnit sums the given inventory lots of one ingredient, expressed in
// the target unit. Lots with no conversion path to the target unit are left
// out of the total silently; reporting them is not this layer's job.
func (g *Graph) TotalInUnit(ingredientID, targetID string, lots []domain.InventoryItem) float64 {
	var total float64
	for _, lot := range lots {
		if lot.IngredientID != ingredientID {
			continue
		}
		converted, err := g.Convert(lot.MeasurementID, targetID, lot.Quantity)
		if err != nil {
			continue
		}
		total += converted
	}
	return total
}

// Sufficiency reports whether the lots cover the required quantity of an
// ingredient, along with the total available in the required unit. The
// comparison is exact and inclusive: available == required is enough.
func (g *Graph) Sufficiency(ingredientID, requiredUnit string, requiredQty float64, lots []domain.InventoryItem) (hasEnough bool, available float64) {
	available = g.TotalInUnit(ingredientID, requiredUnit, lots)
	return available >= requiredQty, available
}
