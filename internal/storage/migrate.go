package storage

import (
	"strings"

	"github.com/nappingtoad/Cucina/internal/domain"
	"github.com/nappingtoad/Cucina/internal/logger"
	"github.com/nappingtoad/Cucina/internal/seed"
)

// migrate brings an aggregate from an older schema version up to date by
// merging in shipped measurements and ingredients the aggregate is missing.
// Entries are matched by id or name so renamed user copies are not
// duplicated and custom entries are never overwritten. Returns true if
// anything changed.
func migrate(data *domain.AppData, log *logger.Logger) bool {
	if data.Sessions == nil {
		data.Sessions = make(map[string]*domain.CookingSession)
	}
	if data.Version >= seed.SchemaVersion {
		return false
	}

	added := 0
	for _, m := range seed.DefaultMeasurements() {
		if !hasMeasurement(data, m) {
			data.Measurements = append(data.Measurements, m)
			added++
		}
	}
	for _, ing := range seed.DefaultIngredients() {
		if !hasIngredient(data, ing) {
			data.Ingredients = append(data.Ingredients, ing)
			added++
		}
	}

	log.Info("migrated catalog v%d -> v%d (%d defaults backfilled)", data.Version, seed.SchemaVersion, added)
	data.Version = seed.SchemaVersion
	return true
}

func hasMeasurement(data *domain.AppData, m domain.Measurement) bool {
	for _, cur := range data.Measurements {
		if cur.ID == m.ID || strings.EqualFold(cur.Name, m.Name) {
			return true
		}
	}
	return false
}

func hasIngredient(data *domain.AppData, ing domain.Ingredient) bool {
	for _, cur := range data.Ingredients {
		if cur.ID == ing.ID || strings.EqualFold(cur.Name, ing.Name) {
			return true
		}
	}
	return false
}
