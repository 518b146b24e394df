package storage

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/nappingtoad/Cucina/internal/domain"
)

// Wire records for the msgpack blob. Kept separate from the domain types so
// the stored format does not drift when domain structs gain fields.

type catalogBlob struct {
	Version       int                   `msgpack:"version"`
	CurrentUserID string                `msgpack:"current_user_id,omitempty"`
	Users         []userRec             `msgpack:"users,omitempty"`
	Recipes       []recipeRec           `msgpack:"recipes,omitempty"`
	Ingredients   []ingredientRec       `msgpack:"ingredients,omitempty"`
	Measurements  []measurementRec      `msgpack:"measurements,omitempty"`
	Inventory     []lotRec              `msgpack:"inventory,omitempty"`
	Sessions      map[string]sessionRec `msgpack:"sessions,omitempty"`
	SessionLog    []sessionRec          `msgpack:"session_log,omitempty"`
}

type userRec struct {
	ID        string    `msgpack:"id"`
	Username  string    `msgpack:"username"`
	CreatedAt time.Time `msgpack:"created_at"`
}

type measurementRec struct {
	ID          string          `msgpack:"id"`
	Name        string          `msgpack:"name"`
	Conversions []conversionRec `msgpack:"conversions,omitempty"`
}

type conversionRec struct {
	To     string  `msgpack:"to"`
	Factor float64 `msgpack:"factor"`
}

type ingredientRec struct {
	ID       string `msgpack:"id"`
	Name     string `msgpack:"name"`
	IsCustom bool   `msgpack:"is_custom,omitempty"`
}

type recipeRec struct {
	ID           string              `msgpack:"id"`
	UserID       string              `msgpack:"user_id"`
	Name         string              `msgpack:"name"`
	Description  string              `msgpack:"description,omitempty"`
	Servings     float64             `msgpack:"servings"`
	Ingredients  []recipeIngredient  `msgpack:"ingredients,omitempty"`
	Instructions []string            `msgpack:"instructions,omitempty"`
	ViewCount    int                 `msgpack:"view_count,omitempty"`
	CookCount    int                 `msgpack:"cook_count,omitempty"`
	CreatedAt    time.Time           `msgpack:"created_at"`
}

type recipeIngredient struct {
	IngredientID  string  `msgpack:"ingredient_id"`
	Quantity      float64 `msgpack:"quantity"`
	MeasurementID string  `msgpack:"measurement_id"`
}

type lotRec struct {
	UserID        string  `msgpack:"user_id"`
	IngredientID  string  `msgpack:"ingredient_id"`
	MeasurementID string  `msgpack:"measurement_id"`
	Quantity      float64 `msgpack:"quantity"`
}

type sessionRec struct {
	ID                 string    `msgpack:"id"`
	RecipeID           string    `msgpack:"recipe_id"`
	UserID             string    `msgpack:"user_id"`
	IngredientsChecked []int     `msgpack:"ingredients_checked,omitempty"`
	StepsChecked       []int     `msgpack:"steps_checked,omitempty"`
	ServingSize        float64   `msgpack:"serving_size"`
	Status             int       `msgpack:"status"`
	StartedAt          time.Time `msgpack:"started_at"`
	UpdatedAt          time.Time `msgpack:"updated_at"`
}

func encodeCatalog(data *domain.AppData) ([]byte, error) {
	blob := catalogBlob{
		Version:       data.Version,
		CurrentUserID: data.CurrentUserID,
		Sessions:      make(map[string]sessionRec, len(data.Sessions)),
	}
	for _, u := range data.Users {
		blob.Users = append(blob.Users, userRec(u))
	}
	for _, r := range data.Recipes {
		blob.Recipes = append(blob.Recipes, recipeToRec(r))
	}
	for _, i := range data.Ingredients {
		blob.Ingredients = append(blob.Ingredients, ingredientRec(i))
	}
	for _, m := range data.Measurements {
		rec := measurementRec{ID: m.ID, Name: m.Name}
		for _, c := range m.Conversions {
			rec.Conversions = append(rec.Conversions, conversionRec{To: c.ToMeasurementID, Factor: c.Factor})
		}
		blob.Measurements = append(blob.Measurements, rec)
	}
	for _, lot := range data.Inventory {
		blob.Inventory = append(blob.Inventory, lotRec(lot))
	}
	for key, s := range data.Sessions {
		blob.Sessions[key] = sessionToRec(s)
	}
	for _, s := range data.SessionLog {
		blob.SessionLog = append(blob.SessionLog, sessionToRec(s))
	}
	return msgpack.Marshal(blob)
}

func decodeCatalog(raw []byte) (*domain.AppData, error) {
	var blob catalogBlob
	if err := msgpack.Unmarshal(raw, &blob); err != nil {
		return nil, err
	}

	data := &domain.AppData{
		Version:       blob.Version,
		CurrentUserID: blob.CurrentUserID,
		Sessions:      make(map[string]*domain.CookingSession, len(blob.Sessions)),
	}
	for _, u := range blob.Users {
		data.Users = append(data.Users, domain.User(u))
	}
	for _, r := range blob.Recipes {
		data.Recipes = append(data.Recipes, recipeFromRec(r))
	}
	for _, i := range blob.Ingredients {
		data.Ingredients = append(data.Ingredients, domain.Ingredient(i))
	}
	for _, m := range blob.Measurements {
		measurement := domain.Measurement{ID: m.ID, Name: m.Name}
		for _, c := range m.Conversions {
			measurement.Conversions = append(measurement.Conversions, domain.Conversion{ToMeasurementID: c.To, Factor: c.Factor})
		}
		data.Measurements = append(data.Measurements, measurement)
	}
	for _, lot := range blob.Inventory {
		data.Inventory = append(data.Inventory, domain.InventoryItem(lot))
	}
	for key, s := range blob.Sessions {
		data.Sessions[key] = sessionFromRec(s)
	}
	for _, s := range blob.SessionLog {
		data.SessionLog = append(data.SessionLog, sessionFromRec(s))
	}
	return data, nil
}

func recipeToRec(r *domain.Recipe) recipeRec {
	rec := recipeRec{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		Description:  r.Description,
		Servings:     r.Servings,
		Instructions: r.Instructions,
		ViewCount:    r.ViewCount,
		CookCount:    r.CookCount,
		CreatedAt:    r.CreatedAt,
	}
	for _, ing := range r.Ingredients {
		rec.Ingredients = append(rec.Ingredients, recipeIngredient(ing))
	}
	return rec
}

func recipeFromRec(rec recipeRec) *domain.Recipe {
	r := &domain.Recipe{
		ID:           rec.ID,
		UserID:       rec.UserID,
		Name:         rec.Name,
		Description:  rec.Description,
		Servings:     rec.Servings,
		Instructions: rec.Instructions,
		ViewCount:    rec.ViewCount,
		CookCount:    rec.CookCount,
		CreatedAt:    rec.CreatedAt,
	}
	for _, ing := range rec.Ingredients {
		r.Ingredients = append(r.Ingredients, domain.RecipeIngredient(ing))
	}
	return r
}

func sessionToRec(s *domain.CookingSession) sessionRec {
	return sessionRec{
		ID:                 s.ID,
		RecipeID:           s.RecipeID,
		UserID:             s.UserID,
		IngredientsChecked: s.IngredientsChecked,
		StepsChecked:       s.StepsChecked,
		ServingSize:        s.ServingSize,
		Status:             int(s.Status),
		StartedAt:          s.StartedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func sessionFromRec(rec sessionRec) *domain.CookingSession {
	return &domain.CookingSession{
		ID:                 rec.ID,
		RecipeID:           rec.RecipeID,
		UserID:             rec.UserID,
		IngredientsChecked: rec.IngredientsChecked,
		StepsChecked:       rec.StepsChecked,
		ServingSize:        rec.ServingSize,
		Status:             domain.SessionStatus(rec.Status),
		StartedAt:          rec.StartedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
}
