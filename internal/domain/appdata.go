package domain

// AppData is the single aggregate the organizer operates on. The store loads
// it whole, command handlers mutate their slice of it, and the store saves it
// whole. One writer at a time; readers observe consistent snapshots.
//
// Sessions maps SessionKey(recipeID, userID) to the one active session for
// that pair. Terminal sessions move to SessionLog, so the map itself enforces
// the single-active-session invariant structurally.
type AppData struct {
	Version       int
	CurrentUserID string
	Users         []User
	Recipes       []*Recipe
	Ingredients   []Ingredient
	Measurements  []Measurement
	Inventory     []InventoryItem
	Sessions      map[string]*CookingSession
	SessionLog    []*CookingSession
}

// RecipeByID returns the recipe with the given id, or nil.
func (d *AppData) RecipeByID(id string) *Recipe {
	for _, r := range d.Recipes {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// IngredientByID returns the ingredient with the given id, or nil.
func (d *AppData) IngredientByID(id string) *Ingredient {
	for i := range d.Ingredients {
		if d.Ingredients[i].ID == id {
			return &d.Ingredients[i]
		}
	}
	return nil
}

// MeasurementByID returns the measurement with the given id, or nil.
func (d *AppData) MeasurementByID(id string) *Measurement {
	for i := range d.Measurements {
		if d.Measurements[i].ID == id {
			return &d.Measurements[i]
		}
	}
	return nil
}

// UserByID returns the user with the given id, or nil.
func (d *AppData) UserByID(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// UserByName returns the user with the given username, or nil.
func (d *AppData) UserByName(username string) *User {
	for i := range d.Users {
		if d.Users[i].Username == username {
			return &d.Users[i]
		}
	}
	return nil
}

// ActiveSession returns the active session for (recipeID, userID), or nil.
func (d *AppData) ActiveSession(recipeID, userID string) *CookingSession {
	if d.Sessions == nil {
		return nil
	}
	return d.Sessions[SessionKey(recipeID, userID)]
}
