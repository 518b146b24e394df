// Package engine implements the cooking session state machine: starting or
// resuming a session, tracking its checklist and serving size, and driving
// completion into the inventory deduction engine.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/nappingtoad/Cucina/internal/convert"
	"github.com/nappingtoad/Cucina/internal/domain"
	"github.com/nappingtoad/Cucina/internal/inventory"
	"github.com/nappingtoad/Cucina/internal/logger"
)

// Option configures the engine.
type Option func(*Engine)

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine manages cooking sessions over the catalog store. All state lives in
// the aggregate; the engine loads it, applies one transition, and saves it,
// so every transition is observed whole or not at all.
type Engine struct {
	store domain.CatalogStore
	log   *logger.Logger
	now   func() time.Time
}

// New creates a session engine with the given dependencies and options.
func New(store domain.CatalogStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartCooking begins a cooking session for (recipe, user), or resumes the
// active one if it exists. Resuming never creates a second session and keeps
// all progress from the first call.
func (e *Engine) StartCooking(ctx context.Context, recipeID, userID string) (*domain.CookingSession, error) {
	data, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	recipe := data.RecipeByID(recipeID)
	if recipe == nil {
		return nil, fmt.Errorf("recipe %s: %w", recipeID, domain.ErrNotFound)
	}

	if existing := data.ActiveSession(recipeID, userID); existing != nil {
		e.log.Debug("resuming session %s for recipe %q", existing.ID, recipe.Name)
		return existing, nil
	}

	now := e.now()
	session := &domain.CookingSession{
		ID:          domain.NewID(),
		RecipeID:    recipeID,
		UserID:      userID,
		ServingSize: recipe.Servings,
		Status:      domain.SessionActive,
		StartedAt:   now,
		UpdatedAt:   now,
	}
	if data.Sessions == nil {
		data.Sessions = make(map[string]*domain.CookingSession)
	}
	data.Sessions[domain.SessionKey(recipeID, userID)] = session

	if err := e.store.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	e.log.Info("started session %s for recipe %q (%g servings)", session.ID, recipe.Name, session.ServingSize)
	return session, nil
}

// UpdateSession overwrites the active session record for its (recipe, user)
// pair. Every checklist or serving-size change goes through here;
// last-write-wins, no batching.
func (e *Engine) UpdateSession(ctx context.Context, session *domain.CookingSession) error {
	data, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	current, err := e.activeSession(data, session.RecipeID, session.UserID)
	if err != nil {
		return err
	}

	updated := *session
	updated.ID = current.ID
	updated.Status = domain.SessionActive
	updated.UpdatedAt = e.now()
	data.Sessions[domain.SessionKey(session.RecipeID, session.UserID)] = &updated

	if err := e.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// SetServingSize rescales the active session. The size must be positive; the
// scaling factor itself may be fractional or above one without bound.
func (e *Engine) SetServingSize(ctx context.Context, recipeID, userID string, size float64) error {
	if size <= 0 {
		return domain.Validationf("serving size", "must be positive, got %g", size)
	}
	return e.mutateActive(ctx, recipeID, userID, func(s *domain.CookingSession) {
		s.ServingSize = size
	})
}

// ToggleIngredient ticks or unticks the ingredient checkbox at idx.
func (e *Engine) ToggleIngredient(ctx context.Context, recipeID, userID string, idx int) error {
	return e.mutateActive(ctx, recipeID, userID, func(s *domain.CookingSession) {
		s.IngredientsChecked = toggleIndex(s.IngredientsChecked, idx)
	})
}

// ToggleStep ticks or unticks the instruction checkbox at idx.
func (e *Engine) ToggleStep(ctx context.Context, recipeID, userID string, idx int) error {
	return e.mutateActive(ctx, recipeID, userID, func(s *domain.CookingSession) {
		s.StepsChecked = toggleIndex(s.StepsChecked, idx)
	})
}

// IngredientStatus is one row of a sufficiency report: how much of an
// ingredient the scaled session needs versus what the pantry holds.
type IngredientStatus struct {
	IngredientID    string
	IngredientName  string
	MeasurementID   string
	MeasurementName string
	Required        float64
	Available       float64
	HasEnough       bool
}

// CheckIngredients reports, per recipe ingredient, the quantity required at
// the session's current scaling and whether the user's inventory covers it.
func (e *Engine) CheckIngredients(ctx context.Context, recipeID, userID string) ([]IngredientStatus, error) {
	data, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	recipe := data.RecipeByID(recipeID)
	if recipe == nil {
		return nil, fmt.Errorf("recipe %s: %w", recipeID, domain.ErrNotFound)
	}
	session, err := e.activeSession(data, recipeID, userID)
	if err != nil {
		return nil, err
	}

	graph := convert.NewGraph(data.Measurements)
	lots := inventory.LotsFor(data.Inventory, userID)
	factor := session.ServingSize / recipe.Servings

	report := make([]IngredientStatus, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		required := ing.Quantity * factor
		hasEnough, available := graph.Sufficiency(ing.IngredientID, ing.MeasurementID, required, lots)
		status := IngredientStatus{
			IngredientID:  ing.IngredientID,
			MeasurementID: ing.MeasurementID,
			Required:      required,
			Available:     available,
			HasEnough:     hasEnough,
		}
		if i := data.IngredientByID(ing.IngredientID); i != nil {
			status.IngredientName = i.Name
		}
		if m := data.MeasurementByID(ing.MeasurementID); m != nil {
			status.MeasurementName = m.Name
		}
		report = append(report, status)
	}
	return report, nil
}

// LedgerEntry records the deductions applied for one recipe ingredient
// during completion.
type LedgerEntry struct {
	IngredientID string
	Applied      []inventory.Deduction
}

// CompleteSession finishes the active session: it scales every recipe
// ingredient by servingSize/servings, deducts each from the inventory in
// sequence (each deduction sees the previous one's output), marks the session
// completed, and bumps the recipe's cook count. All of it lands in a single
// store save, so callers never observe a partially applied completion.
//
// The caller is responsible for having confirmed the checklist and verified
// sufficiency beforehand; completion itself neither re-checks nor fails on
// insufficient stock.
func (e *Engine) CompleteSession(ctx context.Context, recipeID, userID string) ([]LedgerEntry, error) {
	data, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	recipe := data.RecipeByID(recipeID)
	if recipe == nil {
		return nil, fmt.Errorf("recipe %s: %w", recipeID, domain.ErrNotFound)
	}
	session, err := e.activeSession(data, recipeID, userID)
	if err != nil {
		return nil, err
	}

	graph := convert.NewGraph(data.Measurements)
	factor := session.ServingSize / recipe.Servings

	var ledger []LedgerEntry
	lots := data.Inventory
	for _, ing := range recipe.Ingredients {
		required := ing.Quantity * factor
		var applied []inventory.Deduction
		lots, applied = inventory.Deduct(graph, lots, userID, ing.IngredientID, ing.MeasurementID, required)
		ledger = append(ledger, LedgerEntry{IngredientID: ing.IngredientID, Applied: applied})
	}

	data.Inventory = lots
	session.Status = domain.SessionCompleted
	session.UpdatedAt = e.now()
	e.archive(data, session)
	recipe.CookCount++

	if err := e.store.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("saving completion: %w", err)
	}

	e.log.Info("completed session %s for recipe %q (factor %.3g)", session.ID, recipe.Name, factor)
	return ledger, nil
}

// CancelSession finishes the active session without side effects: no
// inventory mutation, no cook count change.
func (e *Engine) CancelSession(ctx context.Context, recipeID, userID string) error {
	data, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	session, err := e.activeSession(data, recipeID, userID)
	if err != nil {
		return err
	}

	session.Status = domain.SessionCancelled
	session.UpdatedAt = e.now()
	e.archive(data, session)

	if err := e.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving cancellation: %w", err)
	}

	e.log.Info("cancelled session %s", session.ID)
	return nil
}

// Session returns the active session for (recipe, user).
func (e *Engine) Session(ctx context.Context, recipeID, userID string) (*domain.CookingSession, error) {
	data, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return e.activeSession(data, recipeID, userID)
}

// activeSession resolves the active session for a pair. A pair whose only
// sessions are archived gets ErrSessionFinished; a pair that never had one
// gets ErrNotFound.
func (e *Engine) activeSession(data *domain.AppData, recipeID, userID string) (*domain.CookingSession, error) {
	if s := data.ActiveSession(recipeID, userID); s != nil {
		return s, nil
	}
	for _, s := range data.SessionLog {
		if s.RecipeID == recipeID && s.UserID == userID {
			return nil, domain.ErrSessionFinished
		}
	}
	return nil, domain.ErrNotFound
}

// archive moves a terminal session out of the active map into the log.
func (e *Engine) archive(data *domain.AppData, session *domain.CookingSession) {
	delete(data.Sessions, domain.SessionKey(session.RecipeID, session.UserID))
	data.SessionLog = append(data.SessionLog, session)
}

func (e *Engine) mutateActive(ctx context.Context, recipeID, userID string, mutate func(*domain.CookingSession)) error {
	data, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	session, err := e.activeSession(data, recipeID, userID)
	if err != nil {
		return err
	}

	mutate(session)
	session.UpdatedAt = e.now()

	if err := e.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func toggleIndex(indexes []int, idx int) []int {
	for i, v := range indexes {
		if v == idx {
			return append(indexes[:i], indexes[i+1:]...)
		}
	}
	return append(indexes, idx)
}
