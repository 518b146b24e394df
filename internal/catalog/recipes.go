package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nappingtoad/Cucina/internal/domain"
)

// CreateRecipe validates and stores a new recipe owned by the given user.
func (s *Service) CreateRecipe(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	data, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	created := *recipe
	created.ID = domain.NewID()
	created.ViewCount = 0
	created.CookCount = 0
	created.CreatedAt = s.now()
	data.Recipes = append(data.Recipes, &created)

	if err := s.store.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("saving recipe: %w", err)
	}
	s.log.Info("created recipe %q (%s)", created.Name, created.ID)
	return &created, nil
}

// UpdateRecipe replaces a stored recipe. Counters and creation time survive
// the update; only the authored fields change.
func (s *Service) UpdateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	if err := validateRecipe(recipe); err != nil {
		return err
	}

	data, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	current := data.RecipeByID(recipe.ID)
	if current == nil {
		return fmt.Errorf("recipe %s: %w", recipe.ID, domain.ErrNotFound)
	}

	current.Name = recipe.Name
	current.Description = recipe.Description
	current.Servings = recipe.Servings
	current.Ingredients = recipe.Ingredients
	current.Instructions = recipe.Instructions

	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving recipe: %w", err)
	}
	s.log.Info("updated recipe %q", current.Name)
	return nil
}

// DeleteRecipe removes a recipe and cascades to its cooking sessions, both
// active and archived. Inventory is never touched by a recipe deletion.
func (s *Service) DeleteRecipe(ctx context.Context, id string) error {
	data, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	idx := -1
	for i, r := range data.Recipes {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}
	data.Recipes = append(data.Recipes[:idx], data.Recipes[idx+1:]...)

	for key, sess := range data.Sessions {
		if sess.RecipeID == id {
			delete(data.Sessions, key)
		}
	}
	kept := data.SessionLog[:0]
	for _, sess := range data.SessionLog {
		if sess.RecipeID != id {
			kept = append(kept, sess)
		}
	}
	data.SessionLog = kept

	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving deletion: %w", err)
	}
	s.log.Info("deleted recipe %s and its sessions", id)
	return nil
}

// GetRecipe returns a recipe and counts the view.
func (s *Service) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	data, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	recipe := data.RecipeByID(id)
	if recipe == nil {
		return nil, fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}
	recipe.ViewCount++

	if err := s.store.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("saving view count: %w", err)
	}
	return recipe, nil
}

// ListRecipes returns a user's recipes sorted by name.
func (s *Service) ListRecipes(ctx context.Context, userID string) ([]*domain.Recipe, error) {
	data, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	var out []*domain.Recipe
	for _, r := range data.Recipes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SearchRecipes returns the user's recipes whose name or description matches
// the query.
func (s *Service) SearchRecipes(ctx context.Context, userID, query string) ([]*domain.Recipe, error) {
	recipes, err := s.ListRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Filter(query, recipes, func(r *domain.Recipe) string {
		return r.Name + " " + r.Description
	}), nil
}

func validateRecipe(recipe *domain.Recipe) error {
	if strings.TrimSpace(recipe.Name) == "" {
		return domain.Validationf("recipe name", "must not be empty")
	}
	if recipe.Servings <= 0 {
		return domain.Validationf("servings", "must be positive, got %g", recipe.Servings)
	}
	for _, ing := range recipe.Ingredients {
		if ing.Quantity <= 0 {
			return domain.Validationf("ingredient quantity", "must be positive, got %g", ing.Quantity)
		}
	}
	return nil
}
