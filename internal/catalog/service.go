// Package catalog provides the management surface around the aggregate:
// recipe, ingredient, measurement, and inventory upkeep, plus local user
// accounts. It validates at the boundary so the engines underneath never see
// invalid input.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nappingtoad/Cucina/internal/domain"
	"github.com/nappingtoad/Cucina/internal/logger"
)

// Service wraps the catalog store with validated commands. Like the session
// engine, every command loads the aggregate, applies one change, and saves.
type Service struct {
	store domain.CatalogStore
	log   *logger.Logger
	now   func() time.Time
}

// New creates a catalog service.
func New(store domain.CatalogStore, log *logger.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// Register creates a local user account. Usernames are unique.
func (s *Service) Register(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.Validationf("username", "must not be empty")
	}

	data, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if data.UserByName(username) != nil {
		return nil, domain.Validationf("username", "%q is taken", username)
	}

	user := domain.User{ID: domain.NewID(), Username: username, CreatedAt: s.now()}
	data.Users = append(data.Users, user)
	data.CurrentUserID = user.ID

	if err := s.store.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}
	s.log.Info("registered user %q", username)
	return &user, nil
}

// Login switches the current user to the named account.
func (s *Service) Login(ctx context.Context, username string) (*domain.User, error) {
	data, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	user := data.UserByName(username)
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}
	data.CurrentUserID = user.ID

	if err := s.store.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("saving login: %w", err)
	}
	s.log.Info("logged in as %q", username)
	return user, nil
}

// CurrentUser returns the logged-in user, or ErrNotFound when the store has
// no current user set.
func (s *Service) CurrentUser(ctx context.Context) (*domain.User, error) {
	data, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	user := data.UserByID(data.CurrentUserID)
	if user == nil {
		return nil, fmt.Errorf("current user: %w", domain.ErrNotFound)
	}
	return user, nil
}
