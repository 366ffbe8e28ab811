package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foodgram/foodgram-server/internal/domain"
	domainerrors "github.com/foodgram/foodgram-server/internal/errors"
	"github.com/foodgram/foodgram-server/internal/metrics"
	"github.com/foodgram/foodgram-server/internal/shopping"
	"github.com/foodgram/foodgram-server/internal/store"
)

// markOps adapts one per-user recipe mark (favorites, shopping list) to the
// shared add/remove flow.
type markOps struct {
	noun   string
	add    func(ctx context.Context, pair domain.UserRecipePair, at time.Time) error
	remove func(ctx context.Context, pair domain.UserRecipePair) error
}

func addMark(ctx context.Context, st store.Store, logger *slog.Logger, ops markOps, userID, recipeID string) (*domain.Recipe, error) {
	recipe, err := st.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, notFoundAs(err, "get recipe", "recipe not found")
	}

	pair := domain.UserRecipePair{UserID: userID, RecipeID: recipeID}
	if err := ops.add(ctx, pair, time.Now().UTC()); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.AlreadyExists("recipe is already in " + ops.noun).WithCause(err)
		case errors.Is(err, store.ErrNotFound):
			// Recipe deleted since the lookup above.
			return nil, domainerrors.NotFound("recipe not found").WithCause(err)
		}
		return nil, fmt.Errorf("add to %s: %w", ops.noun, err)
	}

	logger.Info("recipe added to "+ops.noun, "user_id", userID, "recipe_id", recipeID)
	return recipe, nil
}

func removeMark(ctx context.Context, st store.Store, logger *slog.Logger, ops markOps, userID, recipeID string) error {
	if _, err := st.GetRecipe(ctx, recipeID); err != nil {
		return notFoundAs(err, "get recipe", "recipe not found")
	}

	pair := domain.UserRecipePair{UserID: userID, RecipeID: recipeID}
	if err := ops.remove(ctx, pair); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.Validation("recipe is not in " + ops.noun)
		}
		return fmt.Errorf("remove from %s: %w", ops.noun, err)
	}

	logger.Info("recipe removed from "+ops.noun, "user_id", userID, "recipe_id", recipeID)
	return nil
}

// FavoriteService manages users' favorite recipes.
type FavoriteService struct {
	store  store.Store
	ops    markOps
	logger *slog.Logger
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(st store.Store, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		store:  st,
		logger: orDefaultLogger(logger),
		ops: markOps{
			noun: "favorites",
			add: func(ctx context.Context, pair domain.UserRecipePair, at time.Time) error {
				return st.AddFavorite(ctx, &domain.Favorite{UserRecipePair: pair, CreatedAt: at})
			},
			remove: st.RemoveFavorite,
		},
	}
}

// AddFavorite marks a recipe as a favorite of userID.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	return addMark(ctx, s.store, s.logger, s.ops, userID, recipeID)
}

// RemoveFavorite unmarks a favorite.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	return removeMark(ctx, s.store, s.logger, s.ops, userID, recipeID)
}

// CartService manages shopping lists and their export.
type CartService struct {
	store      store.Store
	aggregator *shopping.Aggregator
	ops        markOps
	logger     *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(st store.Store, logger *slog.Logger) *CartService {
	return &CartService{
		store:      st,
		aggregator: shopping.NewAggregator(st),
		logger:     orDefaultLogger(logger),
		ops: markOps{
			noun: "shopping list",
			add: func(ctx context.Context, pair domain.UserRecipePair, at time.Time) error {
				return st.AddToShoppingList(ctx, &domain.ShoppingListEntry{UserRecipePair: pair, CreatedAt: at})
			},
			remove: st.RemoveFromShoppingList,
		},
	}
}

// AddToCart puts a recipe in userID's shopping list.
func (s *CartService) AddToCart(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	return addMark(ctx, s.store, s.logger, s.ops, userID, recipeID)
}

// RemoveFromCart takes a recipe out of the shopping list.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, recipeID string) error {
	return removeMark(ctx, s.store, s.logger, s.ops, userID, recipeID)
}

// Items returns the aggregated shopping list of userID.
func (s *CartService) Items(ctx context.Context, userID string) ([]shopping.Item, error) {
	return s.aggregator.Aggregate(ctx, userID)
}

// Download renders the aggregated shopping list as a text document.
func (s *CartService) Download(ctx context.Context, userID string) ([]byte, error) {
	items, err := s.aggregator.Aggregate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregate shopping list: %w", err)
	}

	metrics.RecordShoppingListExport(len(items))
	s.logger.Info("shopping list exported", "user_id", userID, "items", len(items))

	return shopping.Render(items), nil
}
