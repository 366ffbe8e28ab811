package sqlite

import (
	"context"
	"time"

	"github.com/foodgram/foodgram-server/internal/domain"
)

// Favorites and shopping-list entries share one row shape keyed by
// domain.UserRecipePair; these helpers operate on either table.
const (
	favoritesTable    = "favorites"
	shoppingListTable = "shopping_list"
)

func (s *Store) addPair(ctx context.Context, table string, pair domain.UserRecipePair, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+table+` (user_id, recipe_id, created_at) VALUES (?, ?, ?)`,
		pair.UserID, pair.RecipeID, formatTime(at))
	return mapConstraintErr(err)
}

func (s *Store) removePair(ctx context.Context, table string, pair domain.UserRecipePair) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE user_id = ? AND recipe_id = ?`,
		pair.UserID, pair.RecipeID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// pairedRecipeIDs reports which of recipeIDs userID has marked in table.
func (s *Store) pairedRecipeIDs(ctx context.Context, table, userID string, recipeIDs []string) (map[string]bool, error) {
	marked := make(map[string]bool, len(recipeIDs))
	if userID == "" || len(recipeIDs) == 0 {
		return marked, nil
	}

	args := append([]any{userID}, stringArgs(recipeIDs)...)
	rows, err := s.db.QueryContext(ctx,
		`SELECT recipe_id FROM `+table+` WHERE user_id = ? AND recipe_id IN (`+placeholders(len(recipeIDs))+`)`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		marked[id] = true
	}
	return marked, rows.Err()
}

// AddFavorite marks a recipe as a favorite.
// Returns store.ErrAlreadyExists if the pair is already present.
func (s *Store) AddFavorite(ctx context.Context, fav *domain.Favorite) error {
	return s.addPair(ctx, favoritesTable, fav.UserRecipePair, fav.CreatedAt)
}

// RemoveFavorite unmarks a favorite. Returns store.ErrNotFound if absent.
func (s *Store) RemoveFavorite(ctx context.Context, pair domain.UserRecipePair) error {
	return s.removePair(ctx, favoritesTable, pair)
}

// FavoritedRecipeIDs reports which of recipeIDs are favorites of userID.
func (s *Store) FavoritedRecipeIDs(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error) {
	return s.pairedRecipeIDs(ctx, favoritesTable, userID, recipeIDs)
}

// AddToShoppingList puts a recipe in the user's shopping list.
// Returns store.ErrAlreadyExists if the pair is already present.
func (s *Store) AddToShoppingList(ctx context.Context, entry *domain.ShoppingListEntry) error {
	return s.addPair(ctx, shoppingListTable, entry.UserRecipePair, entry.CreatedAt)
}

// RemoveFromShoppingList takes a recipe out of the list. Returns store.ErrNotFound if absent.
func (s *Store) RemoveFromShoppingList(ctx context.Context, pair domain.UserRecipePair) error {
	return s.removePair(ctx, shoppingListTable, pair)
}

// ShoppingListRecipeIDs reports which of recipeIDs are in userID's shopping list.
func (s *Store) ShoppingListRecipeIDs(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error) {
	return s.pairedRecipeIDs(ctx, shoppingListTable, userID, recipeIDs)
}

// ListIngredientsInCart returns one row per recipe ingredient of every recipe
// in the user's shopping list, ungrouped.
func (s *Store) ListIngredientsInCart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sl.recipe_id, i.name, i.measurement_unit, ri.amount
		FROM shopping_list sl
		JOIN recipe_ingredients ri ON ri.recipe_id = sl.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE sl.user_id = ?`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.CartLine{}
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.RecipeID, &l.Name, &l.MeasurementUnit, &l.Amount); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
