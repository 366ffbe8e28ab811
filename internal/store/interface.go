// Package store defines the persistence contract for the Foodgram server.
package store

import (
	"context"

	"github.com/foodgram/foodgram-server/internal/domain"
)

// Store defines every persistence operation the services rely on.
// Lookups return ErrNotFound for missing rows; uniqueness violations
// return ErrAlreadyExists.
type Store interface {
	Close() error
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
	ListUsers(ctx context.Context, page Page) (*PaginatedResult[*domain.User], error)

	// Ingredients
	CreateIngredient(ctx context.Context, ing *domain.Ingredient) error
	GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error)
	ListIngredients(ctx context.Context, filter IngredientFilter) ([]*domain.Ingredient, error)
	MissingIngredients(ctx context.Context, ids []string) ([]string, error)

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	MissingTags(ctx context.Context, ids []string) ([]string, error)

	// Recipes. Create and Update persist the recipe row and replace all
	// ingredient and tag rows in one transaction.
	CreateRecipe(ctx context.Context, recipe *domain.Recipe) error
	UpdateRecipe(ctx context.Context, recipe *domain.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
	GetRecipe(ctx context.Context, id string) (*domain.Recipe, error)
	ListRecipes(ctx context.Context, filter RecipeFilter, page Page) (*PaginatedResult[*domain.Recipe], error)
	ListRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Recipe, error)
	CountRecipesByAuthors(ctx context.Context, authorIDs []string) (map[string]int, error)

	// Favorites
	AddFavorite(ctx context.Context, fav *domain.Favorite) error
	RemoveFavorite(ctx context.Context, pair domain.UserRecipePair) error
	FavoritedRecipeIDs(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error)

	// Shopping list
	AddToShoppingList(ctx context.Context, entry *domain.ShoppingListEntry) error
	RemoveFromShoppingList(ctx context.Context, pair domain.UserRecipePair) error
	ShoppingListRecipeIDs(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error)
	ListIngredientsInCart(ctx context.Context, userID string) ([]domain.CartLine, error)

	// Follows
	CreateFollow(ctx context.Context, follow *domain.Follow) error
	DeleteFollow(ctx context.Context, userID, authorID string) error
	FollowedAuthorIDs(ctx context.Context, userID string, authorIDs []string) (map[string]bool, error)
	ListFollowedAuthors(ctx context.Context, userID string, page Page) (*PaginatedResult[*domain.User], error)
}
