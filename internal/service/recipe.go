package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/foodgram/foodgram-server/internal/domain"
	domainerrors "github.com/foodgram/foodgram-server/internal/errors"
	"github.com/foodgram/foodgram-server/internal/id"
	"github.com/foodgram/foodgram-server/internal/normalize"
	"github.com/foodgram/foodgram-server/internal/store"
	"github.com/foodgram/foodgram-server/internal/validation"
)

// IngredientAmount is one requested recipe line.
type IngredientAmount struct {
	ID     string `json:"id" validate:"required"`
	Amount int    `json:"amount" validate:"gte=1,lte=32000"`
}

// RecipeInput is the write model shared by create and update. Update
// replaces every field, including the full ingredient and tag lists.
type RecipeInput struct {
	Ingredients []IngredientAmount `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
	Tags        []string           `json:"tags" validate:"required,min=1,unique,dive,required"`
	Name        string             `json:"name" validate:"required,max=200"`
	Text        string             `json:"text" validate:"required"`
	CookingTime int                `json:"cooking_time" validate:"gte=1,lte=32000"`
}

// ListRecipesQuery filters ListRecipes. The two flags only apply to an
// authenticated viewer.
type ListRecipesQuery struct {
	AuthorID         string
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
	Page             store.Page
}

// RecipeService implements the recipe write path and read model.
type RecipeService struct {
	store     store.Store
	validator *validation.Validator
	pageSize  int
	logger    *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(store store.Store, validator *validation.Validator, pageSize int, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		store:     store,
		validator: validator,
		pageSize:  orDefaultPageSize(pageSize),
		logger:    orDefaultLogger(logger),
	}
}

// CreateRecipe validates in and stores it as a new recipe by authorID.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID string, in RecipeInput) (*domain.RecipeView, error) {
	in.Name = normalize.Name(in.Name)
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	recipeID, err := id.Generate(id.PrefixRecipe)
	if err != nil {
		return nil, fmt.Errorf("generate recipe ID: %w", err)
	}

	recipe := &domain.Recipe{
		ID:       recipeID,
		AuthorID: authorID,
		PubDate:  time.Now().UTC(),
	}
	apply(recipe, in)

	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return nil, writeErr(err, "create recipe")
	}

	s.logger.Info("recipe created", "recipe_id", recipe.ID, "user_id", authorID)
	return s.GetRecipe(ctx, authorID, recipe.ID)
}

// UpdateRecipe replaces a recipe owned by userID.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, recipeID string, in RecipeInput) (*domain.RecipeView, error) {
	recipe, err := s.owned(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	in.Name = normalize.Name(in.Name)
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	apply(recipe, in)
	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		return nil, writeErr(err, "update recipe")
	}

	s.logger.Info("recipe updated", "recipe_id", recipe.ID, "user_id", userID)
	return s.GetRecipe(ctx, userID, recipe.ID)
}

// DeleteRecipe deletes a recipe owned by userID.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	if _, err := s.owned(ctx, userID, recipeID); err != nil {
		return err
	}

	if err := s.store.DeleteRecipe(ctx, recipeID); err != nil {
		return notFoundAs(err, "delete recipe", "recipe not found")
	}

	s.logger.Info("recipe deleted", "recipe_id", recipeID, "user_id", userID)
	return nil
}

// GetRecipe returns a recipe as seen by viewerID. viewerID may be empty.
func (s *RecipeService) GetRecipe(ctx context.Context, viewerID, recipeID string) (*domain.RecipeView, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, notFoundAs(err, "get recipe", "recipe not found")
	}

	views, err := s.views(ctx, viewerID, []*domain.Recipe{recipe})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// ListRecipes returns one page of recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, viewerID string, q ListRecipesQuery) (*store.PaginatedResult[*domain.RecipeView], error) {
	filter := store.RecipeFilter{
		AuthorID: q.AuthorID,
		TagSlugs: q.TagSlugs,
	}
	if viewerID != "" {
		if q.IsFavorited {
			filter.FavoritedBy = viewerID
		}
		if q.IsInShoppingCart {
			filter.InCartOf = viewerID
		}
	}

	result, err := s.store.ListRecipes(ctx, filter, q.Page.Normalize(s.pageSize))
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	views, err := s.views(ctx, viewerID, result.Items)
	if err != nil {
		return nil, err
	}

	return &store.PaginatedResult[*domain.RecipeView]{
		Items: views,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	}, nil
}

func (s *RecipeService) owned(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, notFoundAs(err, "get recipe", "recipe not found")
	}
	if !recipe.IsAuthor(userID) {
		return nil, domainerrors.Forbidden("only the author can change this recipe")
	}
	return recipe, nil
}

// validate runs the struct rules, then checks that every referenced
// ingredient and tag exists.
func (s *RecipeService) validate(ctx context.Context, in RecipeInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}

	ingredientIDs := make([]string, len(in.Ingredients))
	for i, line := range in.Ingredients {
		ingredientIDs[i] = line.ID
	}

	details := map[string]string{}

	missing, err := s.store.MissingIngredients(ctx, ingredientIDs)
	if err != nil {
		return fmt.Errorf("check ingredients: %w", err)
	}
	if len(missing) > 0 {
		details["ingredients"] = "unknown ingredient: " + strings.Join(missing, ", ")
	}

	missing, err = s.store.MissingTags(ctx, in.Tags)
	if err != nil {
		return fmt.Errorf("check tags: %w", err)
	}
	if len(missing) > 0 {
		details["tags"] = "unknown tag: " + strings.Join(missing, ", ")
	}

	if len(details) > 0 {
		return domainerrors.ValidationWithDetails("validation failed", details)
	}
	return nil
}

func apply(recipe *domain.Recipe, in RecipeInput) {
	recipe.Name = in.Name
	recipe.Text = in.Text
	recipe.CookingTime = in.CookingTime

	recipe.Ingredients = make([]domain.RecipeIngredient, len(in.Ingredients))
	for i, line := range in.Ingredients {
		recipe.Ingredients[i] = domain.RecipeIngredient{IngredientID: line.ID, Amount: line.Amount}
	}

	recipe.Tags = make([]domain.Tag, len(in.Tags))
	for i, tagID := range in.Tags {
		recipe.Tags[i] = domain.Tag{ID: tagID}
	}
}

func writeErr(err error, op string) error {
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.AlreadyExists("you already have a recipe with this name").WithCause(err)
	case errors.Is(err, store.ErrNotFound):
		// An ingredient or tag vanished between validation and insert.
		return domainerrors.Validation("recipe references an unknown ingredient or tag").WithCause(err)
	case errors.Is(err, store.ErrInvalidInput):
		return domainerrors.Validation("recipe violates a value constraint").WithCause(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// views attaches authors and viewer-relative flags. Flags stay false for an
// anonymous viewer.
func (s *RecipeService) views(ctx context.Context, viewerID string, recipes []*domain.Recipe) ([]*domain.RecipeView, error) {
	views := make([]*domain.RecipeView, len(recipes))
	if len(recipes) == 0 {
		return views, nil
	}

	recipeIDs := make([]string, len(recipes))
	authorIDs := make([]string, 0, len(recipes))
	seen := make(map[string]bool, len(recipes))
	for i, r := range recipes {
		recipeIDs[i] = r.ID
		if !seen[r.AuthorID] {
			seen[r.AuthorID] = true
			authorIDs = append(authorIDs, r.AuthorID)
		}
	}

	authors, err := s.store.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}

	var favorited, inCart, followed map[string]bool
	if viewerID != "" {
		if favorited, err = s.store.FavoritedRecipeIDs(ctx, viewerID, recipeIDs); err != nil {
			return nil, fmt.Errorf("load favorites: %w", err)
		}
		if inCart, err = s.store.ShoppingListRecipeIDs(ctx, viewerID, recipeIDs); err != nil {
			return nil, fmt.Errorf("load shopping list: %w", err)
		}
		if followed, err = s.store.FollowedAuthorIDs(ctx, viewerID, authorIDs); err != nil {
			return nil, fmt.Errorf("load follows: %w", err)
		}
	}

	for i, r := range recipes {
		views[i] = &domain.RecipeView{
			Recipe:           *r,
			Author:           authors[r.AuthorID],
			AuthorFollowed:   followed[r.AuthorID],
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
		}
	}
	return views, nil
}
