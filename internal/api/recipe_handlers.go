package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foodgram/foodgram-server/internal/domain"
	"github.com/foodgram/foodgram-server/internal/service"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/recipes",
		Summary:     "List recipes",
		Description: "Returns one page of recipes, newest first. is_favorited and is_in_shopping_cart apply only to authenticated callers.",
		Tags:        []string{"Recipes"},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createRecipe",
		Method:        http.MethodPost,
		Path:          "/api/recipes",
		Summary:       "Create recipe",
		Description:   "Publishes a recipe authored by the caller",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/recipes/{id}",
		Summary:     "Get recipe",
		Description: "Returns a recipe with its author, tags and ingredients",
		Tags:        []string{"Recipes"},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecipe",
		Method:      http.MethodPatch,
		Path:        "/api/recipes/{id}",
		Summary:     "Update recipe",
		Description: "Replaces a recipe, including its full ingredient and tag lists. Author only.",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteRecipe",
		Method:        http.MethodDelete,
		Path:          "/api/recipes/{id}",
		Summary:       "Delete recipe",
		Description:   "Deletes a recipe. Author only.",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteRecipe)
}

// === DTOs ===

// RecipeIngredientRequest is one requested recipe line.
type RecipeIngredientRequest struct {
	ID     string `json:"id" doc:"Ingredient ID"`
	Amount int    `json:"amount" doc:"Amount in the ingredient's unit (1-32000)"`
}

// RecipeRequest is the write model for create and update.
type RecipeRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients" doc:"Ingredient lines; IDs must be unique"`
	Tags        []string                  `json:"tags" doc:"Tag IDs; must be unique"`
	Name        string                    `json:"name" doc:"Recipe name, unique per author"`
	Text        string                    `json:"text" doc:"Description"`
	CookingTime int                       `json:"cooking_time" doc:"Cooking time in minutes (1-32000)"`
}

// CreateRecipeInput wraps the create recipe request for Huma.
type CreateRecipeInput struct {
	Authorization string `header:"Authorization"`
	Body          RecipeRequest
}

// UpdateRecipeInput wraps the update recipe request for Huma.
type UpdateRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
	Body          RecipeRequest
}

// RecipeInput identifies a recipe.
type RecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
}

// ListRecipesInput contains recipe list filters.
type ListRecipesInput struct {
	Authorization string `header:"Authorization"`
	PageParams
	Author           string   `query:"author" doc:"Author user ID"`
	Tags             []string `query:"tags,explode" doc:"Tag slugs; a recipe matches if it has any of them"`
	IsFavorited      bool     `query:"is_favorited" doc:"Only the caller's favorites"`
	IsInShoppingCart bool     `query:"is_in_shopping_cart" doc:"Only recipes in the caller's shopping list"`
}

// RecipeIngredientResponse is one ingredient line of a recipe.
type RecipeIngredientResponse struct {
	ID              string `json:"id" doc:"Ingredient ID"`
	Name            string `json:"name" doc:"Ingredient name"`
	MeasurementUnit string `json:"measurement_unit" doc:"Unit"`
	Amount          int    `json:"amount" doc:"Amount"`
}

// RecipeResponse is the read model of a recipe.
type RecipeResponse struct {
	ID               string                     `json:"id" doc:"Recipe ID"`
	Author           UserResponse               `json:"author" doc:"Author"`
	Name             string                     `json:"name" doc:"Recipe name"`
	Text             string                     `json:"text" doc:"Description"`
	CookingTime      int                        `json:"cooking_time" doc:"Cooking time in minutes"`
	PubDate          time.Time                  `json:"pub_date" doc:"Publication time"`
	Tags             []TagResponse              `json:"tags" doc:"Tags"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients" doc:"Ingredient lines"`
	IsFavorited      bool                       `json:"is_favorited" doc:"In the caller's favorites"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart" doc:"In the caller's shopping list"`
}

// RecipeOutput wraps a recipe for Huma.
type RecipeOutput struct {
	Body RecipeResponse
}

// RecipeShortResponse is the compact recipe form.
type RecipeShortResponse struct {
	ID          string `json:"id" doc:"Recipe ID"`
	Name        string `json:"name" doc:"Recipe name"`
	CookingTime int    `json:"cooking_time" doc:"Cooking time in minutes"`
}

// RecipeShortOutput wraps a compact recipe for Huma.
type RecipeShortOutput struct {
	Body RecipeShortResponse
}

// RecipeListResponse is one page of recipes.
type RecipeListResponse struct {
	Count   int              `json:"count" doc:"Total matching recipes"`
	Page    int              `json:"page" doc:"Page number"`
	Limit   int              `json:"limit" doc:"Page size"`
	Results []RecipeResponse `json:"results" doc:"Recipes on this page"`
}

// RecipeListOutput wraps the recipe list for Huma.
type RecipeListOutput struct {
	Body RecipeListResponse
}

// === Handlers ===

func (s *Server) handleListRecipes(ctx context.Context, input *ListRecipesInput) (*RecipeListOutput, error) {
	viewerID, err := s.optionalViewer(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Recipe.ListRecipes(ctx, viewerID, service.ListRecipesQuery{
		AuthorID:         input.Author,
		TagSlugs:         input.Tags,
		IsFavorited:      input.IsFavorited,
		IsInShoppingCart: input.IsInShoppingCart,
		Page:             input.page(),
	})
	if err != nil {
		return nil, err
	}

	recipes := make([]RecipeResponse, len(result.Items))
	for i, v := range result.Items {
		recipes[i] = mapRecipe(v)
	}

	return &RecipeListOutput{
		Body: RecipeListResponse{
			Count:   result.Total,
			Page:    result.Page,
			Limit:   result.Limit,
			Results: recipes,
		},
	}, nil
}

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Recipe.CreateRecipe(ctx, userID, toRecipeInput(input.Body))
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipe(view)}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *RecipeInput) (*RecipeOutput, error) {
	viewerID, err := s.optionalViewer(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Recipe.GetRecipe(ctx, viewerID, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipe(view)}, nil
}

func (s *Server) handleUpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*RecipeOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Recipe.UpdateRecipe(ctx, userID, input.ID, toRecipeInput(input.Body))
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipe(view)}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *RecipeInput) (*struct{}, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	return nil, s.services.Recipe.DeleteRecipe(ctx, userID, input.ID)
}

// === Helpers ===

func toRecipeInput(req RecipeRequest) service.RecipeInput {
	in := service.RecipeInput{
		Tags:        req.Tags,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if req.Ingredients != nil {
		in.Ingredients = make([]service.IngredientAmount, len(req.Ingredients))
		for i, line := range req.Ingredients {
			in.Ingredients[i] = service.IngredientAmount{ID: line.ID, Amount: line.Amount}
		}
	}
	return in
}

func mapRecipe(v *domain.RecipeView) RecipeResponse {
	tags := make([]TagResponse, len(v.Tags))
	for i, t := range v.Tags {
		tags[i] = mapTag(t)
	}

	ingredients := make([]RecipeIngredientResponse, len(v.Ingredients))
	for i, ri := range v.Ingredients {
		ingredients[i] = RecipeIngredientResponse{
			ID:              ri.IngredientID,
			Name:            ri.Name,
			MeasurementUnit: ri.MeasurementUnit,
			Amount:          ri.Amount,
		}
	}

	return RecipeResponse{
		ID:               v.ID,
		Author:           mapUser(v.Author, v.AuthorFollowed),
		Name:             v.Name,
		Text:             v.Text,
		CookingTime:      v.CookingTime,
		PubDate:          v.PubDate,
		Tags:             tags,
		Ingredients:      ingredients,
		IsFavorited:      v.IsFavorited,
		IsInShoppingCart: v.IsInShoppingCart,
	}
}

func mapRecipeShort(r *domain.Recipe) RecipeShortResponse {
	return RecipeShortResponse{ID: r.ID, Name: r.Name, CookingTime: r.CookingTime}
}
