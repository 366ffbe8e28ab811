package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foodgram/foodgram-server/internal/shopping"
)

func (s *Server) registerShoppingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addFavorite",
		Method:        http.MethodPost,
		Path:          "/api/recipes/{id}/favorite",
		Summary:       "Add to favorites",
		Tags:          []string{"Favorites"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID:   "removeFavorite",
		Method:        http.MethodDelete,
		Path:          "/api/recipes/{id}/favorite",
		Summary:       "Remove from favorites",
		Tags:          []string{"Favorites"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleRemoveFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addToShoppingCart",
		Method:        http.MethodPost,
		Path:          "/api/recipes/{id}/shopping_cart",
		Summary:       "Add to shopping list",
		Tags:          []string{"Shopping list"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddToCart)

	huma.Register(s.api, huma.Operation{
		OperationID:   "removeFromShoppingCart",
		Method:        http.MethodDelete,
		Path:          "/api/recipes/{id}/shopping_cart",
		Summary:       "Remove from shopping list",
		Tags:          []string{"Shopping list"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleRemoveFromCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "getShoppingCart",
		Method:      http.MethodGet,
		Path:        "/api/recipes/shopping_cart",
		Summary:     "Shopping list totals",
		Description: "Returns the summed ingredients of the shopping list as JSON, in download order",
		Tags:        []string{"Shopping list"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetShoppingCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "downloadShoppingCart",
		Method:      http.MethodGet,
		Path:        "/api/recipes/download_shopping_cart",
		Summary:     "Download shopping list",
		Description: "Returns the summed ingredients of every recipe in the shopping list as a text attachment",
		Tags:        []string{"Shopping list"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDownloadShoppingCart)

	// Older clients call the download action on a recipe path; the ID is ignored.
	huma.Register(s.api, huma.Operation{
		OperationID: "downloadShoppingCartLegacy",
		Method:      http.MethodGet,
		Path:        "/api/recipes/{id}/download_shopping_cart",
		Summary:     "Download shopping list (recipe path)",
		Tags:        []string{"Shopping list"},
		Security:    []map[string][]string{{"bearer": {}}},
		Deprecated:  true,
	}, s.handleDownloadShoppingCartLegacy)
}

// === DTOs ===

// DownloadOutput is a text attachment.
type DownloadOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// ShoppingItemResponse is one summed shopping list line.
type ShoppingItemResponse struct {
	Name            string `json:"name" doc:"Ingredient name"`
	MeasurementUnit string `json:"measurement_unit" doc:"Unit"`
	TotalAmount     int64  `json:"total_amount" doc:"Sum over every recipe in the list"`
}

// ShoppingCartOutput wraps the summed list for Huma.
type ShoppingCartOutput struct {
	Body []ShoppingItemResponse
}

// === Handlers ===

func (s *Server) handleAddFavorite(ctx context.Context, input *RecipeInput) (*RecipeShortOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Favorite.AddFavorite(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecipeShortOutput{Body: mapRecipeShort(recipe)}, nil
}

func (s *Server) handleRemoveFavorite(ctx context.Context, input *RecipeInput) (*struct{}, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	return nil, s.services.Favorite.RemoveFavorite(ctx, userID, input.ID)
}

func (s *Server) handleAddToCart(ctx context.Context, input *RecipeInput) (*RecipeShortOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Cart.AddToCart(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecipeShortOutput{Body: mapRecipeShort(recipe)}, nil
}

func (s *Server) handleRemoveFromCart(ctx context.Context, input *RecipeInput) (*struct{}, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	return nil, s.services.Cart.RemoveFromCart(ctx, userID, input.ID)
}

func (s *Server) handleGetShoppingCart(ctx context.Context, input *AuthorizedInput) (*ShoppingCartOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Cart.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]ShoppingItemResponse, len(items))
	for i, it := range items {
		resp[i] = ShoppingItemResponse{Name: it.Name, MeasurementUnit: it.Unit, TotalAmount: it.Total}
	}

	return &ShoppingCartOutput{Body: resp}, nil
}

func (s *Server) handleDownloadShoppingCart(ctx context.Context, input *AuthorizedInput) (*DownloadOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	body, err := s.services.Cart.Download(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DownloadOutput{
		ContentType:        shopping.ContentType,
		ContentDisposition: shopping.Disposition(),
		Body:               body,
	}, nil
}

func (s *Server) handleDownloadShoppingCartLegacy(ctx context.Context, input *RecipeInput) (*DownloadOutput, error) {
	return s.handleDownloadShoppingCart(ctx, &AuthorizedInput{Authorization: input.Authorization})
}
