package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foodgram/foodgram-server/internal/domain"
	"github.com/foodgram/foodgram-server/internal/service"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/tags",
		Summary:     "List tags",
		Description: "Returns all tags ordered by name",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTag",
		Method:        http.MethodPost,
		Path:          "/api/tags",
		Summary:       "Create tag",
		Description:   "Creates a tag; the slug is derived from the name when omitted",
		Tags:          []string{"Tags"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/tags/{id}",
		Summary:     "Get tag",
		Description: "Returns a tag by ID",
		Tags:        []string{"Tags"},
	}, s.handleGetTag)
}

func (s *Server) registerIngredientRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listIngredients",
		Method:      http.MethodGet,
		Path:        "/api/ingredients",
		Summary:     "Search ingredients",
		Description: "Returns ingredients whose name starts with the given prefix, ignoring case",
		Tags:        []string{"Ingredients"},
	}, s.handleListIngredients)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createIngredient",
		Method:        http.MethodPost,
		Path:          "/api/ingredients",
		Summary:       "Create ingredient",
		Description:   "Adds an ingredient to the catalogue",
		Tags:          []string{"Ingredients"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateIngredient)

	huma.Register(s.api, huma.Operation{
		OperationID: "getIngredient",
		Method:      http.MethodGet,
		Path:        "/api/ingredients/{id}",
		Summary:     "Get ingredient",
		Description: "Returns an ingredient by ID",
		Tags:        []string{"Ingredients"},
	}, s.handleGetIngredient)
}

// === DTOs ===

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID    string `json:"id" doc:"Tag ID"`
	Name  string `json:"name" doc:"Tag name"`
	Color string `json:"color" doc:"Display color (#RRGGBB)"`
	Slug  string `json:"slug" doc:"URL-safe slug"`
}

// TagOutput wraps the tag response for Huma.
type TagOutput struct {
	Body TagResponse
}

// TagListOutput wraps a list of tags for Huma.
type TagListOutput struct {
	Body []TagResponse
}

// CreateTagRequest is the request body for creating a tag.
type CreateTagRequest struct {
	Name  string `json:"name" maxLength:"200" doc:"Tag name"`
	Color string `json:"color" doc:"Display color (#RRGGBB)"`
	Slug  string `json:"slug,omitempty" maxLength:"200" doc:"Slug; derived from the name when omitted"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateTagRequest
}

// IDInput identifies a resource by path.
type IDInput struct {
	ID string `path:"id" doc:"Resource ID"`
}

// IngredientResponse contains ingredient data in API responses.
type IngredientResponse struct {
	ID              string `json:"id" doc:"Ingredient ID"`
	Name            string `json:"name" doc:"Ingredient name"`
	MeasurementUnit string `json:"measurement_unit" doc:"Unit the amount is measured in"`
}

// IngredientOutput wraps the ingredient response for Huma.
type IngredientOutput struct {
	Body IngredientResponse
}

// IngredientListOutput wraps a list of ingredients for Huma.
type IngredientListOutput struct {
	Body []IngredientResponse
}

// ListIngredientsInput contains the search prefix.
type ListIngredientsInput struct {
	Name string `query:"name" maxLength:"200" doc:"Case-insensitive name prefix"`
}

// CreateIngredientRequest is the request body for creating an ingredient.
type CreateIngredientRequest struct {
	Name            string `json:"name" maxLength:"200" doc:"Ingredient name"`
	MeasurementUnit string `json:"measurement_unit" maxLength:"200" doc:"Unit the amount is measured in"`
}

// CreateIngredientInput wraps the create ingredient request for Huma.
type CreateIngredientInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateIngredientRequest
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*TagListOutput, error) {
	tags, err := s.services.Tag.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = mapTag(*t)
	}
	return &TagListOutput{Body: resp}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	t, err := s.services.Tag.CreateTag(ctx, service.CreateTagRequest{
		Name:  input.Body.Name,
		Color: input.Body.Color,
		Slug:  input.Body.Slug,
	})
	if err != nil {
		return nil, err
	}

	return &TagOutput{Body: mapTag(*t)}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *IDInput) (*TagOutput, error) {
	t, err := s.services.Tag.GetTag(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: mapTag(*t)}, nil
}

func (s *Server) handleListIngredients(ctx context.Context, input *ListIngredientsInput) (*IngredientListOutput, error) {
	ingredients, err := s.services.Ingredient.ListIngredients(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	resp := make([]IngredientResponse, len(ingredients))
	for i, ing := range ingredients {
		resp[i] = mapIngredient(ing)
	}
	return &IngredientListOutput{Body: resp}, nil
}

func (s *Server) handleCreateIngredient(ctx context.Context, input *CreateIngredientInput) (*IngredientOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	ing, err := s.services.Ingredient.CreateIngredient(ctx, service.CreateIngredientRequest{
		Name:            input.Body.Name,
		MeasurementUnit: input.Body.MeasurementUnit,
	})
	if err != nil {
		return nil, err
	}

	return &IngredientOutput{Body: mapIngredient(ing)}, nil
}

func (s *Server) handleGetIngredient(ctx context.Context, input *IDInput) (*IngredientOutput, error) {
	ing, err := s.services.Ingredient.GetIngredient(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &IngredientOutput{Body: mapIngredient(ing)}, nil
}

// === Helpers ===

func mapTag(t domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func mapIngredient(ing *domain.Ingredient) IngredientResponse {
	return IngredientResponse{ID: ing.ID, Name: ing.Name, MeasurementUnit: ing.MeasurementUnit}
}
