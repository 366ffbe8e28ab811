package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/foodgram/foodgram-server/internal/domain"
	domainerrors "github.com/foodgram/foodgram-server/internal/errors"
	"github.com/foodgram/foodgram-server/internal/id"
	"github.com/foodgram/foodgram-server/internal/normalize"
	"github.com/foodgram/foodgram-server/internal/store"
	"github.com/foodgram/foodgram-server/internal/validation"
)

// TagService manages the shared tag catalogue.
type TagService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, validator *validation.Validator, logger *slog.Logger) *TagService {
	return &TagService{store: store, validator: validator, logger: orDefaultLogger(logger)}
}

// CreateTagRequest describes a new tag. Slug defaults to one derived from Name.
type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"required,hexcolor6"`
	Slug  string `json:"slug,omitempty" validate:"omitempty,max=200"`
}

// CreateTag adds a tag. Name, color and slug must each be unused.
func (s *TagService) CreateTag(ctx context.Context, req CreateTagRequest) (*domain.Tag, error) {
	req.Name = normalize.Name(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	source := req.Slug
	if source == "" {
		source = req.Name
	}
	slug := normalize.Slug(source)
	if slug == "" {
		return nil, domainerrors.FieldError("slug", "is required when the name has no latin letters or digits")
	}

	tagID, err := id.Generate(id.PrefixTag)
	if err != nil {
		return nil, fmt.Errorf("generate tag ID: %w", err)
	}

	tag := &domain.Tag{
		ID:    tagID,
		Name:  req.Name,
		Color: normalize.Color(req.Color),
		Slug:  slug,
	}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("tag name, color or slug already in use").WithCause(err)
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}

	s.logger.Info("tag created", "tag_id", tag.ID, "slug", tag.Slug)
	return tag, nil
}

// GetTag returns a tag by ID.
func (s *TagService) GetTag(ctx context.Context, tagID string) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		return nil, notFoundAs(err, "get tag", "tag not found")
	}
	return tag, nil
}

// ListTags returns every tag ordered by name.
func (s *TagService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx)
}

// IngredientService manages the ingredient catalogue.
type IngredientService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(store store.Store, validator *validation.Validator, logger *slog.Logger) *IngredientService {
	return &IngredientService{store: store, validator: validator, logger: orDefaultLogger(logger)}
}

// CreateIngredientRequest describes a new catalogue entry.
type CreateIngredientRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
}

// CreateIngredient adds an ingredient. (name, unit) must be unused.
func (s *IngredientService) CreateIngredient(ctx context.Context, req CreateIngredientRequest) (*domain.Ingredient, error) {
	req.Name = normalize.Name(req.Name)
	req.MeasurementUnit = normalize.Name(req.MeasurementUnit)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	ingredientID, err := id.Generate(id.PrefixIngredient)
	if err != nil {
		return nil, fmt.Errorf("generate ingredient ID: %w", err)
	}

	ing := &domain.Ingredient{
		ID:              ingredientID,
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	}
	if err := s.store.CreateIngredient(ctx, ing); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("ingredient with this unit already exists").WithCause(err)
		}
		return nil, fmt.Errorf("create ingredient: %w", err)
	}

	s.logger.Info("ingredient created", "ingredient_id", ing.ID, "name", ing.Name)
	return ing, nil
}

// GetIngredient returns an ingredient by ID.
func (s *IngredientService) GetIngredient(ctx context.Context, ingredientID string) (*domain.Ingredient, error) {
	ing, err := s.store.GetIngredient(ctx, ingredientID)
	if err != nil {
		return nil, notFoundAs(err, "get ingredient", "ingredient not found")
	}
	return ing, nil
}

// ListIngredients returns ingredients whose name starts with namePrefix,
// ignoring case. An empty prefix lists the whole catalogue.
func (s *IngredientService) ListIngredients(ctx context.Context, namePrefix string) ([]*domain.Ingredient, error) {
	return s.store.ListIngredients(ctx, store.IngredientFilter{NamePrefix: namePrefix})
}
