package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/foodgram/foodgram-server/internal/auth"
	"github.com/foodgram/foodgram-server/internal/domain"
	domainerrors "github.com/foodgram/foodgram-server/internal/errors"
	"github.com/foodgram/foodgram-server/internal/store/sqlite"
	"github.com/foodgram/foodgram-server/internal/validation"
)

// testArgon2Params keep hashing fast in tests.
var testArgon2Params = auth.Argon2Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

type testEnv struct {
	store       *sqlite.Store
	auth        *AuthService
	users       *UserService
	tags        *TagService
	ingredients *IngredientService
	recipes     *RecipeService
	favorites   *FavoriteService
	cart        *CartService
}

// setupServices creates every service over a temporary SQLite database.
func setupServices(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	v := validation.New()

	return &testEnv{
		store:       st,
		auth:        NewAuthService(st, tokens, auth.NewPasswordHasher(testArgon2Params), v, logger),
		users:       NewUserService(st, 6, logger),
		tags:        NewTagService(st, v, logger),
		ingredients: NewIngredientService(st, v, logger),
		recipes:     NewRecipeService(st, v, 6, logger),
		favorites:   NewFavoriteService(st, logger),
		cart:        NewCartService(st, logger),
	}
}

func (e *testEnv) register(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "First",
		LastName:  "Last",
		Password:  "password123",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) tag(t *testing.T, name, color string) *domain.Tag {
	t.Helper()
	tag, err := e.tags.CreateTag(context.Background(), CreateTagRequest{Name: name, Color: color})
	require.NoError(t, err)
	return tag
}

func (e *testEnv) ingredient(t *testing.T, name, unit string) *domain.Ingredient {
	t.Helper()
	ing, err := e.ingredients.CreateIngredient(context.Background(), CreateIngredientRequest{Name: name, MeasurementUnit: unit})
	require.NoError(t, err)
	return ing
}

func (e *testEnv) recipe(t *testing.T, authorID, name string, tagIDs []string, lines ...IngredientAmount) *domain.RecipeView {
	t.Helper()
	view, err := e.recipes.CreateRecipe(context.Background(), authorID, RecipeInput{
		Ingredients: lines,
		Tags:        tagIDs,
		Name:        name,
		Text:        "Mix and cook.",
		CookingTime: 10,
	})
	require.NoError(t, err)
	return view
}

// requireCode asserts err is a domain error carrying code.
func requireCode(t *testing.T, err error, code domainerrors.Code) *domainerrors.Error {
	t.Helper()
	require.Error(t, err)
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, code, domainErr.Code, "error: %v", err)
	return domainErr
}

// requireDetail asserts err is a validation error with message for field.
func requireDetail(t *testing.T, err error, field, message string) {
	t.Helper()
	domainErr := requireCode(t, err, domainerrors.CodeValidation)
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok, "details: %#v", domainErr.Details)
	require.Equal(t, message, details[field], "details: %v", details)
}
