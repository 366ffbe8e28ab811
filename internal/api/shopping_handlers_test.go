package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorite_AddTwiceConflicts(t *testing.T) {
	f := newRecipeFixture(t)
	created := f.ts.createRecipe(f.authorToken, f.pancakes())
	path := "/api/recipes/" + created.ID + "/favorite"

	w := f.ts.do(http.MethodPost, path, f.otherToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var short RecipeShortResponse
	decode(t, w, &short)
	assert.Equal(t, RecipeShortResponse{ID: created.ID, Name: "Pancakes", CookingTime: 20}, short)

	w = f.ts.do(http.MethodPost, path, f.otherToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", decodeError(t, w).Code)

	w = f.ts.do(http.MethodDelete, path, f.otherToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.ts.do(http.MethodDelete, path, f.otherToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", decodeError(t, w).Code)
}

func TestShoppingCart_MissingRecipe(t *testing.T) {
	f := newRecipeFixture(t)

	w := f.ts.do(http.MethodPost, "/api/recipes/missing/shopping_cart", f.otherToken, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadShoppingCart(t *testing.T) {
	f := newRecipeFixture(t)
	salt := f.ts.createIngredient(f.authorToken, "salt", "g")

	first := f.pancakes()
	first.Ingredients = []RecipeIngredientRequest{
		{ID: f.flour.ID, Amount: 200},
		{ID: f.egg.ID, Amount: 2},
	}
	second := f.pancakes()
	second.Name = "Bread"
	second.Ingredients = []RecipeIngredientRequest{
		{ID: salt.ID, Amount: 5},
		{ID: f.flour.ID, Amount: 100},
	}

	for _, req := range []RecipeRequest{first, second} {
		r := f.ts.createRecipe(f.authorToken, req)
		w := f.ts.do(http.MethodPost, "/api/recipes/"+r.ID+"/shopping_cart", f.otherToken, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	want := "Список покупок:\negg: 2, pcs\nflour: 300, g\nsalt: 5, g\n"

	for _, path := range []string{
		"/api/recipes/download_shopping_cart",
		"/api/recipes/any/download_shopping_cart",
	} {
		t.Run(path, func(t *testing.T) {
			w := f.ts.do(http.MethodGet, path, f.otherToken, nil)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
			assert.Contains(t, w.Header().Get("Content-Disposition"), "shopping-list.txt")
			assert.Equal(t, want, w.Body.String())
		})
	}

	w := f.ts.do(http.MethodGet, "/api/recipes/shopping_cart", f.otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var items []ShoppingItemResponse
	decode(t, w, &items)
	assert.Equal(t, []ShoppingItemResponse{
		{Name: "egg", MeasurementUnit: "pcs", TotalAmount: 2},
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 300},
		{Name: "salt", MeasurementUnit: "g", TotalAmount: 5},
	}, items)

	// The author's own list is empty.
	w = f.ts.do(http.MethodGet, "/api/recipes/download_shopping_cart", f.authorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Список покупок:\n", w.Body.String())
}

func TestShoppingRoutes_TrailingSlash(t *testing.T) {
	f := newRecipeFixture(t)
	created := f.ts.createRecipe(f.authorToken, f.pancakes())
	base := "/api/recipes/" + created.ID

	w := f.ts.do(http.MethodPost, base+"/shopping_cart/", f.otherToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = f.ts.do(http.MethodPost, base+"/favorite/", f.otherToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	want := "Список покупок:\negg: 2, pcs\nflour: 200, g\n"
	for _, path := range []string{
		"/api/recipes/download_shopping_cart/",
		base + "/download_shopping_cart/",
	} {
		w = f.ts.do(http.MethodGet, path, f.otherToken, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, want, w.Body.String(), path)
	}

	w = f.ts.do(http.MethodGet, "/api/recipes/?is_in_shopping_cart=1", f.otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var list RecipeListResponse
	decode(t, w, &list)
	require.Len(t, list.Results, 1)
	assert.Equal(t, created.ID, list.Results[0].ID)

	w = f.ts.do(http.MethodDelete, base+"/shopping_cart/", f.otherToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newRecipeFixture(t)

	w := f.ts.do(http.MethodGet, "/api/recipes/download_shopping_cart", f.otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.ts.do(http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "shopping_list_exports_total"))
	assert.True(t, strings.Contains(body, `endpoint="/api/recipes/download_shopping_cart"`))
}
