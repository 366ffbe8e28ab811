package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foodgram/foodgram-server/internal/domain"
	"github.com/foodgram/foodgram-server/internal/store"
)

var baseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// seedCatalogue creates an author, three ingredients and two tags.
func seedCatalogue(t *testing.T, s *Store) {
	t.Helper()
	mustUser(t, s, "usr-a")
	mustIngredient(t, s, "ing-flour", "flour", "g")
	mustIngredient(t, s, "ing-salt", "salt", "g")
	mustIngredient(t, s, "ing-egg", "egg", "pcs")
	mustTag(t, s, "tag-bf", "Breakfast", "#000001", "breakfast")
	mustTag(t, s, "tag-dn", "Dinner", "#000002", "dinner")
}

func recipeIDs(list []*domain.Recipe) []string {
	ids := make([]string, len(list))
	for i, r := range list {
		ids[i] = r.ID
	}
	return ids
}

func TestCreateAndGetRecipe(t *testing.T) {
	s := newTestStore(t)
	seedCatalogue(t, s)

	mustRecipe(t, s, "rcp-1", "usr-a", "Pancakes", baseTime,
		[]string{"tag-dn", "tag-bf"}, "ing-flour", 200, "ing-egg", 2)

	got, err := s.GetRecipe(context.Background(), "rcp-1")
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if got.Name != "Pancakes" || got.AuthorID != "usr-a" || got.CookingTime != 30 {
		t.Errorf("unexpected recipe: %+v", got)
	}
	if !got.PubDate.Equal(baseTime) {
		t.Errorf("PubDate: got %v", got.PubDate)
	}

	if len(got.Ingredients) != 2 {
		t.Fatalf("ingredients: got %d", len(got.Ingredients))
	}
	first := got.Ingredients[0]
	if first.IngredientID != "ing-flour" || first.Name != "flour" || first.MeasurementUnit != "g" || first.Amount != 200 {
		t.Errorf("first ingredient: %+v", first)
	}
	if got.Ingredients[1].IngredientID != "ing-egg" {
		t.Errorf("ingredient order not kept: %+v", got.Ingredients)
	}

	if len(got.Tags) != 2 || got.Tags[0].Slug != "dinner" || got.Tags[1].Slug != "breakfast" {
		t.Errorf("tags: %+v", got.Tags)
	}
}

func TestGetRecipe_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRecipe(context.Background(), "rcp-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateRecipe_DuplicateAuthorName(t *testing.T) {
	s := newTestStore(t)
	seedCatalogue(t, s)
	mustRecipe(t, s, "rcp-1", "usr-a", "Pancakes", baseTime, []string{"tag-bf"}, "ing-flour", 1)

	dup := &domain.Recipe{
		ID: "rcp-2", AuthorID: "usr-a", Name: "Pancakes", CookingTime: 5, PubDate: baseTime,
		Ingredients: []domain.RecipeIngredient{{IngredientID: "ing-egg", Amount: 1}},
		Tags:        []domain.Tag{{ID: "tag-bf"}},
	}
	if err := s.CreateRecipe(context.Background(), dup); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	// Another author may reuse the name.
	mustUser(t, s, "usr-b")
	mustRecipe(t, s, "rcp-3", "usr-b", "Pancakes", baseTime, []string{"tag-bf"}, "ing-flour", 1)
}

func TestCreateRecipe_RollsBackOnBadIngredient(t *testing.T) {
	s := newTestStore(t)
	seedCatalogue(t, s)
	ctx := context.Background()

	r := &domain.Recipe{
		ID: "rcp-bad", AuthorID: "usr-a", Name: "Broken", CookingTime: 5, PubDate: baseTime,
		Ingredients: []domain.RecipeIngredient{{IngredientID: "ing-nope", Amount: 1}},
		Tags:        []domain.Tag{{ID: "tag-bf"}},
	}
	if err := s.CreateRecipe(ctx, r); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown ingredient, got %v", err)
	}

	if _, err := s.GetRecipe(ctx, "rcp-bad"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("recipe row should have been rolled back, got %v", err)
	}
}

func TestCreateRecipe_AmountCheck(t *testing.T) {
	s := newTestStore(t)
	seedCatalogue(t, s)

	r := &domain.Recipe{
		ID: "rcp-x", AuthorID: "usr-a", Name: "Too much", CookingTime: 5, PubDate: baseTime,
		Ingredients: []domain.RecipeIngredient{{IngredientID: "ing-salt", Amount: 32001}},
		Tags:        []domain.Tag{{ID: "tag-bf"}},
	}
	if err := s.CreateRecipe(context.Background(), r); !errors.Is(err, store.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateRecipe_ReplacesChildren(t *testing.T) {
	s := newTestStore(t)
	seedCatalogue(t, s)
	ctx := context.Background()

	mustRecipe(t, s, "rcp-1", "usr-a", "Pancakes", baseTime,
		[]string{"tag-bf"}, "ing-flour", 200, "ing-egg", 2)

	update := &domain.Recipe{
		ID: "rcp-1", AuthorID: "usr-a", Name: "Salted pancakes", Text: "New text", CookingTime: 45,
		Ingredients: []domain.RecipeIngredient{{IngredientID: "ing-salt", Amount: 5}},
		Tags:        []domain.Tag{{ID: "tag-dn"}},
	}
	if err := s.UpdateRecipe(ctx, update); err != nil {
		t.Fatalf("UpdateRecipe: %v", err)
	}

	got, err := s.GetRecipe(ctx, "rcp-1")
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if got.Name != "Salted pancakes" || got.Text != "New text" || got.CookingTime != 45 {
		t.Errorf("fields not updated: %+v", got)
	}
	if !got.PubDate.Equal(baseTime) {
		t.Errorf("PubDate changed: %v", got.PubDate)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].IngredientID != "ing-salt" {
		t.Errorf("ingredients not replaced: %+v", got.Ingredients)
	}
	if len(got.Tags) != 1 || got.Tags[0].ID != "tag-dn" {
		t.Errorf("tags not replaced: %+v", got.Tags)
	}
}

func TestUpdateRecipe_NotFound(t *testing.T) {
	s := newTestStore(t)
	seedCatalogue(t, s)

	err := s.UpdateRecipe(context.Background(), &domain.Recipe{ID: "rcp-none", Name: "x", CookingTime: 1})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRecipe_Cascades(t *testing.T) {
	s := newTestStore(t)
	seedCatalogue(t, s)
	ctx := context.Background()

	mustRecipe(t, s, "rcp-1", "usr-a", "Pancakes", baseTime, []string{"tag-bf"}, "ing-flour", 200)
	pair := domain.UserRecipePair{UserID: "usr-a", RecipeID: "rcp-1"}
	if err := s.AddToShoppingList(ctx, &domain.ShoppingListEntry{UserRecipePair: pair, CreatedAt: baseTime}); err != nil {
		t.Fatalf("AddToShoppingList: %v", err)
	}
	if err := s.AddFavorite(ctx, &domain.Favorite{UserRecipePair: pair, CreatedAt: baseTime}); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}

	if err := s.DeleteRecipe(ctx, "rcp-1"); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}

	for _, table := range []string{"recipe_ingredients", "recipe_tags", "favorites", "shopping_list"} {
		var n int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s: %d rows left after delete", table, n)
		}
	}

	if err := s.DeleteRecipe(ctx, "rcp-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestListRecipes_Filters(t *testing.T) {
	s := newTestStore(t)
	seedCatalogue(t, s)
	mustUser(t, s, "usr-b")
	ctx := context.Background()

	mustRecipe(t, s, "rcp-1", "usr-a", "Omelette", baseTime, []string{"tag-bf"}, "ing-egg", 3)
	mustRecipe(t, s, "rcp-2", "usr-a", "Stew", baseTime.Add(time.Hour), []string{"tag-dn"}, "ing-salt", 5)
	mustRecipe(t, s, "rcp-3", "usr-b", "Bread", baseTime.Add(2*time.Hour), []string{"tag-bf", "tag-dn"}, "ing-flour", 500)

	if err := s.AddFavorite(ctx, &domain.Favorite{
		UserRecipePair: domain.UserRecipePair{UserID: "usr-b", RecipeID: "rcp-1"}, CreatedAt: baseTime,
	}); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	if err := s.AddToShoppingList(ctx, &domain.ShoppingListEntry{
		UserRecipePair: domain.UserRecipePair{UserID: "usr-b", RecipeID: "rcp-2"}, CreatedAt: baseTime,
	}); err != nil {
		t.Fatalf("AddToShoppingList: %v", err)
	}

	tests := []struct {
		name   string
		filter store.RecipeFilter
		want   []string
	}{
		{"no filter newest first", store.RecipeFilter{}, []string{"rcp-3", "rcp-2", "rcp-1"}},
		{"author", store.RecipeFilter{AuthorID: "usr-a"}, []string{"rcp-2", "rcp-1"}},
		{"one tag", store.RecipeFilter{TagSlugs: []string{"breakfast"}}, []string{"rcp-3", "rcp-1"}},
		{"tags are OR", store.RecipeFilter{TagSlugs: []string{"breakfast", "dinner"}}, []string{"rcp-3", "rcp-2", "rcp-1"}},
		{"favorited", store.RecipeFilter{FavoritedBy: "usr-b"}, []string{"rcp-1"}},
		{"in cart", store.RecipeFilter{InCartOf: "usr-b"}, []string{"rcp-2"}},
		{"combined", store.RecipeFilter{AuthorID: "usr-a", TagSlugs: []string{"breakfast"}}, []string{"rcp-1"}},
		{"unknown tag", store.RecipeFilter{TagSlugs: []string{"nope"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.ListRecipes(ctx, tt.filter, store.Page{Number: 1, Limit: 10})
			if err != nil {
				t.Fatalf("ListRecipes: %v", err)
			}
			got := recipeIDs(page.Items)
			if len(got) != len(tt.want) || page.Total != len(tt.want) {
				t.Fatalf("got %v (total %d), want %v", got, page.Total, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestListRecipes_PaginationLoadsChildren(t *testing.T) {
	s := newTestStore(t)
	seedCatalogue(t, s)
	ctx := context.Background()

	for i, name := range []string{"A", "B", "C"} {
		mustRecipe(t, s, "rcp-"+name, "usr-a", name, baseTime.Add(time.Duration(i)*time.Minute),
			[]string{"tag-bf"}, "ing-flour", 100+i)
	}

	page, err := s.ListRecipes(ctx, store.RecipeFilter{}, store.Page{Number: 2, Limit: 2})
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 1 || page.Items[0].ID != "rcp-A" {
		t.Fatalf("unexpected page: total=%d items=%v", page.Total, recipeIDs(page.Items))
	}
	if len(page.Items[0].Ingredients) != 1 || page.Items[0].Ingredients[0].Amount != 100 {
		t.Errorf("ingredients not loaded: %+v", page.Items[0].Ingredients)
	}
	if len(page.Items[0].Tags) != 1 {
		t.Errorf("tags not loaded: %+v", page.Items[0].Tags)
	}
}

func TestListRecipesByAuthorAndCounts(t *testing.T) {
	s := newTestStore(t)
	seedCatalogue(t, s)
	mustUser(t, s, "usr-b")
	ctx := context.Background()

	for i, name := range []string{"A", "B", "C"} {
		mustRecipe(t, s, "rcp-"+name, "usr-a", name, baseTime.Add(time.Duration(i)*time.Minute),
			[]string{"tag-bf"}, "ing-flour", 1)
	}

	limited, err := s.ListRecipesByAuthor(ctx, "usr-a", 2)
	if err != nil {
		t.Fatalf("ListRecipesByAuthor: %v", err)
	}
	if got := recipeIDs(limited); len(got) != 2 || got[0] != "rcp-C" || got[1] != "rcp-B" {
		t.Errorf("limited: got %v", got)
	}

	all, err := s.ListRecipesByAuthor(ctx, "usr-a", 0)
	if err != nil {
		t.Fatalf("ListRecipesByAuthor: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unlimited: got %d", len(all))
	}

	counts, err := s.CountRecipesByAuthors(ctx, []string{"usr-a", "usr-b"})
	if err != nil {
		t.Fatalf("CountRecipesByAuthors: %v", err)
	}
	if counts["usr-a"] != 3 || counts["usr-b"] != 0 {
		t.Errorf("counts: %v", counts)
	}
}

func TestMissingIngredients(t *testing.T) {
	s := newTestStore(t)
	seedCatalogue(t, s)

	missing, err := s.MissingIngredients(context.Background(), []string{"ing-salt", "ing-x"})
	if err != nil {
		t.Fatalf("MissingIngredients: %v", err)
	}
	if len(missing) != 1 || missing[0] != "ing-x" {
		t.Errorf("got %v", missing)
	}
}
