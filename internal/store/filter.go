package store

// RecipeFilter narrows ListRecipes. Zero fields do not filter.
type RecipeFilter struct {
	AuthorID string
	// TagSlugs matches recipes carrying any of the slugs.
	TagSlugs []string
	// FavoritedBy keeps recipes in this user's favorites.
	FavoritedBy string
	// InCartOf keeps recipes in this user's shopping list.
	InCartOf string
}

// IngredientFilter narrows ListIngredients.
type IngredientFilter struct {
	// NamePrefix matches ingredient names case-insensitively.
	NamePrefix string
}
