package domain

import "time"

// Bounds shared by cooking time (minutes) and ingredient amounts.
const (
	MinAmount      = 1
	MaxAmount      = 32000
	MinCookingTime = 1
	MaxCookingTime = 32000
)

// Recipe is a published recipe owned by its author.
// (AuthorID, Name) is unique.
type Recipe struct {
	ID          string             `json:"id"`
	AuthorID    string             `json:"author_id"`
	Name        string             `json:"name"`
	Text        string             `json:"text"`
	CookingTime int                `json:"cooking_time"`
	PubDate     time.Time          `json:"pub_date"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Tags        []Tag              `json:"tags"`
}

// RecipeIngredient is one line of a recipe: an ingredient and the amount needed.
// Name and MeasurementUnit are denormalized from the ingredient when loaded.
type RecipeIngredient struct {
	IngredientID    string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// IngredientIDs returns the ingredient ids in recipe order.
func (r *Recipe) IngredientIDs() []string {
	ids := make([]string, len(r.Ingredients))
	for i, ri := range r.Ingredients {
		ids[i] = ri.IngredientID
	}
	return ids
}

// TagIDs returns the tag ids in recipe order.
func (r *Recipe) TagIDs() []string {
	ids := make([]string, len(r.Tags))
	for i, t := range r.Tags {
		ids[i] = t.ID
	}
	return ids
}

// IsAuthor reports whether userID owns the recipe.
func (r *Recipe) IsAuthor(userID string) bool {
	return userID != "" && r.AuthorID == userID
}

// RecipeView decorates a recipe with viewer-relative flags.
type RecipeView struct {
	Recipe
	Author           *User `json:"author"`
	AuthorFollowed   bool  `json:"-"`
	IsFavorited      bool  `json:"is_favorited"`
	IsInShoppingCart bool  `json:"is_in_shopping_cart"`
}
