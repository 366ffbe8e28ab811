package domain

import "time"

// UserRecipePair is the identity shared by every per-user recipe mark.
type UserRecipePair struct {
	UserID   string `json:"user_id"`
	RecipeID string `json:"recipe_id"`
}

// Favorite marks a recipe as a favorite of a user.
type Favorite struct {
	UserRecipePair
	CreatedAt time.Time `json:"created_at"`
}

// ShoppingListEntry places a recipe in a user's shopping list.
type ShoppingListEntry struct {
	UserRecipePair
	CreatedAt time.Time `json:"created_at"`
}

// CartLine is one RecipeIngredient row reached through a user's shopping list.
// Rows are not grouped; several recipes may contribute the same ingredient.
type CartLine struct {
	RecipeID        string
	Name            string
	MeasurementUnit string
	Amount          int
}
