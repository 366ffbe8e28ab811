package domain

// Tag labels recipes ("breakfast", "dinner"). Slug is the URL identity used by filters.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"` // #RRGGBB
	Slug  string `json:"slug"`
}
