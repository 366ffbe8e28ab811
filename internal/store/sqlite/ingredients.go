package sqlite

import (
	"context"
	"strings"

	"github.com/foodgram/foodgram-server/internal/domain"
	"github.com/foodgram/foodgram-server/internal/normalize"
	"github.com/foodgram/foodgram-server/internal/store"
)

// ingredientColumns must match the scan order in scanIngredient.
const ingredientColumns = `id, name, measurement_unit`

func scanIngredient(scanner interface{ Scan(dest ...any) error }) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	if err := scanner.Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit); err != nil {
		return nil, err
	}
	return &ing, nil
}

// CreateIngredient inserts a catalogue entry.
// Returns store.ErrAlreadyExists if (name, measurement_unit) is taken.
func (s *Store) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (id, name, measurement_unit, name_folded)
		VALUES (?, ?, ?, ?)`,
		ing.ID,
		ing.Name,
		ing.MeasurementUnit,
		normalize.SearchKey(ing.Name),
	)
	return mapConstraintErr(err)
}

// GetIngredient retrieves an ingredient by ID.
func (s *Store) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ?`, id)

	ing, err := scanIngredient(row)
	if err != nil {
		return nil, notFound(err)
	}
	return ing, nil
}

// ListIngredients returns ingredients ordered by name, optionally restricted
// to names starting with filter.NamePrefix (case-insensitive).
func (s *Store) ListIngredients(ctx context.Context, filter store.IngredientFilter) ([]*domain.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients`
	var args []any

	if prefix := normalize.SearchKey(filter.NamePrefix); prefix != "" {
		query += ` WHERE name_folded LIKE ? ESCAPE '\'`
		args = append(args, escapeLike(prefix)+"%")
	}
	query += ` ORDER BY name ASC, measurement_unit ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

// MissingIngredients returns the ids that name no ingredient.
func (s *Store) MissingIngredients(ctx context.Context, ids []string) ([]string, error) {
	return s.missingIDs(ctx, "ingredients", ids)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
