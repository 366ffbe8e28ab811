package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/foodgram/foodgram-server/internal/domain"
	"github.com/foodgram/foodgram-server/internal/store"
)

// recipeColumns must match the scan order in scanRecipe.
const recipeColumns = `r.id, r.author_id, r.name, r.text, r.cooking_time, r.pub_date`

// scanRecipe scans the recipe row only; ingredients and tags are loaded separately.
func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var (
		r       domain.Recipe
		pubDate string
	)

	err := scanner.Scan(&r.ID, &r.AuthorID, &r.Name, &r.Text, &r.CookingTime, &pubDate)
	if err != nil {
		return nil, err
	}

	r.PubDate, err = parseTime(pubDate)
	if err != nil {
		return nil, err
	}
	r.Ingredients = []domain.RecipeIngredient{}
	r.Tags = []domain.Tag{}
	return &r, nil
}

// CreateRecipe inserts the recipe with its ingredient and tag rows in one transaction.
// Returns store.ErrAlreadyExists when the author already has a recipe with this name.
func (s *Store) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipes (id, author_id, name, text, cooking_time, pub_date)
			VALUES (?, ?, ?, ?, ?, ?)`,
			recipe.ID,
			recipe.AuthorID,
			recipe.Name,
			recipe.Text,
			recipe.CookingTime,
			formatTime(recipe.PubDate),
		)
		if err != nil {
			return mapConstraintErr(err)
		}
		return replaceRecipeChildren(ctx, tx, recipe)
	})
}

// UpdateRecipe rewrites name, text and cooking time and fully replaces the
// ingredient and tag rows in one transaction. Author and pub date are kept.
func (s *Store) UpdateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE recipes SET name = ?, text = ?, cooking_time = ?
			WHERE id = ?`,
			recipe.Name,
			recipe.Text,
			recipe.CookingTime,
			recipe.ID,
		)
		if err != nil {
			return mapConstraintErr(err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}
		return replaceRecipeChildren(ctx, tx, recipe)
	})
}

// replaceRecipeChildren deletes all join rows of the recipe and inserts the new set.
func replaceRecipeChildren(ctx context.Context, tx *sql.Tx, recipe *domain.Recipe) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipe.ID); err != nil {
		return fmt.Errorf("delete recipe_ingredients: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_tags WHERE recipe_id = ?`, recipe.ID); err != nil {
		return fmt.Errorf("delete recipe_tags: %w", err)
	}

	for i, ri := range recipe.Ingredients {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount, position)
			VALUES (?, ?, ?, ?)`,
			recipe.ID, ri.IngredientID, ri.Amount, i)
		if err != nil {
			return fmt.Errorf("insert recipe_ingredient %s: %w", ri.IngredientID, mapConstraintErr(err))
		}
	}

	for i, t := range recipe.Tags {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_tags (recipe_id, tag_id, position)
			VALUES (?, ?, ?)`,
			recipe.ID, t.ID, i)
		if err != nil {
			return fmt.Errorf("insert recipe_tag %s: %w", t.ID, mapConstraintErr(err))
		}
	}
	return nil
}

// DeleteRecipe removes a recipe; join rows, favorites and cart entries cascade.
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// GetRecipe retrieves a recipe with its ingredients and tags in stored order.
func (s *Store) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes r WHERE r.id = ?`, id)

	r, err := scanRecipe(row)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.loadRecipeChildren(ctx, []*domain.Recipe{r}); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecipes returns one page of recipes matching filter, newest first.
func (s *Store) ListRecipes(ctx context.Context, filter store.RecipeFilter, page store.Page) (*store.PaginatedResult[*domain.Recipe], error) {
	where, args := recipeWhere(filter)

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipes r`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}

	pageArgs := append(append([]any{}, args...), page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes r`+where+
			` ORDER BY r.pub_date DESC, r.id DESC LIMIT ? OFFSET ?`,
		pageArgs...)
	if err != nil {
		return nil, err
	}
	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, err
	}

	if err := s.loadRecipeChildren(ctx, recipes); err != nil {
		return nil, err
	}

	return &store.PaginatedResult[*domain.Recipe]{
		Items: recipes,
		Total: total,
		Page:  page.Number,
		Limit: page.Limit,
	}, nil
}

func recipeWhere(filter store.RecipeFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if filter.AuthorID != "" {
		clauses = append(clauses, `r.author_id = ?`)
		args = append(args, filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		clauses = append(clauses, `EXISTS (
			SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug IN (`+placeholders(len(filter.TagSlugs))+`))`)
		args = append(args, stringArgs(filter.TagSlugs)...)
	}
	if filter.FavoritedBy != "" {
		clauses = append(clauses,
			`EXISTS (SELECT 1 FROM favorites f WHERE f.recipe_id = r.id AND f.user_id = ?)`)
		args = append(args, filter.FavoritedBy)
	}
	if filter.InCartOf != "" {
		clauses = append(clauses,
			`EXISTS (SELECT 1 FROM shopping_list sl WHERE sl.recipe_id = r.id AND sl.user_id = ?)`)
		args = append(args, filter.InCartOf)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// ListRecipesByAuthor returns an author's recipes newest first without
// ingredients or tags. limit <= 0 returns all of them.
func (s *Store) ListRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Recipe, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes r WHERE r.author_id = ?
		 ORDER BY r.pub_date DESC, r.id DESC LIMIT ?`,
		authorID, limit)
	if err != nil {
		return nil, err
	}
	return collectRecipes(rows)
}

// CountRecipesByAuthors returns recipe counts keyed by author id.
// Authors without recipes are absent from the map.
func (s *Store) CountRecipesByAuthors(ctx context.Context, authorIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT author_id, COUNT(*) FROM recipes
		 WHERE author_id IN (`+placeholders(len(authorIDs))+`) GROUP BY author_id`,
		stringArgs(authorIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			authorID string
			n        int
		)
		if err := rows.Scan(&authorID, &n); err != nil {
			return nil, err
		}
		counts[authorID] = n
	}
	return counts, rows.Err()
}

// collectRecipes drains and closes rows.
func collectRecipes(rows *sql.Rows) ([]*domain.Recipe, error) {
	defer rows.Close()

	recipes := []*domain.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

// loadRecipeChildren fills Ingredients and Tags for every recipe with two queries.
func (s *Store) loadRecipeChildren(ctx context.Context, recipes []*domain.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Recipe, len(recipes))
	ids := make([]string, len(recipes))
	for i, r := range recipes {
		byID[r.ID] = r
		ids[i] = r.ID
	}
	in := placeholders(len(ids))

	ingRows, err := s.db.QueryContext(ctx, `
		SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (`+in+`)
		ORDER BY ri.recipe_id, ri.position`,
		stringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("load recipe ingredients: %w", err)
	}
	defer ingRows.Close()

	for ingRows.Next() {
		var (
			recipeID string
			ri       domain.RecipeIngredient
		)
		if err := ingRows.Scan(&recipeID, &ri.IngredientID, &ri.Name, &ri.MeasurementUnit, &ri.Amount); err != nil {
			return err
		}
		if r := byID[recipeID]; r != nil {
			r.Ingredients = append(r.Ingredients, ri)
		}
	}
	if err := ingRows.Err(); err != nil {
		return err
	}

	tagRows, err := s.db.QueryContext(ctx, `
		SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id IN (`+in+`)
		ORDER BY rt.recipe_id, rt.position`,
		stringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("load recipe tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var (
			recipeID string
			t        domain.Tag
		)
		if err := tagRows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return err
		}
		if r := byID[recipeID]; r != nil {
			r.Tags = append(r.Tags, t)
		}
	}
	return tagRows.Err()
}
