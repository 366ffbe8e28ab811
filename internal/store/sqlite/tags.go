package sqlite

import (
	"context"

	"github.com/foodgram/foodgram-server/internal/domain"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, color, slug`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	if err := scanner.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTag inserts a new tag.
// Returns store.ErrAlreadyExists on a duplicate name, color, or slug.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tags (id, name, color, slug) VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, t.Color, t.Slug)
	return mapConstraintErr(err)
}

// GetTag retrieves a tag by ID.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)

	t, err := scanTag(row)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// MissingTags returns the ids that name no tag.
func (s *Store) MissingTags(ctx context.Context, ids []string) ([]string, error) {
	return s.missingIDs(ctx, "tags", ids)
}
