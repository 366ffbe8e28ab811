package sqlite

import (
	"context"
	"fmt"

	"github.com/foodgram/foodgram-server/internal/domain"
	"github.com/foodgram/foodgram-server/internal/store"
)

// CreateFollow subscribes follow.UserID to follow.AuthorID.
// Returns store.ErrAlreadyExists for a duplicate and store.ErrInvalidInput
// for a self-follow.
func (s *Store) CreateFollow(ctx context.Context, follow *domain.Follow) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO follows (user_id, author_id, created_at) VALUES (?, ?, ?)`,
		follow.UserID, follow.AuthorID, formatTime(follow.CreatedAt))
	return mapConstraintErr(err)
}

// DeleteFollow removes a subscription. Returns store.ErrNotFound if absent.
func (s *Store) DeleteFollow(ctx context.Context, userID, authorID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM follows WHERE user_id = ? AND author_id = ?`, userID, authorID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// FollowedAuthorIDs reports which of authorIDs userID follows.
func (s *Store) FollowedAuthorIDs(ctx context.Context, userID string, authorIDs []string) (map[string]bool, error) {
	followed := make(map[string]bool, len(authorIDs))
	if userID == "" || len(authorIDs) == 0 {
		return followed, nil
	}

	args := append([]any{userID}, stringArgs(authorIDs)...)
	rows, err := s.db.QueryContext(ctx,
		`SELECT author_id FROM follows WHERE user_id = ? AND author_id IN (`+placeholders(len(authorIDs))+`)`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		followed[id] = true
	}
	return followed, rows.Err()
}

// ListFollowedAuthors returns one page of the authors userID follows,
// most recently followed first.
func (s *Store) ListFollowedAuthors(ctx context.Context, userID string, page store.Page) (*store.PaginatedResult[*domain.User], error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, fmt.Errorf("count follows: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.created_at
		FROM follows f
		JOIN users u ON u.id = f.author_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, u.id ASC
		LIMIT ? OFFSET ?`,
		userID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors, err := collectUsers(rows)
	if err != nil {
		return nil, err
	}

	return &store.PaginatedResult[*domain.User]{
		Items: authors,
		Total: total,
		Page:  page.Number,
		Limit: page.Limit,
	}, nil
}
