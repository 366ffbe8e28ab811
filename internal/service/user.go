package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foodgram/foodgram-server/internal/domain"
	domainerrors "github.com/foodgram/foodgram-server/internal/errors"
	"github.com/foodgram/foodgram-server/internal/store"
)

// UserView is a user as seen by a viewer.
type UserView struct {
	*domain.User
	IsSubscribed bool `json:"is_subscribed"`
}

// Subscription is a followed author with a preview of their recipes.
type Subscription struct {
	UserView
	Recipes      []*domain.Recipe `json:"recipes"`
	RecipesCount int              `json:"recipes_count"`
}

// UserService serves profiles and the follow graph.
type UserService struct {
	store    store.Store
	pageSize int
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, pageSize int, logger *slog.Logger) *UserService {
	return &UserService{
		store:    store,
		pageSize: orDefaultPageSize(pageSize),
		logger:   orDefaultLogger(logger),
	}
}

// GetUser returns userID as seen by viewerID. viewerID may be empty.
func (s *UserService) GetUser(ctx context.Context, viewerID, userID string) (*UserView, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, "get user", "user not found")
	}

	views, err := s.views(ctx, viewerID, []*domain.User{user})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// ListUsers returns one page of users ordered by username.
func (s *UserService) ListUsers(ctx context.Context, viewerID string, page store.Page) (*store.PaginatedResult[*UserView], error) {
	page = page.Normalize(s.pageSize)

	result, err := s.store.ListUsers(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	views, err := s.views(ctx, viewerID, result.Items)
	if err != nil {
		return nil, err
	}

	return &store.PaginatedResult[*UserView]{
		Items: views,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	}, nil
}

// Subscribe makes userID follow authorID and returns the new subscription.
func (s *UserService) Subscribe(ctx context.Context, userID, authorID string, recipesLimit int) (*Subscription, error) {
	follow := &domain.Follow{UserID: userID, AuthorID: authorID, CreatedAt: time.Now().UTC()}
	if follow.IsSelf() {
		return nil, domainerrors.Validation("you cannot subscribe to yourself")
	}

	author, err := s.store.GetUser(ctx, authorID)
	if err != nil {
		return nil, notFoundAs(err, "get author", "user not found")
	}

	if err := s.store.CreateFollow(ctx, follow); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.AlreadyExists("already subscribed to this user").WithCause(err)
		case errors.Is(err, store.ErrInvalidInput):
			return nil, domainerrors.Validation("you cannot subscribe to yourself").WithCause(err)
		}
		return nil, fmt.Errorf("create follow: %w", err)
	}

	s.logger.Info("user subscribed", "user_id", userID, "author_id", authorID)

	subs, err := s.subscriptions(ctx, []*domain.User{author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return subs[0], nil
}

// Unsubscribe removes a follow. Removing a follow that does not exist is a
// validation error.
func (s *UserService) Unsubscribe(ctx context.Context, userID, authorID string) error {
	if _, err := s.store.GetUser(ctx, authorID); err != nil {
		return notFoundAs(err, "get author", "user not found")
	}

	if err := s.store.DeleteFollow(ctx, userID, authorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.Validation("you are not subscribed to this user")
		}
		return fmt.Errorf("delete follow: %w", err)
	}

	s.logger.Info("user unsubscribed", "user_id", userID, "author_id", authorID)
	return nil
}

// Subscriptions returns the authors userID follows, newest follow first.
// recipesLimit truncates each author's recipe preview; non-positive means all.
func (s *UserService) Subscriptions(ctx context.Context, userID string, page store.Page, recipesLimit int) (*store.PaginatedResult[*Subscription], error) {
	page = page.Normalize(s.pageSize)

	result, err := s.store.ListFollowedAuthors(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("list followed authors: %w", err)
	}

	subs, err := s.subscriptions(ctx, result.Items, recipesLimit)
	if err != nil {
		return nil, err
	}

	return &store.PaginatedResult[*Subscription]{
		Items: subs,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	}, nil
}

// subscriptions decorates authors the caller already follows.
func (s *UserService) subscriptions(ctx context.Context, authors []*domain.User, recipesLimit int) ([]*Subscription, error) {
	ids := make([]string, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}

	counts, err := s.store.CountRecipesByAuthors(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}

	subs := make([]*Subscription, len(authors))
	for i, a := range authors {
		recipes, err := s.store.ListRecipesByAuthor(ctx, a.ID, recipesLimit)
		if err != nil {
			return nil, fmt.Errorf("list recipes of %s: %w", a.ID, err)
		}
		subs[i] = &Subscription{
			UserView:     UserView{User: a, IsSubscribed: true},
			Recipes:      recipes,
			RecipesCount: counts[a.ID],
		}
	}
	return subs, nil
}

func (s *UserService) views(ctx context.Context, viewerID string, users []*domain.User) ([]*UserView, error) {
	followed := map[string]bool{}
	if viewerID != "" && len(users) > 0 {
		ids := make([]string, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		var err error
		followed, err = s.store.FollowedAuthorIDs(ctx, viewerID, ids)
		if err != nil {
			return nil, fmt.Errorf("load follows: %w", err)
		}
	}

	views := make([]*UserView, len(users))
	for i, u := range users {
		views[i] = &UserView{User: u, IsSubscribed: followed[u.ID]}
	}
	return views, nil
}
