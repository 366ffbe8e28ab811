package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foodgram/foodgram-server/internal/domain"
	"github.com/foodgram/foodgram-server/internal/service"
	"github.com/foodgram/foodgram-server/internal/store"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "registerUser",
		Method:        http.MethodPost,
		Path:          pathUsers,
		Summary:       "Register",
		Description:   "Creates a new user account",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        pathUsers,
		Summary:     "List users",
		Description: "Returns one page of users ordered by username",
		Tags:        []string{"Users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/users/me",
		Summary:     "Current user",
		Description: "Returns the authenticated user",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID:   "setPassword",
		Method:        http.MethodPost,
		Path:          "/api/users/set_password",
		Summary:       "Change password",
		Description:   "Replaces the caller's password; the current password is required",
		Tags:          []string{"Users"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleSetPassword)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSubscriptions",
		Method:      http.MethodGet,
		Path:        "/api/users/subscriptions",
		Summary:     "List subscriptions",
		Description: "Returns followed authors with a preview of their recipes",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSubscriptions)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/users/{id}",
		Summary:     "Get user",
		Description: "Returns a user profile",
		Tags:        []string{"Users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID:   "subscribe",
		Method:        http.MethodPost,
		Path:          "/api/users/{id}/subscribe",
		Summary:       "Subscribe",
		Description:   "Follows an author",
		Tags:          []string{"Users"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleSubscribe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "unsubscribe",
		Method:        http.MethodDelete,
		Path:          "/api/users/{id}/subscribe",
		Summary:       "Unsubscribe",
		Description:   "Stops following an author",
		Tags:          []string{"Users"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleUnsubscribe)
}

// === DTOs ===

// RegisterRequest is the request body for registration.
type RegisterRequest struct {
	Email     string `json:"email" maxLength:"254" doc:"Email address, used to log in"`
	Username  string `json:"username" maxLength:"150" doc:"Unique username"`
	FirstName string `json:"first_name" maxLength:"150" doc:"First name"`
	LastName  string `json:"last_name" maxLength:"150" doc:"Last name"`
	Password  string `json:"password" maxLength:"1024" doc:"Password, at least 8 characters"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body RegisterRequest
}

// RegisteredUserResponse is returned after registration.
type RegisteredUserResponse struct {
	ID        string `json:"id" doc:"User ID"`
	Email     string `json:"email" doc:"Email"`
	Username  string `json:"username" doc:"Username"`
	FirstName string `json:"first_name" doc:"First name"`
	LastName  string `json:"last_name" doc:"Last name"`
}

// RegisteredUserOutput wraps the registration response for Huma.
type RegisteredUserOutput struct {
	Body RegisteredUserResponse
}

// UserResponse is a user as seen by the caller.
type UserResponse struct {
	ID           string `json:"id" doc:"User ID"`
	Email        string `json:"email" doc:"Email"`
	Username     string `json:"username" doc:"Username"`
	FirstName    string `json:"first_name" doc:"First name"`
	LastName     string `json:"last_name" doc:"Last name"`
	IsSubscribed bool   `json:"is_subscribed" doc:"Whether the caller follows this user"`
}

// UserOutput wraps a user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// PageParams are the shared pagination query parameters.
type PageParams struct {
	Page  int `query:"page" minimum:"1" doc:"1-based page number"`
	Limit int `query:"limit" minimum:"1" maximum:"100" doc:"Items per page"`
}

func (p PageParams) page() store.Page {
	return store.Page{Number: p.Page, Limit: p.Limit}
}

// ListUsersInput contains parameters for listing users.
type ListUsersInput struct {
	Authorization string `header:"Authorization"`
	PageParams
}

// UserListResponse is one page of users.
type UserListResponse struct {
	Count   int            `json:"count" doc:"Total number of users"`
	Page    int            `json:"page" doc:"Page number"`
	Limit   int            `json:"limit" doc:"Page size"`
	Results []UserResponse `json:"results" doc:"Users on this page"`
}

// UserListOutput wraps the user list for Huma.
type UserListOutput struct {
	Body UserListResponse
}

// GetUserInput identifies a user.
type GetUserInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
}

// SetPasswordRequest is the request body for changing a password.
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" maxLength:"1024" doc:"Current password"`
	NewPassword     string `json:"new_password" maxLength:"1024" doc:"New password, at least 8 characters"`
}

// SetPasswordInput wraps the set password request for Huma.
type SetPasswordInput struct {
	Authorization string `header:"Authorization"`
	Body          SetPasswordRequest
}

// SubscribeInput identifies the author to follow.
type SubscribeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Author user ID"`
	RecipesLimit  int    `query:"recipes_limit" minimum:"0" doc:"Maximum recipes to include per author"`
}

// SubscriptionResponse is a followed author with recipe previews.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeShortResponse `json:"recipes" doc:"Newest recipes of the author"`
	RecipesCount int                   `json:"recipes_count" doc:"Total recipes by the author"`
}

// SubscriptionOutput wraps a subscription for Huma.
type SubscriptionOutput struct {
	Body SubscriptionResponse
}

// ListSubscriptionsInput contains parameters for listing subscriptions.
type ListSubscriptionsInput struct {
	Authorization string `header:"Authorization"`
	PageParams
	RecipesLimit int `query:"recipes_limit" minimum:"0" doc:"Maximum recipes to include per author"`
}

// SubscriptionListResponse is one page of subscriptions.
type SubscriptionListResponse struct {
	Count   int                    `json:"count" doc:"Total number of followed authors"`
	Page    int                    `json:"page" doc:"Page number"`
	Limit   int                    `json:"limit" doc:"Page size"`
	Results []SubscriptionResponse `json:"results" doc:"Authors on this page"`
}

// SubscriptionListOutput wraps the subscription list for Huma.
type SubscriptionListOutput struct {
	Body SubscriptionListResponse
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*RegisteredUserOutput, error) {
	user, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Email:     input.Body.Email,
		Username:  input.Body.Username,
		FirstName: input.Body.FirstName,
		LastName:  input.Body.LastName,
		Password:  input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &RegisteredUserOutput{
		Body: RegisteredUserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}, nil
}

func (s *Server) handleListUsers(ctx context.Context, input *ListUsersInput) (*UserListOutput, error) {
	viewerID, err := s.optionalViewer(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	result, err := s.services.User.ListUsers(ctx, viewerID, input.page())
	if err != nil {
		return nil, err
	}

	users := make([]UserResponse, len(result.Items))
	for i, u := range result.Items {
		users[i] = mapUserView(u)
	}

	return &UserListOutput{
		Body: UserListResponse{
			Count:   result.Total,
			Page:    result.Page,
			Limit:   result.Limit,
			Results: users,
		},
	}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, input *AuthorizedInput) (*UserOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.User.GetUser(ctx, userID, userID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserView(view)}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *GetUserInput) (*UserOutput, error) {
	viewerID, err := s.optionalViewer(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	view, err := s.services.User.GetUser(ctx, viewerID, input.ID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserView(view)}, nil
}

func (s *Server) handleSetPassword(ctx context.Context, input *SetPasswordInput) (*struct{}, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	err = s.services.Auth.SetPassword(ctx, userID, service.SetPasswordRequest{
		CurrentPassword: input.Body.CurrentPassword,
		NewPassword:     input.Body.NewPassword,
	})
	return nil, err
}

func (s *Server) handleSubscribe(ctx context.Context, input *SubscribeInput) (*SubscriptionOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	sub, err := s.services.User.Subscribe(ctx, userID, input.ID, input.RecipesLimit)
	if err != nil {
		return nil, err
	}

	return &SubscriptionOutput{Body: mapSubscription(sub)}, nil
}

func (s *Server) handleUnsubscribe(ctx context.Context, input *GetUserInput) (*struct{}, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	return nil, s.services.User.Unsubscribe(ctx, userID, input.ID)
}

func (s *Server) handleListSubscriptions(ctx context.Context, input *ListSubscriptionsInput) (*SubscriptionListOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	result, err := s.services.User.Subscriptions(ctx, userID, input.page(), input.RecipesLimit)
	if err != nil {
		return nil, err
	}

	subs := make([]SubscriptionResponse, len(result.Items))
	for i, sub := range result.Items {
		subs[i] = mapSubscription(sub)
	}

	return &SubscriptionListOutput{
		Body: SubscriptionListResponse{
			Count:   result.Total,
			Page:    result.Page,
			Limit:   result.Limit,
			Results: subs,
		},
	}, nil
}

// === Helpers ===

func mapUser(u *domain.User, subscribed bool) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

func mapUserView(v *service.UserView) UserResponse {
	return mapUser(v.User, v.IsSubscribed)
}

func mapSubscription(sub *service.Subscription) SubscriptionResponse {
	recipes := make([]RecipeShortResponse, len(sub.Recipes))
	for i, r := range sub.Recipes {
		recipes[i] = mapRecipeShort(r)
	}
	return SubscriptionResponse{
		UserResponse: mapUserView(&sub.UserView),
		Recipes:      recipes,
		RecipesCount: sub.RecipesCount,
	}
}
