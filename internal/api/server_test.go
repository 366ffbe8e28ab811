package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/foodgram-server/internal/auth"
	"github.com/foodgram/foodgram-server/internal/service"
	"github.com/foodgram/foodgram-server/internal/store/sqlite"
	"github.com/foodgram/foodgram-server/internal/validation"
)

type testServer struct {
	t      *testing.T
	server *Server
	store  *sqlite.Store
}

// setupTestServer wires a server over a temporary database. Auth rate limits
// are generous unless opts sets them.
func setupTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	hasher := auth.NewPasswordHasher(auth.Argon2Params{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	v := validation.New()

	services := &Services{
		Auth:       service.NewAuthService(st, tokens, hasher, v, logger),
		User:       service.NewUserService(st, 6, logger),
		Tag:        service.NewTagService(st, v, logger),
		Ingredient: service.NewIngredientService(st, v, logger),
		Recipe:     service.NewRecipeService(st, v, 6, logger),
		Favorite:   service.NewFavoriteService(st, logger),
		Cart:       service.NewCartService(st, logger),
	}

	if opts.AuthRateLimit == 0 {
		opts.AuthRateLimit = 1000
	}
	if opts.AuthRateBurst == 0 {
		opts.AuthRateBurst = 1000
	}

	server := NewServer(st, services, opts, logger)
	t.Cleanup(func() {
		server.Close()
		_ = st.Close()
	})

	return &testServer{t: t, server: server, store: st}
}

// do sends a request; body is JSON-encoded unless nil.
func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return ts.send(req)
}

// send serves a prepared request.
func (ts *testServer) send(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.server.ServeHTTP(w, req)
	return w
}

// userWithToken registers username and logs in.
func (ts *testServer) userWithToken(username string) (userID, token string) {
	ts.t.Helper()

	w := ts.do(http.MethodPost, "/api/users", "", map[string]string{
		"email":      username + "@example.com",
		"username":   username,
		"first_name": "First",
		"last_name":  "Last",
		"password":   "password123",
	})
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())
	var user RegisteredUserResponse
	decode(ts.t, w, &user)

	w = ts.do(http.MethodPost, "/api/auth/token/login", "", map[string]string{
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(ts.t, http.StatusOK, w.Code, w.Body.String())
	var tok TokenResponse
	decode(ts.t, w, &tok)

	return user.ID, tok.AuthToken
}

func (ts *testServer) createTag(token, name, color string) TagResponse {
	ts.t.Helper()
	w := ts.do(http.MethodPost, "/api/tags", token, map[string]string{"name": name, "color": color})
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())
	var tag TagResponse
	decode(ts.t, w, &tag)
	return tag
}

func (ts *testServer) createIngredient(token, name, unit string) IngredientResponse {
	ts.t.Helper()
	w := ts.do(http.MethodPost, "/api/ingredients", token, map[string]string{"name": name, "measurement_unit": unit})
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())
	var ing IngredientResponse
	decode(ts.t, w, &ing)
	return ing
}

func (ts *testServer) createRecipe(token string, req RecipeRequest) RecipeResponse {
	ts.t.Helper()
	w := ts.do(http.MethodPost, "/api/recipes", token, req)
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())
	var recipe RecipeResponse
	decode(ts.t, w, &recipe)
	return recipe
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// errorBody mirrors APIError on the wire.
type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	decode(t, w, &body)
	return body
}
