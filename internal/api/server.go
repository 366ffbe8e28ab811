// Package api provides the HTTP API server and handlers for the Foodgram server.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	domainerrors "github.com/foodgram/foodgram-server/internal/errors"
	"github.com/foodgram/foodgram-server/internal/http/response"
	"github.com/foodgram/foodgram-server/internal/metrics"
	"github.com/foodgram/foodgram-server/internal/service"
	"github.com/foodgram/foodgram-server/internal/store"
)

// Services groups all business logic services used by the API server.
type Services struct {
	Auth       *service.AuthService
	User       *service.UserService
	Tag        *service.TagService
	Ingredient *service.IngredientService
	Recipe     *service.RecipeService
	Favorite   *service.FavoriteService
	Cart       *service.CartService
}

// Options tune the HTTP surface.
type Options struct {
	AllowedOrigins []string
	// TrustProxy takes the client IP from forwarding headers. Only safe
	// behind a proxy that overwrites them.
	TrustProxy bool
	// AuthRateLimit and AuthRateBurst limit login and registration per client IP.
	AuthRateLimit float64
	AuthRateBurst int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.AuthRateLimit <= 0 {
		opts.AuthRateLimit = 1
	}
	if opts.AuthRateBurst <= 0 {
		opts.AuthRateBurst = 5
	}

	s := &Server{
		store:           st,
		services:        services,
		router:          chi.NewRouter(),
		logger:          logger,
		authRateLimiter: NewRateLimiter(opts.AuthRateLimit, opts.AuthRateBurst),
	}

	s.setupMiddleware(opts)

	humaConfig := huma.DefaultConfig("Foodgram API", "1.0.0")
	humaConfig.Info.Description = "Recipes, favorites, subscriptions and shopping lists."
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler(logger)

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.authRateLimiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(middleware.RequestID)
	if opts.TrustProxy {
		s.router.Use(middleware.RealIP)
	}
	s.router.Use(middleware.StripSlashes)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(metrics.Middleware)

	if len(opts.AllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"Content-Disposition"},
			MaxAge:         300,
		}))
	}

	s.router.Use(RateLimitMiddleware(s.authRateLimiter, postTo(pathLogin, pathUsers), s.logger))
}

// setupRoutes registers every operation.
func (s *Server) setupRoutes() {
	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, domainerrors.CodeNotFound, "route not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", s.logger)
	})
	s.router.Handle("/metrics", metrics.Handler())

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerTagRoutes()
	s.registerIngredientRoutes()
	s.registerRecipeRoutes()
	s.registerShoppingRoutes()
}
