package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/foodgram/foodgram-server/internal/api"
	"github.com/foodgram/foodgram-server/internal/config"
	"github.com/foodgram/foodgram-server/internal/logger"
	"github.com/foodgram/foodgram-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	api *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.api.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:       do.MustInvoke[*service.AuthService](i),
		User:       do.MustInvoke[*service.UserService](i),
		Tag:        do.MustInvoke[*service.TagService](i),
		Ingredient: do.MustInvoke[*service.IngredientService](i),
		Recipe:     do.MustInvoke[*service.RecipeService](i),
		Favorite:   do.MustInvoke[*service.FavoriteService](i),
		Cart:       do.MustInvoke[*service.CartService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TrustProxy:     cfg.Server.TrustProxy,
		AuthRateLimit:  cfg.Auth.RateLimit,
		AuthRateBurst:  cfg.Auth.RateBurst,
	}, log.Component("http"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, api: handler}, nil
}
