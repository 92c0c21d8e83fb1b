package presentation

import (
	"context"
	"net/http"
	"time"

	"github.com/RaikyD/wb-shipping-service/internal/presentation/helpers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	Auth     *AuthHandler
	Orders   *OrdersHandler
	Shipping *ShippingHandler
	Photos   *PhotosHandler
	PhotoDir string
	DB       Pinger
}

func NewRouter(h Handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if h.DB != nil {
			if err := h.DB.Ping(r.Context()); err != nil {
				helpers.HttpError(w, http.StatusServiceUnavailable, "database unavailable: "+err.Error())
				return
			}
		}
		helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	h.Auth.RegisterPublic(r)
	if h.PhotoDir != "" {
		MountPhotos(r, h.PhotoDir)
	}

	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireSession)
		h.Auth.Register(r)
		h.Orders.Register(r)
		h.Shipping.Register(r)
		h.Photos.Register(r)
	})
	return r
}
