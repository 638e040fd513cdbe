package handlers

import (
	"net/http"

	"ride-tracker-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterConfig bundles everything the HTTP surface is built from
type RouterConfig struct {
	APIPrefix      string
	AllowedOrigins []string
	Activities     *ActivityHandler
	Users          *UserHandler
	Contact        *ContactHandler
	Feed           *FeedHandler
}

// NewRouter mounts every route under the API prefix
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Route(cfg.APIPrefix, func(r chi.Router) {
		r.Get("/health", Health)

		r.Post("/activities", cfg.Activities.CreateActivity)
		r.Get("/activities", cfg.Activities.ListActivities)
		r.Get("/activities/{activity_id}", cfg.Activities.GetActivity)
		r.Post("/activities/{activity_id}/export", cfg.Activities.ExportActivity)

		r.Post("/contact", cfg.Contact.Contact)

		r.Get("/user/profile", cfg.Users.GetProfile)
		r.Put("/user/profile", cfg.Users.UpdateProfile)
		r.Get("/user/settings", cfg.Users.GetSettings)
		r.Put("/user/settings", cfg.Users.UpdateSettings)

		if cfg.Feed != nil {
			r.Get("/ws", cfg.Feed.HandleWebSocket)
		}
	})

	return r
}
