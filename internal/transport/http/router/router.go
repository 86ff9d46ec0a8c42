package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/baechuer/eventhub/internal/config"
	"github.com/baechuer/eventhub/internal/transport/http/handlers"
	authmw "github.com/baechuer/eventhub/internal/transport/http/middleware"
)

type Handlers struct {
	Events     *handlers.EventsHandler
	Tickets    *handlers.TicketsHandler
	Auth       *handlers.AuthHandler
	Categories *handlers.CategoriesHandler
	Health     *handlers.HealthHandler
}

func New(h Handlers, auth *authmw.AuthMiddleware, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authmw.AccessLog)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", h.Health.Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
		})

		r.Get("/events", h.Events.List)
		r.Get("/events/{event_id}", h.Events.Get)
		r.Get("/categories", h.Categories.List)

		r.Group(func(r chi.Router) {
			r.Use(auth.Require)

			r.Post("/events", h.Events.Create)
			r.Patch("/events/{event_id}", h.Events.Update)
			r.Delete("/events/{event_id}", h.Events.Delete)
			r.Post("/events/{event_id}/poster", h.Events.UploadPoster)
			r.Get("/events/mine", h.Events.ListMine)

			r.Post("/events/{event_id}/rsvp", h.Events.RSVP)
			r.Post("/events/{event_id}/like", h.Events.ToggleLike)

			r.Post("/tickets/verify", h.Tickets.Verify)
			r.Get("/tickets/mine", h.Tickets.ListMine)
			r.Get("/tickets/{ticket_id}", h.Tickets.Get)

			r.Get("/registrations/mine", h.Events.ListMyRegistrations)
			r.Get("/registrations/event/{event_id}", h.Events.ListAttendees)
			r.Get("/likes/mine", h.Events.ListMyLikes)

			r.Get("/me", h.Auth.Me)
			r.Patch("/me", h.Auth.UpdateMe)
			r.Post("/me/avatar", h.Auth.UploadAvatar)

			r.Post("/categories", h.Categories.Create)
			r.Delete("/categories/{category_id}", h.Categories.Delete)
		})
	})

	// Local disk media is served straight from the media root. With the s3
	// driver asset URLs point at the bucket instead and this mount is unused.
	if cfg.MediaDriver == "fs" {
		fs := http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaRoot)))
		r.Get("/media/*", fs.ServeHTTP)
	}

	return r
}
