package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/w24010/Mapmoments/internal/handler"
	"github.com/w24010/Mapmoments/internal/httputil"
	"github.com/w24010/Mapmoments/internal/repository"
	authmw "github.com/w24010/Mapmoments/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	PinHandler      *handler.PinHandler
	MediaHandler    *handler.MediaHandler
	FriendHandler   *handler.FriendHandler
	MessageHandler  *handler.MessageHandler
	EventHandler    *handler.EventHandler
	DiscoverHandler *handler.DiscoverHandler
	UserRepo        repository.UserRepository
	JWTSecret       string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/guest", cfg.AuthHandler.Guest)
	})

	// Profile pictures are publicly readable
	r.Get("/users/{id}/profile-picture", cfg.UserHandler.GetProfilePhoto)

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret, cfg.UserRepo))

		r.Get("/auth/me", cfg.AuthHandler.Me)

		r.Route("/users", func(r chi.Router) {
			r.Get("/search", cfg.UserHandler.Search)
			r.Post("/profile-picture", cfg.UserHandler.UploadProfilePhoto)
			r.Get("/{id}/pins", cfg.PinHandler.UserPins)
		})

		r.Route("/pins", func(r chi.Router) {
			r.Post("/", cfg.PinHandler.Create)
			r.Get("/", cfg.PinHandler.Feed)
			r.Get("/search", cfg.PinHandler.Search)
			r.Get("/{id}", cfg.PinHandler.Get)
			r.Delete("/{id}", cfg.PinHandler.Delete)
			r.Post("/{id}/like", cfg.PinHandler.ToggleLike)
			r.Post("/{id}/comments", cfg.PinHandler.AddComment)
			r.Delete("/{id}/comments/{commentId}", cfg.PinHandler.DeleteComment)
			r.Post("/{id}/media", cfg.MediaHandler.Upload)
			r.Get("/{id}/media", cfg.MediaHandler.List)
		})

		r.Delete("/media/{id}", cfg.MediaHandler.Delete)

		r.Route("/friends", func(r chi.Router) {
			r.Get("/", cfg.FriendHandler.List)
			r.Get("/requests", cfg.FriendHandler.Requests)
			r.Post("/request/{userId}", cfg.FriendHandler.Request)
			r.Post("/accept/{userId}", cfg.FriendHandler.Accept)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Post("/", cfg.MessageHandler.Send)
			r.Get("/", cfg.MessageHandler.Conversations)
			r.Get("/{friendId}", cfg.MessageHandler.Thread)
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", cfg.EventHandler.Create)
			r.Get("/", cfg.EventHandler.List)
			r.Get("/search", cfg.EventHandler.Search)
			r.Post("/{id}/attend", cfg.EventHandler.Attend)
		})

		r.Route("/discover", func(r chi.Router) {
			r.Get("/trending", cfg.DiscoverHandler.Trending)
			r.Get("/nearby", cfg.DiscoverHandler.Nearby)
		})
	})

	return r
}
