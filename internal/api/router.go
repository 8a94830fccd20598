package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/jokebox/internal/api/handlers"
	"github.com/isdelr/jokebox/internal/auth"
	"github.com/isdelr/jokebox/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(guard *auth.Guard, codec *auth.SessionCodec, userService services.UserServiceProvider, jokeService services.JokeServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, codec, guard)
	jokeHandler := handlers.NewJokeHandler(jokeService)

	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Get("/me", authHandler.GetMe)

	r.Route("/jokes", func(r chi.Router) {
		r.Get("/", jokeHandler.GetAll)
		r.Get("/random", jokeHandler.GetRandom)
		r.Get("/{id}", jokeHandler.Get)

		// Mutations require a logged-in user
		r.Group(func(r chi.Router) {
			r.Use(guard.RequireUser)
			r.Post("/", jokeHandler.Create)
			r.Delete("/{id}", jokeHandler.Delete)
		})
	})

	return r
}
