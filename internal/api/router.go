package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aurastyle/wardrobe-be/internal/api/handlers"
	"github.com/aurastyle/wardrobe-be/internal/auth"
	"github.com/aurastyle/wardrobe-be/internal/services"
	"github.com/aurastyle/wardrobe-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	hub *websocket.Hub,
	userService services.UserServiceProvider,
	wardrobeService services.WardrobeServiceProvider,
	outfitService services.OutfitServiceProvider,
	stylistService *services.StylistService,
	eventService services.EventServiceProvider,
) *chi.Mux {
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
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, eventService)
	wardrobeHandler := handlers.NewWardrobeHandler(wardrobeService)
	outfitHandler := handlers.NewOutfitHandler(outfitService)
	stylistHandler := handlers.NewStylistHandler(stylistService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub, stylistService)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", userHandler.Register)
		r.Post("/auth/login", userHandler.Login)

		// Everything below is owner-scoped and requires a token.
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware())

			r.Get("/auth/me", userHandler.GetMe)
			r.Get("/ws", wsHandler.Serve)
			r.Get("/events", eventHandler.GetRecent)

			r.Route("/wardrobe", func(r chi.Router) {
				r.Get("/", wardrobeHandler.List)
				r.Post("/", wardrobeHandler.Add)
				r.Delete("/{id}", wardrobeHandler.Delete)
			})

			r.Route("/outfits", func(r chi.Router) {
				r.Get("/", outfitHandler.List)
				r.Delete("/{id}", outfitHandler.Delete)
			})

			r.Route("/stylist", func(r chi.Router) {
				r.Get("/", stylistHandler.State)
				r.Post("/generate", stylistHandler.Generate)
				r.Get("/swap/{itemId}", stylistHandler.SwapCandidates)
				r.Post("/swap", stylistHandler.Swap)
				r.Post("/regenerate", stylistHandler.Regenerate)
				r.Post("/reset", stylistHandler.Reset)
			})
		})
	})

	return r
}
