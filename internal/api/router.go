package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/airstay/airstay-api/internal/api/handlers"
	"github.com/airstay/airstay-api/internal/auth"
	"github.com/airstay/airstay-api/internal/services"
)

// NewRouter creates and configures a new Chi router. Routes needing a known
// actor go through the auth middleware; listing reads stay public.
func NewRouter(
	tokens *auth.TokenManager,
	userService services.UserServiceProvider,
	placeService services.PlaceServiceProvider,
	bookingService services.BookingServiceProvider,
	eventService services.EventServiceProvider,
	corsOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Credentialed CORS so the SPA can send the session cookie cross-site
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, eventService, tokens)
	placeHandler := handlers.NewPlaceHandler(placeService, eventService)
	bookingHandler := handlers.NewBookingHandler(bookingService, eventService)
	eventHandler := handlers.NewEventHandler(eventService)

	// Public routes
	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)
	r.Post("/logout", userHandler.Logout)
	r.Get("/places", placeHandler.GetAll)
	r.Get("/places/{id}", placeHandler.Get)

	// Routes requiring an authenticated caller
	r.Group(func(r chi.Router) {
		r.Use(tokens.Middleware(userService))

		r.Get("/profile", userHandler.Profile)
		r.Post("/places", placeHandler.Create)
		r.Put("/places", placeHandler.Update)
		r.Get("/user-places", placeHandler.GetMine)
		r.Post("/bookings", bookingHandler.Create)
		r.Get("/bookings", bookingHandler.GetMine)
		r.Get("/events", eventHandler.GetRecent)
	})

	return r
}
