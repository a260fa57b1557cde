package api

import (
	"net/http"
	"social_feed/internal/api/handler"
	"social_feed/internal/api/middleware"
	"social_feed/internal/app/service"
	"social_feed/internal/common/security"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	postService *service.PostService,
	db handler.Pinger,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(middleware.Metrics)

	// Searches "Authorization: Bearer T" and puts the verified token (or the
	// verification error) in the request context for middleware.Authenticator.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", handler.Health(db))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		api.Route("/auth", authHandler.RegisterRoutes)

		// Everything else needs a bearer token
		api.Group(func(protected chi.Router) {
			protected.Use(middleware.Authenticator(authService))

			postHandler := handler.NewPostHandler(postService)
			protected.Route("/posts", postHandler.RegisterRoutes)

			userHandler := handler.NewUserHandler(userService)
			protected.Route("/users", userHandler.RegisterRoutes)
		})
	})

	return r
}
