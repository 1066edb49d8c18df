package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"jobprep/api/internal/handlers"
	"jobprep/api/internal/middleware"
	"jobprep/api/internal/models"
)

func AuthRoutes(router *chi.Mux, authHandler *handlers.AuthHandler, requireAuth func(http.Handler) http.Handler) {
	router.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.RegisterRequest]()).Post("/register", authHandler.RegisterHandler)
		r.With(middleware.ValidateRequest[*models.LoginRequest]()).Post("/login", authHandler.LoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", authHandler.MeHandler) // Current user
			r.With(middleware.ValidateRequest[*models.UpdateProfileRequest]()).Patch("/me", authHandler.UpdateMeHandler)
		})
	})
}
