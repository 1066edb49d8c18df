package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"jobprep/api/internal/handlers"
	"jobprep/api/internal/middleware"
	"jobprep/api/internal/models"
)

func ApplicationRoutes(router *chi.Mux, applicationHandler *handlers.ApplicationHandler, requireAuth func(http.Handler) http.Handler) {
	router.Route("/api/applications", func(r chi.Router) {
		r.Use(requireAuth)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleCandidate))
			r.With(middleware.ValidateRequest[*models.ApplyRequest]()).Post("/apply", applicationHandler.ApplyHandler)
			r.Get("/me", applicationHandler.MyApplicationsHandler)
			r.Get("/check/{jobId}", applicationHandler.CheckApplicationHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleRecruiter))
			r.Get("/recruiter", applicationHandler.RecruiterApplicationsHandler)
			r.Get("/job/{jobId}", applicationHandler.JobApplicationsHandler)
			r.With(middleware.ValidateRequest[*models.UpdateApplicationStatusRequest]()).Patch("/{id}", applicationHandler.UpdateStatusHandler)
		})
	})
}
