package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"jobprep/api/internal/handlers"
	"jobprep/api/internal/middleware"
	"jobprep/api/internal/models"
)

// JobRoutes mounts the public catalog and the recruiter-only posting endpoints.
func JobRoutes(router *chi.Mux, jobHandler *handlers.JobHandler, requireAuth func(http.Handler) http.Handler) {
	router.Route("/api/jobs", func(r chi.Router) {
		r.Get("/", jobHandler.ListJobsHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, middleware.RequireRole(models.RoleRecruiter))
			r.With(middleware.ValidateRequest[*models.CreateJobRequest]()).Post("/create", jobHandler.CreateJobHandler)
			r.Get("/my-jobs", jobHandler.MyJobsHandler)
			r.With(middleware.ValidateRequest[*models.UpdateJobRequest]()).Patch("/{id}", jobHandler.UpdateJobHandler)
			r.Delete("/{id}", jobHandler.DeleteJobHandler)
		})

		r.Get("/{id}", jobHandler.GetJobHandler)
	})
}
