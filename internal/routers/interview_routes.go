package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"jobprep/api/internal/handlers"
	"jobprep/api/internal/middleware"
	"jobprep/api/internal/models"
)

// InterviewRoutes mounts the mock interview endpoints. Any signed-in user may practise.
func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, requireAuth func(http.Handler) http.Handler) {
	router.Route("/api/interview", func(r chi.Router) {
		r.Use(requireAuth)

		r.With(middleware.ValidateRequest[*models.StartInterviewRequest]()).Post("/start", interviewHandler.StartHandler)
		r.Get("/my", interviewHandler.ListMineHandler)
		r.Get("/{id}", interviewHandler.GetHandler)
		r.Delete("/{id}", interviewHandler.DeleteHandler)
		r.With(middleware.ValidateRequest[*models.AnswerRequest]()).Post("/{id}/answer", interviewHandler.AnswerHandler)
		r.Post("/{id}/end", interviewHandler.EndHandler)
		r.Get("/{id}/export", interviewHandler.ExportHandler)
	})
}
