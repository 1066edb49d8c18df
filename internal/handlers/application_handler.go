package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"jobprep/api/internal/events"
	"jobprep/api/internal/middleware"
	"jobprep/api/internal/models"
	"jobprep/api/internal/utils"
)

type ApplicationHandler struct {
	applications ApplicationRepository
	jobs         JobRepository
	users        UserRepository
	publisher    events.Publisher
	logger       *zap.Logger
}

func NewApplicationHandler(applications ApplicationRepository, jobs JobRepository, users UserRepository, publisher events.Publisher, logger *zap.Logger) *ApplicationHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ApplicationHandler{
		applications: applications,
		jobs:         jobs,
		users:        users,
		publisher:    publisher,
		logger:       logger,
	}
}

func (h *ApplicationHandler) ApplyHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	req := middleware.GetValidatedRequest[*models.ApplyRequest](r)

	job, err := h.jobs.GetByID(r.Context(), req.JobID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		h.serverError(w, "Failed to load job", err)
		return
	}
	if job == nil || job.Status != models.JobStatusOpen {
		utils.JSONError(w, http.StatusNotFound, "not_found", "Job not found or not open")
		return
	}

	existing, err := h.applications.FindByCandidateAndJob(r.Context(), p.UserID, job.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		h.serverError(w, "Failed to check existing application", err)
		return
	}
	if existing != nil {
		utils.JSONError(w, http.StatusConflict, "already_applied", "You have already applied to this job")
		return
	}

	app, err := h.applications.Create(r.Context(), &models.Application{
		CandidateID: p.UserID,
		JobID:       job.ID,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			utils.JSONError(w, http.StatusConflict, "already_applied", "You have already applied to this job")
			return
		}
		h.serverError(w, "Failed to create application", err)
		return
	}

	events.PublishAsync(h.publisher, h.logger, events.ChannelApplicationSubmitted, applicationEvent(app))
	h.logger.Info("Application submitted",
		zap.String("application_id", app.ID),
		zap.String("job_id", job.ID),
		zap.String("candidate_id", p.UserID))
	utils.JSON(w, http.StatusCreated, models.ApplicationResponse{Message: "Applied successfully", Application: app})
}

// MyApplicationsHandler lists the caller's applications with a summary of each job.
func (h *ApplicationHandler) MyApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	apps, err := h.applications.ListByCandidate(r.Context(), p.UserID)
	if err != nil {
		h.serverError(w, "Failed to list candidate applications", err)
		return
	}
	jobs, err := h.jobs.GetByIDs(r.Context(), jobIDsOf(apps))
	if err != nil {
		h.serverError(w, "Failed to load application jobs", err)
		return
	}

	views := make([]models.ApplicationView, 0, len(apps))
	for _, app := range apps {
		view := models.ApplicationView{Application: app}
		if job, ok := jobs[app.JobID]; ok {
			view.Job = job.Summary()
		}
		views = append(views, view)
	}
	utils.JSON(w, http.StatusOK, models.ApplicationsResponse{Total: len(views), Applications: views})
}

// RecruiterApplicationsHandler lists applications across every job the caller posted.
func (h *ApplicationHandler) RecruiterApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	jobs, err := h.jobs.ListByRecruiter(r.Context(), p.UserID)
	if err != nil {
		h.serverError(w, "Failed to list recruiter jobs", err)
		return
	}
	byID := make(map[string]*models.Job, len(jobs))
	ids := make([]string, 0, len(jobs))
	for i := range jobs {
		byID[jobs[i].ID] = &jobs[i]
		ids = append(ids, jobs[i].ID)
	}

	apps, err := h.applications.ListByJobs(r.Context(), ids)
	if err != nil {
		h.serverError(w, "Failed to list applications", err)
		return
	}
	candidates, err := h.users.GetUsersByIDs(r.Context(), candidateIDsOf(apps))
	if err != nil {
		h.serverError(w, "Failed to load candidates", err)
		return
	}

	views := make([]models.ApplicationView, 0, len(apps))
	for _, app := range apps {
		view := models.ApplicationView{Application: app}
		if job, ok := byID[app.JobID]; ok {
			view.Job = job.Summary()
		}
		if user, ok := candidates[app.CandidateID]; ok {
			view.Candidate = user.Summary()
		}
		views = append(views, view)
	}
	utils.JSON(w, http.StatusOK, models.ApplicationsResponse{Total: len(views), Applications: views})
}

// JobApplicationsHandler lists applications for one job owned by the caller.
func (h *ApplicationHandler) JobApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	job, err := h.jobs.GetByID(r.Context(), chi.URLParam(r, "jobId"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "not_found", "Job not found")
			return
		}
		h.serverError(w, "Failed to load job", err)
		return
	}
	if job.RecruiterID != p.UserID {
		utils.JSONError(w, http.StatusForbidden, "forbidden", "Not authorized to view applications for this job")
		return
	}

	apps, err := h.applications.ListByJob(r.Context(), job.ID)
	if err != nil {
		h.serverError(w, "Failed to list job applications", err)
		return
	}
	candidates, err := h.users.GetUsersByIDs(r.Context(), candidateIDsOf(apps))
	if err != nil {
		h.serverError(w, "Failed to load candidates", err)
		return
	}

	views := make([]models.ApplicationView, 0, len(apps))
	for _, app := range apps {
		view := models.ApplicationView{Application: app}
		if user, ok := candidates[app.CandidateID]; ok {
			view.Candidate = user.Summary()
		}
		views = append(views, view)
	}
	utils.JSON(w, http.StatusOK, models.ApplicationsResponse{Total: len(views), Applications: views})
}

func (h *ApplicationHandler) CheckApplicationHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	_, err := h.applications.FindByCandidateAndJob(r.Context(), p.UserID, chi.URLParam(r, "jobId"))
	switch {
	case err == nil:
		utils.JSON(w, http.StatusOK, models.ApplicationCheckResponse{Applied: true})
	case errors.Is(err, models.ErrNotFound):
		utils.JSON(w, http.StatusOK, models.ApplicationCheckResponse{Applied: false})
	default:
		h.serverError(w, "Failed to check application", err)
	}
}

// UpdateStatusHandler lets the recruiter who owns the job move an application along.
func (h *ApplicationHandler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	req := middleware.GetValidatedRequest[*models.UpdateApplicationStatusRequest](r)

	app, err := h.applications.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "not_found", "Application not found")
			return
		}
		h.serverError(w, "Failed to load application", err)
		return
	}

	job, err := h.jobs.GetByID(r.Context(), app.JobID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		h.serverError(w, "Failed to load job", err)
		return
	}
	if job == nil || job.RecruiterID != p.UserID {
		utils.JSONError(w, http.StatusForbidden, "forbidden", "Not authorized to update this application")
		return
	}

	updated, err := h.applications.UpdateStatus(r.Context(), app.ID, req.Status)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "not_found", "Application not found")
			return
		}
		h.serverError(w, "Failed to update application status", err)
		return
	}

	events.PublishAsync(h.publisher, h.logger, events.ChannelApplicationStatusChanged, applicationEvent(updated))
	h.logger.Info("Application status updated",
		zap.String("application_id", updated.ID),
		zap.String("status", updated.Status))
	utils.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) serverError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error")
}

func applicationEvent(app *models.Application) events.ApplicationEvent {
	return events.ApplicationEvent{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		CandidateID:   app.CandidateID,
		Status:        app.Status,
		At:            time.Now().UTC(),
	}
}

func jobIDsOf(apps []models.Application) []string {
	seen := make(map[string]bool, len(apps))
	ids := make([]string, 0, len(apps))
	for _, app := range apps {
		if !seen[app.JobID] {
			seen[app.JobID] = true
			ids = append(ids, app.JobID)
		}
	}
	return ids
}

func candidateIDsOf(apps []models.Application) []string {
	seen := make(map[string]bool, len(apps))
	ids := make([]string, 0, len(apps))
	for _, app := range apps {
		if !seen[app.CandidateID] {
			seen[app.CandidateID] = true
			ids = append(ids, app.CandidateID)
		}
	}
	return ids
}
