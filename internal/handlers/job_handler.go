package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"jobprep/api/internal/middleware"
	"jobprep/api/internal/models"
	"jobprep/api/internal/utils"
)

type JobHandler struct {
	jobs         JobRepository
	users        UserRepository
	applications ApplicationRepository
	logger       *zap.Logger
}

func NewJobHandler(jobs JobRepository, users UserRepository, applications ApplicationRepository, logger *zap.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, users: users, applications: applications, logger: logger}
}

// CreateJobHandler posts a job for the calling recruiter. The company is copied
// from the recruiter's profile.
func (h *JobHandler) CreateJobHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	req := middleware.GetValidatedRequest[*models.CreateJobRequest](r)

	recruiter, err := h.users.GetUserByID(r.Context(), p.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.JSONError(w, http.StatusUnauthorized, "invalid_token", "User no longer exists")
			return
		}
		h.logger.Error("Failed to load recruiter", zap.Error(err), zap.String("user_id", p.UserID))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error, please try again later.")
		return
	}

	job, err := h.jobs.Create(r.Context(), &models.Job{
		RecruiterID:    p.UserID,
		Company:        recruiter.Company,
		Title:          req.Title,
		Description:    req.Description,
		Salary:         req.Salary,
		Skills:         req.Skills,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
	})
	if err != nil {
		h.logger.Error("Failed to create job", zap.Error(err), zap.String("user_id", p.UserID))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error, please try again later.")
		return
	}

	h.logger.Info("Job posted", zap.String("job_id", job.ID), zap.String("recruiter_id", p.UserID))
	utils.JSON(w, http.StatusCreated, job)
}

// ListJobsHandler serves the public catalog of open jobs.
func (h *JobHandler) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := utils.ParsePositiveInt(q.Get("page"), models.DefaultPage)
	limit := utils.ParsePositiveInt(q.Get("limit"), models.DefaultLimit)
	if limit > models.MaxLimit {
		limit = models.MaxLimit
	}

	filter := models.JobFilter{
		Location:       q.Get("location"),
		EmploymentType: q.Get("employmentType"),
		Skills:         utils.SplitCSV(q.Get("skills")),
	}

	jobs, total, err := h.jobs.List(r.Context(), filter, page, limit)
	if err != nil {
		h.logger.Error("Failed to list jobs", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error, job is not listing.")
		return
	}

	utils.JSON(w, http.StatusOK, models.JobListResponse{
		Page:       page,
		TotalPages: utils.TotalPages(total, limit),
		TotalJobs:  total,
		Jobs:       jobs,
	})
}

func (h *JobHandler) MyJobsHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	jobs, err := h.jobs.ListByRecruiter(r.Context(), p.UserID)
	if err != nil {
		h.logger.Error("Failed to list recruiter jobs", zap.Error(err), zap.String("user_id", p.UserID))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error, could not fetch your jobs.")
		return
	}
	utils.JSON(w, http.StatusOK, models.JobsResponse{Jobs: jobs})
}

func (h *JobHandler) GetJobHandler(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeJobError(w, err)
		return
	}

	detail := models.JobDetail{Job: *job}
	recruiter, err := h.users.GetUserByID(r.Context(), job.RecruiterID)
	switch {
	case err == nil:
		detail.Recruiter = recruiter.Summary()
	case !errors.Is(err, models.ErrNotFound):
		h.logger.Warn("Failed to load job recruiter", zap.Error(err), zap.String("job_id", job.ID))
	}
	utils.JSON(w, http.StatusOK, detail)
}

func (h *JobHandler) UpdateJobHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	req := middleware.GetValidatedRequest[*models.UpdateJobRequest](r)

	job, ok := h.loadOwnedJob(w, r, p, "Not authorized to update this job")
	if !ok {
		return
	}

	updated, err := h.jobs.Update(r.Context(), job.ID, req.ToUpdate())
	if err != nil {
		h.writeJobError(w, err)
		return
	}
	h.logger.Info("Job updated", zap.String("job_id", job.ID), zap.String("recruiter_id", p.UserID))
	utils.JSON(w, http.StatusOK, updated)
}

// DeleteJobHandler removes the job and every application filed against it.
func (h *JobHandler) DeleteJobHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	job, ok := h.loadOwnedJob(w, r, p, "Not authorized to delete this job")
	if !ok {
		return
	}

	if err := h.jobs.Delete(r.Context(), job.ID); err != nil {
		h.writeJobError(w, err)
		return
	}
	removed, err := h.applications.DeleteByJob(r.Context(), job.ID)
	if err != nil {
		h.logger.Warn("Failed to remove applications of deleted job", zap.Error(err), zap.String("job_id", job.ID))
	}

	h.logger.Info("Job deleted",
		zap.String("job_id", job.ID),
		zap.String("recruiter_id", p.UserID),
		zap.Int64("applications_removed", removed))
	utils.JSON(w, http.StatusOK, models.MessageResponse{Message: "Job deleted successfully"})
}

// loadOwnedJob fetches the {id} job and checks the caller posted it.
func (h *JobHandler) loadOwnedJob(w http.ResponseWriter, r *http.Request, p middleware.Principal, forbidden string) (*models.Job, bool) {
	job, err := h.jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeJobError(w, err)
		return nil, false
	}
	if job.RecruiterID != p.UserID {
		utils.JSONError(w, http.StatusForbidden, "forbidden", forbidden)
		return nil, false
	}
	return job, true
}

func (h *JobHandler) writeJobError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "not_found", "Job not found")
		return
	}
	h.logger.Error("Job repository error", zap.Error(err))
	utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error")
}
