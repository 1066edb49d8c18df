package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"jobprep/api/internal/export"
	"jobprep/api/internal/interview"
	"jobprep/api/internal/middleware"
	"jobprep/api/internal/models"
	"jobprep/api/internal/utils"
)

type InterviewHandler struct {
	service InterviewService
	logger  *zap.Logger
}

func NewInterviewHandler(service InterviewService, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{service: service, logger: logger}
}

func (h *InterviewHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	req := middleware.GetValidatedRequest[*models.StartInterviewRequest](r)

	session, firstQuestion, err := h.service.Start(r.Context(), p.UserID, interview.StartInput{
		RoleLabel:       req.JobRole,
		Specification:   req.Specification,
		ExperienceLevel: req.ExperienceLevel,
	})
	if err != nil {
		h.writeError(w, err, "Failed to start interview")
		return
	}

	utils.JSON(w, http.StatusCreated, models.StartInterviewResponse{
		InterviewID:   session.ID,
		FirstQuestion: firstQuestion,
	})
}

func (h *InterviewHandler) AnswerHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.AnswerRequest](r)
	session, ok := h.authorizedSession(w, r)
	if !ok {
		return
	}

	next, err := h.service.SubmitAnswer(r.Context(), session.ID, req.Answer)
	if err != nil {
		h.writeError(w, err, "Failed to process answer")
		return
	}
	utils.JSON(w, http.StatusOK, models.AnswerResponse{NextQuestion: next})
}

func (h *InterviewHandler) EndHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := h.authorizedSession(w, r)
	if !ok {
		return
	}

	ended, err := h.service.End(r.Context(), session.ID)
	if err != nil {
		h.writeError(w, err, "Failed to end interview")
		return
	}
	utils.JSON(w, http.StatusOK, ended)
}

func (h *InterviewHandler) ListMineHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	sessions, err := h.service.ListForOwner(r.Context(), p.UserID)
	if err != nil {
		h.writeError(w, err, "Failed to fetch interviews")
		return
	}
	utils.JSON(w, http.StatusOK, sessions)
}

func (h *InterviewHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := h.authorizedSession(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, session)
}

// ExportHandler serves the transcript as a download in the ?format= requested.
func (h *InterviewHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	exporter, err := export.ForFormat(r.URL.Query().Get("format"))
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid_format", "Format must be one of: json, yaml, md")
		return
	}
	session, ok := h.authorizedSession(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, session); err != nil {
		h.writeError(w, err, "Failed to export interview")
		return
	}

	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(session, exporter)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *InterviewHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), p.UserID, p.IsAdmin); err != nil {
		h.writeError(w, err, "Failed to delete interview")
		return
	}
	utils.JSON(w, http.StatusOK, models.MessageResponse{Message: "Interview deleted successfully"})
}

// authorizedSession loads the {id} session and checks the caller owns it or is an admin.
func (h *InterviewHandler) authorizedSession(w http.ResponseWriter, r *http.Request) (*models.InterviewSession, bool) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return nil, false
	}

	session, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "Failed to load interview")
		return nil, false
	}
	if err := interview.Authorize(session, p.UserID, p.IsAdmin); err != nil {
		h.writeError(w, err, "")
		return nil, false
	}
	return session, true
}

func (h *InterviewHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.JSONError(w, http.StatusNotFound, "not_found", "Interview not found")
	case errors.Is(err, models.ErrForbidden):
		utils.JSONError(w, http.StatusForbidden, "forbidden", "Not authorized to access this interview")
	default:
		status, _ := utils.StatusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error(fallback, zap.Error(err))
		}
		utils.WriteError(w, err, fallback)
	}
}
