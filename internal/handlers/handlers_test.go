package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"text/template"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"jobprep/api/internal/interview"
	"jobprep/api/internal/middleware"
	"jobprep/api/internal/models"
)

type mockUserRepo struct {
	createUserFn     func(*models.User) error
	getUserByIDFn    func(string) (*models.User, error)
	getUserByEmailFn func(string) (*models.User, error)
	getUsersByIDsFn  func([]string) (map[string]*models.User, error)
	updateUserFn     func(string, map[string]interface{}) (*models.User, error)
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	if m.createUserFn == nil {
		return nil
	}
	return m.createUserFn(user)
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if m.getUserByIDFn == nil {
		panic("unexpected call to GetUserByID")
	}
	return m.getUserByIDFn(id)
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if m.getUserByEmailFn == nil {
		panic("unexpected call to GetUserByEmail")
	}
	return m.getUserByEmailFn(email)
}

func (m *mockUserRepo) GetUsersByIDs(_ context.Context, ids []string) (map[string]*models.User, error) {
	if m.getUsersByIDsFn == nil {
		return map[string]*models.User{}, nil
	}
	return m.getUsersByIDsFn(ids)
}

func (m *mockUserRepo) UpdateUser(_ context.Context, id string, updates map[string]interface{}) (*models.User, error) {
	if m.updateUserFn == nil {
		panic("unexpected call to UpdateUser")
	}
	return m.updateUserFn(id, updates)
}

type mockJobRepo struct {
	createFn          func(*models.Job) (*models.Job, error)
	listFn            func(models.JobFilter, int, int) ([]models.Job, int64, error)
	getByIDFn         func(string) (*models.Job, error)
	getByIDsFn        func([]string) (map[string]*models.Job, error)
	listByRecruiterFn func(string) ([]models.Job, error)
	updateFn          func(string, models.JobUpdate) (*models.Job, error)
	deleteFn          func(string) error
}

func (m *mockJobRepo) Create(_ context.Context, job *models.Job) (*models.Job, error) {
	if m.createFn == nil {
		panic("unexpected call to Create")
	}
	return m.createFn(job)
}

func (m *mockJobRepo) List(_ context.Context, f models.JobFilter, page, limit int) ([]models.Job, int64, error) {
	if m.listFn == nil {
		panic("unexpected call to List")
	}
	return m.listFn(f, page, limit)
}

func (m *mockJobRepo) GetByID(_ context.Context, id string) (*models.Job, error) {
	if m.getByIDFn == nil {
		panic("unexpected call to GetByID")
	}
	return m.getByIDFn(id)
}

func (m *mockJobRepo) GetByIDs(_ context.Context, ids []string) (map[string]*models.Job, error) {
	if m.getByIDsFn == nil {
		return map[string]*models.Job{}, nil
	}
	return m.getByIDsFn(ids)
}

func (m *mockJobRepo) ListByRecruiter(_ context.Context, recruiterID string) ([]models.Job, error) {
	if m.listByRecruiterFn == nil {
		panic("unexpected call to ListByRecruiter")
	}
	return m.listByRecruiterFn(recruiterID)
}

func (m *mockJobRepo) Update(_ context.Context, id string, u models.JobUpdate) (*models.Job, error) {
	if m.updateFn == nil {
		panic("unexpected call to Update")
	}
	return m.updateFn(id, u)
}

func (m *mockJobRepo) Delete(_ context.Context, id string) error {
	if m.deleteFn == nil {
		panic("unexpected call to Delete")
	}
	return m.deleteFn(id)
}

type mockApplicationRepo struct {
	createFn                func(*models.Application) (*models.Application, error)
	findByCandidateAndJobFn func(string, string) (*models.Application, error)
	getByIDFn               func(string) (*models.Application, error)
	listByCandidateFn       func(string) ([]models.Application, error)
	listByJobFn             func(string) ([]models.Application, error)
	listByJobsFn            func([]string) ([]models.Application, error)
	updateStatusFn          func(string, string) (*models.Application, error)
	deleteByJobFn           func(string) (int64, error)
}

func (m *mockApplicationRepo) Create(_ context.Context, app *models.Application) (*models.Application, error) {
	if m.createFn == nil {
		panic("unexpected call to Create")
	}
	return m.createFn(app)
}

func (m *mockApplicationRepo) FindByCandidateAndJob(_ context.Context, candidateID, jobID string) (*models.Application, error) {
	if m.findByCandidateAndJobFn == nil {
		panic("unexpected call to FindByCandidateAndJob")
	}
	return m.findByCandidateAndJobFn(candidateID, jobID)
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*models.Application, error) {
	if m.getByIDFn == nil {
		panic("unexpected call to GetByID")
	}
	return m.getByIDFn(id)
}

func (m *mockApplicationRepo) ListByCandidate(_ context.Context, candidateID string) ([]models.Application, error) {
	if m.listByCandidateFn == nil {
		panic("unexpected call to ListByCandidate")
	}
	return m.listByCandidateFn(candidateID)
}

func (m *mockApplicationRepo) ListByJob(_ context.Context, jobID string) ([]models.Application, error) {
	if m.listByJobFn == nil {
		panic("unexpected call to ListByJob")
	}
	return m.listByJobFn(jobID)
}

func (m *mockApplicationRepo) ListByJobs(_ context.Context, jobIDs []string) ([]models.Application, error) {
	if m.listByJobsFn == nil {
		panic("unexpected call to ListByJobs")
	}
	return m.listByJobsFn(jobIDs)
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, id, status string) (*models.Application, error) {
	if m.updateStatusFn == nil {
		panic("unexpected call to UpdateStatus")
	}
	return m.updateStatusFn(id, status)
}

func (m *mockApplicationRepo) DeleteByJob(_ context.Context, jobID string) (int64, error) {
	if m.deleteByJobFn == nil {
		return 0, nil
	}
	return m.deleteByJobFn(jobID)
}

type mockInterviewService struct {
	startFn        func(string, interview.StartInput) (*models.InterviewSession, string, error)
	submitAnswerFn func(string, string) (string, error)
	endFn          func(string) (*models.InterviewSession, error)
	getFn          func(string) (*models.InterviewSession, error)
	listForOwnerFn func(string) ([]models.InterviewSession, error)
	deleteFn       func(string, string, bool) error
}

func (m *mockInterviewService) Start(_ context.Context, ownerID string, in interview.StartInput) (*models.InterviewSession, string, error) {
	if m.startFn == nil {
		panic("unexpected call to Start")
	}
	return m.startFn(ownerID, in)
}

func (m *mockInterviewService) SubmitAnswer(_ context.Context, id, answer string) (string, error) {
	if m.submitAnswerFn == nil {
		panic("unexpected call to SubmitAnswer")
	}
	return m.submitAnswerFn(id, answer)
}

func (m *mockInterviewService) End(_ context.Context, id string) (*models.InterviewSession, error) {
	if m.endFn == nil {
		panic("unexpected call to End")
	}
	return m.endFn(id)
}

func (m *mockInterviewService) Get(_ context.Context, id string) (*models.InterviewSession, error) {
	if m.getFn == nil {
		panic("unexpected call to Get")
	}
	return m.getFn(id)
}

func (m *mockInterviewService) ListForOwner(_ context.Context, ownerID string) ([]models.InterviewSession, error) {
	if m.listForOwnerFn == nil {
		panic("unexpected call to ListForOwner")
	}
	return m.listForOwnerFn(ownerID)
}

func (m *mockInterviewService) Delete(_ context.Context, id, requesterID string, isAdmin bool) error {
	if m.deleteFn == nil {
		panic("unexpected call to Delete")
	}
	return m.deleteFn(id, requesterID, isAdmin)
}

type mockProvider struct{}

func (mockProvider) GenerateContent(context.Context, string, string) (*models.GenerationResponse, error) {
	return &models.GenerationResponse{Content: "ok"}, nil
}

func (mockProvider) GetProviderName() string { return "mock" }

type mockPromptManager struct {
	templates map[string]map[string]*template.Template
}

func (m *mockPromptManager) BuildPrompt(string, string, interface{}) (string, error) {
	return "mock prompt", nil
}

func (m *mockPromptManager) GetTemplates() map[string]map[string]*template.Template {
	return m.templates
}

var (
	candidate = middleware.Principal{UserID: "1", Role: models.RoleCandidate}
	recruiter = middleware.Principal{UserID: "2", Role: models.RoleRecruiter}
	admin     = middleware.Principal{UserID: "99", Role: models.RoleCandidate, IsAdmin: true}
)

var testLogger = zap.NewNop()

// request builds a request carrying a JSON body, the caller and chi URL params.
func request(method, target string, body interface{}, p *middleware.Principal, params map[string]string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, target, &buf)

	ctx := req.Context()
	if p != nil {
		ctx = middleware.WithPrincipal(ctx, *p)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

// validated runs handler behind the request validation middleware for T.
func validated[T middleware.Validator](handler http.HandlerFunc) http.Handler {
	return middleware.ValidateRequest[T]()(handler)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d (%s)", status, rec.Code, rec.Body.String())
	}
}
