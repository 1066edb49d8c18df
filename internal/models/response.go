package models

// uniform error responses
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// GenerationResponse is what a completion provider returns for one prompt.
type GenerationResponse struct {
	Content   string             `json:"content"`
	RequestID string             `json:"request_id"`
	Metadata  GenerationMetadata `json:"metadata"`
}

type GenerationMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AuthResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

type JobListResponse struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	TotalJobs  int64 `json:"totalJobs"`
	Jobs       []Job `json:"jobs"`
}

type JobsResponse struct {
	Jobs []Job `json:"jobs"`
}

// JobDetail is a job with its recruiter's public profile attached.
type JobDetail struct {
	Job
	Recruiter *UserSummary `json:"recruiter,omitempty"`
}

type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type JobSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
	Status   string `json:"status"`
}

// ApplicationView is an application enriched with the job and candidate it refers to.
type ApplicationView struct {
	Application
	Job       *JobSummary  `json:"job,omitempty"`
	Candidate *UserSummary `json:"candidate,omitempty"`
}

type ApplicationsResponse struct {
	Total        int               `json:"total"`
	Applications []ApplicationView `json:"applications"`
}

type ApplicationResponse struct {
	Message     string       `json:"message"`
	Application *Application `json:"application"`
}

type ApplicationCheckResponse struct {
	Applied bool `json:"applied"`
}

type StartInterviewResponse struct {
	InterviewID   string `json:"interviewId"`
	FirstQuestion string `json:"firstQuestion"`
}

type AnswerResponse struct {
	NextQuestion string `json:"nextQuestion"`
}

// TrainingDataPoint represents a single training example in JSONL format for Gemini fine-tuning
type TrainingDataPoint struct {
	Contents []TrainingContent `json:"contents"`
}

type TrainingContent struct {
	Role  string         `json:"role"` // "user" or "model"
	Parts []TrainingPart `json:"parts"`
}

type TrainingPart struct {
	Text string `json:"text"`
}
