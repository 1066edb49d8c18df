package models

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minNameLength     = 3
	maxNameLength     = 50
	minPasswordLength = 8
	maxCompanyLength  = 100
	maxTitleLength    = 100
	maxDescLength     = 3000
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < minNameLength || n > maxNameLength {
		return &ErrorResponse{Code: "invalid_name", Message: "Name must be between 3 and 50 characters"}
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &ErrorResponse{Code: "invalid_email", Message: "Please provide a valid email address"}
	}
	return nil
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Company  string `json:"company"`
}

// implements the Validator interface
func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	r.Company = strings.TrimSpace(r.Company)

	if r.Name == "" || r.Email == "" || r.Password == "" || r.Role == "" {
		return &ErrorResponse{Code: "missing_fields", Message: "Please provide all required fields"}
	}
	if err := validateName(r.Name); err != nil {
		return err
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if len(r.Password) < minPasswordLength {
		return &ErrorResponse{Code: "weak_password", Message: "Password must be at least 8 characters"}
	}
	if !ValidRoles[r.Role] {
		return &ErrorResponse{Code: "invalid_role", Message: "Role must be one of: candidate, recruiter"}
	}
	if r.Role == RoleRecruiter && r.Company == "" {
		return &ErrorResponse{Code: "missing_company", Message: "Company name is required for recruiters"}
	}
	if utf8.RuneCountInString(r.Company) > maxCompanyLength {
		return &ErrorResponse{Code: "invalid_company", Message: "Company name must be at most 100 characters"}
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)
	if r.Email == "" || r.Password == "" {
		return &ErrorResponse{Code: "missing_fields", Message: "Email and password are required"}
	}
	return nil
}

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Company *string `json:"company"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Name == nil && r.Email == nil && r.Company == nil {
		return &ErrorResponse{Code: "empty_update", Message: "Provide at least one of name, email or company"}
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if err := validateName(name); err != nil {
			return err
		}
		r.Name = &name
	}
	if r.Email != nil {
		email := normalizeEmail(*r.Email)
		if err := validateEmail(email); err != nil {
			return err
		}
		r.Email = &email
	}
	if r.Company != nil {
		company := strings.TrimSpace(*r.Company)
		if utf8.RuneCountInString(company) > maxCompanyLength {
			return &ErrorResponse{Code: "invalid_company", Message: "Company name must be at most 100 characters"}
		}
		r.Company = &company
	}
	return nil
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func validateTitle(title string) error {
	if utf8.RuneCountInString(title) > maxTitleLength {
		return &ErrorResponse{Code: "invalid_title", Message: "Title must be at most 100 characters"}
	}
	return nil
}

func validateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > maxDescLength {
		return &ErrorResponse{Code: "invalid_description", Message: "Description must be at most 3000 characters"}
	}
	return nil
}

func validateEmploymentType(t string) error {
	if !ValidEmploymentTypes[t] {
		return &ErrorResponse{
			Code:    "invalid_employment_type",
			Message: "Employment type must be one of: " + strings.Join(ValidEmploymentTypesList(), ", "),
		}
	}
	return nil
}

type CreateJobRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Salary         string   `json:"salary"`
	Skills         []string `json:"skills"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employmentType"`
}

func (r *CreateJobRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Salary = strings.TrimSpace(r.Salary)
	r.Location = strings.TrimSpace(r.Location)
	r.EmploymentType = strings.TrimSpace(r.EmploymentType)
	r.Skills = cleanSkills(r.Skills)

	if r.Title == "" || r.Description == "" || len(r.Skills) == 0 || r.Location == "" || r.Salary == "" || r.EmploymentType == "" {
		return &ErrorResponse{Code: "missing_fields", Message: "Please fill all required fields"}
	}
	if err := validateTitle(r.Title); err != nil {
		return err
	}
	if err := validateDescription(r.Description); err != nil {
		return err
	}
	return validateEmploymentType(r.EmploymentType)
}

type UpdateJobRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Salary         *string  `json:"salary"`
	Skills         []string `json:"skills"`
	Location       *string  `json:"location"`
	EmploymentType *string  `json:"employmentType"`
	Status         *string  `json:"status"`
}

func (r *UpdateJobRequest) Validate() error {
	if r.Title == nil && r.Description == nil && r.Salary == nil && r.Skills == nil &&
		r.Location == nil && r.EmploymentType == nil && r.Status == nil {
		return &ErrorResponse{Code: "empty_update", Message: "No updatable fields provided"}
	}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return &ErrorResponse{Code: "invalid_title", Message: "Title cannot be empty"}
		}
		if err := validateTitle(title); err != nil {
			return err
		}
		r.Title = &title
	}
	if r.Description != nil {
		if strings.TrimSpace(*r.Description) == "" {
			return &ErrorResponse{Code: "invalid_description", Message: "Description cannot be empty"}
		}
		if err := validateDescription(*r.Description); err != nil {
			return err
		}
	}
	if r.Skills != nil {
		r.Skills = cleanSkills(r.Skills)
		if len(r.Skills) == 0 {
			return &ErrorResponse{Code: "invalid_skills", Message: "Skills cannot be empty"}
		}
	}
	if r.EmploymentType != nil {
		if err := validateEmploymentType(*r.EmploymentType); err != nil {
			return err
		}
	}
	if r.Status != nil && !ValidJobStatuses[*r.Status] {
		return &ErrorResponse{Code: "invalid_status", Message: "Status must be one of: Open, Closed"}
	}
	return nil
}

// ToUpdate converts the request into a repository patch.
func (r *UpdateJobRequest) ToUpdate() JobUpdate {
	return JobUpdate{
		Title:          r.Title,
		Description:    r.Description,
		Salary:         r.Salary,
		Skills:         r.Skills,
		Location:       r.Location,
		EmploymentType: r.EmploymentType,
		Status:         r.Status,
	}
}

type ApplyRequest struct {
	JobID     string `json:"jobId"`
	ResumeURL string `json:"resumeUrl"`
}

func (r *ApplyRequest) Validate() error {
	r.JobID = strings.TrimSpace(r.JobID)
	r.ResumeURL = strings.TrimSpace(r.ResumeURL)
	if r.JobID == "" {
		return &ErrorResponse{Code: "missing_job_id", Message: "Job ID is required"}
	}
	return nil
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateApplicationStatusRequest) Validate() error {
	if !ValidApplicationStatuses[r.Status] {
		return &ErrorResponse{
			Code:    "invalid_status",
			Message: "Status must be one of: " + strings.Join(ValidApplicationStatusesList(), ", "),
		}
	}
	return nil
}

type StartInterviewRequest struct {
	JobRole         string `json:"jobRole"`
	Specification   string `json:"specification"`
	ExperienceLevel string `json:"experienceLevel"`
}

func (r *StartInterviewRequest) Validate() error {
	r.JobRole = strings.TrimSpace(r.JobRole)
	r.Specification = strings.TrimSpace(r.Specification)
	r.ExperienceLevel = strings.ToLower(strings.TrimSpace(r.ExperienceLevel))

	if r.JobRole == "" {
		return &ErrorResponse{Code: "missing_job_role", Message: "Job role is required"}
	}
	if r.ExperienceLevel != "" && !ValidExperienceLevels[r.ExperienceLevel] {
		return &ErrorResponse{
			Code:    "invalid_experience_level",
			Message: "Experience level must be one of: beginner, intermediate, advanced",
		}
	}
	return nil
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

func (r *AnswerRequest) Validate() error {
	if strings.TrimSpace(r.Answer) == "" {
		return &ErrorResponse{Code: "missing_answer", Message: "Answer is required"}
	}
	return nil
}
