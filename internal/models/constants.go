package models

const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
)

const (
	JobStatusOpen   = "Open"
	JobStatusClosed = "Closed"
)

const (
	EmploymentFullTime   = "Full-time"
	EmploymentPartTime   = "Part-time"
	EmploymentContract   = "Contract"
	EmploymentInternship = "Internship"
)

const (
	ApplicationApplied  = "Applied"
	ApplicationReviewed = "Reviewed"
	ApplicationRejected = "Rejected"
	ApplicationAccepted = "Accepted"
)

// placeholder question text used when the completion service gives nothing usable
const NoResponseText = "No response"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// contains all roles a user may register with
var ValidRoles = map[string]bool{
	RoleCandidate: true,
	RoleRecruiter: true,
}

var ValidEmploymentTypes = map[string]bool{
	EmploymentFullTime:   true,
	EmploymentPartTime:   true,
	EmploymentContract:   true,
	EmploymentInternship: true,
}

var ValidJobStatuses = map[string]bool{
	JobStatusOpen:   true,
	JobStatusClosed: true,
}

var ValidApplicationStatuses = map[string]bool{
	ApplicationApplied:  true,
	ApplicationReviewed: true,
	ApplicationRejected: true,
	ApplicationAccepted: true,
}

// contains all valid interview experience levels (in lowercase)
var ValidExperienceLevels = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
}

func ValidRolesList() []string {
	return []string{RoleCandidate, RoleRecruiter}
}

func ValidEmploymentTypesList() []string {
	return []string{EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship}
}

func ValidApplicationStatusesList() []string {
	return []string{ApplicationApplied, ApplicationReviewed, ApplicationRejected, ApplicationAccepted}
}

func ValidExperienceLevelsList() []string {
	return []string{"beginner", "intermediate", "advanced"}
}
