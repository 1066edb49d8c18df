package models

import "time"

// Job is a posting in the job catalog. Documents live in the "jobs" collection.
type Job struct {
	ID             string    `bson:"_id" json:"id"`
	RecruiterID    string    `bson:"recruiterId" json:"recruiterId"`
	Title          string    `bson:"title" json:"title"`
	Description    string    `bson:"description" json:"description"`
	Salary         string    `bson:"salary,omitempty" json:"salary,omitempty"`
	Skills         []string  `bson:"skills" json:"skills"`
	Location       string    `bson:"location,omitempty" json:"location,omitempty"`
	EmploymentType string    `bson:"employmentType" json:"employmentType"`
	Company        string    `bson:"company,omitempty" json:"company,omitempty"`
	PostedAt       time.Time `bson:"postedAt" json:"postedAt"`
	Status         string    `bson:"status" json:"status"`
}

func (j *Job) Summary() *JobSummary {
	return &JobSummary{
		ID:       j.ID,
		Title:    j.Title,
		Company:  j.Company,
		Location: j.Location,
		Status:   j.Status,
	}
}

// JobFilter narrows the public job listing. Empty fields do not filter.
type JobFilter struct {
	Location       string
	EmploymentType string
	Skills         []string
}

// JobUpdate carries the fields an owner may change; nil means unchanged.
type JobUpdate struct {
	Title          *string
	Description    *string
	Salary         *string
	Skills         []string
	Location       *string
	EmploymentType *string
	Status         *string
}
