package models

import "time"

// Application is a ledger entry for one candidate applying to one job.
type Application struct {
	ID          string    `bson:"_id" json:"id"`
	CandidateID string    `bson:"candidateId" json:"candidateId"`
	JobID       string    `bson:"jobId" json:"jobId"`
	Status      string    `bson:"status" json:"status"`
	ResumeURL   string    `bson:"resumeUrl,omitempty" json:"resumeUrl,omitempty"`
	AppliedAt   time.Time `bson:"appliedAt" json:"appliedAt"`
}
