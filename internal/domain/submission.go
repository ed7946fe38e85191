package domain

import "time"

// SubmissionStatus enumerates lifecycle states for student submissions.
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s SubmissionStatus) Terminal() bool {
	return s == SubmissionStatusApproved || s == SubmissionStatusRejected
}

// Submission is the aggregate for student records awaiting manager disposition.
// Name, Year and Department are free-form submitter input and immutable after
// creation, as are the submitter identity fields. A submission is never deleted;
// it only moves pending -> approved or pending -> rejected, and carries at most
// one of the two outcome stamps.
type Submission struct {
	ID          string
	Name        string
	Year        string
	Department  string
	UserID      string
	UserEmail   string
	Status      SubmissionStatus
	SubmittedAt time.Time
	ApprovedAt  *time.Time
	ApprovedBy  *string
	RejectedAt  *time.Time
	RejectedBy  *string
}

// DecisionTime returns the timestamp relevant to the submission's current
// status: the outcome stamp for decided submissions, submission time otherwise.
func (s *Submission) DecisionTime() time.Time {
	switch s.Status {
	case SubmissionStatusApproved:
		if s.ApprovedAt != nil {
			return *s.ApprovedAt
		}
	case SubmissionStatusRejected:
		if s.RejectedAt != nil {
			return *s.RejectedAt
		}
	}
	return s.SubmittedAt
}
