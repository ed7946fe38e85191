package dto

import (
	"time"

	"github.com/spec-kit/student-approval/internal/domain"
)

// CreateSubmissionRequest payload. Fields are free-form submitter input.
type CreateSubmissionRequest struct {
	Name       string `json:"name"`
	Year       string `json:"year"`
	Department string `json:"department"`
}

// SubmissionResponse mirrors the submission document.
type SubmissionResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Year        string                  `json:"year"`
	Department  string                  `json:"department"`
	UserID      string                  `json:"user_id"`
	UserEmail   string                  `json:"user_email"`
	Status      domain.SubmissionStatus `json:"status"`
	SubmittedAt time.Time               `json:"submitted_at"`
	ApprovedAt  *time.Time              `json:"approved_at,omitempty"`
	ApprovedBy  *string                 `json:"approved_by,omitempty"`
	RejectedAt  *time.Time              `json:"rejected_at,omitempty"`
	RejectedBy  *string                 `json:"rejected_by,omitempty"`
}

// SubmissionFromDomain maps one submission.
func SubmissionFromDomain(sub *domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:          sub.ID,
		Name:        sub.Name,
		Year:        sub.Year,
		Department:  sub.Department,
		UserID:      sub.UserID,
		UserEmail:   sub.UserEmail,
		Status:      sub.Status,
		SubmittedAt: sub.SubmittedAt,
		ApprovedAt:  sub.ApprovedAt,
		ApprovedBy:  sub.ApprovedBy,
		RejectedAt:  sub.RejectedAt,
		RejectedBy:  sub.RejectedBy,
	}
}

// SubmissionsFromDomain maps a list.
func SubmissionsFromDomain(subs []domain.Submission) []SubmissionResponse {
	result := make([]SubmissionResponse, 0, len(subs))
	for i := range subs {
		result = append(result, SubmissionFromDomain(&subs[i]))
	}
	return result
}
