package events

import (
	"time"

	"github.com/spec-kit/student-approval/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSubmissionCreated  EventType = "submission_created"
	EventSubmissionApproved EventType = "submission_approved"
	EventSubmissionRejected EventType = "submission_rejected"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UID   string      `json:"uid"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	SubmissionID string      `json:"submission_id"`
	Actor        Actor       `json:"actor"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// SubmissionCreatedPayload payload.
type SubmissionCreatedPayload struct {
	Name       string `json:"name"`
	Year       string `json:"year"`
	Department string `json:"department"`
	UserEmail  string `json:"user_email"`
}

// SubmissionDecidedPayload payload for approve/reject transitions.
type SubmissionDecidedPayload struct {
	OldStatus domain.SubmissionStatus `json:"old_status"`
	NewStatus domain.SubmissionStatus `json:"new_status"`
	DecidedBy string                  `json:"decided_by"`
}

// ActorFromIdentity builds event actor metadata.
func ActorFromIdentity(identity *domain.Identity) Actor {
	if identity == nil {
		return Actor{}
	}
	return Actor{UID: identity.UID, Email: identity.Email, Role: identity.Role}
}
