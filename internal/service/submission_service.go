package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/student-approval/internal/domain"
	"github.com/spec-kit/student-approval/internal/events"
	"github.com/spec-kit/student-approval/internal/repository"
	apperrors "github.com/spec-kit/student-approval/pkg/util"
)

// SubmissionService governs the submission lifecycle: pending is the initial
// state, approved and rejected are terminal, and nothing ever moves back.
type SubmissionService struct {
	submissions repository.SubmissionRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	now         func() time.Time
}

// SubmissionDependencies bundles requirements for the service.
type SubmissionDependencies struct {
	SubmissionRepo repository.SubmissionRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// SubmissionCreateInput is the submitter's form payload. Values are stored
// as-is; server-side validation of the free-form fields is out of scope.
type SubmissionCreateInput struct {
	Name       string
	Year       string
	Department string
}

// NewSubmissionService constructs the service.
func NewSubmissionService(deps SubmissionDependencies) *SubmissionService {
	return &SubmissionService{
		submissions: deps.SubmissionRepo,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
		now:         time.Now,
	}
}

// Create records a new pending submission owned by the caller.
func (s *SubmissionService) Create(ctx context.Context, identity *domain.Identity, input SubmissionCreateInput) (*domain.Submission, error) {
	sub := &domain.Submission{
		Name:       input.Name,
		Year:       input.Year,
		Department: input.Department,
		UserID:     identity.UID,
		UserEmail:  identity.Email,
		Status:     domain.SubmissionStatusPending,
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		s.logger.Error("failed to create submission", zap.Error(err))
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:         events.EventSubmissionCreated,
		SubmissionID: sub.ID,
		Actor:        events.ActorFromIdentity(identity),
		Payload: events.SubmissionCreatedPayload{
			Name:       sub.Name,
			Year:       sub.Year,
			Department: sub.Department,
			UserEmail:  sub.UserEmail,
		},
	})
	return sub, nil
}

// Approve moves a pending submission to approved and stamps the manager
// identity. The transition carries a pending precondition, so a second
// manager racing on the same submission observes a conflict instead of
// silently overwriting the first decision.
func (s *SubmissionService) Approve(ctx context.Context, manager *domain.Identity, id string) error {
	return s.decide(ctx, manager, id, domain.SubmissionStatusApproved)
}

// Reject is symmetric to Approve, targeting the rejected state.
func (s *SubmissionService) Reject(ctx context.Context, manager *domain.Identity, id string) error {
	return s.decide(ctx, manager, id, domain.SubmissionStatusRejected)
}

func (s *SubmissionService) decide(ctx context.Context, manager *domain.Identity, id string, target domain.SubmissionStatus) error {
	var err error
	switch target {
	case domain.SubmissionStatusApproved:
		err = s.submissions.Approve(ctx, id, manager.Email, s.now())
	case domain.SubmissionStatusRejected:
		err = s.submissions.Reject(ctx, id, manager.Email, s.now())
	default:
		return errors.New("invalid target status")
	}

	if err != nil {
		s.logger.Error("submission transition failed",
			zap.String("submission_id", id),
			zap.String("target", string(target)),
			zap.Error(err),
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("submission", map[string]any{"id": id})
		}
		if errors.Is(err, repository.ErrAlreadyDecided) {
			return apperrors.NewConflict("submission already decided", map[string]any{"id": id})
		}
		return err
	}

	eventType := events.EventSubmissionApproved
	if target == domain.SubmissionStatusRejected {
		eventType = events.EventSubmissionRejected
	}
	s.publish(ctx, events.Event{
		Type:         eventType,
		SubmissionID: id,
		Actor:        events.ActorFromIdentity(manager),
		Payload: events.SubmissionDecidedPayload{
			OldStatus: domain.SubmissionStatusPending,
			NewStatus: target,
			DecidedBy: manager.Email,
		},
	})
	return nil
}

// ListByStatus returns all submissions with the given status, newest first.
// If the ordered query fails it is retried once without the ordering clause;
// an unordered result beats an empty view.
func (s *SubmissionService) ListByStatus(ctx context.Context, status domain.SubmissionStatus) ([]domain.Submission, error) {
	result, err := s.submissions.ListByStatus(ctx, status, true)
	if err == nil {
		return result, nil
	}
	s.logger.Error("ordered status query failed, retrying unordered",
		zap.String("status", string(status)), zap.Error(err))

	result, err = s.submissions.ListByStatus(ctx, status, false)
	if err != nil {
		s.logger.Error("fallback status query failed",
			zap.String("status", string(status)), zap.Error(err))
		return nil, err
	}
	return result, nil
}

// ListBySubmitter returns the caller's own submissions with the same
// degrade-and-retry policy.
func (s *SubmissionService) ListBySubmitter(ctx context.Context, userID string) ([]domain.Submission, error) {
	result, err := s.submissions.ListBySubmitter(ctx, userID, true)
	if err == nil {
		return result, nil
	}
	s.logger.Error("ordered submitter query failed, retrying unordered",
		zap.String("user_id", userID), zap.Error(err))

	result, err = s.submissions.ListBySubmitter(ctx, userID, false)
	if err != nil {
		s.logger.Error("fallback submitter query failed",
			zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (s *SubmissionService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = s.now()
	_ = s.dispatcher.Publish(ctx, event)
}
