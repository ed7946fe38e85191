package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/student-approval/internal/domain"
	"github.com/spec-kit/student-approval/internal/events"
	apperrors "github.com/spec-kit/student-approval/pkg/util"
)

func setupSubmissionService() (*SubmissionService, *mockSubmissionRepo, events.Dispatcher) {
	repo := newMockSubmissionRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewSubmissionService(SubmissionDependencies{
		SubmissionRepo: repo,
		Dispatcher:     dispatcher,
		Logger:         zap.NewNop(),
	})
	return svc, repo, dispatcher
}

func submitter() *domain.Identity {
	return &domain.Identity{UID: "u1", Email: "u1@test.com", Role: domain.RoleUser}
}

func manager() *domain.Identity {
	return &domain.Identity{UID: "m1", Email: "m1@test.com", Role: domain.RoleManager}
}

func TestCreate_StartsPending(t *testing.T) {
	svc, repo, _ := setupSubmissionService()

	sub, err := svc.Create(context.Background(), submitter(), SubmissionCreateInput{
		Name: "A", Year: "2", Department: "CSE",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SubmissionStatusPending, sub.Status)
	assert.Equal(t, "u1", sub.UserID)
	assert.Equal(t, "u1@test.com", sub.UserEmail)
	assert.False(t, sub.SubmittedAt.IsZero())
	assert.Nil(t, sub.ApprovedAt)
	assert.Nil(t, sub.RejectedAt)
	assert.Len(t, repo.submissions, 1)
}

func TestCreate_EmptyFieldsAcceptedAsIs(t *testing.T) {
	svc, _, _ := setupSubmissionService()

	sub, err := svc.Create(context.Background(), submitter(), SubmissionCreateInput{})
	require.NoError(t, err)
	assert.Equal(t, "", sub.Name)
	assert.Equal(t, domain.SubmissionStatusPending, sub.Status)
}

func TestApprove_FromPending(t *testing.T) {
	svc, repo, _ := setupSubmissionService()
	sub, err := svc.Create(context.Background(), submitter(), SubmissionCreateInput{Name: "A"})
	require.NoError(t, err)

	require.NoError(t, svc.Approve(context.Background(), manager(), sub.ID))

	stored := repo.submissions[sub.ID]
	assert.Equal(t, domain.SubmissionStatusApproved, stored.Status)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, "m1@test.com", *stored.ApprovedBy)
	assert.NotNil(t, stored.ApprovedAt)
	assert.Nil(t, stored.RejectedAt, "outcome stamps are mutually exclusive")
	assert.Nil(t, stored.RejectedBy)
}

func TestReject_FromPending(t *testing.T) {
	svc, repo, _ := setupSubmissionService()
	sub, err := svc.Create(context.Background(), submitter(), SubmissionCreateInput{Name: "A"})
	require.NoError(t, err)

	require.NoError(t, svc.Reject(context.Background(), manager(), sub.ID))

	stored := repo.submissions[sub.ID]
	assert.Equal(t, domain.SubmissionStatusRejected, stored.Status)
	require.NotNil(t, stored.RejectedBy)
	assert.Equal(t, "m1@test.com", *stored.RejectedBy)
	assert.Nil(t, stored.ApprovedAt)
}

func TestApprove_AlreadyDecidedConflicts(t *testing.T) {
	svc, repo, _ := setupSubmissionService()
	sub, err := svc.Create(context.Background(), submitter(), SubmissionCreateInput{Name: "A"})
	require.NoError(t, err)
	require.NoError(t, svc.Approve(context.Background(), manager(), sub.ID))

	err = svc.Approve(context.Background(), manager(), sub.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)

	// The first decision is untouched.
	assert.Equal(t, domain.SubmissionStatusApproved, repo.submissions[sub.ID].Status)
}

func TestReject_AfterApproveConflicts(t *testing.T) {
	svc, repo, _ := setupSubmissionService()
	sub, err := svc.Create(context.Background(), submitter(), SubmissionCreateInput{Name: "A"})
	require.NoError(t, err)
	require.NoError(t, svc.Approve(context.Background(), manager(), sub.ID))

	err = svc.Reject(context.Background(), manager(), sub.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)

	stored := repo.submissions[sub.ID]
	assert.Equal(t, domain.SubmissionStatusApproved, stored.Status)
	assert.Nil(t, stored.RejectedAt)
}

func TestApprove_MissingIDDoesNotPanic(t *testing.T) {
	svc, _, _ := setupSubmissionService()

	err := svc.Approve(context.Background(), manager(), "no-such-id")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestListByStatus_FiltersExactly(t *testing.T) {
	svc, _, _ := setupSubmissionService()
	ctx := context.Background()

	a, err := svc.Create(ctx, submitter(), SubmissionCreateInput{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, submitter(), SubmissionCreateInput{Name: "B"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, submitter(), SubmissionCreateInput{Name: "C"})
	require.NoError(t, err)

	require.NoError(t, svc.Approve(ctx, manager(), a.ID))
	require.NoError(t, svc.Reject(ctx, manager(), b.ID))

	pending, err := svc.ListByStatus(ctx, domain.SubmissionStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "C", pending[0].Name)

	approved, err := svc.ListByStatus(ctx, domain.SubmissionStatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "A", approved[0].Name)
}

func TestListByStatus_OrderedFailureFallsBackUnordered(t *testing.T) {
	svc, repo, _ := setupSubmissionService()
	ctx := context.Background()

	_, err := svc.Create(ctx, submitter(), SubmissionCreateInput{Name: "A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, submitter(), SubmissionCreateInput{Name: "B"})
	require.NoError(t, err)

	repo.failOrdered = true

	pending, err := svc.ListByStatus(ctx, domain.SubmissionStatusPending)
	require.NoError(t, err, "fallback must return the unordered result set")
	assert.Len(t, pending, 2)
}

func TestListBySubmitter_OrderedFailureFallsBackUnordered(t *testing.T) {
	svc, repo, _ := setupSubmissionService()
	ctx := context.Background()

	_, err := svc.Create(ctx, submitter(), SubmissionCreateInput{Name: "A"})
	require.NoError(t, err)

	repo.failOrdered = true

	subs, err := svc.ListBySubmitter(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestListBySubmitter_FiltersByOwner(t *testing.T) {
	svc, _, _ := setupSubmissionService()
	ctx := context.Background()

	_, err := svc.Create(ctx, submitter(), SubmissionCreateInput{Name: "A"})
	require.NoError(t, err)
	other := &domain.Identity{UID: "u2", Email: "u2@test.com", Role: domain.RoleUser}
	_, err = svc.Create(ctx, other, SubmissionCreateInput{Name: "B"})
	require.NoError(t, err)

	subs, err := svc.ListBySubmitter(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "A", subs[0].Name)
}

func TestCreate_StoreFailureSurfaces(t *testing.T) {
	svc, repo, _ := setupSubmissionService()
	repo.failAlways = true

	_, err := svc.Create(context.Background(), submitter(), SubmissionCreateInput{Name: "A"})
	assert.Error(t, err)
}

func TestLifecycle_SubmitThenApproveScenario(t *testing.T) {
	svc, _, dispatcher := setupSubmissionService()
	ctx := context.Background()

	var published []events.EventType
	for _, et := range []events.EventType{
		events.EventSubmissionCreated,
		events.EventSubmissionApproved,
		events.EventSubmissionRejected,
	} {
		eventType := et
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			published = append(published, e.Type)
			return nil
		})
	}

	sub, err := svc.Create(ctx, submitter(), SubmissionCreateInput{
		Name: "A", Year: "2", Department: "CSE",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionStatusPending, sub.Status)
	assert.Equal(t, "u1", sub.UserID)

	require.NoError(t, svc.Approve(ctx, manager(), sub.ID))

	pending, err := svc.ListByStatus(ctx, domain.SubmissionStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending, "approved submission must leave the pending list")

	approved, err := svc.ListByStatus(ctx, domain.SubmissionStatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	require.NotNil(t, approved[0].ApprovedBy)
	assert.Equal(t, "m1@test.com", *approved[0].ApprovedBy)

	assert.Equal(t, []events.EventType{
		events.EventSubmissionCreated,
		events.EventSubmissionApproved,
	}, published)
}

func TestDecide_UnknownTarget(t *testing.T) {
	svc, _, _ := setupSubmissionService()
	err := svc.decide(context.Background(), manager(), "x", domain.SubmissionStatus("weird"))
	assert.Error(t, err)
}
