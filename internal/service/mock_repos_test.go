package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/student-approval/internal/domain"
	"github.com/spec-kit/student-approval/internal/repository"
)

// mockSubmissionRepo mirrors the Postgres repository's contract, including
// the pending precondition on transitions and the ordered/unordered split.
type mockSubmissionRepo struct {
	submissions map[string]*domain.Submission
	seq         int
	failOrdered bool
	failAlways  bool
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{submissions: make(map[string]*domain.Submission)}
}

func (m *mockSubmissionRepo) Create(_ context.Context, sub *domain.Submission) error {
	if m.failAlways {
		return fmt.Errorf("store unavailable")
	}
	m.seq++
	sub.ID = fmt.Sprintf("sub-%d", m.seq)
	sub.SubmittedAt = time.Now()
	copied := *sub
	m.submissions[sub.ID] = &copied
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*domain.Submission, error) {
	if sub, ok := m.submissions[id]; ok {
		copied := *sub
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockSubmissionRepo) Approve(_ context.Context, id, managerEmail string, at time.Time) error {
	return m.transition(id, domain.SubmissionStatusApproved, managerEmail, at)
}

func (m *mockSubmissionRepo) Reject(_ context.Context, id, managerEmail string, at time.Time) error {
	return m.transition(id, domain.SubmissionStatusRejected, managerEmail, at)
}

func (m *mockSubmissionRepo) transition(id string, target domain.SubmissionStatus, managerEmail string, at time.Time) error {
	if m.failAlways {
		return fmt.Errorf("store unavailable")
	}
	sub, ok := m.submissions[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if sub.Status != domain.SubmissionStatusPending {
		return repository.ErrAlreadyDecided
	}
	sub.Status = target
	if target == domain.SubmissionStatusApproved {
		sub.ApprovedAt = &at
		sub.ApprovedBy = &managerEmail
	} else {
		sub.RejectedAt = &at
		sub.RejectedBy = &managerEmail
	}
	return nil
}

func (m *mockSubmissionRepo) ListByStatus(_ context.Context, status domain.SubmissionStatus, ordered bool) ([]domain.Submission, error) {
	if m.failAlways {
		return nil, fmt.Errorf("store unavailable")
	}
	if ordered && m.failOrdered {
		return nil, fmt.Errorf("missing index for ordered query")
	}
	var result []domain.Submission
	for _, sub := range m.submissions {
		if sub.Status == status {
			result = append(result, *sub)
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) ListBySubmitter(_ context.Context, userID string, ordered bool) ([]domain.Submission, error) {
	if m.failAlways {
		return nil, fmt.Errorf("store unavailable")
	}
	if ordered && m.failOrdered {
		return nil, fmt.Errorf("missing index for ordered query")
	}
	var result []domain.Submission
	for _, sub := range m.submissions {
		if sub.UserID == userID {
			result = append(result, *sub)
		}
	}
	return result, nil
}

// mockAccountRepo keeps accounts in memory, keyed by id and email.
type mockAccountRepo struct {
	accounts map[string]*domain.Account
	seq      int
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (m *mockAccountRepo) Create(_ context.Context, account *domain.Account) error {
	m.seq++
	account.ID = fmt.Sprintf("acct-%d", m.seq)
	account.CreatedAt = time.Now()
	m.accounts[account.ID] = account
	m.accounts["email:"+account.Email] = account
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	if a, ok := m.accounts["email:"+email]; ok {
		return a, nil
	}
	return nil, pgx.ErrNoRows
}

// mockProfileRepo keeps profiles in memory.
type mockProfileRepo struct {
	profiles map[string]*domain.Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (m *mockProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	profile.CreatedAt = time.Now()
	m.profiles[profile.UID] = profile
	return nil
}

func (m *mockProfileRepo) GetByUID(_ context.Context, uid string) (*domain.Profile, error) {
	if p, ok := m.profiles[uid]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

// memorySessionStore implements session.Store for tests.
type memorySessionStore struct {
	sessions map[string]*domain.Identity
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]*domain.Identity)}
}

func (m *memorySessionStore) Save(_ context.Context, sessionID string, identity *domain.Identity) error {
	m.sessions[sessionID] = identity
	return nil
}

func (m *memorySessionStore) Restore(_ context.Context, sessionID string) (*domain.Identity, error) {
	return m.sessions[sessionID], nil
}

func (m *memorySessionStore) Clear(_ context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}
