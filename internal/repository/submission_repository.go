package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/student-approval/internal/domain"
)

// ErrAlreadyDecided signals a transition attempted on a submission that has
// already left the pending state.
var ErrAlreadyDecided = fmt.Errorf("submission already decided")

// SubmissionRepository encapsulates submission persistence.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.Submission) error
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	// Approve and Reject move a pending submission to its terminal state.
	// Both carry an expected-prior-status precondition: a row that is no
	// longer pending is left untouched and ErrAlreadyDecided is returned;
	// a missing row returns pgx.ErrNoRows.
	Approve(ctx context.Context, id, managerEmail string, at time.Time) error
	Reject(ctx context.Context, id, managerEmail string, at time.Time) error
	// ListByStatus and ListBySubmitter return matching submissions, newest
	// first when ordered is true and in storage order otherwise.
	ListByStatus(ctx context.Context, status domain.SubmissionStatus, ordered bool) ([]domain.Submission, error)
	ListBySubmitter(ctx context.Context, userID string, ordered bool) ([]domain.Submission, error)
}

type submissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository returns a Postgres-backed implementation.
func NewSubmissionRepository(pool *pgxpool.Pool) SubmissionRepository {
	return &submissionRepository{pool: pool}
}

const submissionColumns = `id, name, year, department, user_id, user_email, status,
               submitted_at, approved_at, approved_by, rejected_at, rejected_by`

func (r *submissionRepository) Create(ctx context.Context, sub *domain.Submission) error {
	const query = `
        INSERT INTO submissions (name, year, department, user_id, user_email, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, submitted_at`
	return r.pool.QueryRow(ctx, query,
		sub.Name,
		sub.Year,
		sub.Department,
		sub.UserID,
		sub.UserEmail,
		sub.Status,
	).Scan(&sub.ID, &sub.SubmittedAt)
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	query := fmt.Sprintf(`SELECT %s FROM submissions WHERE id=$1`, submissionColumns)
	var sub domain.Submission
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&sub.ID,
		&sub.Name,
		&sub.Year,
		&sub.Department,
		&sub.UserID,
		&sub.UserEmail,
		&sub.Status,
		&sub.SubmittedAt,
		&sub.ApprovedAt,
		&sub.ApprovedBy,
		&sub.RejectedAt,
		&sub.RejectedBy,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) Approve(ctx context.Context, id, managerEmail string, at time.Time) error {
	const query = `
        UPDATE submissions SET status='approved', approved_at=$1, approved_by=$2
        WHERE id=$3 AND status='pending'`
	return r.transition(ctx, query, id, managerEmail, at)
}

func (r *submissionRepository) Reject(ctx context.Context, id, managerEmail string, at time.Time) error {
	const query = `
        UPDATE submissions SET status='rejected', rejected_at=$1, rejected_by=$2
        WHERE id=$3 AND status='pending'`
	return r.transition(ctx, query, id, managerEmail, at)
}

func (r *submissionRepository) transition(ctx context.Context, query, id, managerEmail string, at time.Time) error {
	cmd, err := r.pool.Exec(ctx, query, at, managerEmail, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	// Zero rows: either the id is unknown or the compare-and-swap lost.
	const exists = `SELECT 1 FROM submissions WHERE id=$1`
	var one int
	if err := r.pool.QueryRow(ctx, exists, id).Scan(&one); err != nil {
		return err
	}
	return ErrAlreadyDecided
}

func (r *submissionRepository) ListByStatus(ctx context.Context, status domain.SubmissionStatus, ordered bool) ([]domain.Submission, error) {
	query := fmt.Sprintf(`SELECT %s FROM submissions WHERE status=$1`, submissionColumns)
	if ordered {
		query += " ORDER BY " + orderColumn(status) + " DESC"
	}
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubmissions(rows)
}

func (r *submissionRepository) ListBySubmitter(ctx context.Context, userID string, ordered bool) ([]domain.Submission, error) {
	query := fmt.Sprintf(`SELECT %s FROM submissions WHERE user_id=$1`, submissionColumns)
	if ordered {
		query += " ORDER BY submitted_at DESC"
	}
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubmissions(rows)
}

func orderColumn(status domain.SubmissionStatus) string {
	switch status {
	case domain.SubmissionStatusApproved:
		return "approved_at"
	case domain.SubmissionStatusRejected:
		return "rejected_at"
	default:
		return "submitted_at"
	}
}

func scanSubmissions(rows pgx.Rows) ([]domain.Submission, error) {
	var result []domain.Submission
	for rows.Next() {
		var sub domain.Submission
		if err := rows.Scan(
			&sub.ID,
			&sub.Name,
			&sub.Year,
			&sub.Department,
			&sub.UserID,
			&sub.UserEmail,
			&sub.Status,
			&sub.SubmittedAt,
			&sub.ApprovedAt,
			&sub.ApprovedBy,
			&sub.RejectedAt,
			&sub.RejectedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}
