package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/student-approval/internal/domain"
)

// ProfileRepository defines persistence access for user profile documents.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUID(ctx context.Context, uid string) (*domain.Profile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO profiles (uid, email, role)
        VALUES ($1, $2, $3)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		profile.UID,
		profile.Email,
		profile.Role,
	).Scan(&profile.CreatedAt)
}

func (r *profileRepository) GetByUID(ctx context.Context, uid string) (*domain.Profile, error) {
	const query = `
        SELECT uid, email, role, created_at
        FROM profiles WHERE uid=$1`

	var profile domain.Profile
	if err := r.pool.QueryRow(ctx, query, uid).Scan(
		&profile.UID,
		&profile.Email,
		&profile.Role,
		&profile.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}
