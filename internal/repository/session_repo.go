package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"persona-study/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.StudySession) error
	GetByID(ctx context.Context, id string) (domain.StudySession, error)
	MarkCompleted(ctx context.Context, id string, completedAt time.Time) error
}

type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.StudySession) error {
	const query = `
		INSERT INTO study_sessions (id, participant_id, condition, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.ParticipantID,
		session.Condition,
		session.CreatedAt,
		session.ExpiresAt,
	)
	return err
}

func (r *PgSessionRepository) GetByID(ctx context.Context, id string) (domain.StudySession, error) {
	const query = `
		SELECT id, participant_id, condition, created_at, expires_at, completed_at
		FROM study_sessions
		WHERE id = $1
	`
	var session domain.StudySession
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.ParticipantID,
		&session.Condition,
		&session.CreatedAt,
		&session.ExpiresAt,
		&session.CompletedAt,
	)
	return session, err
}

func (r *PgSessionRepository) MarkCompleted(ctx context.Context, id string, completedAt time.Time) error {
	const query = `
		UPDATE study_sessions
		SET completed_at = $2
		WHERE id = $1 AND completed_at IS NULL
	`
	_, err := r.pool.Exec(ctx, query, id, completedAt)
	return err
}
