package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"persona-study/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event domain.StudyEvent) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.StudyEvent, error)
}

type PgEventRepository struct {
	pool *pgxpool.Pool
}

func NewPgEventRepository(pool *pgxpool.Pool) *PgEventRepository {
	return &PgEventRepository{pool: pool}
}

func (r *PgEventRepository) Create(ctx context.Context, event domain.StudyEvent) error {
	const query = `
		INSERT INTO study_events (id, session_id, kind, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.SessionID,
		event.Kind,
		event.Payload,
		event.CreatedAt,
	)
	return err
}

func (r *PgEventRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.StudyEvent, error) {
	const query = `
		SELECT id, session_id, kind, payload, created_at
		FROM study_events
		WHERE session_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.StudyEvent
	for rows.Next() {
		var e domain.StudyEvent
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Kind, &e.Payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
