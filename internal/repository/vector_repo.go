package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"persona-study/internal/domain"
)

type VectorRepository interface {
	Upsert(ctx context.Context, vector domain.PersonaVector) error
	GetByTrait(ctx context.Context, trait string) (domain.PersonaVector, error)
	ListAll(ctx context.Context) ([]domain.PersonaVector, error)
}

type PgVectorRepository struct {
	pool *pgxpool.Pool
}

func NewPgVectorRepository(pool *pgxpool.Pool) *PgVectorRepository {
	return &PgVectorRepository{pool: pool}
}

func (r *PgVectorRepository) Upsert(ctx context.Context, vector domain.PersonaVector) error {
	const query = `
		INSERT INTO persona_vectors (trait, positive_pole, negative_pole, direction, pos_scale, neg_scale, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (trait)
		DO UPDATE SET
			positive_pole = EXCLUDED.positive_pole,
			negative_pole = EXCLUDED.negative_pole,
			direction = EXCLUDED.direction,
			pos_scale = EXCLUDED.pos_scale,
			neg_scale = EXCLUDED.neg_scale
	`
	_, err := r.pool.Exec(ctx, query,
		vector.Trait,
		vector.PositivePole,
		vector.NegativePole,
		vector.Direction,
		vector.PosScale,
		vector.NegScale,
		vector.CreatedAt,
	)
	return err
}

func (r *PgVectorRepository) GetByTrait(ctx context.Context, trait string) (domain.PersonaVector, error) {
	const query = `
		SELECT trait, positive_pole, negative_pole, direction, pos_scale, neg_scale, created_at
		FROM persona_vectors
		WHERE trait = $1
	`
	var v domain.PersonaVector
	err := r.pool.QueryRow(ctx, query, trait).Scan(
		&v.Trait,
		&v.PositivePole,
		&v.NegativePole,
		&v.Direction,
		&v.PosScale,
		&v.NegScale,
		&v.CreatedAt,
	)
	return v, err
}

func (r *PgVectorRepository) ListAll(ctx context.Context) ([]domain.PersonaVector, error) {
	const query = `
		SELECT trait, positive_pole, negative_pole, direction, pos_scale, neg_scale, created_at
		FROM persona_vectors
		ORDER BY trait
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vectors []domain.PersonaVector
	for rows.Next() {
		var v domain.PersonaVector
		if err := rows.Scan(
			&v.Trait,
			&v.PositivePole,
			&v.NegativePole,
			&v.Direction,
			&v.PosScale,
			&v.NegScale,
			&v.CreatedAt,
		); err != nil {
			return nil, err
		}
		vectors = append(vectors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vectors, nil
}
