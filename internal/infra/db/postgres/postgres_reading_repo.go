package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"lectio-studio/internal/domain"
	"lectio-studio/internal/domain/model"
	"lectio-studio/internal/domain/ports/repository"
)

var _ repository.ReadingRepository = (*PostgresReadingRepo)(nil)

// PostgresReadingRepo is the narrow reading store: lookups for generation
// and analysis, inserts for seeding, and the generated_at stamp.
type PostgresReadingRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresReadingRepo(pool *pgxpool.Pool) *PostgresReadingRepo {
	return &PostgresReadingRepo{pool: pool}
}

func (r *PostgresReadingRepo) FindByID(ctx context.Context, id string) (*model.Reading, error) {
	const q = `
SELECT id, title, language, level, source_text, generated_at, created_at, updated_at
  FROM readings WHERE id=$1;`
	var rd model.Reading
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&rd.ID, &rd.Title, &rd.Language, &rd.Level, &rd.SourceText,
		&rd.GeneratedAt, &rd.CreatedAt, &rd.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find reading %s: %w", id, err)
	}
	return &rd, nil
}

func (r *PostgresReadingRepo) Create(ctx context.Context, rd *model.Reading) error {
	const q = `
INSERT INTO readings (id, title, language, level, source_text, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7);`
	_, err := r.pool.Exec(ctx, q, rd.ID, rd.Title, rd.Language, rd.Level, rd.SourceText, rd.CreatedAt, rd.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("create reading %s: %w", rd.ID, err)
	}
	return nil
}

func (r *PostgresReadingRepo) MarkGenerated(ctx context.Context, id string, at time.Time) error {
	const q = `UPDATE readings SET generated_at=$2, updated_at=$2 WHERE id=$1;`
	tag, err := r.pool.Exec(ctx, q, id, at)
	if err != nil {
		return fmt.Errorf("mark reading %s generated: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
