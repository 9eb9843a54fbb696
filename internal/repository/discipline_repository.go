package repository

import (
	"context"
	"errors"
	"fmt"

	"artist-booking/internal/model"
	apperrors "artist-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DisciplineRepository interface {
	List(ctx context.Context) ([]*model.Discipline, error)
	FindByName(ctx context.Context, name string) (*model.Discipline, error)
	Create(ctx context.Context, name string) (*model.Discipline, error)

	// Transaction methods
	EnsureTx(ctx context.Context, tx pgx.Tx, name string) (*model.Discipline, error)
}

type DisciplineRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewDisciplineRepository(pool *pgxpool.Pool) DisciplineRepository {
	return &DisciplineRepositoryImpl{
		pool: pool,
	}
}

func (r *DisciplineRepositoryImpl) List(ctx context.Context) ([]*model.Discipline, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM disciplines ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var disciplines []*model.Discipline
	for rows.Next() {
		var d model.Discipline
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		disciplines = append(disciplines, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return disciplines, nil
}

func (r *DisciplineRepositoryImpl) FindByName(ctx context.Context, name string) (*model.Discipline, error) {
	var d model.Discipline
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM disciplines WHERE name = $1`, name).Scan(&d.ID, &d.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDisciplineNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Create inserts name, or returns the existing row if a concurrent insert won.
func (r *DisciplineRepositoryImpl) Create(ctx context.Context, name string) (*model.Discipline, error) {
	return ensureDiscipline(ctx, r.pool, name)
}

func (r *DisciplineRepositoryImpl) EnsureTx(ctx context.Context, tx pgx.Tx, name string) (*model.Discipline, error) {
	return ensureDiscipline(ctx, tx, name)
}

func ensureDiscipline(ctx context.Context, q querier, name string) (*model.Discipline, error) {
	// no-op update so RETURNING yields the row on conflict too
	query := `
		INSERT INTO disciplines (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`

	var d model.Discipline
	if err := q.QueryRow(ctx, query, name).Scan(&d.ID, &d.Name); err != nil {
		return nil, fmt.Errorf("failed to ensure discipline: %w", err)
	}
	return &d, nil
}
