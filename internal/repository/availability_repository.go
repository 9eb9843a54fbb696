package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artist-booking/internal/model"
	apperrors "artist-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AvailabilityRepository interface {
	FindByArtistAndDate(ctx context.Context, artistID int, date time.Time) (*model.Availability, error)
	Insert(ctx context.Context, artistID int, date time.Time) (*model.Availability, error)
	Delete(ctx context.Context, id int) (*model.Availability, error)
	List(ctx context.Context, artistID *int) ([]*model.Availability, error)
	InsertForAllOn(ctx context.Context, date time.Time, onlyApproved bool) (created int, eligible int, err error)

	// Transaction methods
	ListForArtistTx(ctx context.Context, tx pgx.Tx, artistID int) ([]*model.Availability, error)
	InsertDatesTx(ctx context.Context, tx pgx.Tx, artistID int, dates []time.Time) ([]int, error)
	DeleteByIDsTx(ctx context.Context, tx pgx.Tx, artistID int, ids []int) error
	InsertRangeTx(ctx context.Context, tx pgx.Tx, artistID int, start, end time.Time) (int, error)
}

type AvailabilityRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) AvailabilityRepository {
	return &AvailabilityRepositoryImpl{
		pool: pool,
	}
}

func scanAvailability(row pgx.Row) (*model.Availability, error) {
	var a model.Availability
	if err := row.Scan(&a.ID, &a.ArtistID, &a.Date); err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAvailabilities(rows pgx.Rows) ([]*model.Availability, error) {
	defer rows.Close()

	var slots []*model.Availability
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *AvailabilityRepositoryImpl) FindByArtistAndDate(ctx context.Context, artistID int, date time.Time) (*model.Availability, error) {
	query := `SELECT id, artist_id, date FROM availabilities WHERE artist_id = $1 AND date = $2::date`

	slot, err := scanAvailability(r.pool.QueryRow(ctx, query, artistID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAvailabilityNotFound
		}
		return nil, err
	}
	return slot, nil
}

// Insert returns ErrAvailabilityExists when the (artist, date) pair is taken.
func (r *AvailabilityRepositoryImpl) Insert(ctx context.Context, artistID int, date time.Time) (*model.Availability, error) {
	query := `
		INSERT INTO availabilities (artist_id, date)
		VALUES ($1, $2::date)
		RETURNING id, artist_id, date
	`

	slot, err := scanAvailability(r.pool.QueryRow(ctx, query, artistID, date))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrAvailabilityExists
		}
		return nil, fmt.Errorf("failed to insert availability: %w", err)
	}
	return slot, nil
}

func (r *AvailabilityRepositoryImpl) Delete(ctx context.Context, id int) (*model.Availability, error) {
	query := `DELETE FROM availabilities WHERE id = $1 RETURNING id, artist_id, date`

	slot, err := scanAvailability(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAvailabilityNotFound
		}
		return nil, fmt.Errorf("failed to delete availability: %w", err)
	}
	return slot, nil
}

func (r *AvailabilityRepositoryImpl) List(ctx context.Context, artistID *int) ([]*model.Availability, error) {
	query := `
		SELECT id, artist_id, date FROM availabilities
		WHERE ($1::int IS NULL OR artist_id = $1)
		ORDER BY date, artist_id, id
	`

	rows, err := r.pool.Query(ctx, query, artistID)
	if err != nil {
		return nil, err
	}
	return collectAvailabilities(rows)
}

// InsertForAllOn gives every eligible artist a slot on date in one statement.
func (r *AvailabilityRepositoryImpl) InsertForAllOn(ctx context.Context, date time.Time, onlyApproved bool) (int, int, error) {
	query := `
		WITH eligible AS (
			SELECT id FROM artists
			WHERE ($2 = FALSE OR approval_status = 'approved')
		), inserted AS (
			INSERT INTO availabilities (artist_id, date)
			SELECT id, $1::date FROM eligible
			ON CONFLICT (artist_id, date) DO NOTHING
			RETURNING id
		)
		SELECT (SELECT COUNT(*) FROM inserted), (SELECT COUNT(*) FROM eligible)
	`

	var created, eligible int
	if err := r.pool.QueryRow(ctx, query, date, onlyApproved).Scan(&created, &eligible); err != nil {
		return 0, 0, fmt.Errorf("failed to fill availability: %w", err)
	}
	return created, eligible, nil
}

func (r *AvailabilityRepositoryImpl) ListForArtistTx(ctx context.Context, tx pgx.Tx, artistID int) ([]*model.Availability, error) {
	query := `
		SELECT id, artist_id, date FROM availabilities
		WHERE artist_id = $1
		ORDER BY date, id
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, artistID)
	if err != nil {
		return nil, err
	}
	return collectAvailabilities(rows)
}

func (r *AvailabilityRepositoryImpl) InsertDatesTx(ctx context.Context, tx pgx.Tx, artistID int, dates []time.Time) ([]int, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	query := `
		INSERT INTO availabilities (artist_id, date)
		SELECT $1, d FROM unnest($2::date[]) AS d
		ON CONFLICT (artist_id, date) DO NOTHING
		RETURNING id
	`

	rows, err := tx.Query(ctx, query, artistID, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to insert availability dates: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func (r *AvailabilityRepositoryImpl) DeleteByIDsTx(ctx context.Context, tx pgx.Tx, artistID int, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM availabilities WHERE artist_id = $1 AND id = ANY($2::int[])`
	if _, err := tx.Exec(ctx, query, artistID, ids); err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	return nil
}

// InsertRangeTx fills [start, end] inclusive and returns how many rows were new.
func (r *AvailabilityRepositoryImpl) InsertRangeTx(ctx context.Context, tx pgx.Tx, artistID int, start, end time.Time) (int, error) {
	query := `
		INSERT INTO availabilities (artist_id, date)
		SELECT $1, d::date FROM generate_series($2::date, $3::date, interval '1 day') AS d
		ON CONFLICT (artist_id, date) DO NOTHING
	`

	result, err := tx.Exec(ctx, query, artistID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to insert availability range: %w", err)
	}
	return int(result.RowsAffected()), nil
}
