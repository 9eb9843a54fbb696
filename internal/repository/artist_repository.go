package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"artist-booking/internal/model"
	apperrors "artist-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ArtistRepository interface {
	FindByID(ctx context.Context, id int) (*model.Artist, error)
	FindByEmail(ctx context.Context, email string) (*model.Artist, error)
	List(ctx context.Context, status *model.ApprovalStatus) ([]*model.Artist, error)
	ListByDisciplinesAndDate(ctx context.Context, disciplines []string, date time.Time) ([]*model.Artist, error)
	ListIDs(ctx context.Context, onlyApproved bool) ([]int, error)
	Update(ctx context.Context, id int, values map[string]interface{}) (*model.Artist, error)
	UpdateApproval(ctx context.Context, id int, update model.ApprovalUpdate) (*model.Artist, error)
	Delete(ctx context.Context, id int) (bool, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, artist *model.Artist) (*model.Artist, error)
	AttachDisciplines(ctx context.Context, tx pgx.Tx, artistID int, disciplineIDs []int) error
}

type ArtistRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewArtistRepository(pool *pgxpool.Pool) ArtistRepository {
	return &ArtistRepositoryImpl{
		pool: pool,
	}
}

const artistColumns = `
	a.id, a.name, a.email, a.phone_number, a.address, a.password_hash,
	a.price_min, a.price_max, a.is_admin, a.approval_status, a.rejection_reason,
	a.approved_by, a.approved_at, a.created_at, a.updated_at,
	ARRAY(
		SELECT d.name FROM artist_disciplines ad
		JOIN disciplines d ON d.id = ad.discipline_id
		WHERE ad.artist_id = a.id
		ORDER BY d.name
	)
`

func scanArtist(row pgx.Row) (*model.Artist, error) {
	var a model.Artist
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.PhoneNumber,
		&a.Address,
		&a.PasswordHash,
		&a.PriceMin,
		&a.PriceMax,
		&a.IsAdmin,
		&a.ApprovalStatus,
		&a.RejectionReason,
		&a.ApprovedBy,
		&a.ApprovedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.Disciplines,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectArtists(rows pgx.Rows) ([]*model.Artist, error) {
	defer rows.Close()

	var artists []*model.Artist
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return artists, nil
}

func (r *ArtistRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, artist *model.Artist) (*model.Artist, error) {
	query := `
		INSERT INTO artists (
			name, email, phone_number, address, password_hash,
			price_min, price_max, is_admin, approval_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, approval_status, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		artist.Name, artist.Email, artist.PhoneNumber, artist.Address, artist.PasswordHash,
		artist.PriceMin, artist.PriceMax, artist.IsAdmin, artist.ApprovalStatus,
	).Scan(
		&artist.ID,
		&artist.ApprovalStatus,
		&artist.CreatedAt,
		&artist.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}

	return artist, nil
}

func (r *ArtistRepositoryImpl) AttachDisciplines(ctx context.Context, tx pgx.Tx, artistID int, disciplineIDs []int) error {
	if len(disciplineIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO artist_disciplines (artist_id, discipline_id)
		SELECT $1, unnest($2::int[])
		ON CONFLICT DO NOTHING
	`
	if _, err := tx.Exec(ctx, query, artistID, disciplineIDs); err != nil {
		return fmt.Errorf("failed to attach disciplines: %w", err)
	}
	return nil
}

func (r *ArtistRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists a WHERE a.id = $1`

	artist, err := scanArtist(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrArtistNotFound
		}
		return nil, err
	}
	return artist, nil
}

func (r *ArtistRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists a WHERE lower(a.email) = lower($1)`

	artist, err := scanArtist(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrArtistNotFound
		}
		return nil, err
	}
	return artist, nil
}

func (r *ArtistRepositoryImpl) List(ctx context.Context, status *model.ApprovalStatus) ([]*model.Artist, error) {
	query := `
		SELECT ` + artistColumns + `
		FROM artists a
		WHERE ($1::text IS NULL OR a.approval_status = $1)
		ORDER BY a.id
	`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	return collectArtists(rows)
}

// ListByDisciplinesAndDate returns approved artists offering any of the
// disciplines who are available on date, in id order.
func (r *ArtistRepositoryImpl) ListByDisciplinesAndDate(ctx context.Context, disciplines []string, date time.Time) ([]*model.Artist, error) {
	query := `
		SELECT ` + artistColumns + `
		FROM artists a
		WHERE a.approval_status = 'approved'
		  AND EXISTS (
			SELECT 1 FROM artist_disciplines ad
			JOIN disciplines d ON d.id = ad.discipline_id
			WHERE ad.artist_id = a.id AND d.name = ANY($1::text[])
		  )
		  AND EXISTS (
			SELECT 1 FROM availabilities av
			WHERE av.artist_id = a.id AND av.date = $2::date
		  )
		ORDER BY a.id
	`

	rows, err := r.pool.Query(ctx, query, disciplines, date)
	if err != nil {
		return nil, err
	}
	return collectArtists(rows)
}

func (r *ArtistRepositoryImpl) ListIDs(ctx context.Context, onlyApproved bool) ([]int, error) {
	query := `
		SELECT id FROM artists
		WHERE ($1 = FALSE OR approval_status = 'approved')
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, onlyApproved)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func (r *ArtistRepositoryImpl) Update(ctx context.Context, id int, values map[string]interface{}) (*model.Artist, error) {
	allowedFields := map[string]bool{
		"name":         true,
		"phone_number": true,
		"address":      true,
		"price_min":    true,
		"price_max":    true,
	}

	sets := []string{}
	args := []interface{}{}
	argPos := 1

	for column, value := range values {
		if ok := allowedFields[column]; !ok {
			return nil, apperrors.NewValidationError(column, "field cannot be updated")
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.NewValidationError("", "no fields to update")
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	args = append(args, id)

	query := fmt.Sprintf(`
		WITH updated AS (
			UPDATE artists SET %s WHERE id = $%d RETURNING *
		)
		SELECT `+artistColumns+` FROM updated a
	`, strings.Join(sets, ", "), argPos)

	artist, err := scanArtist(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrArtistNotFound
		}
		return nil, err
	}
	return artist, nil
}

func (r *ArtistRepositoryImpl) UpdateApproval(ctx context.Context, id int, update model.ApprovalUpdate) (*model.Artist, error) {
	query := `
		WITH updated AS (
			UPDATE artists
			SET approval_status = $1, rejection_reason = $2, approved_by = $3,
			    approved_at = $4, updated_at = NOW()
			WHERE id = $5
			RETURNING *
		)
		SELECT ` + artistColumns + ` FROM updated a
	`

	artist, err := scanArtist(r.pool.QueryRow(ctx, query,
		update.Status, update.Reason, update.ApprovedBy, update.ApprovedAt, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrArtistNotFound
		}
		return nil, err
	}
	return artist, nil
}

func (r *ArtistRepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete artist: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
