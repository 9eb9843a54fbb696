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

type BookingRequestRepository interface {
	FindByID(ctx context.Context, id int) (*model.BookingRequest, error)
	List(ctx context.Context) ([]*model.BookingRequest, error)
	ListOffered(ctx context.Context) ([]*model.BookingRequest, error)
	ListByArtist(ctx context.Context, artistID int) ([]*model.BookingRequest, error)
	UpdateStatus(ctx context.Context, id int, status model.BookingStatus) (*model.BookingRequest, error)
	Delete(ctx context.Context, id int) (bool, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, req *model.BookingRequest) (*model.BookingRequest, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.BookingRequest, error)
	SetPriceOffered(ctx context.Context, tx pgx.Tx, id int, price int, status model.BookingStatus) error
}

type BookingRequestRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBookingRequestRepository(pool *pgxpool.Pool) BookingRequestRepository {
	return &BookingRequestRepositoryImpl{
		pool: pool,
	}
}

const requestColumns = `
	r.id, r.client_name, r.client_email, r.event_date, r.event_time, r.duration_minutes,
	r.event_type, r.show_disciplines, r.team_size, r.number_of_guests, r.event_address,
	r.is_indoor, r.special_requests, r.needs_light, r.needs_sound, r.distance_km,
	r.newsletter_opt_in, r.price_min, r.price_max, r.price_offered, r.status,
	r.created_at, r.updated_at,
	ARRAY(SELECT o.artist_id FROM booking_offers o WHERE o.request_id = r.id ORDER BY o.artist_id)
`

func scanRequest(row pgx.Row) (*model.BookingRequest, error) {
	var req model.BookingRequest
	err := row.Scan(
		&req.ID,
		&req.ClientName,
		&req.ClientEmail,
		&req.EventDate,
		&req.EventTime,
		&req.DurationMinutes,
		&req.EventType,
		&req.ShowDisciplines,
		&req.TeamSize,
		&req.NumberOfGuests,
		&req.EventAddress,
		&req.IsIndoor,
		&req.SpecialRequests,
		&req.NeedsLight,
		&req.NeedsSound,
		&req.DistanceKM,
		&req.NewsletterOptIn,
		&req.PriceMin,
		&req.PriceMax,
		&req.PriceOffered,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.ArtistIDs,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *BookingRequestRepositoryImpl) queryRequests(ctx context.Context, query string, args ...interface{}) ([]*model.BookingRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*model.BookingRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *BookingRequestRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, req *model.BookingRequest) (*model.BookingRequest, error) {
	query := `
		INSERT INTO booking_requests (
			client_name, client_email, event_date, event_time, duration_minutes,
			event_type, show_disciplines, team_size, number_of_guests, event_address,
			is_indoor, special_requests, needs_light, needs_sound, distance_km,
			newsletter_opt_in, price_min, price_max, status
		)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		req.ClientName, req.ClientEmail, req.EventDate, req.EventTime, req.DurationMinutes,
		req.EventType, req.ShowDisciplines, req.TeamSize, req.NumberOfGuests, req.EventAddress,
		req.IsIndoor, req.SpecialRequests, req.NeedsLight, req.NeedsSound, req.DistanceKM,
		req.NewsletterOptIn, req.PriceMin, req.PriceMax, req.Status,
	).Scan(
		&req.ID,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking request: %w", err)
	}

	return req, nil
}

func (r *BookingRequestRepositoryImpl) FindByID(ctx context.Context, id int) (*model.BookingRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM booking_requests r WHERE r.id = $1`

	req, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *BookingRequestRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.BookingRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM booking_requests r WHERE r.id = $1 FOR UPDATE`

	req, err := scanRequest(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *BookingRequestRepositoryImpl) List(ctx context.Context) ([]*model.BookingRequest, error) {
	return r.queryRequests(ctx, `SELECT `+requestColumns+` FROM booking_requests r ORDER BY r.created_at DESC, r.id DESC`)
}

func (r *BookingRequestRepositoryImpl) ListOffered(ctx context.Context) ([]*model.BookingRequest, error) {
	return r.queryRequests(ctx, `
		SELECT `+requestColumns+`
		FROM booking_requests r
		WHERE r.price_offered IS NOT NULL
		ORDER BY r.created_at DESC, r.id DESC
	`)
}

func (r *BookingRequestRepositoryImpl) ListByArtist(ctx context.Context, artistID int) ([]*model.BookingRequest, error) {
	return r.queryRequests(ctx, `
		SELECT `+requestColumns+`
		FROM booking_requests r
		WHERE EXISTS (SELECT 1 FROM booking_offers o WHERE o.request_id = r.id AND o.artist_id = $1)
		ORDER BY r.event_date, r.id
	`, artistID)
}

func (r *BookingRequestRepositoryImpl) SetPriceOffered(ctx context.Context, tx pgx.Tx, id int, price int, status model.BookingStatus) error {
	query := `
		UPDATE booking_requests
		SET price_offered = $1, status = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := tx.Exec(ctx, query, price, status, id)
	if err != nil {
		return fmt.Errorf("failed to set offered price: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}

func (r *BookingRequestRepositoryImpl) UpdateStatus(ctx context.Context, id int, status model.BookingStatus) (*model.BookingRequest, error) {
	query := `
		WITH updated AS (
			UPDATE booking_requests SET status = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING *
		)
		SELECT ` + requestColumns + ` FROM updated r
	`

	req, err := scanRequest(r.pool.QueryRow(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *BookingRequestRepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM booking_requests WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete booking request: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
